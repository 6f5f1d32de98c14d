package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "bolo de cenoura", NormalizeText("  Bolo   DE  Cenoura "))
	assert.Equal(t, "", NormalizeText("   "))
}

func TestTokenizeTextDropsShortTokens(t *testing.T) {
	assert.Equal(t, []string{"bolo", "de", "mel"}, TokenizeText("Bolo de Mel"))
	assert.Equal(t, []string{"coca"}, TokenizeText("coca é"))
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		candidate string
		atLeast   float64
		below     float64
	}{
		{"igualdade exata normalizada", "  Bolo ", "bolo", 1.0, 1.01},
		{"abreviação por contenção", "choc cake", "Chocolate Cake", 0.90, 1.0},
		{"erro de digitação dentro da banda", "bollo", "bolo", 0.75, 1.0},
		{"nomes sem relação", "pizza", "suco de uva", 0, 0.3},
		{"consulta vazia", "", "bolo", 0, 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Similarity(tt.query, tt.candidate)
			assert.GreaterOrEqual(t, got, tt.atLeast)
			assert.Less(t, got, tt.below)
		})
	}
}

func TestSimilarityIsStrictOnDistantEdits(t *testing.T) {
	// Mais de duas edições entre tokens não pontua pelo ramo de edição
	got := Similarity("refrigerante", "refresco")
	assert.Less(t, got, 0.5)
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"bolo", "", 4},
		{"bolo", "bolo", 0},
		{"bolo", "bollo", 1},
		{"cake", "cage", 1},
		{"açaí", "acai", 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Levenshtein(tt.a, tt.b), "%s vs %s", tt.a, tt.b)
	}
}

func TestDiceCoefficient(t *testing.T) {
	assert.Equal(t, 1.0, DiceCoefficient("bolo", "bolo"))
	assert.Equal(t, 0.0, DiceCoefficient("", "bolo"))
	assert.Equal(t, 0.0, DiceCoefficient("ab", "cd"))
	assert.InDelta(t, 0.8, DiceCoefficient("cak", "cake"), 0.001)
}
