package conversation

import (
	"testing"

	"github.com/hugohenrick/pedidozap/internal/domain/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseItemDetailsLabeled(t *testing.T) {
	tests := []struct {
		name string
		text string
		want ItemDetails
	}{
		{
			name: "rótulos em inglês",
			text: "Name: Jarra\nPrice: 6000\nType: product",
			want: ItemDetails{Name: "Jarra", Price: 6000, Type: inventory.ItemTypeProduct},
		},
		{
			name: "rótulos em português",
			text: "Nome: Bolo de Mel\nPreço: R$ 25,50\nTipo: produto",
			want: ItemDetails{Name: "Bolo de Mel", Price: 25.5, Type: inventory.ItemTypeProduct},
		},
		{
			name: "tipo ausente assume product",
			text: "Nome: Entrega expressa\nValor: 10",
			want: ItemDetails{Name: "Entrega expressa", Price: 10, Type: inventory.ItemTypeProduct},
		},
		{
			name: "tipo serviço vira other",
			text: "Nome: Montagem\nPreco: 80\nTipo: serviço",
			want: ItemDetails{Name: "Montagem", Price: 80, Type: inventory.ItemTypeOther},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseItemDetails(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestParseItemDetailsPositional(t *testing.T) {
	got, err := ParseItemDetails("Caneca personalizada 6000 product")
	require.NoError(t, err)
	assert.Equal(t, "Caneca personalizada", got.Name)
	assert.Equal(t, 6000.0, got.Price)
	assert.Equal(t, inventory.ItemTypeProduct, got.Type)

	got, err = ParseItemDetails("Caneca 45,90")
	require.NoError(t, err)
	assert.Equal(t, "Caneca", got.Name)
	assert.Equal(t, 45.9, got.Price)
}

func TestParseItemDetailsFreeText(t *testing.T) {
	got, err := ParseItemDetails("o bolo de cenoura custa R$ 30,00")
	require.NoError(t, err)
	assert.Equal(t, 30.0, got.Price)
	assert.Contains(t, got.Name, "bolo de cenoura")
}

func TestParseItemDetailsRejectsUnparsable(t *testing.T) {
	for _, text := range []string{"", "   ", "sem preço nenhum aqui", "Nome: Jarra"} {
		_, err := ParseItemDetails(text)
		assert.ErrorIs(t, err, ErrUnparsableDetails, "texto %q", text)
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{"6000", 6000, true},
		{"R$ 6.000", 6000, true},
		{"1,000", 1000, true},
		{"12,50", 12.5, true},
		{"12.50", 12.5, true},
		{"R$15", 15, true},
		{"0", 0, false},
		{"-5", 0, false},
		{"abc", 0, false},
	}

	for _, tt := range tests {
		got, ok := parsePrice(tt.raw)
		assert.Equal(t, tt.ok, ok, "raw %q", tt.raw)
		if tt.ok {
			assert.Equal(t, tt.want, got, "raw %q", tt.raw)
		}
	}
}
