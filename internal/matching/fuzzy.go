package matching

import (
	"regexp"
	"strings"
)

// Constantes de política do matcher aproximado. A banda de edição estreita e o
// comprimento mínimo mantêm o estágio fuzzy deliberadamente estrito; o que ele
// não resolve cai para o estágio de IA ou para esclarecimento humano.
const (
	minMatchLength  = 3
	maxEditDistance = 2

	tokenWeight = 0.9
	diceWeight  = 0.1

	substringTokenScore = 0.9
)

var reSpaces = regexp.MustCompile(`\s+`)

// NormalizeText reduz o texto a minúsculas com espaços simples
func NormalizeText(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	return reSpaces.ReplaceAllString(s, " ")
}

// TokenizeText separa o texto normalizado em tokens com pelo menos 2 caracteres
func TokenizeText(input string) []string {
	parts := strings.Split(NormalizeText(input), " ")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if len([]rune(p)) >= 2 {
			out = append(out, p)
		}
	}
	return out
}

// Similarity pontua a semelhança entre a consulta e um nome de item em [0,1].
// Combina a melhor semelhança por token com o coeficiente de Dice de bigramas.
func Similarity(query, candidate string) float64 {
	nq := NormalizeText(query)
	nc := NormalizeText(candidate)
	if nq == "" || nc == "" {
		return 0
	}
	if nq == nc {
		return 1
	}

	queryTokens := TokenizeText(nq)
	candidateTokens := TokenizeText(nc)
	if len(queryTokens) == 0 {
		queryTokens = []string{nq}
	}
	if len(candidateTokens) == 0 {
		candidateTokens = []string{nc}
	}

	sum := 0.0
	for _, qt := range queryTokens {
		best := 0.0
		for _, ct := range candidateTokens {
			if s := tokenSimilarity(qt, ct); s > best {
				best = s
			}
		}
		sum += best
	}
	tokenScore := sum / float64(len(queryTokens))

	return tokenWeight*tokenScore + diceWeight*DiceCoefficient(nq, nc)
}

// tokenSimilarity compara dois tokens: igualdade exata, contenção (mínimo de
// 3 caracteres) ou distância de edição dentro da banda permitida
func tokenSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}

	shorter, longer := a, b
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}

	if len([]rune(shorter)) >= minMatchLength && strings.Contains(longer, shorter) {
		return substringTokenScore
	}

	if len([]rune(shorter)) < minMatchLength {
		return 0
	}

	dist := Levenshtein(a, b)
	if dist > maxEditDistance {
		return 0
	}

	maxLen := len([]rune(longer))
	return 1 - float64(dist)/float64(maxLen)
}

// Levenshtein calcula a distância de edição entre duas strings (por runas)
func Levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

// DiceCoefficient calcula o coeficiente de Dice sobre bigramas de caracteres
func DiceCoefficient(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	pairs := func(s string) []string {
		r := []rune(s)
		if len(r) < 2 {
			return nil
		}
		out := make([]string, 0, len(r)-1)
		for i := 0; i < len(r)-1; i++ {
			out = append(out, string(r[i:i+2]))
		}
		return out
	}

	aPairs := pairs(a)
	bPairs := pairs(b)
	if len(aPairs) == 0 || len(bPairs) == 0 {
		return 0
	}

	bCount := map[string]int{}
	for _, p := range bPairs {
		bCount[p]++
	}
	inter := 0
	for _, p := range aPairs {
		if bCount[p] > 0 {
			inter++
			bCount[p]--
		}
	}

	return float64(2*inter) / float64(len(aPairs)+len(bPairs))
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
