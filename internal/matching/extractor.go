package matching

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hugohenrick/pedidozap/internal/domain/order"
)

// Padrões de quantidade/nome aplicados em ordem fixa de prioridade a cada
// segmento do texto: `N NOME`, `NOME xN`, `Nx NOME`, `NOME N`.
var (
	segmentSplit = regexp.MustCompile(`[,;\n]+`)

	qtyNamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^(\d+)\s+(.+)$`),        // 2 Bolos
		regexp.MustCompile(`^(.+?)\s*[xX](\d+)$`),   // Bolo x2
		regexp.MustCompile(`^(\d+)[xX]\s*(.+)$`),    // 2x Bolo
		regexp.MustCompile(`^(.+?)\s+(\d+)$`),       // Bolo 2
	}

	// índice do grupo de quantidade em cada padrão acima
	qtyGroup = []int{1, 2, 1, 2}
)

// ExtractCandidates converte o texto livre de itens em pares {nome, quantidade}.
// Nunca falha: no pior caso retorna lista vazia. Segmentos sem padrão
// reconhecido viram um candidato com quantidade 1 e o segmento inteiro como nome.
// Nomes iguais (sem diferenciar maiúsculas) são mesclados somando quantidades,
// mantendo a grafia da primeira ocorrência.
func ExtractCandidates(rawText string) []order.CandidateItem {
	text := strings.TrimSpace(rawText)
	if text == "" {
		return nil
	}

	out := make([]order.CandidateItem, 0)
	index := make(map[string]int)

	for _, segment := range segmentSplit.Split(text, -1) {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		name, qty := parseSegment(segment)
		if name == "" {
			continue
		}

		key := strings.ToLower(name)
		if i, ok := index[key]; ok {
			out[i].Quantity += qty
			continue
		}

		index[key] = len(out)
		out = append(out, order.CandidateItem{
			Name:         name,
			Quantity:     qty,
			OriginalText: segment,
		})
	}

	return out
}

// parseSegment tenta os padrões em ordem; sem correspondência válida,
// o segmento inteiro vira o nome com quantidade 1
func parseSegment(segment string) (string, int) {
	for i, pattern := range qtyNamePatterns {
		match := pattern.FindStringSubmatch(segment)
		if match == nil {
			continue
		}

		qtyStr := match[qtyGroup[i]]
		nameStr := match[3-qtyGroup[i]]

		qty, err := strconv.Atoi(qtyStr)
		if err != nil || qty <= 0 {
			continue
		}

		name := strings.Trim(strings.TrimSpace(nameStr), ".-")
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		return name, qty
	}

	return segment, 1
}
