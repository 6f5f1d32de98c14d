package conversation

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/hugohenrick/pedidozap/internal/domain/inventory"
)

// ErrUnparsableDetails ocorre quando nenhuma estratégia consegue extrair
// nome e preço da resposta de cadastro de item
var ErrUnparsableDetails = errors.New("não foi possível interpretar os dados do item")

// ItemDetails são os dados extraídos de uma resposta de cadastro de item novo
type ItemDetails struct {
	Name  string
	Price float64
	Type  inventory.ItemType
}

var (
	reLabelName  = regexp.MustCompile(`(?i)^\s*(?:name|nome)\s*:\s*(.+)$`)
	reLabelPrice = regexp.MustCompile(`(?i)^\s*(?:price|preço|preco|valor)\s*:\s*(.+)$`)
	reLabelType  = regexp.MustCompile(`(?i)^\s*(?:type|tipo)\s*:\s*(.+)$`)

	rePriceText = regexp.MustCompile(`(?i)(?:R\$|\$|₦|€|£)\s*\d[\d.,\s]*|\d[\d.,]*`)
	reCurrency  = regexp.MustCompile(`(?i)R\$|\$|₦|€|£|\s`)
)

// typeWords são as palavras reconhecidas como indicação de tipo de item
var typeWords = map[string]struct{}{
	"product": {}, "products": {}, "item": {}, "items": {},
	"produto": {}, "produtos": {},
	"other": {}, "others": {}, "service": {}, "services": {},
	"outro": {}, "outros": {}, "serviço": {}, "serviços": {}, "servico": {}, "servicos": {},
}

// ParseItemDetails extrai {nome, preço, tipo} de uma resposta de chat.
// Três estratégias são tentadas em ordem: linhas rotuladas (Nome:/Preço:/Tipo:),
// tokens posicionais (nome, depois preço, tipo opcional no fim) e extração
// heurística de texto livre.
func ParseItemDetails(text string) (*ItemDetails, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrUnparsableDetails
	}

	if d := parseLabeled(text); d != nil {
		return d, nil
	}
	if d := parsePositional(text); d != nil {
		return d, nil
	}
	if d := parseFreeText(text); d != nil {
		return d, nil
	}

	return nil, ErrUnparsableDetails
}

// parseLabeled trata respostas com linhas rotuladas
func parseLabeled(text string) *ItemDetails {
	var name, priceRaw, typeRaw string

	for _, line := range strings.Split(text, "\n") {
		if m := reLabelName.FindStringSubmatch(line); m != nil {
			name = strings.TrimSpace(m[1])
		} else if m := reLabelPrice.FindStringSubmatch(line); m != nil {
			priceRaw = strings.TrimSpace(m[1])
		} else if m := reLabelType.FindStringSubmatch(line); m != nil {
			typeRaw = strings.TrimSpace(m[1])
		}
	}

	if name == "" || priceRaw == "" {
		return nil
	}
	price, ok := parsePrice(priceRaw)
	if !ok {
		return nil
	}

	return &ItemDetails{Name: name, Price: price, Type: inventory.NormalizeType(typeRaw)}
}

// parsePositional trata respostas como "Caneca 6000 product": tokens de nome,
// um token de preço identificado por dígitos/símbolo de moeda e, opcionalmente,
// um token final de tipo
func parsePositional(text string) *ItemDetails {
	tokens := strings.Fields(text)
	if len(tokens) < 2 {
		return nil
	}

	// O preço vem depois do nome: varrer do fim para o início
	priceIdx := -1
	for i := len(tokens) - 1; i >= 1; i-- {
		if _, ok := parsePrice(tokens[i]); ok {
			priceIdx = i
			break
		}
	}
	if priceIdx < 1 {
		return nil
	}

	// Depois do preço só pode haver a indicação de tipo
	typeRaw := ""
	for _, token := range tokens[priceIdx+1:] {
		if !isTypeWord(token) {
			return nil
		}
		if typeRaw == "" {
			typeRaw = token
		}
	}

	// Símbolo de moeda solto antes do preço indica texto livre, não posicional
	for _, token := range tokens[:priceIdx] {
		if reCurrency.MatchString(token) {
			return nil
		}
	}

	name := strings.TrimSpace(strings.Join(tokens[:priceIdx], " "))
	if name == "" {
		return nil
	}

	price, _ := parsePrice(tokens[priceIdx])
	return &ItemDetails{Name: name, Price: price, Type: inventory.NormalizeType(typeRaw)}
}

// parseFreeText remove do texto o trecho de preço e a palavra de tipo
// detectados e usa o restante como nome
func parseFreeText(text string) *ItemDetails {
	matches := rePriceText.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	// Preferir o último trecho numérico; preços costumam vir depois do nome
	priceRaw := matches[len(matches)-1]
	price, ok := parsePrice(priceRaw)
	if !ok {
		return nil
	}

	remainder := strings.Replace(text, priceRaw, " ", 1)

	typeRaw := ""
	fields := strings.Fields(remainder)
	kept := make([]string, 0, len(fields))
	for _, f := range fields {
		if typeRaw == "" && isTypeWord(f) {
			typeRaw = f
			continue
		}
		kept = append(kept, f)
	}

	name := strings.Trim(strings.Join(kept, " "), " .,:;-")
	if name == "" {
		return nil
	}

	return &ItemDetails{Name: name, Price: price, Type: inventory.NormalizeType(typeRaw)}
}

// parsePrice interpreta um preço em texto, removendo símbolos de moeda e
// separadores de milhar ("R$ 6.000" → 6000; "12,50" → 12.5)
func parsePrice(raw string) (float64, bool) {
	s := reCurrency.ReplaceAllString(raw, "")
	if s == "" {
		return 0, false
	}
	s = normalizeNumericToken(s)

	price, err := strconv.ParseFloat(s, 64)
	if err != nil || price <= 0 {
		return 0, false
	}
	return price, true
}

var (
	reDotThousands   = regexp.MustCompile(`^\d{1,3}(?:\.\d{3})+$`)
	reCommaThousands = regexp.MustCompile(`^\d{1,3}(?:,\d{3})+$`)
)

// normalizeNumericToken resolve separadores de milhar e vírgula decimal
func normalizeNumericToken(token string) string {
	if reDotThousands.MatchString(token) {
		return strings.ReplaceAll(token, ".", "")
	}
	if reCommaThousands.MatchString(token) {
		return strings.ReplaceAll(token, ",", "")
	}
	if strings.Contains(token, ",") && !strings.Contains(token, ".") {
		return strings.ReplaceAll(token, ",", ".")
	}
	return token
}

func isTypeWord(token string) bool {
	token = strings.ToLower(strings.Trim(token, " .,:;"))
	_, ok := typeWords[token]
	return ok
}
