package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/pedidozap/internal/domain/inventory"
)

// Status representa o estado agregado de matching de um pedido
type Status string

const (
	StatusCompleted          Status = "completed"
	StatusNeedsConfirmation  Status = "needs_confirmation"
	StatusNeedsClarification Status = "needs_clarification"
	StatusNoInventory        Status = "no_inventory"
	StatusAutoAssigned       Status = "auto_assigned"
	StatusError              Status = "error"
)

// completedConfidence é o piso de confiança por item para considerar o pedido completo
const completedConfidence = 0.8

// CandidateItem é um par {nome, quantidade} extraído do texto livre,
// antes da resolução contra o inventário
type CandidateItem struct {
	Name         string `json:"name"`
	Quantity     int    `json:"quantity"`
	OriginalText string `json:"original_text"`
}

// MatchCandidate é o resultado da resolução de um CandidateItem
type MatchCandidate struct {
	OriginalItem       CandidateItem   `json:"original_item"`
	MatchedItem        *inventory.Item `json:"matched_item,omitempty"`
	Confidence         float64         `json:"confidence"`
	NeedsClarification bool            `json:"needs_clarification"`
}

// Order representa um pedido recebido por chat, com seus itens resolvidos
type Order struct {
	ID           string           `json:"id"`
	BusinessID   string           `json:"business_id"`
	ChatID       string           `json:"chat_id"`
	RawText      string           `json:"raw_text"`
	MatchedItems []MatchCandidate `json:"matched_items"`
	TotalRevenue float64          `json:"total_revenue"`
	Confidence   float64          `json:"matching_confidence"`
	Status       Status           `json:"matching_status"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// NewOrder cria um novo pedido para um chat de um business
func NewOrder(businessID, chatID, rawText string) *Order {
	now := time.Now()
	return &Order{
		ID:         uuid.New().String(),
		BusinessID: businessID,
		ChatID:     chatID,
		RawText:    rawText,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// DeriveStatus calcula o status agregado a partir da lista de itens resolvidos.
// completed exige confiança > 0.8 em todos os itens e nenhum pendente de
// esclarecimento; havendo ao menos um item casado, needs_confirmation;
// caso contrário needs_clarification.
func DeriveStatus(items []MatchCandidate) Status {
	if len(items) == 0 {
		return StatusNeedsClarification
	}

	allConfident := true
	anyMatched := false
	for _, item := range items {
		if item.MatchedItem != nil {
			anyMatched = true
		}
		if item.NeedsClarification || item.Confidence <= completedConfidence {
			allConfident = false
		}
	}

	if allConfident {
		return StatusCompleted
	}
	if anyMatched {
		return StatusNeedsConfirmation
	}
	return StatusNeedsClarification
}

// AggregateConfidence é a média aritmética das confianças por item
func AggregateConfidence(items []MatchCandidate) float64 {
	if len(items) == 0 {
		return 0
	}
	sum := 0.0
	for _, item := range items {
		sum += item.Confidence
	}
	return sum / float64(len(items))
}

// TotalRevenue soma preço unitário × quantidade dos itens casados
func TotalRevenue(items []MatchCandidate) float64 {
	total := 0.0
	for _, item := range items {
		if item.MatchedItem != nil {
			total += item.MatchedItem.Price * float64(item.OriginalItem.Quantity)
		}
	}
	return total
}

// MergeMatch substitui o item cujo texto original tem o mesmo nome
// (identidade pelo texto original, não pela posição) ou anexa um novo,
// e recalcula receita, confiança e status.
func (o *Order) MergeMatch(mc MatchCandidate) {
	replaced := false
	for i := range o.MatchedItems {
		if o.MatchedItems[i].OriginalItem.Name == mc.OriginalItem.Name {
			o.MatchedItems[i] = mc
			replaced = true
			break
		}
	}
	if !replaced {
		o.MatchedItems = append(o.MatchedItems, mc)
	}

	o.Recompute()
}

// Recompute recalcula os agregados do pedido a partir dos itens
func (o *Order) Recompute() {
	o.TotalRevenue = TotalRevenue(o.MatchedItems)
	o.Confidence = AggregateConfidence(o.MatchedItems)
	o.Status = DeriveStatus(o.MatchedItems)
	o.UpdatedAt = time.Now()
}

// UnresolvedItems retorna os itens ainda pendentes de esclarecimento
func (o *Order) UnresolvedItems() []MatchCandidate {
	out := make([]MatchCandidate, 0)
	for _, item := range o.MatchedItems {
		if item.NeedsClarification || item.MatchedItem == nil {
			out = append(out, item)
		}
	}
	return out
}
