package dto

import (
	"time"

	"github.com/hugohenrick/pedidozap/internal/domain/order"
)

// MatchedItemResponse representa um item casado dentro de um pedido
type MatchedItemResponse struct {
	OriginalName       string  `json:"original_name"`
	Quantity           int     `json:"quantity"`
	MatchedName        string  `json:"matched_name,omitempty"`
	MatchedItemID      string  `json:"matched_item_id,omitempty"`
	Price              float64 `json:"price,omitempty"`
	Confidence         float64 `json:"confidence"`
	NeedsClarification bool    `json:"needs_clarification"`
}

// OrderResponse representa um pedido nas respostas da API
type OrderResponse struct {
	ID           string                `json:"id"`
	BusinessID   string                `json:"business_id"`
	ChatID       string                `json:"chat_id"`
	RawText      string                `json:"raw_text"`
	MatchedItems []MatchedItemResponse `json:"matched_items"`
	TotalRevenue float64               `json:"total_revenue"`
	Confidence   float64               `json:"matching_confidence"`
	Status       string                `json:"matching_status"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// ToOrderResponse converte o modelo de domínio em DTO de resposta
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]MatchedItemResponse, 0, len(o.MatchedItems))
	for _, mc := range o.MatchedItems {
		item := MatchedItemResponse{
			OriginalName:       mc.OriginalItem.Name,
			Quantity:           mc.OriginalItem.Quantity,
			Confidence:         mc.Confidence,
			NeedsClarification: mc.NeedsClarification,
		}
		if mc.MatchedItem != nil {
			item.MatchedName = mc.MatchedItem.Name
			item.MatchedItemID = mc.MatchedItem.ID
			item.Price = mc.MatchedItem.Price
		}
		items = append(items, item)
	}

	return OrderResponse{
		ID:           o.ID,
		BusinessID:   o.BusinessID,
		ChatID:       o.ChatID,
		RawText:      o.RawText,
		MatchedItems: items,
		TotalRevenue: o.TotalRevenue,
		Confidence:   o.Confidence,
		Status:       string(o.Status),
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

// ToOrderListResponse converte uma lista de pedidos em DTOs de resposta
func ToOrderListResponse(orders []*order.Order) []OrderResponse {
	responses := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		responses = append(responses, ToOrderResponse(o))
	}
	return responses
}
