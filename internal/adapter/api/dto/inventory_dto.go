package dto

import (
	"time"

	"github.com/hugohenrick/pedidozap/internal/domain/inventory"
)

// InventoryItemRequest representa os dados para criação ou atualização de um
// item do catálogo. O tipo aceita sinônimos em português e inglês e é
// normalizado para product/other.
type InventoryItemRequest struct {
	Name       string  `json:"name" binding:"required"`
	Price      float64 `json:"price" binding:"required,gt=0"`
	Type       string  `json:"type"`
	StockCount *int    `json:"stock_count"`
}

// InventoryItemResponse representa um item do catálogo nas respostas da API
type InventoryItemResponse struct {
	ID         string    `json:"id"`
	BusinessID string    `json:"business_id"`
	Name       string    `json:"name"`
	Price      float64   `json:"price"`
	Type       string    `json:"type"`
	StockCount *int      `json:"stock_count,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ToInventoryItemResponse converte o modelo de domínio em DTO de resposta
func ToInventoryItemResponse(item *inventory.Item) InventoryItemResponse {
	return InventoryItemResponse{
		ID:         item.ID,
		BusinessID: item.BusinessID,
		Name:       item.Name,
		Price:      item.Price,
		Type:       string(item.Type),
		StockCount: item.StockCount,
		CreatedAt:  item.CreatedAt,
		UpdatedAt:  item.UpdatedAt,
	}
}

// ToInventoryListResponse converte uma lista de itens em DTOs de resposta
func ToInventoryListResponse(items []inventory.Item) []InventoryItemResponse {
	responses := make([]InventoryItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, ToInventoryItemResponse(&items[i]))
	}
	return responses
}
