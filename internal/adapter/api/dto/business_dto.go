package dto

import (
	"time"

	"github.com/hugohenrick/pedidozap/internal/domain/business"
)

// BusinessRequest representa os dados para criação ou atualização de um negócio
type BusinessRequest struct {
	Name         string `json:"name" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	WebhookToken string `json:"webhook_token" binding:"required,min=16"`
}

// BusinessStatusRequest representa a alteração de status de um negócio
type BusinessStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive"`
}

// BusinessResponse representa um negócio nas respostas da API.
// O hash do token de webhook nunca é exposto.
type BusinessResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToBusinessResponse converte o modelo de domínio em DTO de resposta
func ToBusinessResponse(b *business.Business) BusinessResponse {
	return BusinessResponse{
		ID:        b.ID,
		Name:      b.Name,
		Phone:     b.Phone,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// ToBusinessListResponse converte uma lista de negócios em DTOs de resposta
func ToBusinessListResponse(businesses []*business.Business) []BusinessResponse {
	responses := make([]BusinessResponse, 0, len(businesses))
	for _, b := range businesses {
		responses = append(responses, ToBusinessResponse(b))
	}
	return responses
}
