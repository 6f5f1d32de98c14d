package dto

import (
	"strings"
	"time"

	"github.com/hugohenrick/pedidozap/pkg/chat"
)

// WebhookMessageRequest é o formato normalizado de mensagem aceito pelo
// webhook, independente do provedor de chat que a entrega
type WebhookMessageRequest struct {
	BusinessID string `json:"business_id" binding:"required"`
	ChatID     string `json:"chat_id" binding:"required"`
	Text       string `json:"text" binding:"required"`
	Token      string `json:"token" binding:"required"`
	IsReply    bool   `json:"is_reply"`
	QuotedText string `json:"quoted_text"`
}

// ToMessage converte a requisição do webhook em mensagem de domínio
func (r WebhookMessageRequest) ToMessage() chat.Message {
	return chat.Message{
		ChatID:     r.ChatID,
		BusinessID: r.BusinessID,
		Text:       strings.TrimSpace(r.Text),
		IsReply:    r.IsReply,
		QuotedText: r.QuotedText,
		ReceivedAt: time.Now(),
	}
}
