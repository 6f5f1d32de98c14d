package chat

import "time"

// Message representa uma mensagem de chat já normalizada pela camada de transporte.
// Independente da plataforma de origem (WhatsApp, Telegram), o payload que chega
// ao engine tem sempre este formato; o engine nunca ramifica por tipo de transporte.
type Message struct {
	ChatID     string    `json:"chat_id"`
	BusinessID string    `json:"business_id"`
	Text       string    `json:"text"`
	IsReply    bool      `json:"is_reply"`
	QuotedText string    `json:"quoted_text,omitempty"`
	ReceivedAt time.Time `json:"received_at"`
}
