package chat

import (
	"context"

	"github.com/hugohenrick/pedidozap/pkg/logger"
)

// Transport define a interface para envio de mensagens ao chat.
// As implementações reais (WhatsApp, Telegram) vivem fora deste repositório;
// aqui o transporte é um colaborador externo.
type Transport interface {
	// SendMessage envia uma mensagem de texto para um chat
	SendMessage(ctx context.Context, chatID, text string) error
}

// LogTransport é uma implementação de Transport que apenas registra as mensagens.
// Usada no boot da aplicação quando nenhum transporte real está configurado.
type LogTransport struct {
	logger logger.Logger
}

// NewLogTransport cria uma nova instância de LogTransport
func NewLogTransport(log logger.Logger) *LogTransport {
	return &LogTransport{logger: log}
}

// SendMessage registra a mensagem que seria enviada
func (t *LogTransport) SendMessage(ctx context.Context, chatID, text string) error {
	t.logger.Info("outbound message", "chat_id", chatID, "text", text)
	return nil
}
