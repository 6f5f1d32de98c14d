package chat

import (
	"context"
)

// Notifier avisa as equipes de venda e entrega quando um pedido é concluído
type Notifier interface {
	NotifySales(ctx context.Context, text string) error
	NotifyDelivery(ctx context.Context, text string) error
}

// TeamNotifier implementa Notifier enviando mensagens pelos chats internos
// das equipes através do transporte configurado
type TeamNotifier struct {
	transport      Transport
	salesChatID    string
	deliveryChatID string
}

// NewTeamNotifier cria um novo TeamNotifier
func NewTeamNotifier(transport Transport, salesChatID, deliveryChatID string) *TeamNotifier {
	return &TeamNotifier{
		transport:      transport,
		salesChatID:    salesChatID,
		deliveryChatID: deliveryChatID,
	}
}

// NotifySales envia o aviso ao chat da equipe de vendas
func (n *TeamNotifier) NotifySales(ctx context.Context, text string) error {
	if n.salesChatID == "" {
		return nil
	}
	return n.transport.SendMessage(ctx, n.salesChatID, text)
}

// NotifyDelivery envia o aviso ao chat da equipe de entregas
func (n *TeamNotifier) NotifyDelivery(ctx context.Context, text string) error {
	if n.deliveryChatID == "" {
		return nil
	}
	return n.transport.SendMessage(ctx, n.deliveryChatID, text)
}
