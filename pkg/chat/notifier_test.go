package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTransport struct {
	chats []string
	texts []string
}

func (r *recordingTransport) SendMessage(_ context.Context, chatID, text string) error {
	r.chats = append(r.chats, chatID)
	r.texts = append(r.texts, text)
	return nil
}

func TestTeamNotifierRoutesToConfiguredChats(t *testing.T) {
	transport := &recordingTransport{}
	n := NewTeamNotifier(transport, "sales-chat", "delivery-chat")

	require.NoError(t, n.NotifySales(context.Background(), "novo pedido"))
	require.NoError(t, n.NotifyDelivery(context.Background(), "sair para entrega"))

	assert.Equal(t, []string{"sales-chat", "delivery-chat"}, transport.chats)
	assert.Equal(t, []string{"novo pedido", "sair para entrega"}, transport.texts)
}

func TestTeamNotifierSkipsUnconfiguredChats(t *testing.T) {
	transport := &recordingTransport{}
	n := NewTeamNotifier(transport, "", "")

	require.NoError(t, n.NotifySales(context.Background(), "novo pedido"))
	require.NoError(t, n.NotifyDelivery(context.Background(), "sair para entrega"))

	assert.Empty(t, transport.chats)
}
