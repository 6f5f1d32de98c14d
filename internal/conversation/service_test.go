package conversation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hugohenrick/pedidozap/internal/domain/inventory"
	"github.com/hugohenrick/pedidozap/internal/domain/matchlog"
	"github.com/hugohenrick/pedidozap/internal/domain/order"
	"github.com/hugohenrick/pedidozap/internal/matching"
	"github.com/hugohenrick/pedidozap/pkg/chat"
	"github.com/hugohenrick/pedidozap/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInventoryRepo struct {
	items      []inventory.Item
	listErr    error
	created    []*inventory.Item
	nameExists bool
	decrements map[string]int
}

func (f *fakeInventoryRepo) Create(_ context.Context, item *inventory.Item) error {
	f.created = append(f.created, item)
	f.items = append(f.items, *item)
	return nil
}

func (f *fakeInventoryRepo) FindByID(_ context.Context, _, id string) (*inventory.Item, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			return &f.items[i], nil
		}
	}
	return nil, errors.New("item não encontrado")
}

func (f *fakeInventoryRepo) List(context.Context, string) ([]inventory.Item, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.items, nil
}

func (f *fakeInventoryRepo) Update(context.Context, *inventory.Item) error { return nil }
func (f *fakeInventoryRepo) Delete(context.Context, string, string) error  { return nil }

func (f *fakeInventoryRepo) ExistsByName(context.Context, string, string) (bool, error) {
	return f.nameExists, nil
}

func (f *fakeInventoryRepo) DecrementStock(_ context.Context, _, id string, qty int) error {
	if f.decrements == nil {
		f.decrements = make(map[string]int)
	}
	f.decrements[id] += qty
	return nil
}

type fakeOrderRepo struct {
	created []*order.Order
	updated []*order.Order
	pending *order.Order
}

func (f *fakeOrderRepo) Create(_ context.Context, o *order.Order) error {
	f.created = append(f.created, o)
	return nil
}

func (f *fakeOrderRepo) FindByID(context.Context, string, string) (*order.Order, error) {
	return nil, errors.New("pedido não encontrado")
}

func (f *fakeOrderRepo) FindLatestPending(context.Context, string) (*order.Order, error) {
	if f.pending == nil {
		return nil, order.ErrNoPendingOrder
	}
	return f.pending, nil
}

func (f *fakeOrderRepo) List(context.Context, string, order.Status, int, int) ([]*order.Order, error) {
	return nil, nil
}

func (f *fakeOrderRepo) Update(_ context.Context, o *order.Order) error {
	f.updated = append(f.updated, o)
	return nil
}

type fakeMatchLogRepo struct{}

func (fakeMatchLogRepo) Append(context.Context, *matchlog.Record) error { return nil }
func (fakeMatchLogRepo) SuccessStats(context.Context, string, time.Time) (matchlog.Stats, error) {
	return matchlog.Stats{}, nil
}

type fakeCacheRepo struct{}

func (fakeCacheRepo) Get(context.Context, string, string) (*matchlog.CacheEntry, error) {
	return nil, nil
}
func (fakeCacheRepo) Put(context.Context, *matchlog.CacheEntry) error { return nil }
func (fakeCacheRepo) Delete(context.Context, string, string) error    { return nil }

type fakeTransport struct {
	messages []string
	chats    []string
}

func (f *fakeTransport) SendMessage(_ context.Context, chatID, text string) error {
	f.chats = append(f.chats, chatID)
	f.messages = append(f.messages, text)
	return nil
}

func (f *fakeTransport) lastMessage() string {
	if len(f.messages) == 0 {
		return ""
	}
	return f.messages[len(f.messages)-1]
}

type fakeNotifier struct {
	sales    []string
	delivery []string
}

func (f *fakeNotifier) NotifySales(_ context.Context, text string) error {
	f.sales = append(f.sales, text)
	return nil
}

func (f *fakeNotifier) NotifyDelivery(_ context.Context, text string) error {
	f.delivery = append(f.delivery, text)
	return nil
}

type serviceFixture struct {
	service   *Service
	inventory *fakeInventoryRepo
	orders    *fakeOrderRepo
	transport *fakeTransport
	notifier  *fakeNotifier
	pending   *PendingStore
}

func newServiceFixture(items []inventory.Item) *serviceFixture {
	invRepo := &fakeInventoryRepo{items: items}
	orderRepo := &fakeOrderRepo{}
	transport := &fakeTransport{}
	notifier := &fakeNotifier{}
	pending := NewPendingStore()

	snapshot := matching.NewSnapshotCache(invRepo, logger.Nop{})
	cache := matching.NewMatchCache(fakeCacheRepo{}, logger.Nop{})
	confidence := matching.NewConfidenceService(fakeMatchLogRepo{}, logger.Nop{})
	resolver := matching.NewResolver(snapshot, cache, confidence, nil, logger.Nop{})
	completion := NewCompletionUpdater(orderRepo, invRepo, snapshot, confidence, transport, notifier, logger.Nop{})

	svc := NewService(resolver, confidence, snapshot, pending, invRepo, orderRepo, completion, transport, logger.Nop{})

	return &serviceFixture{
		service:   svc,
		inventory: invRepo,
		orders:    orderRepo,
		transport: transport,
		notifier:  notifier,
		pending:   pending,
	}
}

func stockPtr(n int) *int { return &n }

func testCatalog() []inventory.Item {
	return []inventory.Item{
		{ID: "item-1", BusinessID: "biz-1", Name: "Torta de Limão", Price: 40, Type: inventory.ItemTypeProduct, StockCount: stockPtr(10)},
		{ID: "item-2", BusinessID: "biz-1", Name: "Suco de Uva", Price: 9, Type: inventory.ItemTypeProduct},
	}
}

func TestProcessOrderTextCompletesConfidentOrder(t *testing.T) {
	f := newServiceFixture(testCatalog())

	o, err := f.service.ProcessOrderText(context.Background(), "biz-1", "chat-1", "2 Torta de Limão")

	require.NoError(t, err)
	assert.Equal(t, order.StatusCompleted, o.Status)
	require.Len(t, f.orders.created, 1)
	assert.Equal(t, 80.0, o.TotalRevenue)

	// Conclusão aplica estoque e avisos
	assert.Equal(t, 2, f.inventory.decrements["item-1"])
	assert.Len(t, f.notifier.sales, 1)
	assert.Len(t, f.notifier.delivery, 1)
	assert.Contains(t, f.transport.lastMessage(), "Pedido confirmado")
}

func TestProcessOrderTextEscalatesUnknownItem(t *testing.T) {
	f := newServiceFixture(testCatalog())

	o, err := f.service.ProcessOrderText(context.Background(), "biz-1", "chat-1", "1 docinho colorido")

	require.NoError(t, err)
	assert.Equal(t, order.StatusNeedsClarification, o.Status)
	require.Len(t, f.orders.created, 1)

	// Diálogo pendente criado e pergunta enviada com as opções
	pc := f.pending.FindConfirmationByChat("chat-1")
	require.NotNil(t, pc)
	assert.Equal(t, "docinho colorido", pc.OriginalItem.Name)
	assert.Contains(t, f.transport.lastMessage(), "Torta de Limão")
	assert.Contains(t, f.transport.lastMessage(), "novo item")

	// Nada de estoque nem avisos de conclusão
	assert.Empty(t, f.inventory.decrements)
	assert.Empty(t, f.notifier.sales)
}

func TestProcessOrderTextFailsWhenInventoryUnavailable(t *testing.T) {
	f := newServiceFixture(nil)
	f.inventory.listErr = errors.New("db down")

	o, err := f.service.ProcessOrderText(context.Background(), "biz-1", "chat-1", "2 tortas")

	require.Error(t, err)
	assert.Equal(t, order.StatusError, o.Status)
	// Falha de catálogo não persiste pedido
	assert.Empty(t, f.orders.created)
}

func TestProcessOrderTextNoInventory(t *testing.T) {
	f := newServiceFixture(nil)

	o, err := f.service.ProcessOrderText(context.Background(), "biz-1", "chat-1", "oi, quero pedir")

	require.NoError(t, err)
	assert.Equal(t, order.StatusNoInventory, o.Status)
	assert.Contains(t, f.transport.lastMessage(), "catálogo")
}

func TestHandleMessageAffirmativeReplyCompletesPendingOrder(t *testing.T) {
	f := newServiceFixture(testCatalog())

	pendingOrder := order.NewOrder("biz-1", "chat-1", "1 torta de limão")
	pendingOrder.MatchedItems = []order.MatchCandidate{{
		OriginalItem:       order.CandidateItem{Name: "torta de limão", Quantity: 1},
		NeedsClarification: true,
	}}
	pendingOrder.Status = order.StatusNeedsClarification
	f.orders.pending = pendingOrder

	f.pending.PutConfirmation("biz-1", "chat-1",
		order.CandidateItem{Name: "torta de limão", Quantity: 1}, testCatalog())

	err := f.service.HandleMessage(context.Background(), chat.Message{
		ChatID:     "chat-1",
		BusinessID: "biz-1",
		Text:       "sim",
	})

	require.NoError(t, err)
	// Diálogo resolvido e pedido pendente atualizado
	assert.Nil(t, f.pending.FindConfirmationByChat("chat-1"))
	require.Len(t, f.orders.updated, 1)
	assert.Contains(t, f.transport.lastMessage(), "Pedido confirmado")
}

func TestHandleMessageNegativeReplyKeepsDialog(t *testing.T) {
	f := newServiceFixture(testCatalog())
	f.pending.PutConfirmation("biz-1", "chat-1",
		order.CandidateItem{Name: "docinho", Quantity: 1}, testCatalog())

	err := f.service.HandleMessage(context.Background(), chat.Message{
		ChatID: "chat-1", BusinessID: "biz-1", Text: "não",
	})

	require.NoError(t, err)
	assert.NotNil(t, f.pending.FindConfirmationByChat("chat-1"))
	assert.Contains(t, f.transport.lastMessage(), "item correto")
}

func TestHandleMessageFreeTextReplyResolvesAgainstCatalog(t *testing.T) {
	f := newServiceFixture(testCatalog())
	f.pending.PutConfirmation("biz-1", "chat-1",
		order.CandidateItem{Name: "docinho", Quantity: 2}, testCatalog())

	err := f.service.HandleMessage(context.Background(), chat.Message{
		ChatID: "chat-1", BusinessID: "biz-1", Text: "Suco de Uva",
	})

	require.NoError(t, err)
	assert.Nil(t, f.pending.FindConfirmationByChat("chat-1"))
	// Sem pedido pendente no repositório, a confirmação abre um novo
	require.Len(t, f.orders.created, 1)
	created := f.orders.created[0]
	require.Len(t, created.MatchedItems, 1)
	assert.Equal(t, "item-2", created.MatchedItems[0].MatchedItem.ID)
	assert.Equal(t, 2, created.MatchedItems[0].OriginalItem.Quantity)
}

func TestHandleMessageNewItemTransitionsToDetailsDialog(t *testing.T) {
	f := newServiceFixture(testCatalog())
	f.pending.PutConfirmation("biz-1", "chat-1",
		order.CandidateItem{Name: "docinho", Quantity: 1}, testCatalog())

	err := f.service.HandleMessage(context.Background(), chat.Message{
		ChatID: "chat-1", BusinessID: "biz-1", Text: "novo item",
	})

	require.NoError(t, err)
	assert.Nil(t, f.pending.FindConfirmationByChat("chat-1"))

	pd := f.pending.FindDetailsByChat("chat-1")
	require.NotNil(t, pd)
	assert.Equal(t, "docinho", pd.NewItemName)
	assert.Contains(t, f.transport.lastMessage(), "Nome:")
}

func TestHandleMessageDetailsReplyCreatesItemAndCompletes(t *testing.T) {
	f := newServiceFixture(testCatalog())
	f.pending.PutDetails("biz-1", "chat-1", "docinho",
		order.CandidateItem{Name: "docinho", Quantity: 3, OriginalText: "3 docinho"})

	err := f.service.HandleMessage(context.Background(), chat.Message{
		ChatID:     "chat-1",
		BusinessID: "biz-1",
		Text:       "Nome: Docinho Colorido\nPreço: 2,50\nTipo: produto",
	})

	require.NoError(t, err)
	require.Len(t, f.inventory.created, 1)
	assert.Equal(t, "Docinho Colorido", f.inventory.created[0].Name)
	assert.Equal(t, 2.5, f.inventory.created[0].Price)

	assert.Nil(t, f.pending.FindDetailsByChat("chat-1"))

	// A confirmação abre um pedido novo e o conclui
	require.Len(t, f.orders.created, 1)
	assert.Equal(t, order.StatusCompleted, f.orders.created[0].Status)
}

func TestHandleMessageDetailsReplyDuplicateNameKeepsDialog(t *testing.T) {
	f := newServiceFixture(testCatalog())
	f.inventory.nameExists = true
	f.pending.PutDetails("biz-1", "chat-1", "torta",
		order.CandidateItem{Name: "torta", Quantity: 1})

	err := f.service.HandleMessage(context.Background(), chat.Message{
		ChatID: "chat-1", BusinessID: "biz-1", Text: "Nome: Torta de Limão\nPreço: 40",
	})

	require.NoError(t, err)
	assert.Empty(t, f.inventory.created)
	assert.NotNil(t, f.pending.FindDetailsByChat("chat-1"))
	assert.Contains(t, f.transport.lastMessage(), "Já existe")
}

func TestHandleMessageDetailsReplyUnparsableSendsHelp(t *testing.T) {
	f := newServiceFixture(testCatalog())
	f.pending.PutDetails("biz-1", "chat-1", "docinho",
		order.CandidateItem{Name: "docinho", Quantity: 1})

	err := f.service.HandleMessage(context.Background(), chat.Message{
		ChatID: "chat-1", BusinessID: "biz-1", Text: "não sei",
	})

	require.NoError(t, err)
	assert.NotNil(t, f.pending.FindDetailsByChat("chat-1"))
	assert.True(t, strings.Contains(f.transport.lastMessage(), "formato"))
}
