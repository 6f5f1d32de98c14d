package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hugohenrick/pedidozap/internal/domain/inventory"
	"github.com/hugohenrick/pedidozap/internal/domain/order"
	"github.com/hugohenrick/pedidozap/internal/matching"
	"github.com/hugohenrick/pedidozap/pkg/chat"
	"github.com/hugohenrick/pedidozap/pkg/logger"
)

// userConfirmedConfidence é a confiança registrada para matches confirmados
// pelo usuário no diálogo
const userConfirmedConfidence = 0.95

// CompletionUpdater aplica um match confirmado ao pedido pendente: registra o
// resultado no log de aprendizado, mescla o item, recalcula os agregados,
// persiste e dispara baixa de estoque e avisos quando o pedido se completa.
type CompletionUpdater struct {
	orders     order.Repository
	inventory  inventory.Repository
	snapshot   *matching.SnapshotCache
	confidence *matching.ConfidenceService
	transport  chat.Transport
	notifier   chat.Notifier
	logger     logger.Logger
}

// NewCompletionUpdater cria um novo CompletionUpdater
func NewCompletionUpdater(
	orders order.Repository,
	inventoryRepo inventory.Repository,
	snapshot *matching.SnapshotCache,
	confidence *matching.ConfidenceService,
	transport chat.Transport,
	notifier chat.Notifier,
	log logger.Logger,
) *CompletionUpdater {
	return &CompletionUpdater{
		orders:     orders,
		inventory:  inventoryRepo,
		snapshot:   snapshot,
		confidence: confidence,
		transport:  transport,
		notifier:   notifier,
		logger:     log,
	}
}

// Complete aplica o item confirmado ao pedido pendente mais recente do business
// e retorna o pedido atualizado
func (u *CompletionUpdater) Complete(ctx context.Context, businessID, chatID string, originalItem order.CandidateItem, item *inventory.Item) (*order.Order, error) {
	// 1. Registrar o desfecho no log de aprendizado
	u.confidence.RecordMatchResult(ctx, businessID, originalItem.Name, item.ID, string(item.Type), true, userConfirmedConfidence)

	// 2. Carregar o pedido pendente mais recente
	isNew := false
	o, err := u.orders.FindLatestPending(ctx, businessID)
	if err != nil {
		if !errors.Is(err, order.ErrNoPendingOrder) {
			return nil, fmt.Errorf("erro ao buscar pedido pendente: %w", err)
		}
		// Sem pedido pendente (ex.: expirou ou foi concluído por outra via):
		// abrir um novo pedido para não perder a confirmação do usuário
		o = order.NewOrder(businessID, chatID, originalItem.OriginalText)
		isNew = true
	}

	// 3. Substituir pelo texto original (não pela posição) ou anexar
	qty := originalItem.Quantity
	if qty <= 0 {
		qty = 1
	}
	originalItem.Quantity = qty
	o.MergeMatch(order.MatchCandidate{
		OriginalItem: originalItem,
		MatchedItem:  item,
		Confidence:   userConfirmedConfidence,
	})

	// 4-5. Persistir e aplicar efeitos do novo status
	if err := u.persist(ctx, o, isNew); err != nil {
		return nil, err
	}

	switch o.Status {
	case order.StatusCompleted:
		u.finalize(ctx, o)
	case order.StatusNeedsConfirmation:
		u.sendRemaining(ctx, o, chatID)
	}

	return o, nil
}

// Finalize aplica os efeitos de conclusão de um pedido que já nasceu completo
// (todos os itens aceitos automaticamente)
func (u *CompletionUpdater) Finalize(ctx context.Context, o *order.Order) {
	u.finalize(ctx, o)
}

func (u *CompletionUpdater) persist(ctx context.Context, o *order.Order, isNew bool) error {
	var err error
	if isNew {
		err = u.orders.Create(ctx, o)
	} else {
		err = u.orders.Update(ctx, o)
	}
	if err != nil {
		return fmt.Errorf("erro ao persistir pedido: %w", err)
	}
	return nil
}

// finalize baixa o estoque dos produtos casados e avisa as equipes.
// Só roda quando o status final é completed: estados intermediários
// needs_confirmation nunca baixam estoque, evitando baixa dupla.
func (u *CompletionUpdater) finalize(ctx context.Context, o *order.Order) {
	for _, mc := range o.MatchedItems {
		if mc.MatchedItem == nil || mc.MatchedItem.Type != inventory.ItemTypeProduct {
			continue
		}
		if err := u.inventory.DecrementStock(ctx, o.BusinessID, mc.MatchedItem.ID, mc.OriginalItem.Quantity); err != nil {
			u.logger.Error("failed to decrement stock",
				"business_id", o.BusinessID,
				"item_id", mc.MatchedItem.ID,
				"qty", mc.OriginalItem.Quantity,
				"error", err)
		}
	}
	u.snapshot.Invalidate(o.BusinessID)

	summary := orderSummary(o)
	if err := u.notifier.NotifySales(ctx, "Novo pedido confirmado:\n"+summary); err != nil {
		u.logger.Error("failed to notify sales", "order_id", o.ID, "error", err)
	}
	if err := u.notifier.NotifyDelivery(ctx, "Pedido pronto para entrega:\n"+summary); err != nil {
		u.logger.Error("failed to notify delivery", "order_id", o.ID, "error", err)
	}

	if err := u.transport.SendMessage(ctx, o.ChatID, "Pedido confirmado! ✅\n"+summary); err != nil {
		u.logger.Error("failed to send completion notice", "order_id", o.ID, "error", err)
	}
}

// sendRemaining avisa quantos itens ainda precisam de esclarecimento
func (u *CompletionUpdater) sendRemaining(ctx context.Context, o *order.Order, chatID string) {
	unresolved := o.UnresolvedItems()
	if len(unresolved) == 0 {
		return
	}

	names := make([]string, 0, len(unresolved))
	for _, mc := range unresolved {
		names = append(names, mc.OriginalItem.Name)
	}

	text := fmt.Sprintf("%d item(ns) ainda precisam de esclarecimento: %s", len(unresolved), strings.Join(names, ", "))
	if err := u.transport.SendMessage(ctx, chatID, text); err != nil {
		u.logger.Error("failed to send remaining-items notice", "order_id", o.ID, "error", err)
	}
}

// orderSummary monta o resumo textual de um pedido para avisos
func orderSummary(o *order.Order) string {
	var sb strings.Builder
	for _, mc := range o.MatchedItems {
		if mc.MatchedItem == nil {
			continue
		}
		sb.WriteString(fmt.Sprintf("- %dx %s (R$ %.2f)\n", mc.OriginalItem.Quantity, mc.MatchedItem.Name, mc.MatchedItem.Price))
	}
	sb.WriteString(fmt.Sprintf("Total: R$ %.2f", o.TotalRevenue))
	return sb.String()
}
