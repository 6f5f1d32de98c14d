package conversation

import (
	"context"
	"fmt"
	"strings"

	"github.com/hugohenrick/pedidozap/internal/domain/inventory"
	"github.com/hugohenrick/pedidozap/internal/domain/order"
	"github.com/hugohenrick/pedidozap/internal/matching"
	"github.com/hugohenrick/pedidozap/pkg/chat"
	"github.com/hugohenrick/pedidozap/pkg/logger"
)

// maxListedOptions limita quantos itens do catálogo aparecem numa mensagem
// de esclarecimento
const maxListedOptions = 10

// Service é a máquina de estados de conversação: processa pedidos novos,
// conduz os diálogos de esclarecimento e de cadastro de item e aciona a
// conclusão de pedidos quando o usuário resolve um item
type Service struct {
	resolver   *matching.Resolver
	confidence *matching.ConfidenceService
	snapshot   *matching.SnapshotCache
	pending    *PendingStore
	inventory  inventory.Repository
	orders     order.Repository
	completion *CompletionUpdater
	transport  chat.Transport
	logger     logger.Logger
}

// NewService cria um novo serviço de conversação
func NewService(
	resolver *matching.Resolver,
	confidence *matching.ConfidenceService,
	snapshot *matching.SnapshotCache,
	pending *PendingStore,
	inventoryRepo inventory.Repository,
	orders order.Repository,
	completion *CompletionUpdater,
	transport chat.Transport,
	log logger.Logger,
) *Service {
	return &Service{
		resolver:   resolver,
		confidence: confidence,
		snapshot:   snapshot,
		pending:    pending,
		inventory:  inventoryRepo,
		orders:     orders,
		completion: completion,
		transport:  transport,
		logger:     log,
	}
}

// HandleMessage processa uma mensagem normalizada vinda do webhook.
// Diálogos pendentes têm precedência: primeiro cadastro de item, depois
// esclarecimento; sem diálogo ativo a mensagem é tratada como pedido novo.
func (s *Service) HandleMessage(ctx context.Context, msg chat.Message) error {
	if pd := s.pending.FindDetailsByChat(msg.ChatID); pd != nil {
		return s.handleDetailsReply(ctx, pd, msg)
	}
	if pc := s.pending.FindConfirmationByChat(msg.ChatID); pc != nil {
		return s.handleConfirmationReply(ctx, pc, msg)
	}

	_, err := s.ProcessOrderText(ctx, msg.BusinessID, msg.ChatID, msg.Text)
	return err
}

// ProcessOrderText extrai candidatos do texto, resolve contra o catálogo,
// persiste o pedido e dispara os diálogos de esclarecimento necessários
func (s *Service) ProcessOrderText(ctx context.Context, businessID, chatID, text string) (*order.Order, error) {
	candidates := matching.ExtractCandidates(text)

	resolution, err := s.resolver.Resolve(ctx, businessID, candidates)
	if err != nil {
		// Catálogo indisponível é fatal para esta tentativa; nada é persistido
		s.logger.Error("order processing failed", "business_id", businessID, "chat_id", chatID, "error", err)
		o := order.NewOrder(businessID, chatID, text)
		o.Status = order.StatusError
		return o, err
	}

	o := order.NewOrder(businessID, chatID, text)
	o.MatchedItems = resolution.Items
	o.TotalRevenue = order.TotalRevenue(resolution.Items)
	o.Confidence = resolution.Confidence
	o.Status = resolution.Status

	s.recordOutcomes(ctx, businessID, resolution.Items)

	if err := s.orders.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("erro ao criar pedido: %w", err)
	}

	switch o.Status {
	case order.StatusNoInventory:
		s.send(ctx, chatID, "Ainda não há itens cadastrados no catálogo deste negócio, então não consegui registrar o pedido.")

	case order.StatusAutoAssigned:
		item := o.MatchedItems[0]
		s.send(ctx, chatID, fmt.Sprintf("Registrei seu pedido como 1x %s (R$ %.2f).", item.MatchedItem.Name, item.MatchedItem.Price))

	case order.StatusCompleted:
		s.completion.Finalize(ctx, o)

	default:
		if len(candidates) == 0 {
			// Extrator não produziu candidatos e o catálogo tem vários itens:
			// pedir que o usuário escolha a partir da lista
			pc := s.pending.PutConfirmation(businessID, chatID, order.CandidateItem{
				Name:         strings.TrimSpace(text),
				Quantity:     1,
				OriginalText: text,
			}, resolution.Inventory)
			s.send(ctx, chatID, chooseFromInventoryMessage(resolution.Inventory))
			s.logger.Info("clarification requested for whole message", "confirmation_id", pc.ID, "chat_id", chatID)
			break
		}

		for _, mc := range o.MatchedItems {
			if !mc.NeedsClarification {
				continue
			}
			pc := s.pending.PutConfirmation(businessID, chatID, mc.OriginalItem, resolution.Inventory)
			s.send(ctx, chatID, clarificationMessage(mc.OriginalItem.Name, resolution.Inventory))
			s.logger.Info("clarification requested", "confirmation_id", pc.ID, "chat_id", chatID, "item", mc.OriginalItem.Name)
		}
	}

	return o, nil
}

// recordOutcomes alimenta o log de aprendizado com os desfechos automáticos:
// aceites dos estágios cache/fuzzy/IA contam como confirmados, escalações
// contam como não confirmados
func (s *Service) recordOutcomes(ctx context.Context, businessID string, items []order.MatchCandidate) {
	for _, mc := range items {
		if mc.MatchedItem != nil {
			s.confidence.RecordMatchResult(ctx, businessID, mc.OriginalItem.Name, mc.MatchedItem.ID, string(mc.MatchedItem.Type), true, mc.Confidence)
		} else if mc.NeedsClarification {
			s.confidence.RecordMatchResult(ctx, businessID, mc.OriginalItem.Name, "", "", false, 0)
		}
	}
}

// handleConfirmationReply processa a resposta de um diálogo de esclarecimento
func (s *Service) handleConfirmationReply(ctx context.Context, pc *PendingConfirmation, msg chat.Message) error {
	norm := strings.ToLower(strings.TrimSpace(msg.Text))

	// Transição para cadastro de item novo
	if strings.Contains(norm, "novo item") || strings.Contains(norm, "new item") {
		s.pending.DeleteConfirmation(pc.ID)
		s.pending.PutDetails(pc.BusinessID, pc.ChatID, pc.OriginalItem.Name, pc.OriginalItem)
		s.send(ctx, msg.ChatID, itemDetailsHelpMessage(pc.OriginalItem.Name))
		return nil
	}

	// Negativa antes de afirmativa: "não confirmo" contém "confirm"
	if isNegative(norm) {
		s.send(ctx, msg.ChatID, fmt.Sprintf("Sem problema! Qual é o item correto para %q? Envie o nome exato.", pc.OriginalItem.Name))
		return nil
	}

	if isAffirmative(norm) {
		item := bestTextualMatch(pc.OriginalItem.Name, pc.InventorySnapshot)
		if item == nil {
			s.send(ctx, msg.ChatID, fmt.Sprintf("Não consegui identificar %q no catálogo. Envie o nome do item, por favor.", pc.OriginalItem.Name))
			return nil
		}
		s.pending.DeleteConfirmation(pc.ID)
		_, err := s.completion.Complete(ctx, pc.BusinessID, pc.ChatID, pc.OriginalItem, item)
		return err
	}

	// Texto livre: reprocessar como consulta pelo resolvedor
	mc, err := s.resolver.ResolveSingle(ctx, pc.BusinessID, order.CandidateItem{
		Name:         strings.TrimSpace(msg.Text),
		Quantity:     pc.OriginalItem.Quantity,
		OriginalText: msg.Text,
	})
	if err != nil {
		s.logger.Error("failed to re-resolve clarification reply", "chat_id", msg.ChatID, "error", err)
		s.send(ctx, msg.ChatID, "Tive um problema ao consultar o catálogo. Pode tentar de novo em instantes?")
		return err
	}

	if mc.MatchedItem != nil && !mc.NeedsClarification {
		s.pending.DeleteConfirmation(pc.ID)
		_, err := s.completion.Complete(ctx, pc.BusinessID, pc.ChatID, pc.OriginalItem, mc.MatchedItem)
		return err
	}

	s.send(ctx, msg.ChatID, clarificationMessage(strings.TrimSpace(msg.Text), pc.InventorySnapshot))
	return nil
}

// handleDetailsReply processa a resposta de um diálogo de cadastro de item
func (s *Service) handleDetailsReply(ctx context.Context, pd *PendingItemDetails, msg chat.Message) error {
	details, err := ParseItemDetails(msg.Text)
	if err != nil {
		s.send(ctx, msg.ChatID, itemDetailsHelpMessage(pd.NewItemName))
		return nil
	}

	exists, err := s.inventory.ExistsByName(ctx, pd.BusinessID, details.Name)
	if err != nil {
		s.logger.Error("duplicate-name check failed", "business_id", pd.BusinessID, "error", err)
		s.send(ctx, msg.ChatID, "Tive um problema ao verificar o catálogo. Pode enviar os dados novamente?")
		return nil
	}
	if exists {
		// Erro de validação visível ao usuário; o diálogo continua pendente
		s.send(ctx, msg.ChatID, fmt.Sprintf("Já existe um item chamado %q no catálogo. Informe um nome diferente, por favor.", details.Name))
		return nil
	}

	item, err := inventory.NewItem(pd.BusinessID, details.Name, details.Price, details.Type, nil)
	if err != nil {
		s.send(ctx, msg.ChatID, itemDetailsHelpMessage(pd.NewItemName))
		return nil
	}
	if err := s.inventory.Create(ctx, item); err != nil {
		s.logger.Error("failed to create inventory item", "business_id", pd.BusinessID, "name", details.Name, "error", err)
		s.send(ctx, msg.ChatID, "Não consegui cadastrar o item agora. Pode tentar novamente?")
		return nil
	}
	s.snapshot.Invalidate(pd.BusinessID)

	s.pending.DeleteDetails(pd.ID)
	s.send(ctx, msg.ChatID, fmt.Sprintf("Item %q cadastrado por R$ %.2f! ✅", item.Name, item.Price))

	_, err = s.completion.Complete(ctx, pd.BusinessID, pd.ChatID, pd.OriginalItem, item)
	return err
}

func (s *Service) send(ctx context.Context, chatID, text string) {
	if err := s.transport.SendMessage(ctx, chatID, text); err != nil {
		s.logger.Error("failed to send chat message", "chat_id", chatID, "error", err)
	}
}

// isAffirmative reconhece confirmações em português e inglês
func isAffirmative(norm string) bool {
	switch norm {
	case "sim", "s", "yes", "y", "ok", "confirmar", "confirmado", "confirm", "isso":
		return true
	}
	return strings.Contains(norm, "confirm")
}

// isNegative reconhece negativas em português e inglês
func isNegative(norm string) bool {
	switch norm {
	case "não", "nao", "n", "no", "errado", "wrong":
		return true
	}
	return strings.Contains(norm, "errad") || strings.Contains(norm, "wrong")
}

// bestTextualMatch procura o item por igualdade exata e depois por substring
func bestTextualMatch(name string, items []inventory.Item) *inventory.Item {
	for i := range items {
		if strings.EqualFold(items[i].Name, name) {
			return &items[i]
		}
	}

	lowered := strings.ToLower(name)
	for i := range items {
		itemName := strings.ToLower(items[i].Name)
		if strings.Contains(itemName, lowered) || strings.Contains(lowered, itemName) {
			return &items[i]
		}
	}
	return nil
}

// clarificationMessage monta a pergunta de esclarecimento com até 10 opções
func clarificationMessage(query string, items []inventory.Item) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Não encontrei %q no catálogo. Qual destes itens você quis dizer?\n\n", query))
	for i, item := range items {
		if i >= maxListedOptions {
			break
		}
		sb.WriteString(fmt.Sprintf("%d. %s - R$ %.2f\n", i+1, item.Name, item.Price))
	}
	sb.WriteString("\nResponda com o nome do item, \"sim\" para confirmar, ou \"novo item\" para cadastrar um item novo.")
	return sb.String()
}

// itemDetailsHelpMessage explica o formato esperado para cadastrar um item,
// pré-preenchendo o nome que o usuário mencionou
func itemDetailsHelpMessage(name string) string {
	return fmt.Sprintf(
		"Para cadastrar o item, envie os dados neste formato:\n\nNome: %s\nPreço: 10.00\nTipo: produto\n\nO tipo é opcional (produto ou outro).",
		name,
	)
}

// chooseFromInventoryMessage lista o catálogo quando o texto do pedido não
// rendeu nenhum candidato
func chooseFromInventoryMessage(items []inventory.Item) string {
	var sb strings.Builder
	sb.WriteString("Não consegui identificar itens no seu pedido. Estes são os itens disponíveis:\n\n")
	for i, item := range items {
		if i >= maxListedOptions {
			break
		}
		sb.WriteString(fmt.Sprintf("%d. %s - R$ %.2f\n", i+1, item.Name, item.Price))
	}
	sb.WriteString("\nResponda com o nome do item desejado.")
	return sb.String()
}
