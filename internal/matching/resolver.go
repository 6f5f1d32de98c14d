package matching

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/hugohenrick/pedidozap/internal/domain/inventory"
	"github.com/hugohenrick/pedidozap/internal/domain/order"
	"github.com/hugohenrick/pedidozap/pkg/ai"
	"github.com/hugohenrick/pedidozap/pkg/logger"
)

// Confianças atribuídas por estágio quando o próprio estágio não produz um score
const (
	autoAssignConfidence = 1.0
)

// Resolution é o resultado agregado da resolução de um pedido
type Resolution struct {
	Items      []order.MatchCandidate
	Status     order.Status
	Confidence float64
	// Inventory é o snapshot usado na resolução; os diálogos de confirmação
	// guardam este snapshot para resolver as respostas do usuário
	Inventory []inventory.Item
}

// Resolver resolve candidatos contra o catálogo em cascata:
// cache → busca aproximada → IA → escalação para esclarecimento humano.
type Resolver struct {
	snapshot   *SnapshotCache
	cache      *MatchCache
	confidence *ConfidenceService
	completer  ai.Completer
	logger     logger.Logger
}

// NewResolver cria um novo resolvedor de itens. O completer pode ser nil;
// nesse caso o estágio de IA é pulado.
func NewResolver(snapshot *SnapshotCache, cache *MatchCache, confidence *ConfidenceService, completer ai.Completer, log logger.Logger) *Resolver {
	return &Resolver{
		snapshot:   snapshot,
		cache:      cache,
		confidence: confidence,
		completer:  completer,
		logger:     log,
	}
}

// Resolve resolve todos os candidatos de um pedido, sequencialmente, contra os
// limiares adaptativos atuais do business. Falha de busca do catálogo é o único
// erro fatal; tudo o mais degrada para escalação.
func (r *Resolver) Resolve(ctx context.Context, businessID string, candidates []order.CandidateItem) (*Resolution, error) {
	items, err := r.snapshot.Get(ctx, businessID)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 || len(candidates) == 0 {
		return r.resolveWithoutCandidates(businessID, items), nil
	}

	thresholds := r.confidence.Thresholds(ctx, businessID)

	matched := make([]order.MatchCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		matched = append(matched, r.resolveOne(ctx, businessID, candidate, items, thresholds))
	}

	return &Resolution{
		Items:      matched,
		Status:     order.DeriveStatus(matched),
		Confidence: order.AggregateConfidence(matched),
		Inventory:  items,
	}, nil
}

// ResolveSingle resolve um único candidato; usado quando a resposta de um
// diálogo de esclarecimento é reprocessada como consulta
func (r *Resolver) ResolveSingle(ctx context.Context, businessID string, candidate order.CandidateItem) (order.MatchCandidate, error) {
	items, err := r.snapshot.Get(ctx, businessID)
	if err != nil {
		return order.MatchCandidate{}, err
	}
	thresholds := r.confidence.Thresholds(ctx, businessID)
	return r.resolveOne(ctx, businessID, candidate, items, thresholds), nil
}

// resolveWithoutCandidates trata os atalhos que dispensam a cascata: catálogo
// vazio vira no_inventory; sem candidatos, um único item no catálogo é
// auto-atribuído e vários viram esclarecimento
func (r *Resolver) resolveWithoutCandidates(businessID string, items []inventory.Item) *Resolution {
	switch len(items) {
	case 0:
		return &Resolution{Status: order.StatusNoInventory, Inventory: items}
	case 1:
		item := items[0]
		mc := order.MatchCandidate{
			OriginalItem: order.CandidateItem{Name: item.Name, Quantity: 1},
			MatchedItem:  &item,
			Confidence:   autoAssignConfidence,
		}
		r.logger.Info("auto-assigned single inventory item", "business_id", businessID, "item", item.Name)
		return &Resolution{
			Items:      []order.MatchCandidate{mc},
			Status:     order.StatusAutoAssigned,
			Confidence: autoAssignConfidence,
			Inventory:  items,
		}
	default:
		return &Resolution{Status: order.StatusNeedsClarification, Inventory: items}
	}
}

// resolveOne executa a cascata para um candidato
func (r *Resolver) resolveOne(ctx context.Context, businessID string, candidate order.CandidateItem, items []inventory.Item, thresholds Thresholds) order.MatchCandidate {
	// Estágio 1: cache de matches aceitos
	if entry := r.cache.Lookup(ctx, businessID, candidate.Name); entry != nil && entry.ConfidenceScore >= thresholds.AutoAccept {
		if item := findByID(items, entry.MatchedItemID); item != nil {
			r.logger.Debug("match served from cache", "business_id", businessID, "item", item.Name)
			return accepted(candidate, item, entry.ConfidenceScore)
		}
		// O item referenciado saiu do catálogo: auto-correção, vira miss
		r.cache.Forget(ctx, businessID, candidate.Name)
	}

	// Estágio 2: busca aproximada estrita sobre os nomes do catálogo
	if item, score := bestFuzzyMatch(candidate.Name, items); item != nil && score >= thresholds.AutoAccept {
		r.cache.Store(ctx, businessID, candidate.Name, item, score)
		r.logger.Debug("fuzzy match accepted", "business_id", businessID, "query", candidate.Name, "item", item.Name, "score", score)
		return accepted(candidate, item, score)
	}

	// Estágio 3: matching assistido por IA
	if item, score := r.aiMatch(ctx, candidate.Name, items); item != nil && score >= thresholds.AIRequired {
		r.cache.Store(ctx, businessID, candidate.Name, item, score)
		r.logger.Info("AI match accepted", "business_id", businessID, "query", candidate.Name, "item", item.Name, "score", score)
		return accepted(candidate, item, score)
	}

	// Estágio 4: escalação para esclarecimento humano
	return order.MatchCandidate{
		OriginalItem:       candidate,
		MatchedItem:        nil,
		Confidence:         0,
		NeedsClarification: true,
	}
}

// aiMatch consulta o colaborador de text-completion. Qualquer falha ou
// resposta malformada é tratada como "sem correspondência", nunca como erro.
func (r *Resolver) aiMatch(ctx context.Context, query string, items []inventory.Item) (*inventory.Item, float64) {
	if r.completer == nil || len(items) == 0 {
		return nil, 0
	}

	reply, err := r.completer.Complete(ctx, buildMatchPrompt(query, items))
	if err != nil {
		r.logger.Warn("AI match stage failed, falling through", "query", query, "error", err)
		return nil, 0
	}

	name, confidence, ok := parseAIReply(reply)
	if !ok {
		r.logger.Debug("AI reply unusable, treated as no match", "reply", reply)
		return nil, 0
	}

	item := findByName(items, name)
	if item == nil {
		return nil, 0
	}
	return item, confidence
}

// buildMatchPrompt monta o prompt com o nome pedido e a lista de nomes do catálogo
func buildMatchPrompt(query string, items []inventory.Item) string {
	var sb strings.Builder
	sb.WriteString("Você ajuda a casar itens de pedidos com um catálogo.\n")
	sb.WriteString(fmt.Sprintf("Item pedido: %q\n", query))
	sb.WriteString("Catálogo:\n")
	for _, item := range items {
		sb.WriteString("- ")
		sb.WriteString(item.Name)
		sb.WriteString("\n")
	}
	sb.WriteString("Responda apenas no formato nomeDoItem|confianca (confianca entre 0 e 1), ")
	sb.WriteString("ou none|0 se nenhum item corresponder.")
	return sb.String()
}

// parseAIReply interpreta defensivamente respostas no formato "nome|confianca"
func parseAIReply(reply string) (string, float64, bool) {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", 0, false
	}

	// Considerar apenas a primeira linha; modelos às vezes acrescentam explicações
	if idx := strings.IndexByte(reply, '\n'); idx >= 0 {
		reply = reply[:idx]
	}

	parts := strings.SplitN(reply, "|", 2)
	if len(parts) != 2 {
		return "", 0, false
	}

	name := strings.Trim(strings.TrimSpace(parts[0]), `"'`)
	if name == "" || strings.EqualFold(name, "none") {
		return "", 0, false
	}

	confidence, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || confidence < 0 || confidence > 1 {
		return "", 0, false
	}

	return name, confidence, true
}

// bestFuzzyMatch retorna o item de maior pontuação contra a consulta
func bestFuzzyMatch(query string, items []inventory.Item) (*inventory.Item, float64) {
	var best *inventory.Item
	bestScore := 0.0
	for i := range items {
		score := Similarity(query, items[i].Name)
		if score > bestScore {
			best = &items[i]
			bestScore = score
		}
	}
	return best, bestScore
}

func accepted(candidate order.CandidateItem, item *inventory.Item, confidence float64) order.MatchCandidate {
	return order.MatchCandidate{
		OriginalItem: candidate,
		MatchedItem:  item,
		Confidence:   confidence,
	}
}

func findByID(items []inventory.Item, id string) *inventory.Item {
	for i := range items {
		if items[i].ID == id {
			return &items[i]
		}
	}
	return nil
}

func findByName(items []inventory.Item, name string) *inventory.Item {
	for i := range items {
		if strings.EqualFold(items[i].Name, name) {
			return &items[i]
		}
	}
	return nil
}
