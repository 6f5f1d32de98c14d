package matching

import (
	"context"
	"time"

	"github.com/hugohenrick/pedidozap/internal/domain/inventory"
	"github.com/hugohenrick/pedidozap/internal/domain/matchlog"
	"github.com/hugohenrick/pedidozap/pkg/logger"
)

// matchCacheTTL é o tempo de vida de um match aceito no cache persistente
const matchCacheTTL = time.Hour

// MatchCache envolve o repositório do cache de matches com a política de TTL.
// Erros de leitura/escrita são engolidos: o cache nunca derruba o pipeline.
type MatchCache struct {
	repo   matchlog.CacheRepository
	logger logger.Logger
}

// NewMatchCache cria um novo serviço de cache de matches
func NewMatchCache(repo matchlog.CacheRepository, log logger.Logger) *MatchCache {
	return &MatchCache{repo: repo, logger: log}
}

// Lookup busca uma entrada válida para o texto; retorna nil em caso de miss,
// entrada expirada ou erro
func (c *MatchCache) Lookup(ctx context.Context, businessID, text string) *matchlog.CacheEntry {
	hash := matchlog.HashText(text)
	entry, err := c.repo.Get(ctx, businessID, hash)
	if err != nil {
		c.logger.Warn("match cache lookup failed", "business_id", businessID, "error", err)
		return nil
	}
	if entry == nil {
		return nil
	}
	if entry.Expired() {
		c.Forget(ctx, businessID, text)
		return nil
	}
	return entry
}

// Store grava (write-through) um match aceito
func (c *MatchCache) Store(ctx context.Context, businessID, text string, item *inventory.Item, confidence float64) {
	entry := &matchlog.CacheEntry{
		BusinessID:      businessID,
		TextHash:        matchlog.HashText(text),
		MatchedItemID:   item.ID,
		MatchedItemType: string(item.Type),
		ConfidenceScore: confidence,
		ExpiresAt:       time.Now().Add(matchCacheTTL),
	}
	if err := c.repo.Put(ctx, entry); err != nil {
		c.logger.Warn("match cache store failed", "business_id", businessID, "error", err)
	}
}

// Forget remove a entrada do texto; usada na auto-correção quando o item
// referenciado não existe mais no catálogo
func (c *MatchCache) Forget(ctx context.Context, businessID, text string) {
	if err := c.repo.Delete(ctx, businessID, matchlog.HashText(text)); err != nil {
		c.logger.Warn("match cache delete failed", "business_id", businessID, "error", err)
	}
}
