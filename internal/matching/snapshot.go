package matching

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hugohenrick/pedidozap/internal/domain/inventory"
	"github.com/hugohenrick/pedidozap/pkg/logger"
)

// snapshotTTL é o tempo de vida de um snapshot do catálogo por business
const snapshotTTL = 5 * time.Minute

type snapshotEntry struct {
	items     []inventory.Item
	fetchedAt time.Time
}

// SnapshotCache mantém em memória um snapshot do catálogo por business.
// Toda mutação externa do catálogo (criação, atualização, remoção de item)
// DEVE chamar Invalidate — este é o contrato de invalidação na borda do sistema.
type SnapshotCache struct {
	mu      sync.RWMutex
	entries map[string]snapshotEntry
	repo    inventory.Repository
	logger  logger.Logger
}

// NewSnapshotCache cria um novo cache de snapshots do catálogo
func NewSnapshotCache(repo inventory.Repository, log logger.Logger) *SnapshotCache {
	return &SnapshotCache{
		entries: make(map[string]snapshotEntry),
		repo:    repo,
		logger:  log,
	}
}

// Get retorna o catálogo do business, servindo do cache quando o snapshot
// ainda é válido. Falha de busca no catálogo é fatal para o chamador.
func (c *SnapshotCache) Get(ctx context.Context, businessID string) ([]inventory.Item, error) {
	c.mu.RLock()
	entry, ok := c.entries[businessID]
	c.mu.RUnlock()

	if ok && time.Since(entry.fetchedAt) < snapshotTTL {
		return entry.items, nil
	}

	items, err := c.repo.List(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar catálogo do business %s: %w", businessID, err)
	}

	c.mu.Lock()
	c.entries[businessID] = snapshotEntry{items: items, fetchedAt: time.Now()}
	c.mu.Unlock()

	return items, nil
}

// Invalidate descarta o snapshot de um business
func (c *SnapshotCache) Invalidate(businessID string) {
	c.mu.Lock()
	delete(c.entries, businessID)
	c.mu.Unlock()
}

// EvictExpired remove snapshots expirados; chamada oportunisticamente quando
// o monitor de memória sinaliza pressão, não em timer fixo
func (c *SnapshotCache) EvictExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	evicted := 0
	for businessID, entry := range c.entries {
		if time.Since(entry.fetchedAt) >= snapshotTTL {
			delete(c.entries, businessID)
			evicted++
		}
	}

	if evicted > 0 {
		c.logger.Debug("evicted expired inventory snapshots", "count", evicted)
	}
	return evicted
}
