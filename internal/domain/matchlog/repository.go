package matchlog

import (
	"context"
	"time"
)

// Repository define a interface para o log de aprendizado de matching
type Repository interface {
	// Append adiciona um registro ao log (append-only)
	Append(ctx context.Context, r *Record) error

	// SuccessStats agrega confirmados/total de um business desde o instante dado
	SuccessStats(ctx context.Context, businessID string, since time.Time) (Stats, error)
}

// CacheRepository define a interface para o cache persistente de matches aceitos
type CacheRepository interface {
	// Get busca uma entrada pelo hash do texto; retorna nil quando não existe
	Get(ctx context.Context, businessID, textHash string) (*CacheEntry, error)

	// Put insere ou substitui uma entrada
	Put(ctx context.Context, e *CacheEntry) error

	// Delete remove uma entrada (auto-correção de referências obsoletas)
	Delete(ctx context.Context, businessID, textHash string) error
}
