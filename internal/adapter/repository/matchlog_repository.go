package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hugohenrick/pedidozap/internal/domain/matchlog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MatchLogRepository implementa a interface matchlog.Repository sobre a
// tabela append-only match_learning_log
type MatchLogRepository struct {
	db *pgxpool.Pool
}

// NewMatchLogRepository cria uma nova instância de MatchLogRepository
func NewMatchLogRepository(db *pgxpool.Pool) matchlog.Repository {
	return &MatchLogRepository{
		db: db,
	}
}

// Append implementa matchlog.Repository.Append
func (r *MatchLogRepository) Append(ctx context.Context, rec *matchlog.Record) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO match_learning_log (
			id, business_id, original_text, matched_item_id, matched_item_type,
			user_confirmed, confidence_score, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rec.ID, rec.BusinessID, rec.OriginalText, rec.MatchedItemID,
		rec.MatchedItemType, rec.UserConfirmed, rec.ConfidenceScore, rec.CreatedAt)

	if err != nil {
		return fmt.Errorf("erro ao registrar resultado de matching: %w", err)
	}

	return nil
}

// SuccessStats implementa matchlog.Repository.SuccessStats
func (r *MatchLogRepository) SuccessStats(ctx context.Context, businessID string, since time.Time) (matchlog.Stats, error) {
	var stats matchlog.Stats

	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE user_confirmed)
		 FROM match_learning_log
		 WHERE business_id = $1 AND created_at >= $2`,
		businessID, since).Scan(&stats.Total, &stats.Confirmed)

	if err != nil {
		return matchlog.Stats{}, fmt.Errorf("erro ao agregar log de aprendizado: %w", err)
	}

	return stats, nil
}

// MatchCacheRepository implementa a interface matchlog.CacheRepository sobre a
// tabela match_cache, chaveada por (business_id, text_hash)
type MatchCacheRepository struct {
	db *pgxpool.Pool
}

// NewMatchCacheRepository cria uma nova instância de MatchCacheRepository
func NewMatchCacheRepository(db *pgxpool.Pool) matchlog.CacheRepository {
	return &MatchCacheRepository{
		db: db,
	}
}

// Get implementa matchlog.CacheRepository.Get
func (r *MatchCacheRepository) Get(ctx context.Context, businessID, textHash string) (*matchlog.CacheEntry, error) {
	e := &matchlog.CacheEntry{}

	err := r.db.QueryRow(ctx,
		`SELECT business_id, text_hash, matched_item_id, matched_item_type,
		        confidence_score, expires_at
		 FROM match_cache WHERE business_id = $1 AND text_hash = $2`,
		businessID, textHash).Scan(&e.BusinessID, &e.TextHash, &e.MatchedItemID,
		&e.MatchedItemType, &e.ConfidenceScore, &e.ExpiresAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao consultar cache de matching: %w", err)
	}

	return e, nil
}

// Put implementa matchlog.CacheRepository.Put
func (r *MatchCacheRepository) Put(ctx context.Context, e *matchlog.CacheEntry) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO match_cache (
			business_id, text_hash, matched_item_id, matched_item_type,
			confidence_score, expires_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (business_id, text_hash) DO UPDATE
		SET matched_item_id = EXCLUDED.matched_item_id,
		    matched_item_type = EXCLUDED.matched_item_type,
		    confidence_score = EXCLUDED.confidence_score,
		    expires_at = EXCLUDED.expires_at`,
		e.BusinessID, e.TextHash, e.MatchedItemID, e.MatchedItemType,
		e.ConfidenceScore, e.ExpiresAt)

	if err != nil {
		return fmt.Errorf("erro ao gravar cache de matching: %w", err)
	}

	return nil
}

// Delete implementa matchlog.CacheRepository.Delete
func (r *MatchCacheRepository) Delete(ctx context.Context, businessID, textHash string) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM match_cache WHERE business_id = $1 AND text_hash = $2`,
		businessID, textHash)

	if err != nil {
		return fmt.Errorf("erro ao remover entrada do cache de matching: %w", err)
	}

	return nil
}
