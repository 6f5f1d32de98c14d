package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hugohenrick/pedidozap/internal/domain/business"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Erros específicos do repositório
var (
	ErrBusinessNotFound     = errors.New("negócio não encontrado")
	ErrBusinessDuplicateKey = errors.New("negócio com mesmo telefone já existe")
)

// BusinessRepository implementa a interface business.Repository
type BusinessRepository struct {
	db *pgxpool.Pool
}

// NewBusinessRepository cria uma nova instância de BusinessRepository
func NewBusinessRepository(db *pgxpool.Pool) business.Repository {
	return &BusinessRepository{
		db: db,
	}
}

// Create implementa business.Repository.Create
func (r *BusinessRepository) Create(ctx context.Context, b *business.Business) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO businesses (
			id, name, phone, webhook_token_hash, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		b.ID, b.Name, b.Phone, b.WebhookTokenHash, b.Status, b.CreatedAt, b.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrBusinessDuplicateKey
		}
		return fmt.Errorf("erro ao criar negócio: %w", err)
	}

	return nil
}

// FindByID implementa business.Repository.FindByID
func (r *BusinessRepository) FindByID(ctx context.Context, id string) (*business.Business, error) {
	b := &business.Business{}

	err := r.db.QueryRow(ctx,
		`SELECT id, name, phone, webhook_token_hash, status, created_at, updated_at
		 FROM businesses WHERE id = $1`,
		id).Scan(&b.ID, &b.Name, &b.Phone, &b.WebhookTokenHash, &b.Status, &b.CreatedAt, &b.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBusinessNotFound
		}
		return nil, fmt.Errorf("erro ao buscar negócio: %w", err)
	}

	return b, nil
}

// FindByPhone implementa business.Repository.FindByPhone
func (r *BusinessRepository) FindByPhone(ctx context.Context, phone string) (*business.Business, error) {
	b := &business.Business{}

	err := r.db.QueryRow(ctx,
		`SELECT id, name, phone, webhook_token_hash, status, created_at, updated_at
		 FROM businesses WHERE phone = $1`,
		phone).Scan(&b.ID, &b.Name, &b.Phone, &b.WebhookTokenHash, &b.Status, &b.CreatedAt, &b.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBusinessNotFound
		}
		return nil, fmt.Errorf("erro ao buscar negócio por telefone: %w", err)
	}

	return b, nil
}

// List implementa business.Repository.List
func (r *BusinessRepository) List(ctx context.Context, limit, offset int) ([]*business.Business, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, name, phone, webhook_token_hash, status, created_at, updated_at
		 FROM businesses ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar negócios: %w", err)
	}
	defer rows.Close()

	var businesses []*business.Business
	for rows.Next() {
		b := &business.Business{}
		if err := rows.Scan(&b.ID, &b.Name, &b.Phone, &b.WebhookTokenHash, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler negócio: %w", err)
		}
		businesses = append(businesses, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar negócios: %w", err)
	}

	return businesses, nil
}

// Update implementa business.Repository.Update
func (r *BusinessRepository) Update(ctx context.Context, b *business.Business) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE businesses
		 SET name = $1, phone = $2, webhook_token_hash = $3, status = $4, updated_at = $5
		 WHERE id = $6`,
		b.Name, b.Phone, b.WebhookTokenHash, b.Status, b.UpdatedAt, b.ID)

	if err != nil {
		return fmt.Errorf("erro ao atualizar negócio: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrBusinessNotFound
	}

	return nil
}

// UpdateStatus implementa business.Repository.UpdateStatus
func (r *BusinessRepository) UpdateStatus(ctx context.Context, id string, status business.Status) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE businesses SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id)

	if err != nil {
		return fmt.Errorf("erro ao atualizar status do negócio: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrBusinessNotFound
	}

	return nil
}

// Exists implementa business.Repository.Exists
func (r *BusinessRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool

	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM businesses WHERE id = $1 AND status = $2)`,
		id, business.StatusActive).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("erro ao verificar existência do negócio: %w", err)
	}

	return exists, nil
}
