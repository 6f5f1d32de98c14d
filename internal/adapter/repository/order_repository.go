package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hugohenrick/pedidozap/internal/domain/order"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrOrderNotFound ocorre quando o pedido não existe no business
var ErrOrderNotFound = errors.New("pedido não encontrado")

// OrderRepository implementa a interface order.Repository.
// Os itens casados são guardados como JSONB na coluna matched_items.
type OrderRepository struct {
	db *pgxpool.Pool
}

// NewOrderRepository cria uma nova instância de OrderRepository
func NewOrderRepository(db *pgxpool.Pool) order.Repository {
	return &OrderRepository{
		db: db,
	}
}

// Create implementa order.Repository.Create
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	matchedItems, err := json.Marshal(o.MatchedItems)
	if err != nil {
		return fmt.Errorf("erro ao converter itens para JSON: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO orders (
			id, business_id, chat_id, raw_text, matched_items, total_revenue,
			matching_confidence, matching_status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		o.ID, o.BusinessID, o.ChatID, o.RawText, matchedItems, o.TotalRevenue,
		o.Confidence, o.Status, o.CreatedAt, o.UpdatedAt)

	if err != nil {
		return fmt.Errorf("erro ao criar pedido: %w", err)
	}

	return nil
}

// FindByID implementa order.Repository.FindByID
func (r *OrderRepository) FindByID(ctx context.Context, businessID, id string) (*order.Order, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, business_id, chat_id, raw_text, matched_items, total_revenue,
		        matching_confidence, matching_status, created_at, updated_at
		 FROM orders WHERE business_id = $1 AND id = $2`,
		businessID, id)

	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("erro ao buscar pedido: %w", err)
	}

	return o, nil
}

// FindLatestPending implementa order.Repository.FindLatestPending
func (r *OrderRepository) FindLatestPending(ctx context.Context, businessID string) (*order.Order, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, business_id, chat_id, raw_text, matched_items, total_revenue,
		        matching_confidence, matching_status, created_at, updated_at
		 FROM orders
		 WHERE business_id = $1 AND matching_status IN ($2, $3)
		 ORDER BY created_at DESC LIMIT 1`,
		businessID, order.StatusNeedsClarification, order.StatusNeedsConfirmation)

	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNoPendingOrder
		}
		return nil, fmt.Errorf("erro ao buscar pedido pendente: %w", err)
	}

	return o, nil
}

// List implementa order.Repository.List
func (r *OrderRepository) List(ctx context.Context, businessID string, status order.Status, limit, offset int) ([]*order.Order, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, business_id, chat_id, raw_text, matched_items, total_revenue,
	                 matching_confidence, matching_status, created_at, updated_at
	          FROM orders WHERE business_id = $1`
	args := []interface{}{businessID}

	if status != "" {
		query += ` AND matching_status = $2 ORDER BY created_at DESC LIMIT $3 OFFSET $4`
		args = append(args, status, limit, offset)
	} else {
		query += ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar pedidos: %w", err)
	}
	defer rows.Close()

	var orders []*order.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler pedido: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar pedidos: %w", err)
	}

	return orders, nil
}

// Update implementa order.Repository.Update
func (r *OrderRepository) Update(ctx context.Context, o *order.Order) error {
	matchedItems, err := json.Marshal(o.MatchedItems)
	if err != nil {
		return fmt.Errorf("erro ao converter itens para JSON: %w", err)
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE orders
		 SET matched_items = $1, total_revenue = $2, matching_confidence = $3,
		     matching_status = $4, updated_at = $5
		 WHERE business_id = $6 AND id = $7`,
		matchedItems, o.TotalRevenue, o.Confidence, o.Status, o.UpdatedAt,
		o.BusinessID, o.ID)

	if err != nil {
		return fmt.Errorf("erro ao atualizar pedido: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// scanOrder lê uma linha de orders, decodificando matched_items
func scanOrder(row pgx.Row) (*order.Order, error) {
	o := &order.Order{}
	var matchedItems []byte

	err := row.Scan(&o.ID, &o.BusinessID, &o.ChatID, &o.RawText, &matchedItems,
		&o.TotalRevenue, &o.Confidence, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if len(matchedItems) > 0 {
		if err := json.Unmarshal(matchedItems, &o.MatchedItems); err != nil {
			return nil, fmt.Errorf("erro ao decodificar itens do pedido: %w", err)
		}
	}

	return o, nil
}
