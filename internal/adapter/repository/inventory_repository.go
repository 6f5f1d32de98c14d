package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hugohenrick/pedidozap/internal/domain/inventory"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Erros específicos do repositório
var (
	ErrItemNotFound      = errors.New("item não encontrado")
	ErrItemDuplicateName = errors.New("item com mesmo nome já existe")
)

// InventoryRepository implementa a interface inventory.Repository
type InventoryRepository struct {
	db *pgxpool.Pool
}

// NewInventoryRepository cria uma nova instância de InventoryRepository
func NewInventoryRepository(db *pgxpool.Pool) inventory.Repository {
	return &InventoryRepository{
		db: db,
	}
}

// Create implementa inventory.Repository.Create
func (r *InventoryRepository) Create(ctx context.Context, item *inventory.Item) error {
	exists, err := r.ExistsByName(ctx, item.BusinessID, item.Name)
	if err != nil {
		return fmt.Errorf("erro ao verificar existência do item: %w", err)
	}
	if exists {
		return ErrItemDuplicateName
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO inventory_items (
			id, business_id, name, price, type, stock_count, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		item.ID, item.BusinessID, item.Name, item.Price, item.Type,
		item.StockCount, item.CreatedAt, item.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrItemDuplicateName
		}
		return fmt.Errorf("erro ao criar item: %w", err)
	}

	return nil
}

// FindByID implementa inventory.Repository.FindByID
func (r *InventoryRepository) FindByID(ctx context.Context, businessID, id string) (*inventory.Item, error) {
	item := &inventory.Item{}

	err := r.db.QueryRow(ctx,
		`SELECT id, business_id, name, price, type, stock_count, created_at, updated_at
		 FROM inventory_items WHERE business_id = $1 AND id = $2`,
		businessID, id).Scan(&item.ID, &item.BusinessID, &item.Name, &item.Price,
		&item.Type, &item.StockCount, &item.CreatedAt, &item.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("erro ao buscar item: %w", err)
	}

	return item, nil
}

// List implementa inventory.Repository.List
func (r *InventoryRepository) List(ctx context.Context, businessID string) ([]inventory.Item, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, business_id, name, price, type, stock_count, created_at, updated_at
		 FROM inventory_items WHERE business_id = $1 ORDER BY name`,
		businessID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar itens: %w", err)
	}
	defer rows.Close()

	var items []inventory.Item
	for rows.Next() {
		var item inventory.Item
		if err := rows.Scan(&item.ID, &item.BusinessID, &item.Name, &item.Price,
			&item.Type, &item.StockCount, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar itens: %w", err)
	}

	return items, nil
}

// Update implementa inventory.Repository.Update
func (r *InventoryRepository) Update(ctx context.Context, item *inventory.Item) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE inventory_items
		 SET name = $1, price = $2, type = $3, stock_count = $4, updated_at = $5
		 WHERE business_id = $6 AND id = $7`,
		item.Name, item.Price, item.Type, item.StockCount, item.UpdatedAt,
		item.BusinessID, item.ID)

	if err != nil {
		return fmt.Errorf("erro ao atualizar item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}

	return nil
}

// Delete implementa inventory.Repository.Delete
func (r *InventoryRepository) Delete(ctx context.Context, businessID, id string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM inventory_items WHERE business_id = $1 AND id = $2`,
		businessID, id)

	if err != nil {
		return fmt.Errorf("erro ao remover item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}

	return nil
}

// ExistsByName implementa inventory.Repository.ExistsByName
func (r *InventoryRepository) ExistsByName(ctx context.Context, businessID, name string) (bool, error) {
	var exists bool

	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM inventory_items
			WHERE business_id = $1 AND LOWER(name) = LOWER($2)
		)`,
		businessID, name).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("erro ao verificar nome do item: %w", err)
	}

	return exists, nil
}

// DecrementStock implementa inventory.Repository.DecrementStock.
// Itens sem controle de estoque (stock_count nulo) não são alterados;
// o abate nunca deixa o estoque negativo.
func (r *InventoryRepository) DecrementStock(ctx context.Context, businessID, id string, qty int) error {
	if qty <= 0 {
		return nil
	}

	_, err := r.db.Exec(ctx,
		`UPDATE inventory_items
		 SET stock_count = GREATEST(stock_count - $1, 0), updated_at = NOW()
		 WHERE business_id = $2 AND id = $3 AND stock_count IS NOT NULL`,
		qty, businessID, id)

	if err != nil {
		return fmt.Errorf("erro ao abater estoque: %w", err)
	}

	return nil
}
