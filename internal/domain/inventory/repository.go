package inventory

import (
	"context"
)

// Repository define a interface para operações de repositório do catálogo
type Repository interface {
	// Create cria um novo item no catálogo
	Create(ctx context.Context, item *Item) error

	// FindByID busca um item pelo ID dentro de um business
	FindByID(ctx context.Context, businessID, id string) (*Item, error)

	// List lista todos os itens do catálogo de um business
	List(ctx context.Context, businessID string) ([]Item, error)

	// Update atualiza um item existente
	Update(ctx context.Context, item *Item) error

	// Delete remove um item do catálogo
	Delete(ctx context.Context, businessID, id string) error

	// ExistsByName verifica, sem diferenciar maiúsculas, se já existe item com o nome
	ExistsByName(ctx context.Context, businessID, name string) (bool, error)

	// DecrementStock abate a quantidade do estoque de um item do tipo product
	DecrementStock(ctx context.Context, businessID, id string, qty int) error
}
