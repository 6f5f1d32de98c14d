package order

import (
	"context"
	"errors"
)

// ErrNoPendingOrder ocorre quando não há pedido aguardando esclarecimento
// ou confirmação para o business
var ErrNoPendingOrder = errors.New("nenhum pedido pendente encontrado")

// Repository define a interface para operações de repositório de pedidos
type Repository interface {
	// Create cria um novo pedido
	Create(ctx context.Context, o *Order) error

	// FindByID busca um pedido pelo ID dentro de um business
	FindByID(ctx context.Context, businessID, id string) (*Order, error)

	// FindLatestPending busca o pedido mais recente do business ainda em
	// needs_clarification ou needs_confirmation
	FindLatestPending(ctx context.Context, businessID string) (*Order, error)

	// List lista os pedidos de um business, opcionalmente filtrando por status
	List(ctx context.Context, businessID string, status Status, limit, offset int) ([]*Order, error)

	// Update atualiza um pedido existente
	Update(ctx context.Context, o *Order) error
}
