package business

import (
	"context"
)

// Repository define a interface para operações de repositório de businesses
type Repository interface {
	// Create cria um novo business
	Create(ctx context.Context, b *Business) error

	// FindByID busca um business pelo ID
	FindByID(ctx context.Context, id string) (*Business, error)

	// FindByPhone busca um business pelo telefone
	FindByPhone(ctx context.Context, phone string) (*Business, error)

	// List lista os businesses com paginação
	List(ctx context.Context, limit, offset int) ([]*Business, error)

	// Update atualiza os dados de um business existente
	Update(ctx context.Context, b *Business) error

	// UpdateStatus atualiza o status de um business
	UpdateStatus(ctx context.Context, id string, status Status) error

	// Exists verifica se um business existe e está ativo
	Exists(ctx context.Context, id string) (bool, error)
}
