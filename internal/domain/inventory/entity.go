package inventory

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName     = errors.New("nome do item não pode ser vazio")
	ErrInvalidPrice  = errors.New("preço do item deve ser maior ou igual a zero")
	ErrInvalidType   = errors.New("tipo de item inválido")
	ErrDuplicateName = errors.New("já existe um item com este nome")
)

// ItemType define o tipo de item do catálogo
type ItemType string

const (
	// ItemTypeProduct é um produto físico com controle de estoque
	ItemTypeProduct ItemType = "product"
	// ItemTypeOther cobre serviços e itens sem estoque
	ItemTypeOther ItemType = "other"
)

// Item representa um item do catálogo de inventário de um business
type Item struct {
	ID         string    `json:"id"`
	BusinessID string    `json:"business_id"`
	Name       string    `json:"name"`
	Price      float64   `json:"price"`
	Type       ItemType  `json:"type"`
	StockCount *int      `json:"stock_count,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewItem cria um novo item de inventário
func NewItem(businessID, name string, price float64, itemType ItemType, stockCount *int) (*Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if price < 0 {
		return nil, ErrInvalidPrice
	}
	if itemType != ItemTypeProduct && itemType != ItemTypeOther {
		return nil, ErrInvalidType
	}

	now := time.Now()
	return &Item{
		ID:         uuid.New().String(),
		BusinessID: businessID,
		Name:       name,
		Price:      price,
		Type:       itemType,
		StockCount: stockCount,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// NormalizeType converte variações de texto livre para um ItemType válido.
// Aceita os sinônimos em inglês e português usados nas conversas.
func NormalizeType(raw string) ItemType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "other", "others", "service", "services", "outro", "outros", "serviço", "serviços", "servico", "servicos":
		return ItemTypeOther
	case "product", "products", "item", "items", "produto", "produtos":
		return ItemTypeProduct
	default:
		return ItemTypeProduct
	}
}
