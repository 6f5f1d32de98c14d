package business

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmptyName    = errors.New("nome não pode ser vazio")
	ErrEmptyPhone   = errors.New("telefone não pode ser vazio")
	ErrEmptyToken   = errors.New("token de webhook não pode ser vazio")
	ErrInvalidToken = errors.New("token de webhook inválido")
)

// Status representa o estado do business
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Business representa um negócio que vende por grupos de chat.
// O token de webhook autentica as mensagens entregues pela camada de transporte.
type Business struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Phone            string    `json:"phone"`
	WebhookTokenHash string    `json:"-"`
	Status           Status    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewBusiness cria um novo business com o token de webhook já com hash
func NewBusiness(name, phone, webhookToken string) (*Business, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, ErrEmptyPhone
	}

	now := time.Now()
	b := &Business{
		ID:        uuid.New().String(),
		Name:      name,
		Phone:     phone,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := b.SetWebhookToken(webhookToken); err != nil {
		return nil, err
	}

	return b, nil
}

// SetWebhookToken define o token de webhook, armazenando apenas o hash bcrypt
func (b *Business) SetWebhookToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrEmptyToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	b.WebhookTokenHash = string(hash)
	return nil
}

// CheckWebhookToken verifica se o token informado corresponde ao hash armazenado
func (b *Business) CheckWebhookToken(token string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(b.WebhookTokenHash), []byte(token)); err != nil {
		return ErrInvalidToken
	}
	return nil
}

// IsActive indica se o business está ativo
func (b *Business) IsActive() bool {
	return b.Status == StatusActive
}

// Touch atualiza o instante de modificação
func (b *Business) Touch() {
	b.UpdatedAt = time.Now()
}
