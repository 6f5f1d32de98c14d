package repository

import (
	"context"
	"errors"

	"github.com/hugohenrick/pedidozap/internal/domain/business"
	pkgbusiness "github.com/hugohenrick/pedidozap/pkg/business"
)

// BusinessValidator implementa a interface para validação de business
type BusinessValidator struct {
	repository business.Repository
}

// NewBusinessValidator cria uma nova instância de BusinessValidator
func NewBusinessValidator(repository business.Repository) pkgbusiness.Validator {
	return &BusinessValidator{
		repository: repository,
	}
}

// ValidateBusiness verifica se um business existe e está ativo
func (v *BusinessValidator) ValidateBusiness(businessID string) (bool, error) {
	if businessID == "" {
		return false, pkgbusiness.ErrBusinessNotSpecified
	}

	b, err := v.repository.FindByID(context.Background(), businessID)
	if err != nil {
		if errors.Is(err, ErrBusinessNotFound) {
			return false, nil
		}
		return false, err
	}

	return b.Status == business.StatusActive, nil
}
