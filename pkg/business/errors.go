package business

import "errors"

// Erros comuns relacionados a operações de negócio (business)
var (
	// ErrBusinessNotSpecified ocorre quando um ID de business não é fornecido
	ErrBusinessNotSpecified = errors.New("business ID não especificado")

	// ErrBusinessNotFound ocorre quando um business não é encontrado
	ErrBusinessNotFound = errors.New("business não encontrado")

	// ErrBusinessNotActive ocorre quando um business não está com status ativo
	ErrBusinessNotActive = errors.New("business não está ativo")
)
