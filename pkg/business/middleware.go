package business

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Validator define a interface para validação de business
type Validator interface {
	ValidateBusiness(businessID string) (bool, error)
}

// Middleware cria um middleware gin que exige e valida o cabeçalho business-id
func Middleware(validator Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if isExcludedPath(c.FullPath()) {
			c.Next()
			return
		}

		// Obter business ID do cabeçalho
		businessID := c.GetHeader("business-id")
		if businessID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"code":    http.StatusBadRequest,
				"message": "Business ID não fornecido",
				"details": "O cabeçalho 'business-id' é obrigatório",
			})
			return
		}

		valid, err := validator.ValidateBusiness(businessID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"code":    http.StatusInternalServerError,
				"message": "Erro ao validar business",
				"details": err.Error(),
			})
			return
		}

		if !valid {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code":    http.StatusForbidden,
				"message": "Business inválido",
				"details": "O business informado não existe ou está inativo",
			})
			return
		}

		// Armazenar o business ID no contexto
		c.Set("business_id", businessID)
		c.Request = c.Request.WithContext(SetBusinessIDContext(c.Request.Context(), businessID))

		c.Next()
	}
}

// isExcludedPath verifica se o caminho está excluído da validação de business
func isExcludedPath(path string) bool {
	excludedPrefixes := []string{
		"/api/v1/health",
		"/api/v1/auth",
		"/api/v1/businesses",
		"/api/v1/webhook",
	}

	for _, prefix := range excludedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	return false
}
