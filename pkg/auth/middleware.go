package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pedidozap/pkg/business"
)

// JWTAuthMiddleware cria um middleware para autenticação JWT das rotas de gestão
func JWTAuthMiddleware() gin.HandlerFunc {
	jwtService, err := NewJWTService()
	if err != nil {
		return func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"code":    http.StatusInternalServerError,
				"message": "Erro ao configurar autenticação",
				"details": "O serviço JWT não foi inicializado corretamente",
			})
		}
	}

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    http.StatusUnauthorized,
				"message": "Autenticação requerida",
				"details": "O cabeçalho Authorization não foi fornecido",
			})
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    http.StatusUnauthorized,
				"message": "Formato de token inválido",
				"details": "Use o formato 'Bearer <token>'",
			})
			return
		}

		claims, err := jwtService.ValidateToken(tokenParts[1])
		if err != nil {
			message := "Token inválido"
			if err == ErrExpiredToken {
				message = "Token expirado"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    http.StatusUnauthorized,
				"message": message,
				"details": err.Error(),
			})
			return
		}

		// Armazenar as claims no contexto
		c.Set("business_id", claims.BusinessID)
		c.Set("user_name", claims.Name)
		c.Set("user_role", claims.Role)
		c.Request = c.Request.WithContext(business.SetBusinessIDContext(c.Request.Context(), claims.BusinessID))

		c.Next()
	}
}
