package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pedidozap/internal/adapter/api/controller"
	"github.com/hugohenrick/pedidozap/pkg/auth"
)

// RegisterBusinessRoutes registra as rotas do módulo de negócios.
// A criação é pública; as demais operações exigem token JWT.
func RegisterBusinessRoutes(r *gin.RouterGroup, businessController *controller.BusinessController) {
	businesses := r.Group("/businesses")
	{
		businesses.POST("", businessController.Create)
	}

	protected := r.Group("/businesses")
	protected.Use(auth.JWTAuthMiddleware())
	{
		protected.GET("", businessController.List)
		protected.GET("/:id", businessController.Get)
		protected.PUT("/:id", businessController.Update)
		protected.PATCH("/:id/status", businessController.UpdateStatus)
	}
}
