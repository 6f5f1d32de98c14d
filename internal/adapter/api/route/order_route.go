package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pedidozap/internal/adapter/api/controller"
	"github.com/hugohenrick/pedidozap/pkg/auth"
)

// RegisterOrderRoutes registra as rotas de consulta de pedidos
func RegisterOrderRoutes(r *gin.RouterGroup, orderController *controller.OrderController) {
	orders := r.Group("/orders")
	orders.Use(auth.JWTAuthMiddleware())
	{
		orders.GET("", orderController.List)
		orders.GET("/:id", orderController.Get)
	}
}
