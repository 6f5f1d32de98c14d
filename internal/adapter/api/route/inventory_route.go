package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pedidozap/internal/adapter/api/controller"
	"github.com/hugohenrick/pedidozap/pkg/auth"
)

// RegisterInventoryRoutes registra as rotas do catálogo de itens
func RegisterInventoryRoutes(r *gin.RouterGroup, inventoryController *controller.InventoryController) {
	items := r.Group("/inventory")
	items.Use(auth.JWTAuthMiddleware())
	{
		items.POST("", inventoryController.Create)
		items.GET("", inventoryController.List)
		items.GET("/:id", inventoryController.Get)
		items.PUT("/:id", inventoryController.Update)
		items.DELETE("/:id", inventoryController.Delete)
	}
}
