package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pedidozap/internal/adapter/api/controller"
)

// RegisterMessageRoutes registra a rota do webhook de mensagens de chat.
// A autenticação é feita pelo token de webhook do próprio negócio.
func RegisterMessageRoutes(r *gin.RouterGroup, messageController *controller.MessageController) {
	webhook := r.Group("/webhook")
	{
		webhook.POST("/messages", messageController.Receive)
	}
}
