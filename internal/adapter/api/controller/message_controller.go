package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pedidozap/internal/adapter/api/dto"
	"github.com/hugohenrick/pedidozap/internal/adapter/repository"
	"github.com/hugohenrick/pedidozap/internal/conversation"
	"github.com/hugohenrick/pedidozap/internal/domain/business"
	"github.com/hugohenrick/pedidozap/pkg/logger"
)

// processTimeout limita o processamento assíncrono de uma mensagem
const processTimeout = 2 * time.Minute

// MessageController recebe mensagens normalizadas do webhook de chat,
// autentica pelo token do business e despacha para o serviço de conversação
type MessageController struct {
	businessRepository business.Repository
	conversations      *conversation.Service
	logger             logger.Logger
}

// NewMessageController cria uma nova instância de MessageController
func NewMessageController(businessRepository business.Repository, conversations *conversation.Service, log logger.Logger) *MessageController {
	return &MessageController{
		businessRepository: businessRepository,
		conversations:      conversations,
		logger:             log,
	}
}

// Receive processa uma mensagem entregue pelo webhook. A resposta é 202:
// o processamento acontece em segundo plano e as respostas ao usuário
// seguem pelo transporte de chat.
func (c *MessageController) Receive(ctx *gin.Context) {
	var request dto.WebhookMessageRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	b, err := c.businessRepository.FindByID(ctx, request.BusinessID)
	if err != nil {
		if errors.Is(err, repository.ErrBusinessNotFound) {
			ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Negócio não encontrado", ""))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao autenticar mensagem", err.Error()))
		return
	}

	if err := b.CheckWebhookToken(request.Token); err != nil {
		c.logger.Warn("webhook token rejected", "business_id", request.BusinessID)
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Token inválido", ""))
		return
	}

	if !b.IsActive() {
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(http.StatusForbidden, "Negócio inativo", ""))
		return
	}

	msg := request.ToMessage()

	// Processamento desacoplado da requisição HTTP
	go func() {
		pctx, cancel := context.WithTimeout(context.Background(), processTimeout)
		defer cancel()

		if err := c.conversations.HandleMessage(pctx, msg); err != nil {
			c.logger.Error("message processing failed", "business_id", msg.BusinessID, "chat_id", msg.ChatID, "error", err)
		}
	}()

	ctx.JSON(http.StatusAccepted, dto.NewSuccessResponse("Mensagem recebida", nil))
}
