package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pedidozap/internal/adapter/api/dto"
	"github.com/hugohenrick/pedidozap/internal/adapter/repository"
	"github.com/hugohenrick/pedidozap/internal/domain/business"
	"github.com/hugohenrick/pedidozap/pkg/auth"
	"github.com/hugohenrick/pedidozap/pkg/logger"
)

// AuthController gerencia a autenticação da API administrativa.
// As credenciais de um negócio são o seu ID e o token de webhook.
type AuthController struct {
	businessRepository business.Repository
	jwtService         *auth.JWTService
	logger             logger.Logger
}

// NewAuthController cria uma nova instância de AuthController
func NewAuthController(businessRepository business.Repository, jwtService *auth.JWTService, log logger.Logger) *AuthController {
	return &AuthController{
		businessRepository: businessRepository,
		jwtService:         jwtService,
		logger:             log,
	}
}

// Login autentica um negócio e emite um token JWT
func (c *AuthController) Login(ctx *gin.Context) {
	var request dto.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	b, err := c.businessRepository.FindByID(ctx, request.BusinessID)
	if err != nil {
		if errors.Is(err, repository.ErrBusinessNotFound) {
			ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Credenciais inválidas", ""))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao autenticar", err.Error()))
		return
	}

	if err := b.CheckWebhookToken(request.Token); err != nil {
		c.logger.Warn("login rejected", "business_id", request.BusinessID)
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Credenciais inválidas", ""))
		return
	}

	if !b.IsActive() {
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(http.StatusForbidden, "Negócio inativo", ""))
		return
	}

	token, err := c.jwtService.GenerateToken(b.ID, b.Name, "owner")
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao gerar token", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(c.jwtService.Expiration().Seconds()),
		BusinessID:  b.ID,
		Name:        b.Name,
	})
}
