package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pedidozap/internal/adapter/api/dto"
	"github.com/hugohenrick/pedidozap/internal/adapter/repository"
	"github.com/hugohenrick/pedidozap/internal/domain/business"
)

// BusinessController gerencia as requisições relacionadas aos negócios
type BusinessController struct {
	businessRepository business.Repository
}

// NewBusinessController cria uma nova instância de BusinessController
func NewBusinessController(businessRepository business.Repository) *BusinessController {
	return &BusinessController{
		businessRepository: businessRepository,
	}
}

// Create cria um novo negócio
func (c *BusinessController) Create(ctx *gin.Context) {
	var request dto.BusinessRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	b, err := business.NewBusiness(request.Name, request.Phone, request.WebhookToken)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Dados inválidos", err.Error()))
		return
	}

	if err := c.businessRepository.Create(ctx, b); err != nil {
		if errors.Is(err, repository.ErrBusinessDuplicateKey) {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "Negócio já existe", "Um negócio com este telefone já está cadastrado"))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao criar negócio", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToBusinessResponse(b))
}

// Get busca um negócio pelo ID
func (c *BusinessController) Get(ctx *gin.Context) {
	id := ctx.Param("id")

	b, err := c.businessRepository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBusinessNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Negócio não encontrado", ""))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao buscar negócio", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBusinessResponse(b))
}

// List lista os negócios com paginação
func (c *BusinessController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "20"))
	pagination := dto.GetPagination(page, pageSize)

	businesses, err := c.businessRepository.List(ctx, pagination.PageSize, pagination.Offset())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao listar negócios", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBusinessListResponse(businesses))
}

// Update atualiza os dados de um negócio
func (c *BusinessController) Update(ctx *gin.Context) {
	id := ctx.Param("id")

	var request dto.BusinessRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	b, err := c.businessRepository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBusinessNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Negócio não encontrado", ""))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao buscar negócio", err.Error()))
		return
	}

	b.Name = request.Name
	b.Phone = request.Phone
	if err := b.SetWebhookToken(request.WebhookToken); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Token inválido", err.Error()))
		return
	}
	b.Touch()

	if err := c.businessRepository.Update(ctx, b); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao atualizar negócio", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBusinessResponse(b))
}

// UpdateStatus ativa ou desativa um negócio
func (c *BusinessController) UpdateStatus(ctx *gin.Context) {
	id := ctx.Param("id")

	var request dto.BusinessStatusRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	if err := c.businessRepository.UpdateStatus(ctx, id, business.Status(request.Status)); err != nil {
		if errors.Is(err, repository.ErrBusinessNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Negócio não encontrado", ""))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao atualizar status", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Status atualizado com sucesso", nil))
}
