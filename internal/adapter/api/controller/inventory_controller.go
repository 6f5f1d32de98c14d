package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pedidozap/internal/adapter/api/dto"
	"github.com/hugohenrick/pedidozap/internal/adapter/repository"
	"github.com/hugohenrick/pedidozap/internal/domain/inventory"
	"github.com/hugohenrick/pedidozap/internal/matching"
	"github.com/hugohenrick/pedidozap/pkg/business"
)

// InventoryController gerencia as requisições do catálogo de itens.
// Toda mutação invalida o snapshot em memória usado pelo matching.
type InventoryController struct {
	inventoryRepository inventory.Repository
	snapshot            *matching.SnapshotCache
}

// NewInventoryController cria uma nova instância de InventoryController
func NewInventoryController(inventoryRepository inventory.Repository, snapshot *matching.SnapshotCache) *InventoryController {
	return &InventoryController{
		inventoryRepository: inventoryRepository,
		snapshot:            snapshot,
	}
}

// Create cria um novo item no catálogo
func (c *InventoryController) Create(ctx *gin.Context) {
	businessID := business.GetBusinessID(ctx)

	var request dto.InventoryItemRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	item, err := inventory.NewItem(businessID, request.Name, request.Price, inventory.NormalizeType(request.Type), request.StockCount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Dados inválidos", err.Error()))
		return
	}

	if err := c.inventoryRepository.Create(ctx, item); err != nil {
		if errors.Is(err, repository.ErrItemDuplicateName) {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "Item já existe", "Um item com este nome já está cadastrado"))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao criar item", err.Error()))
		return
	}

	c.snapshot.Invalidate(businessID)
	ctx.JSON(http.StatusCreated, dto.ToInventoryItemResponse(item))
}

// Get busca um item pelo ID
func (c *InventoryController) Get(ctx *gin.Context) {
	businessID := business.GetBusinessID(ctx)
	id := ctx.Param("id")

	item, err := c.inventoryRepository.FindByID(ctx, businessID, id)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Item não encontrado", ""))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao buscar item", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInventoryItemResponse(item))
}

// List lista o catálogo do negócio
func (c *InventoryController) List(ctx *gin.Context) {
	businessID := business.GetBusinessID(ctx)

	items, err := c.inventoryRepository.List(ctx, businessID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao listar itens", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInventoryListResponse(items))
}

// Update atualiza um item do catálogo
func (c *InventoryController) Update(ctx *gin.Context) {
	businessID := business.GetBusinessID(ctx)
	id := ctx.Param("id")

	var request dto.InventoryItemRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	item, err := c.inventoryRepository.FindByID(ctx, businessID, id)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Item não encontrado", ""))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao buscar item", err.Error()))
		return
	}

	item.Name = request.Name
	item.Price = request.Price
	item.Type = inventory.NormalizeType(request.Type)
	item.StockCount = request.StockCount
	item.UpdatedAt = time.Now()

	if err := c.inventoryRepository.Update(ctx, item); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao atualizar item", err.Error()))
		return
	}

	c.snapshot.Invalidate(businessID)
	ctx.JSON(http.StatusOK, dto.ToInventoryItemResponse(item))
}

// Delete remove um item do catálogo
func (c *InventoryController) Delete(ctx *gin.Context) {
	businessID := business.GetBusinessID(ctx)
	id := ctx.Param("id")

	if err := c.inventoryRepository.Delete(ctx, businessID, id); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Item não encontrado", ""))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao remover item", err.Error()))
		return
	}

	c.snapshot.Invalidate(businessID)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Item removido com sucesso", nil))
}
