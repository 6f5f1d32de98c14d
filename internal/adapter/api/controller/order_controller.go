package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pedidozap/internal/adapter/api/dto"
	"github.com/hugohenrick/pedidozap/internal/adapter/repository"
	"github.com/hugohenrick/pedidozap/internal/domain/order"
	"github.com/hugohenrick/pedidozap/pkg/business"
)

// OrderController gerencia as consultas de pedidos
type OrderController struct {
	orderRepository order.Repository
}

// NewOrderController cria uma nova instância de OrderController
func NewOrderController(orderRepository order.Repository) *OrderController {
	return &OrderController{
		orderRepository: orderRepository,
	}
}

// Get busca um pedido pelo ID
func (c *OrderController) Get(ctx *gin.Context) {
	businessID := business.GetBusinessID(ctx)
	id := ctx.Param("id")

	o, err := c.orderRepository.FindByID(ctx, businessID, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Pedido não encontrado", ""))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao buscar pedido", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOrderResponse(o))
}

// List lista os pedidos do negócio, opcionalmente filtrando por status
func (c *OrderController) List(ctx *gin.Context) {
	businessID := business.GetBusinessID(ctx)

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "20"))
	pagination := dto.GetPagination(page, pageSize)

	status := order.Status(ctx.Query("status"))

	orders, err := c.orderRepository.List(ctx, businessID, status, pagination.PageSize, pagination.Offset())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao listar pedidos", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOrderListResponse(orders))
}
