package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/acodelab/backend/internal/app/models/dto"
	"github.com/acodelab/backend/internal/app/services"
	"github.com/acodelab/backend/internal/middleware"
	"github.com/acodelab/backend/internal/pkg/helpers"
)

// StoreController handles the PCon store
type StoreController struct {
	storeService *services.StoreService
	logger       zerolog.Logger
}

// NewStoreController creates a new StoreController
func NewStoreController(storeService *services.StoreService, logger zerolog.Logger) *StoreController {
	return &StoreController{storeService: storeService, logger: logger}
}

// ListItems returns the active store catalog
// @Summary List store items
// @Tags store
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.StoreItemListResponse}
// @Router /store/items [get]
func (c *StoreController) ListItems(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	items, total, err := c.storeService.ListItems(ctx.Request.Context(), offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.StoreItemListResponse{
		Items:      items,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, ""))
}

// GetItem returns a single store item
// @Summary Get a store item
// @Tags store
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} dto.APIResponse{data=models.StoreItem}
// @Failure 404 {object} dto.ErrorResponse "Item not found"
// @Router /store/items/{id} [get]
func (c *StoreController) GetItem(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	item, err := c.storeService.GetItem(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(item, ""))
}

// Purchase spends PCon points on a store item
// @Summary Purchase an item
// @Description Debits the user's PCon balance; unique items can be owned only once
// @Tags store
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PurchaseRequest true "Item and quantity"
// @Success 200 {object} dto.APIResponse{data=dto.PurchaseResponse}
// @Failure 402 {object} dto.ErrorResponse "Insufficient PCon balance"
// @Failure 403 {object} dto.ErrorResponse "Rank too low for this item"
// @Failure 409 {object} dto.ErrorResponse "Unique item already owned"
// @Router /store/purchase [post]
func (c *StoreController) Purchase(ctx *gin.Context) {
	var req dto.PurchaseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	actor := middleware.GetActor(ctx)
	resp, err := c.storeService.Purchase(ctx.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Purchase complete"))
}

// PurchaseHistory returns the user's past purchases
// @Summary List purchase history
// @Tags store
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Purchase}
// @Router /store/purchases [get]
func (c *StoreController) PurchaseHistory(ctx *gin.Context) {
	actor := middleware.GetActor(ctx)
	purchases, err := c.storeService.PurchaseHistory(ctx.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(purchases, ""))
}

// Inventory returns the user's owned items
// @Summary List inventory
// @Tags store
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.InventoryResponse}
// @Router /store/inventory [get]
func (c *StoreController) Inventory(ctx *gin.Context) {
	actor := middleware.GetActor(ctx)
	inventory, err := c.storeService.Inventory(ctx.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.InventoryResponse{Inventory: inventory}, ""))
}
