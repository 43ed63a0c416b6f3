package handlers

import (
	"fmt"
	"net/http"

	"github.com/SivakumaranJathurshan/CourseWork/internal/services"

	"github.com/labstack/echo/v4"
)

type InventoryHandler struct {
	inventoryService *services.InventoryService
}

func NewInventoryHandler(inventoryService *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// UpdateStockRequest carries a signed quantity delta.
type UpdateStockRequest struct {
	Quantity int `json:"quantity"`
}

func (h *InventoryHandler) List(c echo.Context) error {
	details, err := withDetails(c)
	if err != nil {
		return err
	}

	list := h.inventoryService.GetAll
	if details {
		list = h.inventoryService.GetWithProducts
	}
	items, err := list(c.Request().Context())
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *InventoryHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	item, err := h.inventoryService.GetByID(c.Request().Context(), id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) GetByProduct(c echo.Context) error {
	productID, err := parseID(c, "productId")
	if err != nil {
		return err
	}

	item, err := h.inventoryService.GetByProductID(c.Request().Context(), productID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) LowStock(c echo.Context) error {
	items, err := h.inventoryService.GetLowStockItems(c.Request().Context())
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *InventoryHandler) Create(c echo.Context) error {
	var input services.CreateInventoryItemInput
	if err := bind(c, &input); err != nil {
		return err
	}

	item, err := h.inventoryService.Create(c.Request().Context(), input)
	if err != nil {
		return serviceError(err)
	}
	return created(c, fmt.Sprintf("/api/inventory/%d", item.ID), item)
}

func (h *InventoryHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var input services.UpdateInventoryItemInput
	if err := bind(c, &input); err != nil {
		return err
	}

	item, err := h.inventoryService.Update(c.Request().Context(), id, input)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) UpdateStock(c echo.Context) error {
	productID, err := parseID(c, "productId")
	if err != nil {
		return err
	}

	var req UpdateStockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ok, err := h.inventoryService.UpdateStock(c.Request().Context(), productID, req.Quantity)
	if err := found(ok, err, services.ErrInventoryNotFound); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Stock updated successfully",
	})
}

func (h *InventoryHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	ok, err := h.inventoryService.Delete(c.Request().Context(), id)
	if err := found(ok, err, services.ErrInventoryNotFound); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
