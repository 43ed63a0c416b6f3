package handlers

import (
	"fmt"
	"net/http"

	"github.com/SivakumaranJathurshan/CourseWork/internal/models"
	"github.com/SivakumaranJathurshan/CourseWork/internal/services"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

type UpdateStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

func (h *OrderHandler) List(c echo.Context) error {
	details, err := withDetails(c)
	if err != nil {
		return err
	}

	list := h.orderService.GetAll
	if details {
		list = h.orderService.GetOrdersWithItems
	}
	orders, err := list(c.Request().Context())
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	order, err := h.orderService.GetByID(c.Request().Context(), id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) GetByNumber(c echo.Context) error {
	order, err := h.orderService.GetOrderByNumber(c.Request().Context(), c.Param("orderNumber"))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) ListByStatus(c echo.Context) error {
	status, err := models.ParseOrderStatus(c.Param("status"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	orders, err := h.orderService.GetOrdersByStatus(c.Request().Context(), status)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Create(c echo.Context) error {
	var input services.CreateOrderInput
	if err := bind(c, &input); err != nil {
		return err
	}

	order, err := h.orderService.CreateOrder(c.Request().Context(), input)
	if err != nil {
		return serviceError(err)
	}
	return created(c, fmt.Sprintf("/api/orders/%d", order.ID), order)
}

func (h *OrderHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var input services.UpdateOrderInput
	if err := bind(c, &input); err != nil {
		return err
	}

	order, err := h.orderService.Update(c.Request().Context(), id, input)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order status")
	}

	ok, err := h.orderService.UpdateOrderStatus(c.Request().Context(), id, req.Status)
	if err := found(ok, err, services.ErrOrderNotFound); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Order status updated successfully",
	})
}

func (h *OrderHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	ok, err := h.orderService.Delete(c.Request().Context(), id)
	if err := found(ok, err, services.ErrOrderNotFound); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
