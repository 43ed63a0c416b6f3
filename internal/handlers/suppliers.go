package handlers

import (
	"fmt"
	"net/http"

	"github.com/SivakumaranJathurshan/CourseWork/internal/services"

	"github.com/labstack/echo/v4"
)

type SupplierHandler struct {
	supplierService *services.SupplierService
}

func NewSupplierHandler(supplierService *services.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

func (h *SupplierHandler) List(c echo.Context) error {
	suppliers, err := h.supplierService.GetAll(c.Request().Context())
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, suppliers)
}

func (h *SupplierHandler) ListWithProducts(c echo.Context) error {
	suppliers, err := h.supplierService.GetWithProducts(c.Request().Context())
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, suppliers)
}

func (h *SupplierHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	supplier, err := h.supplierService.GetByID(c.Request().Context(), id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, supplier)
}

func (h *SupplierHandler) Create(c echo.Context) error {
	var input services.SupplierInput
	if err := bind(c, &input); err != nil {
		return err
	}

	supplier, err := h.supplierService.Create(c.Request().Context(), input)
	if err != nil {
		return serviceError(err)
	}
	return created(c, fmt.Sprintf("/api/suppliers/%d", supplier.ID), supplier)
}

func (h *SupplierHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var input services.SupplierInput
	if err := bind(c, &input); err != nil {
		return err
	}

	supplier, err := h.supplierService.Update(c.Request().Context(), id, input)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, supplier)
}

func (h *SupplierHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	ok, err := h.supplierService.Delete(c.Request().Context(), id)
	if err := found(ok, err, services.ErrSupplierNotFound); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
