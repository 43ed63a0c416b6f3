package handlers

import (
	"fmt"
	"net/http"

	"github.com/SivakumaranJathurshan/CourseWork/internal/services"

	"github.com/labstack/echo/v4"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func (h *ProductHandler) List(c echo.Context) error {
	details, err := withDetails(c)
	if err != nil {
		return err
	}

	list := h.productService.GetAll
	if details {
		list = h.productService.GetWithDetails
	}
	products, err := list(c.Request().Context())
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	product, err := h.productService.GetByID(c.Request().Context(), id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) ListByCategory(c echo.Context) error {
	categoryID, err := parseID(c, "categoryId")
	if err != nil {
		return err
	}

	products, err := h.productService.GetByCategory(c.Request().Context(), categoryID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetBySKU(c echo.Context) error {
	product, err := h.productService.GetBySKU(c.Request().Context(), c.Param("sku"))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Create(c echo.Context) error {
	var input services.ProductInput
	if err := bind(c, &input); err != nil {
		return err
	}

	product, err := h.productService.Create(c.Request().Context(), input)
	if err != nil {
		return serviceError(err)
	}
	return created(c, fmt.Sprintf("/api/products/%d", product.ID), product)
}

func (h *ProductHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var input services.ProductInput
	if err := bind(c, &input); err != nil {
		return err
	}

	product, err := h.productService.Update(c.Request().Context(), id, input)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	ok, err := h.productService.Delete(c.Request().Context(), id)
	if err := found(ok, err, services.ErrProductNotFound); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
