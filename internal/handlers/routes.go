package handlers

import (
	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Health     *HealthHandler
	Auth       *AuthHandler
	Categories *CategoryHandler
	Suppliers  *SupplierHandler
	Products   *ProductHandler
	Inventory  *InventoryHandler
	Orders     *OrderHandler
}

// Register mounts the API under /api. requireAuth guards products, inventory,
// orders and /auth/me; limit wraps auth, products and inventory.
func Register(e *echo.Echo, h Handlers, requireAuth, limit echo.MiddlewareFunc) {
	api := e.Group("/api")

	api.GET("/health", h.Health.Check)

	auth := api.Group("/auth")
	auth.POST("/register", h.Auth.Register, limit)
	auth.POST("/signin", h.Auth.Signin, limit)
	auth.GET("/me", h.Auth.GetCurrentUser, requireAuth)

	categories := api.Group("/categories")
	categories.GET("", h.Categories.List)
	categories.GET("/with-products", h.Categories.ListWithProducts)
	categories.GET("/:id", h.Categories.Get)
	categories.POST("", h.Categories.Create)
	categories.PUT("/:id", h.Categories.Update)
	categories.DELETE("/:id", h.Categories.Delete)

	suppliers := api.Group("/suppliers")
	suppliers.GET("", h.Suppliers.List)
	suppliers.GET("/with-products", h.Suppliers.ListWithProducts)
	suppliers.GET("/:id", h.Suppliers.Get)
	suppliers.POST("", h.Suppliers.Create)
	suppliers.PUT("/:id", h.Suppliers.Update)
	suppliers.DELETE("/:id", h.Suppliers.Delete)

	products := api.Group("/products", requireAuth, limit)
	products.GET("", h.Products.List)
	products.GET("/:id", h.Products.Get)
	products.GET("/category/:categoryId", h.Products.ListByCategory)
	products.GET("/sku/:sku", h.Products.GetBySKU)
	products.POST("", h.Products.Create)
	products.PUT("/:id", h.Products.Update)
	products.DELETE("/:id", h.Products.Delete)

	inventory := api.Group("/inventory", requireAuth, limit)
	inventory.GET("", h.Inventory.List)
	inventory.GET("/low-stock", h.Inventory.LowStock)
	inventory.GET("/product/:productId", h.Inventory.GetByProduct)
	inventory.GET("/:id", h.Inventory.Get)
	inventory.POST("", h.Inventory.Create)
	inventory.PUT("/update-stock/:productId", h.Inventory.UpdateStock)
	inventory.PUT("/:id", h.Inventory.Update)
	inventory.DELETE("/:id", h.Inventory.Delete)

	orders := api.Group("/orders", requireAuth)
	orders.GET("", h.Orders.List)
	orders.GET("/number/:orderNumber", h.Orders.GetByNumber)
	orders.GET("/status/:status", h.Orders.ListByStatus)
	orders.GET("/:id", h.Orders.Get)
	orders.POST("", h.Orders.Create)
	orders.PUT("/:id", h.Orders.Update)
	orders.PUT("/:id/status", h.Orders.UpdateStatus)
	orders.DELETE("/:id", h.Orders.Delete)
}
