package router

import (
	"github.com/ecoharvest/backend/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
)

// CatalogRoutes registers the storefront catalog. Reads are public,
// mutations sit under /admin behind the admin middleware chain.
type CatalogRoutes struct {
	products   *handler.ProductHandler
	categories *handler.CategoryHandler
	adminAuth  []gin.HandlerFunc
}

// NewCatalogRoutes creates the catalog route registrar
func NewCatalogRoutes(products *handler.ProductHandler, categories *handler.CategoryHandler, adminAuth ...gin.HandlerFunc) *CatalogRoutes {
	return &CatalogRoutes{products: products, categories: categories, adminAuth: adminAuth}
}

// RegisterRoutes implements RouteRegistrar
func (r *CatalogRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/products", r.products.List)
	rg.GET("/products/:id", r.products.GetByID)
	rg.GET("/categories", r.categories.List)
	rg.GET("/categories/:id", r.categories.GetByID)
	rg.GET("/categories/:id/products", r.products.ListByCategory)

	admin := rg.Group("/admin", r.adminAuth...)
	admin.POST("/products", r.products.Create)
	admin.PUT("/products/:id", r.products.Update)
	admin.DELETE("/products/:id", r.products.Delete)
	admin.POST("/categories", r.categories.Create)
	admin.PUT("/categories/:id", r.categories.Update)
	admin.DELETE("/categories/:id", r.categories.Delete)
}

// CartRoutes registers the authenticated user's cart endpoints
type CartRoutes struct {
	cart *handler.CartHandler
	auth []gin.HandlerFunc
}

// NewCartRoutes creates the cart route registrar
func NewCartRoutes(cart *handler.CartHandler, auth ...gin.HandlerFunc) *CartRoutes {
	return &CartRoutes{cart: cart, auth: auth}
}

// RegisterRoutes implements RouteRegistrar
func (r *CartRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	cart := rg.Group("/cart", r.auth...)
	cart.GET("", r.cart.List)
	cart.POST("/items", r.cart.Add)
	cart.PUT("/items/:id", r.cart.UpdateQuantity)
	cart.DELETE("/items/:id", r.cart.Remove)
	cart.DELETE("", r.cart.Clear)
}

// OrderRoutes registers order placement for customers and order
// administration for back-office staff.
type OrderRoutes struct {
	orders    *handler.OrderHandler
	auth      []gin.HandlerFunc
	adminAuth []gin.HandlerFunc
}

// NewOrderRoutes creates the order route registrar
func NewOrderRoutes(orders *handler.OrderHandler, auth, adminAuth []gin.HandlerFunc) *OrderRoutes {
	return &OrderRoutes{orders: orders, auth: auth, adminAuth: adminAuth}
}

// RegisterRoutes implements RouteRegistrar
func (r *OrderRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders", r.auth...)
	orders.POST("", r.orders.Place)
	orders.GET("", r.orders.ListMine)
	orders.GET("/:id", r.orders.GetMine)
	orders.POST("/:id/cancel", r.orders.Cancel)

	admin := rg.Group("/admin/orders", r.adminAuth...)
	admin.GET("", r.orders.List)
	admin.GET("/:id", r.orders.GetByID)
	admin.PATCH("/:id/status", r.orders.UpdateStatus)
}

// InventoryRoutes registers the admin-only inventory endpoints
type InventoryRoutes struct {
	inventory *handler.InventoryHandler
	adminAuth []gin.HandlerFunc
}

// NewInventoryRoutes creates the inventory route registrar
func NewInventoryRoutes(inventory *handler.InventoryHandler, adminAuth ...gin.HandlerFunc) *InventoryRoutes {
	return &InventoryRoutes{inventory: inventory, adminAuth: adminAuth}
}

// RegisterRoutes implements RouteRegistrar
func (r *InventoryRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin/inventory", r.adminAuth...)
	admin.POST("/receipts", r.inventory.PostReceipt)
	admin.GET("/receipts", r.inventory.ListReceipts)
	admin.GET("/receipts/:id", r.inventory.GetReceipt)
	admin.GET("/products/:id/batches", r.inventory.ListBatches)
	admin.GET("/products/:id/stock", r.inventory.GetStock)
	admin.POST("/products/:id/sync", r.inventory.SyncProduct)
	admin.POST("/batches/:id/adjust", r.inventory.AdjustBatch)
}

// SystemRoutes registers the unauthenticated health endpoints
type SystemRoutes struct {
	system *handler.SystemHandler
}

// NewSystemRoutes creates the system route registrar
func NewSystemRoutes(system *handler.SystemHandler) *SystemRoutes {
	return &SystemRoutes{system: system}
}

// RegisterRoutes implements RouteRegistrar
func (r *SystemRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/system/health", r.system.Health)
	rg.GET("/system/ping", r.system.Ping)
}
