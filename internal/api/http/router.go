package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/petshopzn/storefront-gateway/internal/api/http/handlers"
	"github.com/petshopzn/storefront-gateway/internal/domain"
	"github.com/petshopzn/storefront-gateway/internal/guard"
	"github.com/petshopzn/storefront-gateway/internal/session"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Catalog   *handlers.CatalogHandler
	Orders    *handlers.OrdersHandler
	Dashboard *handlers.DashboardHandler
	Sessions  *session.Manager
	Cookies   *session.CookieCodec
}

// RegisterRoutes wires HTTP routes. Role gating lives here and nowhere else:
// every protected route passes through the guard with its access rule, the
// same table the storefront router carried.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Sessions.Middleware(cfg.Cookies))

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	// Public routes, no session requirement.
	app.Get("/", cfg.Catalog.Home)
	app.Post("/login", cfg.Auth.Login)
	app.Post("/register", cfg.Auth.Register)
	app.Post("/logout", cfg.Auth.Logout)
	app.Get("/session", cfg.Auth.Session)

	anyRole := guard.Require(domain.Unrestricted())
	adminStaff := guard.Require(domain.RestrictedTo(domain.RoleAdmin, domain.RoleStaff))
	customerOnly := guard.Require(domain.RestrictedTo(domain.RoleCustomer))

	app.Get("/dashboard", anyRole, cfg.Dashboard.Show)

	categories := app.Group("/categories", adminStaff)
	categories.Get("/", cfg.Catalog.ListCategories)
	categories.Post("/", cfg.Catalog.CreateCategory)
	categories.Get("/:id", cfg.Catalog.GetCategory)
	categories.Put("/:id", cfg.Catalog.UpdateCategory)
	categories.Delete("/:id", cfg.Catalog.DeleteCategory)

	products := app.Group("/products")
	products.Get("/", anyRole, cfg.Catalog.ListProducts)
	products.Post("/", adminStaff, cfg.Catalog.CreateProduct)
	products.Get("/:id", anyRole, cfg.Catalog.GetProduct)
	products.Put("/:id", adminStaff, cfg.Catalog.UpdateProduct)
	products.Delete("/:id", adminStaff, cfg.Catalog.DeleteProduct)

	cart := app.Group("/cart", customerOnly)
	cart.Get("/", cfg.Orders.ListCart)
	cart.Post("/", cfg.Orders.AddCartItem)
	cart.Post("/checkout", cfg.Orders.Checkout)
	cart.Put("/:id", cfg.Orders.UpdateCartItem)
	cart.Delete("/:id", cfg.Orders.DeleteCartItem)

	orders := app.Group("/orders")
	orders.Get("/", anyRole, cfg.Orders.ListOrders)
	orders.Get("/:id", anyRole, cfg.Orders.GetOrder)
	orders.Put("/:id", adminStaff, cfg.Orders.UpdateOrder)
	orders.Delete("/:id", adminStaff, cfg.Orders.DeleteOrder)

	// Unknown routes always redirect, per session state.
	app.Use(guard.Fallback())
}
