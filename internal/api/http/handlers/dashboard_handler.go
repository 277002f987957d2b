package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/petshopzn/storefront-gateway/internal/api/dto"
	"github.com/petshopzn/storefront-gateway/internal/domain"
	"github.com/petshopzn/storefront-gateway/internal/gateway"
	"github.com/petshopzn/storefront-gateway/internal/session"
)

// recentOrderCount limits the customer dashboard's order list.
const recentOrderCount = 5

// DashboardHandler serves the role-specific dashboard aggregates.
type DashboardHandler struct {
	sessionCleaner
	backend *gateway.Client
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(backend *gateway.Client, sessions *session.Manager, cookies *session.CookieCodec) *DashboardHandler {
	return &DashboardHandler{
		sessionCleaner: sessionCleaner{sessions: sessions, cookies: cookies},
		backend:        backend,
	}
}

// Show handles GET /dashboard, picking the variant by role the way the
// storefront did.
func (h *DashboardHandler) Show(c *fiber.Ctx) error {
	if session.FromContext(c).Role() == domain.RoleCustomer {
		return h.customer(c)
	}
	return h.admin(c)
}

func (h *DashboardHandler) admin(c *fiber.Ctx) error {
	ctx := c.UserContext()
	tok := token(c)

	orders, err := h.backend.Orders(ctx, tok)
	if err != nil {
		return h.upstream(c, err)
	}
	products, err := h.backend.Products(ctx, tok)
	if err != nil {
		return h.upstream(c, err)
	}
	users, err := h.backend.Users(ctx, tok)
	if err != nil {
		return h.upstream(c, err)
	}
	categories, err := h.backend.Categories(ctx, tok)
	if err != nil {
		return h.upstream(c, err)
	}

	summary := dto.AdminDashboard{
		TotalProducts:   len(products),
		TotalCategories: len(categories),
	}
	for _, o := range orders {
		switch o.Status {
		case domain.OrderStatusCompleted:
			summary.TotalSales += o.TotalPrice
		case domain.OrderStatusPending:
			summary.PendingOrders++
		}
	}
	for _, p := range products {
		if p.Stock < domain.LowStockThreshold {
			summary.LowStock++
		}
	}
	for _, u := range users {
		if u.Role == domain.RoleCustomer {
			summary.TotalCustomers++
		}
	}

	return c.JSON(fiber.Map{"data": fiber.Map{"view": "admin", "summary": summary}})
}

func (h *DashboardHandler) customer(c *fiber.Ctx) error {
	orders, err := h.backend.Orders(c.UserContext(), token(c))
	if err != nil {
		return h.upstream(c, err)
	}

	summary := dto.CustomerDashboard{TotalOrders: len(orders)}
	for _, o := range orders {
		switch o.Status {
		case domain.OrderStatusCompleted:
			summary.TotalSpent += o.TotalPrice
		case domain.OrderStatusPending:
			summary.PendingOrders++
		}
	}

	recent := orders
	if len(recent) > recentOrderCount {
		recent = recent[:recentOrderCount]
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"view":    "customer",
		"summary": summary,
		"recent":  recent,
	}})
}
