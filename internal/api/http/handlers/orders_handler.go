package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/petshopzn/storefront-gateway/internal/api/dto"
	"github.com/petshopzn/storefront-gateway/internal/domain"
	"github.com/petshopzn/storefront-gateway/internal/gateway"
	"github.com/petshopzn/storefront-gateway/internal/session"
)

// OrdersHandler serves cart, checkout and order views.
type OrdersHandler struct {
	sessionCleaner
	backend *gateway.Client
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(backend *gateway.Client, sessions *session.Manager, cookies *session.CookieCodec) *OrdersHandler {
	return &OrdersHandler{
		sessionCleaner: sessionCleaner{sessions: sessions, cookies: cookies},
		backend:        backend,
	}
}

// ListCart handles GET /cart.
func (h *OrdersHandler) ListCart(c *fiber.Ctx) error {
	items, err := h.backend.Cart(c.UserContext(), token(c))
	if err != nil {
		return h.upstream(c, err)
	}
	return c.JSON(fiber.Map{"data": items})
}

// AddCartItem handles POST /cart.
func (h *OrdersHandler) AddCartItem(c *fiber.Ctx) error {
	var req dto.CartAddRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.ProductID <= 0 || req.Quantity <= 0 {
		return fiber.NewError(http.StatusBadRequest, "productId and quantity required")
	}
	item, err := h.backend.AddCartItem(c.UserContext(), token(c), req.ProductID, req.Quantity)
	if err != nil {
		return h.upstream(c, err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": item})
}

// UpdateCartItem handles PUT /cart/:id.
func (h *OrdersHandler) UpdateCartItem(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.CartUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Quantity <= 0 {
		return fiber.NewError(http.StatusBadRequest, "quantity must be positive")
	}
	item, err := h.backend.UpdateCartItem(c.UserContext(), token(c), id, req.Quantity)
	if err != nil {
		return h.upstream(c, err)
	}
	return c.JSON(fiber.Map{"data": item})
}

// DeleteCartItem handles DELETE /cart/:id.
func (h *OrdersHandler) DeleteCartItem(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.backend.DeleteCartItem(c.UserContext(), token(c), id); err != nil {
		return h.upstream(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// Checkout handles POST /cart/checkout.
func (h *OrdersHandler) Checkout(c *fiber.Ctx) error {
	var req dto.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.ShippingAddress == "" {
		return fiber.NewError(http.StatusBadRequest, "shipping address required")
	}
	order, err := h.backend.CheckoutCart(c.UserContext(), token(c), domain.Checkout{
		PaymentMethod:   req.PaymentMethod,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		return h.upstream(c, err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"order": order}})
}

// ListOrders handles GET /orders. The backend scopes the list by token:
// customers see their own orders, admin and staff see all of them.
func (h *OrdersHandler) ListOrders(c *fiber.Ctx) error {
	orders, err := h.backend.Orders(c.UserContext(), token(c))
	if err != nil {
		return h.upstream(c, err)
	}
	view := "management"
	if session.FromContext(c).Role() == domain.RoleCustomer {
		view = "history"
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"view": view, "orders": orders}})
}

// GetOrder handles GET /orders/:id: the order plus its line items.
func (h *OrdersHandler) GetOrder(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	ctx := c.UserContext()
	tok := token(c)
	order, err := h.backend.Order(ctx, tok, id)
	if err != nil {
		return h.upstream(c, err)
	}
	items, err := h.backend.OrderItems(ctx, tok, id)
	if err != nil {
		return h.upstream(c, err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"order": order, "items": items}})
}

// UpdateOrder handles PUT /orders/:id, admin and staff status changes.
func (h *OrdersHandler) UpdateOrder(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.OrderUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Status == "" {
		return fiber.NewError(http.StatusBadRequest, "status required")
	}
	order, err := h.backend.UpdateOrder(c.UserContext(), token(c), id, map[string]any{"status": req.Status})
	if err != nil {
		return h.upstream(c, err)
	}
	return c.JSON(fiber.Map{"data": order})
}

// DeleteOrder handles DELETE /orders/:id.
func (h *OrdersHandler) DeleteOrder(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.backend.DeleteOrder(c.UserContext(), token(c), id); err != nil {
		return h.upstream(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}
