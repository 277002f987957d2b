package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/petshopzn/storefront-gateway/internal/domain"
	apperrors "github.com/petshopzn/storefront-gateway/pkg/util"
)

// Cart lists the current customer's cart items.
func (c *Client) Cart(ctx context.Context, token string) ([]domain.CartItem, error) {
	var out []domain.CartItem
	if err := c.get(ctx, "/cart", token, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddCartItem puts a product into the cart.
func (c *Client) AddCartItem(ctx context.Context, token string, productID, quantity int) (*domain.CartItem, error) {
	payload := map[string]int{"productId": productID, "quantity": quantity}
	var out domain.CartItem
	if err := c.postJSON(ctx, "/cart", token, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCartItem changes a cart line's quantity.
func (c *Client) UpdateCartItem(ctx context.Context, token string, id, quantity int) (*domain.CartItem, error) {
	payload := map[string]int{"quantity": quantity}
	var out domain.CartItem
	if err := c.putJSON(ctx, idPath("/cart", id), token, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCartItem removes a cart line.
func (c *Client) DeleteCartItem(ctx context.Context, token string, id int) error {
	return c.delete(ctx, idPath("/cart", id), token)
}

// CheckoutCart converts the cart into an order. The backend answers either
// {order: {...}} or the order itself.
func (c *Client) CheckoutCart(ctx context.Context, token string, checkout domain.Checkout) (*domain.Order, error) {
	var raw json.RawMessage
	if err := c.postJSON(ctx, "/cart/checkout", token, checkout, &raw); err != nil {
		return nil, err
	}
	var wrapped struct {
		Order *domain.Order `json:"order"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Order != nil {
		return wrapped.Order, nil
	}
	var order domain.Order
	if err := json.Unmarshal(raw, &order); err != nil || order.ID == 0 {
		return nil, apperrors.NewUpstreamError("unexpected checkout response", 0, err)
	}
	return &order, nil
}

// Orders lists orders visible to the current token.
func (c *Client) Orders(ctx context.Context, token string) ([]domain.Order, error) {
	var out []domain.Order
	if err := c.get(ctx, "/orders", token, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Order fetches one order.
func (c *Client) Order(ctx context.Context, token string, id int) (*domain.Order, error) {
	var out domain.Order
	if err := c.get(ctx, idPath("/orders", id), token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateOrder patches an order, typically its status.
func (c *Client) UpdateOrder(ctx context.Context, token string, id int, fields map[string]any) (*domain.Order, error) {
	var out domain.Order
	if err := c.putJSON(ctx, idPath("/orders", id), token, fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteOrder removes an order.
func (c *Client) DeleteOrder(ctx context.Context, token string, id int) error {
	return c.delete(ctx, idPath("/orders", id), token)
}

// OrderItems lists the lines of one order.
func (c *Client) OrderItems(ctx context.Context, token string, orderID int) ([]domain.OrderItem, error) {
	var out []domain.OrderItem
	path := fmt.Sprintf("/order_items?orderId=%d", orderID)
	if err := c.get(ctx, path, token, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Users lists backend users; the admin dashboard counts customers from it.
func (c *Client) Users(ctx context.Context, token string) ([]domain.User, error) {
	var out []domain.User
	if err := c.get(ctx, "/users", token, &out); err != nil {
		return nil, err
	}
	return out, nil
}
