package domain

import "time"

// Order statuses as the backend reports them.
const (
	OrderStatusPending    = "Pending"
	OrderStatusProcessing = "Diproses"
	OrderStatusCompleted  = "Selesai"
)

// CartItem is one product line in a customer's cart.
type CartItem struct {
	ID        int      `json:"id"`
	ProductID int      `json:"productId"`
	Quantity  int      `json:"quantity"`
	Product   *Product `json:"product,omitempty"`
}

// Order is a placed order as the backend serves it.
type Order struct {
	ID              int       `json:"id"`
	UserID          int       `json:"userId"`
	TotalPrice      float64   `json:"total_price"`
	Status          string    `json:"status"`
	PaymentMethod   string    `json:"payment_method,omitempty"`
	ShippingAddress string    `json:"shipping_address,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// OrderItem is one product line of a placed order.
type OrderItem struct {
	ID       int      `json:"id"`
	OrderID  int      `json:"orderId"`
	Quantity int      `json:"quantity"`
	Price    float64  `json:"price"`
	Product  *Product `json:"product,omitempty"`
}

// Checkout is the payload converting a cart into an order.
type Checkout struct {
	PaymentMethod   string `json:"payment_method"`
	ShippingAddress string `json:"shipping_address"`
}
