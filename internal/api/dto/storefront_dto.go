package dto

// CategoryRequest payload for category create/update.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CartAddRequest payload for POST /cart.
type CartAddRequest struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// CartUpdateRequest payload for PUT /cart/:id.
type CartUpdateRequest struct {
	Quantity int `json:"quantity"`
}

// CheckoutRequest payload for POST /cart/checkout.
type CheckoutRequest struct {
	PaymentMethod   string `json:"payment_method"`
	ShippingAddress string `json:"shipping_address"`
}

// OrderUpdateRequest payload for PUT /orders/:id.
type OrderUpdateRequest struct {
	Status string `json:"status"`
}

// AdminDashboard aggregates storefront totals for admin and staff cards.
type AdminDashboard struct {
	TotalSales      float64 `json:"totalSales"`
	PendingOrders   int     `json:"pendingOrders"`
	TotalProducts   int     `json:"totalProducts"`
	LowStock        int     `json:"lowStock"`
	TotalCustomers  int     `json:"totalCustomers"`
	TotalCategories int     `json:"totalCategories"`
}

// CustomerDashboard aggregates one customer's order history.
type CustomerDashboard struct {
	TotalSpent    float64 `json:"totalSpent"`
	PendingOrders int     `json:"pendingOrders"`
	TotalOrders   int     `json:"totalOrders"`
}
