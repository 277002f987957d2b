package domain

// Category groups products in the catalog.
type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Product is a catalog entry as the backend serves it.
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Description string  `json:"description,omitempty"`
	CategoryID  int     `json:"categoryId"`
	Image       string  `json:"image,omitempty"`
}

// LowStockThreshold marks products the admin dashboard flags for restock.
const LowStockThreshold = 5
