// Package nav derives the visible menu from the current role. It is advisory
// UI state only; the guard remains the enforcement point.
package nav

import "github.com/petshopzn/storefront-gateway/internal/domain"

// Entry is one menu item.
type Entry struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// VisibleEntries returns the ordered menu for a role. The empty role yields
// the guest menu.
func VisibleEntries(role domain.Role) []Entry {
	entries := []Entry{{Label: "Home", Path: "/"}}

	switch role {
	case domain.RoleAdmin:
		entries = append(entries,
			Entry{Label: "Dashboard", Path: "/dashboard"},
			Entry{Label: "Categories", Path: "/categories"},
			Entry{Label: "Products", Path: "/products"},
			Entry{Label: "Orders", Path: "/orders"},
		)
	case domain.RoleStaff:
		entries = append(entries,
			Entry{Label: "Dashboard", Path: "/dashboard"},
			Entry{Label: "Products", Path: "/products"},
			Entry{Label: "Orders", Path: "/orders"},
		)
	case domain.RoleCustomer:
		entries = append(entries,
			Entry{Label: "Products", Path: "/products"},
			Entry{Label: "Cart", Path: "/cart"},
			Entry{Label: "Orders", Path: "/orders"},
		)
	default:
		entries = append(entries,
			Entry{Label: "Register", Path: "/register"},
			Entry{Label: "Login", Path: "/login"},
		)
	}
	return entries
}
