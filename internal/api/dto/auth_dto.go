package dto

import (
	"github.com/petshopzn/storefront-gateway/internal/domain"
	"github.com/petshopzn/storefront-gateway/internal/nav"
)

// LoginRequest payload for POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest payload for POST /register.
type RegisterRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Phone                string `json:"phone"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	RoleIDs              []int  `json:"roleIds"`
}

// SessionResponse describes the current session for the view layer.
type SessionResponse struct {
	User *domain.User `json:"user"`
	Menu []nav.Entry  `json:"menu"`
}
