package gateway

import (
	"context"
	"errors"
	"regexp"

	"github.com/petshopzn/storefront-gateway/internal/domain"
	apperrors "github.com/petshopzn/storefront-gateway/pkg/util"
)

var phonePattern = regexp.MustCompile(`^[0-9]{10,15}$`)

// customerRoleID is the backend's role id for self-registered customers.
const customerRoleID = 3

type authPayload struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Login exchanges credentials for a token+user pair. Failures carry the
// backend-supplied message when one exists, with a generic fallback.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	var payload authPayload
	if err := c.postJSON(ctx, "/auth/login", "", creds, &payload); err != nil {
		return nil, authError(err, "Login failed")
	}
	if payload.Token == "" || payload.User == nil {
		return nil, apperrors.NewAuthFailed("Login failed")
	}
	return &domain.Session{Token: payload.Token, User: payload.User}, nil
}

// Register validates the profile locally, then submits it. Validation failures
// never issue a network call.
func (c *Client) Register(ctx context.Context, reg domain.Registration) (*domain.Session, error) {
	if reg.Password != reg.PasswordConfirmation {
		return nil, apperrors.NewValidationError("Password do not match", nil)
	}
	if !phonePattern.MatchString(reg.Phone) {
		return nil, apperrors.NewValidationError("Please enter a valid phone number (10-15 digits)", nil)
	}
	if len(reg.RoleIDs) == 0 {
		reg.RoleIDs = []int{customerRoleID}
	}

	var payload authPayload
	if err := c.postJSON(ctx, "/auth/register", "", reg, &payload); err != nil {
		return nil, authError(err, "Registration failed")
	}
	if payload.Token == "" || payload.User == nil {
		return nil, apperrors.NewAuthFailed("Registration failed")
	}
	return &domain.Session{Token: payload.Token, User: payload.User}, nil
}

// Logout asks the backend to invalidate the token. Callers treat the result as
// advisory.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.postJSON(ctx, "/auth/logout", token, struct{}{}, nil)
}

// authError rewraps an upstream failure as an AuthError with an inline
// message, preserving the backend's text when it sent one.
func authError(err error, fallback string) error {
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) && domainErr.Message != "" && domainErr.Code != "INTERNAL_ERROR" {
		msg := domainErr.Message
		if msg == "backend request failed" || msg == "unauthorized" {
			msg = fallback
		}
		return apperrors.NewAuthFailed(msg)
	}
	return apperrors.NewAuthFailed(fallback)
}
