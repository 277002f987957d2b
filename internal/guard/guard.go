// Package guard is the sole authorization decision point for navigation.
// Views and the menu composer consume its output and never re-check roles.
package guard

import (
	"github.com/gofiber/fiber/v2"

	"github.com/petshopzn/storefront-gateway/internal/domain"
	"github.com/petshopzn/storefront-gateway/internal/session"
)

const (
	// LoginPath receives every unauthenticated navigation attempt.
	LoginPath = "/login"
	// LandingPath is the authenticated landing page, also the target for
	// role mismatches and unknown authenticated routes.
	LandingPath = "/products"
)

// Decision is the terminal outcome of one navigation attempt.
type Decision struct {
	Allowed  bool
	Redirect string
}

// Evaluate applies the navigation rules in order: no session redirects to
// login; an unrestricted route admits any session; a restricted route admits
// only its listed roles and bounces the rest to the landing page.
func Evaluate(access domain.RouteAccess, sess *domain.Session) Decision {
	if !sess.Authenticated() {
		return Decision{Redirect: LoginPath}
	}
	if access.Permits(sess.User.Role) {
		return Decision{Allowed: true}
	}
	return Decision{Redirect: LandingPath}
}

// Require enforces the decision for a route: allowed requests continue,
// denied ones get a redirect with nothing else rendered.
func Require(access domain.RouteAccess) fiber.Handler {
	return func(c *fiber.Ctx) error {
		decision := Evaluate(access, session.FromContext(c))
		if !decision.Allowed {
			return c.Redirect(decision.Redirect, fiber.StatusFound)
		}
		return c.Next()
	}
}

// Fallback handles routes with no match: authenticated clients land on the
// landing page, everyone else on login.
func Fallback() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if session.FromContext(c).Authenticated() {
			return c.Redirect(LandingPath, fiber.StatusFound)
		}
		return c.Redirect(LoginPath, fiber.StatusFound)
	}
}
