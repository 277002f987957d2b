package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/petshopzn/storefront-gateway/internal/api/http/handlers"
	"github.com/petshopzn/storefront-gateway/internal/config"
	"github.com/petshopzn/storefront-gateway/internal/gateway"
	"github.com/petshopzn/storefront-gateway/internal/observability"
	"github.com/petshopzn/storefront-gateway/internal/session"
)

// fakeBackend is a minimal pet-shop API standing in for the upstream.
type fakeBackend struct {
	mux        *http.ServeMux
	failLogout bool
}

func newFakeBackend() *fakeBackend {
	fb := &fakeBackend{mux: http.NewServeMux()}

	fb.mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&creds)
		role := "Customer"
		switch {
		case strings.HasPrefix(creds.Email, "admin"):
			role = "Admin"
		case strings.HasPrefix(creds.Email, "staff"):
			role = "Staff"
		}
		if creds.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Email atau password salah"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": "tok-" + role,
			"user":  map[string]any{"id": 1, "name": "Tester", "email": creds.Email, "role": role},
		})
	})
	fb.mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		if fb.failLogout {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	fb.mux.HandleFunc("GET /categories", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"id": 1, "name": "Food"}},
		})
	})
	fb.mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"name":"Dog Food","price":50000,"stock":10,"categoryId":1}]`))
	})
	fb.mux.HandleFunc("GET /products/public", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"name":"Dog Food","price":50000,"stock":10,"categoryId":1}]`))
	})
	fb.mux.HandleFunc("GET /orders", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"total_price":50000,"status":"Selesai"},{"id":2,"total_price":20000,"status":"Pending"}]`))
	})
	fb.mux.HandleFunc("GET /users", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"role":"Admin"},{"id":2,"role":"Customer"},{"id":3,"role":"Customer"}]`))
	})
	fb.mux.HandleFunc("GET /cart", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	return fb
}

type testEnv struct {
	app     *fiber.App
	backend *fakeBackend
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	backend := newFakeBackend()
	srv := httptest.NewServer(backend.mux)
	t.Cleanup(srv.Close)

	logger := zap.NewNop()
	client := gateway.NewClient(config.BackendConfig{BaseURL: srv.URL, TimeoutSeconds: 5}, logger)
	cookies := session.NewCookieCodec(config.SessionConfig{
		CookieName:   "petshop_session",
		CookieSecret: "test-secret",
		TTLHours:     1,
	})
	sessions := session.NewManager(session.NewMemoryStore(), client, time.Hour, logger)

	app := fiber.New()
	RegisterMiddlewares(app, logger, observability.NewMetrics(), 10*time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:    handlers.NewHealthHandler("test", "dev", nil),
		Auth:      handlers.NewAuthHandler(sessions, cookies),
		Catalog:   handlers.NewCatalogHandler(client, sessions, cookies),
		Orders:    handlers.NewOrdersHandler(client, sessions, cookies),
		Dashboard: handlers.NewDashboardHandler(client, sessions, cookies),
		Sessions:  sessions,
		Cookies:   cookies,
	})
	return &testEnv{app: app, backend: backend}
}

// login authenticates against the test app and returns the session cookie.
func (e *testEnv) login(t *testing.T, email string) *http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"email":"`+email+`","password":"secret"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.app.Test(req)
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("login failed: %d %s", resp.StatusCode, body)
	}
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "petshop_session" && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatal("login response carries no session cookie")
	return nil
}

func (e *testEnv) request(t *testing.T, method, path string, cookie *http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := e.app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func TestLoginRejectedWithBackendMessage(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"email":"admin@shop.id","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := env.app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Email atau password salah") {
		t.Fatalf("backend message missing from %s", body)
	}
}

func TestProtectedRouteWithoutSessionRedirectsToLogin(t *testing.T) {
	env := newTestEnv(t)
	resp := env.request(t, http.MethodGet, "/dashboard", nil)
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %s", loc)
	}
}

func TestPublicHomeAllowedWithoutSession(t *testing.T) {
	env := newTestEnv(t)
	resp := env.request(t, http.MethodGet, "/", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestCategoriesRoleGate(t *testing.T) {
	env := newTestEnv(t)

	adminCookie := env.login(t, "admin@shop.id")
	resp := env.request(t, http.MethodGet, "/categories", adminCookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin should reach categories, got %d", resp.StatusCode)
	}

	customerCookie := env.login(t, "dina@shop.id")
	resp = env.request(t, http.MethodGet, "/categories", customerCookie)
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("customer should be redirected, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/products" {
		t.Fatalf("expected redirect to /products, got %s", loc)
	}
}

func TestUnknownRouteFallback(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/no-such-page", nil)
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/login" {
		t.Fatalf("unauthenticated fallback should hit /login, got %d %s",
			resp.StatusCode, resp.Header.Get("Location"))
	}

	cookie := env.login(t, "dina@shop.id")
	resp = env.request(t, http.MethodGet, "/no-such-page", cookie)
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/products" {
		t.Fatalf("authenticated fallback should hit /products, got %d %s",
			resp.StatusCode, resp.Header.Get("Location"))
	}
}

func TestLogoutClearsSessionEvenWhenBackendFails(t *testing.T) {
	env := newTestEnv(t)
	env.backend.failLogout = true

	cookie := env.login(t, "dina@shop.id")

	resp := env.request(t, http.MethodPost, "/logout", cookie)
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/login" {
		t.Fatalf("logout should redirect to /login, got %d %s",
			resp.StatusCode, resp.Header.Get("Location"))
	}

	// The old cookie no longer resolves to a session.
	resp = env.request(t, http.MethodGet, "/dashboard", cookie)
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/login" {
		t.Fatalf("session should be gone after logout, got %d %s",
			resp.StatusCode, resp.Header.Get("Location"))
	}
}

func TestSessionEndpointMenuByRole(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/session", nil)
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `"Login"`) {
		t.Fatalf("guest menu should offer Login, got %s", body)
	}
	if strings.Contains(string(body), `"Categories"`) {
		t.Fatalf("guest menu must not offer Categories, got %s", body)
	}

	cookie := env.login(t, "admin@shop.id")
	resp = env.request(t, http.MethodGet, "/session", cookie)
	body, _ = io.ReadAll(resp.Body)
	for _, label := range []string{"Dashboard", "Categories", "Products", "Orders"} {
		if !strings.Contains(string(body), `"`+label+`"`) {
			t.Fatalf("admin menu missing %s: %s", label, body)
		}
	}
}

func TestDashboardAggregation(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t, "admin@shop.id")

	resp := env.request(t, http.MethodGet, "/dashboard", cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var payload struct {
		Data struct {
			Summary struct {
				TotalSales     float64 `json:"totalSales"`
				PendingOrders  int     `json:"pendingOrders"`
				TotalProducts  int     `json:"totalProducts"`
				TotalCustomers int     `json:"totalCustomers"`
			} `json:"summary"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// One completed order worth 50000, one pending, two customers in /users.
	if payload.Data.Summary.TotalSales != 50000 {
		t.Fatalf("expected total sales 50000, got %v", payload.Data.Summary.TotalSales)
	}
	if payload.Data.Summary.PendingOrders != 1 {
		t.Fatalf("expected 1 pending order, got %d", payload.Data.Summary.PendingOrders)
	}
	if payload.Data.Summary.TotalProducts != 1 {
		t.Fatalf("expected 1 product, got %d", payload.Data.Summary.TotalProducts)
	}
	if payload.Data.Summary.TotalCustomers != 2 {
		t.Fatalf("expected 2 customers, got %d", payload.Data.Summary.TotalCustomers)
	}
}

func TestCartRestrictedToCustomers(t *testing.T) {
	env := newTestEnv(t)

	adminCookie := env.login(t, "admin@shop.id")
	resp := env.request(t, http.MethodGet, "/cart", adminCookie)
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/products" {
		t.Fatalf("admin should be bounced from the cart, got %d %s",
			resp.StatusCode, resp.Header.Get("Location"))
	}

	customerCookie := env.login(t, "dina@shop.id")
	resp = env.request(t, http.MethodGet, "/cart", customerCookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("customer should reach the cart, got %d", resp.StatusCode)
	}
}

func TestStaleSessionDroppedOnUpstream401(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t, "dina@shop.id")

	// The backend now rejects every bearer token.
	env.backend.mux.HandleFunc("GET /orders/99", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "token expired"})
	})

	resp := env.request(t, http.MethodGet, "/orders/99", cookie)
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/login" {
		t.Fatalf("stale token should redirect to /login, got %d %s",
			resp.StatusCode, resp.Header.Get("Location"))
	}

	// The stored session is gone; the next navigation is unauthenticated.
	resp = env.request(t, http.MethodGet, "/dashboard", cookie)
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/login" {
		t.Fatalf("session should have been discarded, got %d %s",
			resp.StatusCode, resp.Header.Get("Location"))
	}
}
