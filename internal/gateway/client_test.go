package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/petshopzn/storefront-gateway/internal/domain"
	apperrors "github.com/petshopzn/storefront-gateway/pkg/util"
)

func TestEnvelopeAndRawResponsesAccepted(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"raw array", `[{"id":1,"name":"Food"},{"id":2,"name":"Toys"}]`},
		{"enveloped array", `{"data":[{"id":1,"name":"Food"},{"id":2,"name":"Toys"}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			categories, err := newTestClient(srv.URL).Categories(context.Background(), "tok")
			if err != nil {
				t.Fatalf("categories: %v", err)
			}
			if len(categories) != 2 || categories[0].Name != "Food" {
				t.Fatalf("unexpected result %+v", categories)
			}
		})
	}
}

func TestEnvelopeObjectResponse(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"raw object", `{"id":3,"name":"Leash","price":25000,"stock":4,"categoryId":2}`},
		{"enveloped object", `{"data":{"id":3,"name":"Leash","price":25000,"stock":4,"categoryId":2}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			product, err := newTestClient(srv.URL).Product(context.Background(), "tok", 3)
			if err != nil {
				t.Fatalf("product: %v", err)
			}
			if product.Name != "Leash" || product.Price != 25000 {
				t.Fatalf("unexpected product %+v", product)
			}
		})
	}
}

func TestBearerHeaderAttachment(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()
	client := newTestClient(srv.URL)

	if _, err := client.Products(context.Background(), "tok-xyz"); err != nil {
		t.Fatalf("products: %v", err)
	}
	if gotAuth != "Bearer tok-xyz" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}

	// Absent token: the request still goes out, just without the header.
	if _, err := client.Products(context.Background(), ""); err != nil {
		t.Fatalf("products: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestUpstream401MappedToUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "token expired"})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Orders(context.Background(), "stale")
	if err == nil {
		t.Fatal("expected error")
	}
	if !apperrors.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized mapping, got %+v", apperrors.ToDomainError(err))
	}
}

func TestCheckoutAcceptsWrappedOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cart/checkout" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"order":{"id":11,"total_price":120000,"status":"Pending"}}`))
	}))
	defer srv.Close()

	order, err := newTestClient(srv.URL).CheckoutCart(context.Background(), "tok", domain.Checkout{
		PaymentMethod: "cod", ShippingAddress: "Jl. Anggrek 5",
	})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if order.ID != 11 || order.Status != domain.OrderStatusPending {
		t.Fatalf("unexpected order %+v", order)
	}
}

func TestMultipartProductPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("expected multipart payload: %v", err)
		}
		if r.FormValue("name") != "Cat Tower" || r.FormValue("categoryId") != "2" {
			t.Fatalf("unexpected form values %v", r.MultipartForm.Value)
		}
		file, header, err := r.FormFile("image")
		if err != nil {
			t.Fatalf("image missing: %v", err)
		}
		defer file.Close()
		if header.Filename != "tower.jpg" {
			t.Fatalf("unexpected filename %s", header.Filename)
		}
		_, _ = w.Write([]byte(`{"id":5,"name":"Cat Tower"}`))
	}))
	defer srv.Close()

	product, err := newTestClient(srv.URL).CreateProduct(context.Background(), "tok", ProductForm{
		Name:       "Cat Tower",
		Price:      "350000",
		Stock:      "3",
		CategoryID: "2",
		Image:      &ImageFile{Filename: "tower.jpg", Content: strings.NewReader("jpegdata")},
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if product.ID != 5 {
		t.Fatalf("unexpected product %+v", product)
	}
}
