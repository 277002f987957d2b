package gateway

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/petshopzn/storefront-gateway/internal/domain"
	apperrors "github.com/petshopzn/storefront-gateway/pkg/util"
)

// Categories lists all categories.
func (c *Client) Categories(ctx context.Context, token string) ([]domain.Category, error) {
	var out []domain.Category
	if err := c.get(ctx, "/categories", token, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Category fetches one category.
func (c *Client) Category(ctx context.Context, token string, id int) (*domain.Category, error) {
	var out domain.Category
	if err := c.get(ctx, idPath("/categories", id), token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCategory adds a category.
func (c *Client) CreateCategory(ctx context.Context, token string, cat domain.Category) (*domain.Category, error) {
	var out domain.Category
	if err := c.postJSON(ctx, "/categories", token, cat, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCategory replaces a category.
func (c *Client) UpdateCategory(ctx context.Context, token string, id int, cat domain.Category) (*domain.Category, error) {
	var out domain.Category
	if err := c.putJSON(ctx, idPath("/categories", id), token, cat, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, token string, id int) error {
	return c.delete(ctx, idPath("/categories", id), token)
}

// ImageFile is an uploaded product image forwarded to the backend.
type ImageFile struct {
	Filename string
	Content  io.Reader
}

// ProductForm is the multipart payload for product create/update. Numeric
// fields stay strings; the form is passed through, not interpreted.
type ProductForm struct {
	Name        string
	Price       string
	Stock       string
	Description string
	CategoryID  string
	Image       *ImageFile
}

func (f ProductForm) encode() (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fields := map[string]string{
		"name":        f.Name,
		"price":       f.Price,
		"stock":       f.Stock,
		"description": f.Description,
		"categoryId":  f.CategoryID,
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, "", err
		}
	}
	if f.Image != nil {
		part, err := writer.CreateFormFile("image", f.Image.Filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, f.Image.Content); err != nil {
			return nil, "", err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return body, writer.FormDataContentType(), nil
}

// PublicProducts lists the catalog without credentials, for the public home
// page.
func (c *Client) PublicProducts(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	if err := c.get(ctx, "/products/public", "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Products lists the catalog.
func (c *Client) Products(ctx context.Context, token string) ([]domain.Product, error) {
	var out []domain.Product
	if err := c.get(ctx, "/products", token, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Product fetches one product.
func (c *Client) Product(ctx context.Context, token string, id int) (*domain.Product, error) {
	var out domain.Product
	if err := c.get(ctx, idPath("/products", id), token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProduct submits a multipart product payload.
func (c *Client) CreateProduct(ctx context.Context, token string, form ProductForm) (*domain.Product, error) {
	body, contentType, err := form.encode()
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	var out domain.Product
	if err := c.do(ctx, http.MethodPost, "/products", token, body, contentType, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProduct replaces a product via multipart payload.
func (c *Client) UpdateProduct(ctx context.Context, token string, id int, form ProductForm) (*domain.Product, error) {
	body, contentType, err := form.encode()
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	var out domain.Product
	if err := c.do(ctx, http.MethodPut, idPath("/products", id), token, body, contentType, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, token string, id int) error {
	return c.delete(ctx, idPath("/products", id), token)
}
