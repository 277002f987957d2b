package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/petshopzn/storefront-gateway/internal/api/dto"
	"github.com/petshopzn/storefront-gateway/internal/domain"
	"github.com/petshopzn/storefront-gateway/internal/gateway"
	"github.com/petshopzn/storefront-gateway/internal/session"
)

// homeProductCount limits the public home page to the newest products.
const homeProductCount = 4

// CatalogHandler serves home, categories and products views.
type CatalogHandler struct {
	sessionCleaner
	backend *gateway.Client
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(backend *gateway.Client, sessions *session.Manager, cookies *session.CookieCodec) *CatalogHandler {
	return &CatalogHandler{
		sessionCleaner: sessionCleaner{sessions: sessions, cookies: cookies},
		backend:        backend,
	}
}

// Home handles GET /: a public storefront teaser, no session required.
func (h *CatalogHandler) Home(c *fiber.Ctx) error {
	products, err := h.backend.PublicProducts(c.UserContext())
	if err != nil {
		return err
	}
	if len(products) > homeProductCount {
		products = products[:homeProductCount]
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"featured": products}})
}

// ListCategories handles GET /categories.
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.backend.Categories(c.UserContext(), token(c))
	if err != nil {
		return h.upstream(c, err)
	}
	return c.JSON(fiber.Map{"data": categories})
}

// GetCategory handles GET /categories/:id.
func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	category, err := h.backend.Category(c.UserContext(), token(c), id)
	if err != nil {
		return h.upstream(c, err)
	}
	return c.JSON(fiber.Map{"data": category})
}

// CreateCategory handles POST /categories.
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" {
		return fiber.NewError(http.StatusBadRequest, "name required")
	}
	category, err := h.backend.CreateCategory(c.UserContext(), token(c), domain.Category{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return h.upstream(c, err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": category})
}

// UpdateCategory handles PUT /categories/:id.
func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	category, err := h.backend.UpdateCategory(c.UserContext(), token(c), id, domain.Category{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return h.upstream(c, err)
	}
	return c.JSON(fiber.Map{"data": category})
}

// DeleteCategory handles DELETE /categories/:id.
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.backend.DeleteCategory(c.UserContext(), token(c), id); err != nil {
		return h.upstream(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListProducts handles GET /products, with the role variants the storefront
// had: customers get the catalog view, admin and staff the management view
// with categories alongside.
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	ctx := c.UserContext()
	tok := token(c)
	products, err := h.backend.Products(ctx, tok)
	if err != nil {
		return h.upstream(c, err)
	}

	if session.FromContext(c).Role() == domain.RoleCustomer {
		return c.JSON(fiber.Map{"data": fiber.Map{
			"view":     "catalog",
			"products": products,
		}})
	}

	categories, err := h.backend.Categories(ctx, tok)
	if err != nil {
		return h.upstream(c, err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"view":       "management",
		"products":   products,
		"categories": categories,
	}})
}

// GetProduct handles GET /products/:id.
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	product, err := h.backend.Product(c.UserContext(), token(c), id)
	if err != nil {
		return h.upstream(c, err)
	}
	return c.JSON(fiber.Map{"data": product})
}

// CreateProduct handles POST /products, forwarding the multipart payload.
func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	form, err := productForm(c)
	if err != nil {
		return err
	}
	product, err := h.backend.CreateProduct(c.UserContext(), token(c), form)
	if err != nil {
		return h.upstream(c, err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": product})
}

// UpdateProduct handles PUT /products/:id.
func (h *CatalogHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	form, err := productForm(c)
	if err != nil {
		return err
	}
	product, err := h.backend.UpdateProduct(c.UserContext(), token(c), id, form)
	if err != nil {
		return h.upstream(c, err)
	}
	return c.JSON(fiber.Map{"data": product})
}

// DeleteProduct handles DELETE /products/:id.
func (h *CatalogHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.backend.DeleteProduct(c.UserContext(), token(c), id); err != nil {
		return h.upstream(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func productForm(c *fiber.Ctx) (gateway.ProductForm, error) {
	form := gateway.ProductForm{
		Name:        c.FormValue("name"),
		Price:       c.FormValue("price"),
		Stock:       c.FormValue("stock"),
		Description: c.FormValue("description"),
		CategoryID:  c.FormValue("categoryId"),
	}
	if form.Name == "" {
		return form, fiber.NewError(http.StatusBadRequest, "name required")
	}

	header, err := c.FormFile("image")
	if err == nil && header != nil {
		file, err := header.Open()
		if err != nil {
			return form, fiber.NewError(http.StatusBadRequest, "unreadable image")
		}
		// Closed when the request finishes; the gateway streams it out.
		form.Image = &gateway.ImageFile{Filename: header.Filename, Content: file}
	}
	return form, nil
}
