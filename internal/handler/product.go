package handler // handler package contains catalog endpoint handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/amigurumi/storefront/internal/repository"
)

// ProductHandler serves the catalog endpoints.  Reads are public; mutations
// sit behind the JWT and admin-role middleware, so by the time a mutation
// handler runs the caller is already known to be an admin.
type ProductHandler struct {
	Products *repository.ProductRepo
}

func NewProductHandler(p *repository.ProductRepo) *ProductHandler {
	return &ProductHandler{Products: p}
}

type productReq struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
	Tags        []string `json:"tags"`
}

// List handles GET /products and returns the full catalog sorted by name.
func (h *ProductHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Products.List())
}

// Get handles GET /products/:id.
func (h *ProductHandler) Get(c echo.Context) error {
	p, err := h.Products.Get(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	}
	return c.JSON(http.StatusOK, p)
}

// Create handles POST /products (admin only).
func (h *ProductHandler) Create(c echo.Context) error {
	var req productReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	p := h.Products.Create(req.Name, req.Description, req.Price, req.Stock, req.Tags)
	return c.JSON(http.StatusCreated, p)
}

// Update handles PUT /products/:id (admin only).  A full replace of every
// field, matching the shape of the create request.
func (h *ProductHandler) Update(c echo.Context) error {
	var req productReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	p, err := h.Products.Update(c.Param("id"), req.Name, req.Description, req.Price, req.Stock, req.Tags)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /products/:id (admin only).
func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.Products.Delete(c.Param("id")); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	}
	return c.NoContent(http.StatusNoContent)
}
