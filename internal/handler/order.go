package handler // handler package contains order endpoint handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/amigurumi/storefront/internal/model"
	"github.com/amigurumi/storefront/internal/repository"
)

// OrderHandler serves the order endpoints.  Every route sits behind the
// JWT middleware; the caller's id and role come from the verified token
// claims in the echo context.
type OrderHandler struct {
	Orders *repository.OrderRepo
}

func NewOrderHandler(o *repository.OrderRepo) *OrderHandler {
	return &OrderHandler{Orders: o}
}

type checkoutReq struct {
	Items           []model.CartItem `json:"items"`
	PaymentMethod   string           `json:"paymentMethod"`
	ShippingAddress string           `json:"shippingAddress"`
}

// callerIdentity pulls the authenticated user's id and role out of the
// context populated by the JWT middleware.
func callerIdentity(c echo.Context) (id, role string, ok bool) {
	id, _ = c.Get("user_id").(string)
	role, _ = c.Get("role").(string)
	return id, role, id != ""
}

// Checkout handles POST /orders/checkout.  The order total is computed
// server-side from the submitted cart lines.
func (h *OrderHandler) Checkout(c echo.Context) error {
	userID, _, ok := callerIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req checkoutReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if len(req.Items) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "items required"})
	}
	o := h.Orders.Create(userID, req.Items)
	return c.JSON(http.StatusCreated, o)
}

// List handles GET /orders and returns the caller's orders, newest first.
func (h *OrderHandler) List(c echo.Context) error {
	userID, _, ok := callerIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, h.Orders.ListByUser(userID))
}

// Get handles GET /orders/:id.  An order is visible to its owner and to
// admins; anyone else gets 403 even though the order exists.
func (h *OrderHandler) Get(c echo.Context) error {
	userID, role, ok := callerIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	o, err := h.Orders.Get(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
	}
	if role != model.RoleAdmin && o.UserID != userID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	return c.JSON(http.StatusOK, o)
}
