package http

import (
	"errors"
	"net/http"
	"time"

	"grocery/internal/core/application/usecases/commands"
	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
	"grocery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type cartItemPayload struct {
	ProductRef string  `json:"product_ref"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
}

type updateCartRequest struct {
	Items []cartItemPayload `json:"items"`
}

type cartResponse struct {
	Items     []orderItemPayload `json:"items"`
	Total     float64            `json:"total"`
	UpdatedAt *time.Time         `json:"updated_at,omitempty"`
}

// UpdateCart handles PUT /cart - replaces the customer's cart snapshot.
func (s *Server) UpdateCart(ctx echo.Context) error {
	userID, _, err := s.identity(ctx)
	if err != nil {
		return s.unauthorized(ctx, err)
	}

	var request updateCartRequest
	if err = ctx.Bind(&request); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}

	items := make([]order.Item, 0, len(request.Items))
	for _, payload := range request.Items {
		productRef, parseErr := kernel.UUIDFromString(payload.ProductRef)
		if parseErr != nil {
			return s.badRequest(ctx, "malformed product reference "+payload.ProductRef)
		}

		item, itemErr := order.NewItem(productRef, payload.Name, payload.Quantity, payload.UnitPrice)
		if itemErr != nil {
			return s.respondError(ctx, itemErr)
		}
		items = append(items, item)
	}

	cmd, err := commands.NewUpdateCartCommand(userID, items)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err = s.updateCartHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetCart handles GET /cart - the customer's cart snapshot. A customer
// without a stored cart gets an empty one.
func (s *Server) GetCart(ctx echo.Context) error {
	userID, _, err := s.identity(ctx)
	if err != nil {
		return s.unauthorized(ctx, err)
	}

	basket, err := s.carts.Get(ctx.Request().Context(), userID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ctx.JSON(http.StatusOK, cartResponse{Items: []orderItemPayload{}})
	}
	if err != nil {
		return s.respondError(ctx, err)
	}

	items := make([]orderItemPayload, len(basket.Items()))
	for i, item := range basket.Items() {
		items[i] = orderItemPayload{
			ProductRef: item.ProductRef().String(),
			Name:       item.Name(),
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice(),
			Subtotal:   item.Subtotal(),
		}
	}

	updatedAt := basket.UpdatedAt()

	return ctx.JSON(http.StatusOK, cartResponse{
		Items:     items,
		Total:     basket.Total(),
		UpdatedAt: &updatedAt,
	})
}
