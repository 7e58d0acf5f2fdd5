package http

import (
	"net/http"
	"time"

	"grocery/internal/core/application/usecases/commands"
	"grocery/internal/core/application/usecases/queries"
	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
	"grocery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type checkoutResponse struct {
	OrderID string `json:"order_id"`
}

type orderSummaryResponse struct {
	ID           string    `json:"id"`
	Status       string    `json:"status"`
	ReturnStatus string    `json:"return_status,omitempty"`
	Total        float64   `json:"total"`
	City         string    `json:"city"`
	Pincode      string    `json:"pincode"`
	ItemCount    int       `json:"item_count"`
	CreatedAt    time.Time `json:"created_at"`
}

type orderItemPayload struct {
	ProductRef string  `json:"product_ref"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	Subtotal   float64 `json:"subtotal"`
}

type addressPayload struct {
	Street    string   `json:"street"`
	City      string   `json:"city"`
	State     string   `json:"state"`
	Pincode   string   `json:"pincode"`
	Landmark  string   `json:"landmark,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

type returnPayload struct {
	Status      string    `json:"status"`
	Reason      string    `json:"reason"`
	Description string    `json:"description,omitempty"`
	Items       []string  `json:"items"`
	RequestedAt time.Time `json:"requested_at"`
}

type orderDetailResponse struct {
	ID         string             `json:"id"`
	CustomerID string             `json:"customer_id"`
	Status     string             `json:"status"`
	Total      float64            `json:"total"`
	CreatedAt  time.Time          `json:"created_at"`
	Items      []orderItemPayload `json:"items"`
	Address    addressPayload     `json:"address"`
	Return     *returnPayload     `json:"return,omitempty"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type requestReturnRequest struct {
	Reason      string   `json:"reason"`
	Description string   `json:"description"`
	Items       []string `json:"items"`
}

type resolveReturnRequest struct {
	Status string `json:"status"`
}

// Checkout handles POST /orders - submits the customer's cart as an order.
func (s *Server) Checkout(ctx echo.Context) error {
	userID, _, err := s.identity(ctx)
	if err != nil {
		return s.unauthorized(ctx, err)
	}

	cmd, err := commands.NewCheckoutCommand(userID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	orderID, err := s.checkoutHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, checkoutResponse{OrderID: orderID.String()})
}

// GetOrders handles GET /orders - order summaries, newest first. The owner
// sees every order; a customer sees only their own.
func (s *Server) GetOrders(ctx echo.Context) error {
	userID, role, err := s.identity(ctx)
	if err != nil {
		return s.unauthorized(ctx, err)
	}

	var query queries.GetOrdersQuery
	if role == order.RoleOwner {
		query = queries.NewGetOrdersQuery()
	} else {
		query, err = queries.NewGetOrdersQueryForCustomer(userID)
		if err != nil {
			return s.respondError(ctx, err)
		}
	}

	summaries, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	response := make([]orderSummaryResponse, len(summaries))
	for i, summary := range summaries {
		response[i] = orderSummaryResponse{
			ID:           summary.ID.String(),
			Status:       summary.Status,
			ReturnStatus: summary.ReturnStatus,
			Total:        summary.Total,
			City:         summary.City,
			Pincode:      summary.Pincode,
			ItemCount:    summary.ItemCount,
			CreatedAt:    summary.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /orders/:id - full order detail. Customers can only
// see their own orders; anything else reads as not found.
func (s *Server) GetOrder(ctx echo.Context) error {
	userID, role, err := s.identity(ctx)
	if err != nil {
		return s.unauthorized(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.badRequest(ctx, "malformed order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	detail, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if role == order.RoleCustomer && detail.CustomerID != userID {
		return s.respondError(ctx, errs.NewObjectNotFoundError("order", orderID))
	}

	return ctx.JSON(http.StatusOK, toOrderDetailResponse(detail))
}

// UpdateOrderStatus handles PATCH /orders/:id/status - lifecycle transition
// requested by the acting user. Role gating happens in the domain.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	userID, role, err := s.identity(ctx)
	if err != nil {
		return s.unauthorized(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.badRequest(ctx, "malformed order id")
	}

	var request updateStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}

	target, err := order.StatusFromString(request.Status)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, userID, target, role)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err = s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RequestReturn handles POST /orders/:id/return - the customer files a
// return request against a delivered order.
func (s *Server) RequestReturn(ctx echo.Context) error {
	userID, _, err := s.identity(ctx)
	if err != nil {
		return s.unauthorized(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.badRequest(ctx, "malformed order id")
	}

	var request requestReturnRequest
	if err = ctx.Bind(&request); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}

	reason, err := order.ReturnReasonFromString(request.Reason)
	if err != nil {
		return s.respondError(ctx, err)
	}

	items := make([]kernel.UUID, 0, len(request.Items))
	for _, raw := range request.Items {
		itemRef, parseErr := kernel.UUIDFromString(raw)
		if parseErr != nil {
			return s.badRequest(ctx, "malformed item reference "+raw)
		}
		items = append(items, itemRef)
	}

	cmd, err := commands.NewRequestReturnCommand(orderID, userID, reason, request.Description, items)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err = s.requestReturnHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ResolveReturn handles PATCH /orders/:id/return - the owner advances a
// filed return through its workflow.
func (s *Server) ResolveReturn(ctx echo.Context) error {
	_, role, err := s.identity(ctx)
	if err != nil {
		return s.unauthorized(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.badRequest(ctx, "malformed order id")
	}

	var request resolveReturnRequest
	if err = ctx.Bind(&request); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}

	target, err := order.ReturnStatusFromString(request.Status)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewResolveReturnCommand(orderID, target, role)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err = s.resolveReturnHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func toOrderDetailResponse(detail queries.GetOrderQueryResponse) orderDetailResponse {
	items := make([]orderItemPayload, len(detail.Items))
	for i, item := range detail.Items {
		items[i] = orderItemPayload{
			ProductRef: item.ProductRef.String(),
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			Subtotal:   item.Subtotal,
		}
	}

	response := orderDetailResponse{
		ID:         detail.ID.String(),
		CustomerID: detail.CustomerID.String(),
		Status:     detail.Status,
		Total:      detail.Total,
		CreatedAt:  detail.CreatedAt,
		Items:      items,
		Address: addressPayload{
			Street:    detail.Address.Street,
			City:      detail.Address.City,
			State:     detail.Address.State,
			Pincode:   detail.Address.Pincode,
			Landmark:  detail.Address.Landmark,
			Latitude:  detail.Address.Latitude,
			Longitude: detail.Address.Longitude,
		},
	}

	if detail.Return != nil {
		itemRefs := make([]string, len(detail.Return.Items))
		for i, ref := range detail.Return.Items {
			itemRefs[i] = ref.String()
		}

		response.Return = &returnPayload{
			Status:      detail.Return.Status,
			Reason:      detail.Return.Reason,
			Description: detail.Return.Description,
			Items:       itemRefs,
			RequestedAt: detail.Return.RequestedAt,
		}
	}

	return response
}
