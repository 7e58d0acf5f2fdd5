package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves one order's full detail from the database.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order detail queries.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// orderItemRow mirrors the jsonb line document written by the order
// repository.
type orderItemRow struct {
	ProductRef uuid.UUID `json:"product_ref"`
	Name       string    `json:"name"`
	Quantity   int       `json:"quantity"`
	UnitPrice  float64   `json:"unit_price"`
}

// Handle executes the query. A missing order yields ObjectNotFoundError.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var (
		id, customerID     uuid.UUID
		rawItems, rawRet   []byte
		resp               GetOrderQueryResponse
		retStatus          string
		retReason, retDesc sql.NullString
		retRequestedAt     sql.NullTime
		latitude           sql.NullFloat64
		longitude          sql.NullFloat64
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			status,
			total,
			created_at,
			items,
			address_street,
			address_city,
			address_state,
			address_pincode,
			address_landmark,
			address_latitude,
			address_longitude,
			return_status,
			return_reason,
			return_description,
			return_items,
			return_requested_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	err := row.Scan(
		&id,
		&customerID,
		&resp.Status,
		&resp.Total,
		&resp.CreatedAt,
		&rawItems,
		&resp.Address.Street,
		&resp.Address.City,
		&resp.Address.State,
		&resp.Address.Pincode,
		&resp.Address.Landmark,
		&latitude,
		&longitude,
		&retStatus,
		&retReason,
		&retDesc,
		&rawRet,
		&retRequestedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
		}
		return GetOrderQueryResponse{}, err
	}

	resp.ID, err = kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if latitude.Valid && longitude.Valid {
		resp.Address.Latitude = &latitude.Float64
		resp.Address.Longitude = &longitude.Float64
	}

	resp.Items, err = itemsFromJSON(rawItems)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.Return, err = returnFromColumns(retStatus, retReason.String, retDesc.String, rawRet, retRequestedAt)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}

func itemsFromJSON(raw []byte) ([]OrderItemResponse, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var rows []orderItemRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, err
	}

	items := make([]OrderItemResponse, 0, len(rows))
	for _, r := range rows {
		ref, err := kernel.UUIDFromBytes(r.ProductRef[:])
		if err != nil {
			return nil, err
		}
		items = append(items, OrderItemResponse{
			ProductRef: ref,
			Name:       r.Name,
			Quantity:   r.Quantity,
			UnitPrice:  r.UnitPrice,
			Subtotal:   float64(r.Quantity) * r.UnitPrice,
		})
	}
	return items, nil
}

// returnFromColumns assembles the return detail; an empty status column
// means no request was filed.
func returnFromColumns(
	status, reason, description string,
	rawItems []byte,
	requestedAt sql.NullTime,
) (*OrderReturnResponse, error) {
	if status == "" {
		return nil, nil
	}

	var rawSelection []uuid.UUID
	if len(rawItems) > 0 {
		if err := json.Unmarshal(rawItems, &rawSelection); err != nil {
			return nil, err
		}
	}

	selection := make([]kernel.UUID, 0, len(rawSelection))
	for _, raw := range rawSelection {
		ref, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		selection = append(selection, ref)
	}

	var filedAt time.Time
	if requestedAt.Valid {
		filedAt = requestedAt.Time
	}

	return &OrderReturnResponse{
		Status:      status,
		Reason:      reason,
		Description: description,
		Items:       selection,
		RequestedAt: filedAt,
	}, nil
}
