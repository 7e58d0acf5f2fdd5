package queries

import (
	"context"
	"time"

	"grocery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersQueryHandler retrieves order summaries from the database. The
// summary projection avoids unmarshalling line documents; only the jsonb
// array length is read.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order listing queries.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the query, returning summaries newest first.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) ([]GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	const baseSQL = `
		SELECT
			id,
			status,
			return_status,
			total,
			address_city,
			address_pincode,
			jsonb_array_length(items),
			created_at
		FROM orders
	`

	var rowsQuery *gorm.DB
	if customerID := query.CustomerID(); customerID != nil {
		rowsQuery = h.db.WithContext(ctx).Raw(
			baseSQL+" WHERE customer_id = ? ORDER BY created_at DESC", customerID.Bytes())
	} else {
		rowsQuery = h.db.WithContext(ctx).Raw(baseSQL + " ORDER BY created_at DESC")
	}

	rows, err := rowsQuery.Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetOrdersQueryResponse, 0)
	for rows.Next() {
		var (
			id        uuid.UUID
			resp      GetOrdersQueryResponse
			createdAt time.Time
		)

		err = rows.Scan(
			&id,
			&resp.Status,
			&resp.ReturnStatus,
			&resp.Total,
			&resp.City,
			&resp.Pincode,
			&resp.ItemCount,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.CreatedAt = createdAt
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
