// Package cartrepo provides data transfer objects and mapping functions for
// cart persistence. Each customer has at most one cart row; the lines are a
// jsonb document sharing the order line shape.
package cartrepo

import (
	"time"

	"grocery/internal/adapters/out/postgres/orderrepo"
	"grocery/internal/core/domain/model/cart"
	"grocery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CartDTO represents the database structure for persisting cart snapshots.
type CartDTO struct {
	CustomerID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Items      []byte    `gorm:"type:jsonb"`
	UpdatedAt  time.Time
}

// TableName specifies the database table name for cart snapshots.
func (CartDTO) TableName() string {
	return "carts"
}

// fromDomain converts a cart aggregate to its database representation.
func fromDomain(aggregate *cart.Cart) (CartDTO, error) {
	items, err := orderrepo.MarshalItems(aggregate.Items())
	if err != nil {
		return CartDTO{}, err
	}

	return CartDTO{
		CustomerID: aggregate.CustomerID().Bytes(),
		Items:      items,
		UpdatedAt:  aggregate.UpdatedAt(),
	}, nil
}

// toDomain converts a database DTO to a cart aggregate using RestoreCart.
func toDomain(dto CartDTO) (*cart.Cart, error) {
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	items, err := orderrepo.UnmarshalItems(dto.Items)
	if err != nil {
		return nil, err
	}

	return cart.RestoreCart(customerID, items, dto.UpdatedAt)
}
