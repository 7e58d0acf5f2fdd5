package order

import (
	"errors"
	"fmt"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/pkg/errs"
	"grocery/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when validating a zero-value Item.
var ErrItemIsNotConstructed = errs.NewValueIsRequiredError(
	"item must be created via NewItem constructor")

// Item is one line of an order: a product reference with the name and unit
// price captured at checkout time, and the ordered quantity. Items are
// immutable once the order is created.
type Item struct { //nolint:recvcheck //using for validation
	productRef kernel.UUID
	name       string
	quantity   int
	unitPrice  float64

	guard guard.ConstructorGuard
}

// NewItem creates an order line. Quantity must be positive and unit price
// non-negative.
func NewItem(productRef kernel.UUID, name string, quantity int, unitPrice float64) (Item, error) {
	item := Item{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setProductRef(productRef),
		item.setName(name),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

// Validate checks that the Item was created through NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ProductRef returns the catalog product identifier.
func (i Item) ProductRef() kernel.UUID {
	return i.productRef
}

// Name returns the product name captured at checkout.
func (i Item) Name() string {
	return i.name
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the per-unit price captured at checkout.
func (i Item) UnitPrice() float64 {
	return i.unitPrice
}

// Subtotal returns quantity x unit price.
func (i Item) Subtotal() float64 {
	return float64(i.quantity) * i.unitPrice
}

func (i *Item) setProductRef(productRef kernel.UUID) error {
	if err := productRef.Validate(); err != nil {
		return err
	}
	i.productRef = productRef
	return nil
}

func (i *Item) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	i.name = name
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(unitPrice float64) error {
	if unitPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%f is negative", unitPrice))
	}
	i.unitPrice = unitPrice
	return nil
}
