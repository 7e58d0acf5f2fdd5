// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling the conversion between domain entities and database
// representations.
package orderrepo

import (
	"encoding/json"
	"time"

	"grocery/internal/core/domain/model/address"
	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order
// aggregates. The order lines and the return item selection are stored as
// jsonb documents; the address is embedded as columns so queries can filter
// on it.
type OrderDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID  `gorm:"type:uuid;index"`
	Items      []byte     `gorm:"type:jsonb"`
	Address    AddressDTO `gorm:"embedded;embeddedPrefix:address_"`
	Total      float64
	Status     string    `gorm:"index"`
	Return     ReturnDTO `gorm:"embedded;embeddedPrefix:return_"`
	CreatedAt  time.Time `gorm:"index"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO represents the embedded delivery address snapshot within the
// order table. Coordinates are optional.
type AddressDTO struct {
	Street    string
	City      string
	State     string
	Pincode   string
	Landmark  string
	Latitude  *float64
	Longitude *float64
}

// ReturnDTO represents the embedded return request columns. An empty Status
// means no request was filed.
type ReturnDTO struct {
	Status      string `gorm:"index"`
	Reason      string
	Description string
	Items       []byte `gorm:"type:jsonb"`
	RequestedAt *time.Time
}

// ItemDTO is the jsonb representation of one order line.
type ItemDTO struct {
	ProductRef uuid.UUID `json:"product_ref"`
	Name       string    `json:"name"`
	Quantity   int       `json:"quantity"`
	UnitPrice  float64   `json:"unit_price"`
}

// MarshalItems serializes order lines to their jsonb document. Shared with
// the cart repository, which stores the same line shape.
func MarshalItems(items []order.Item) ([]byte, error) {
	dtos := make([]ItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, ItemDTO{
			ProductRef: item.ProductRef().Bytes(),
			Name:       item.Name(),
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice(),
		})
	}
	return json.Marshal(dtos)
}

// UnmarshalItems restores order lines from their jsonb document.
func UnmarshalItems(raw []byte) ([]order.Item, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var dtos []ItemDTO
	if err := json.Unmarshal(raw, &dtos); err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dtos))
	for _, dto := range dtos {
		ref, err := kernel.UUIDFromBytes(dto.ProductRef[:])
		if err != nil {
			return nil, err
		}

		item, err := order.NewItem(ref, dto.Name, dto.Quantity, dto.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

// fromDomain converts an order domain aggregate to its database
// representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	items, err := MarshalItems(aggregate.Items())
	if err != nil {
		return OrderDTO{}, err
	}

	addr := aggregate.Address()
	addressDTO := AddressDTO{
		Street:   addr.Street(),
		City:     addr.City(),
		State:    addr.State(),
		Pincode:  addr.Pincode().String(),
		Landmark: addr.Landmark(),
	}
	if coords := addr.Coordinates(); coords != nil {
		lat, lon := coords.Latitude(), coords.Longitude()
		addressDTO.Latitude = &lat
		addressDTO.Longitude = &lon
	}

	returnDTO := ReturnDTO{}
	if ret := aggregate.Return(); ret != nil {
		selection := make([]uuid.UUID, 0, len(ret.Items()))
		for _, id := range ret.Items() {
			selection = append(selection, id.Bytes())
		}
		rawSelection, marshalErr := json.Marshal(selection)
		if marshalErr != nil {
			return OrderDTO{}, marshalErr
		}

		requestedAt := ret.RequestedAt()
		returnDTO = ReturnDTO{
			Status:      ret.Status().String(),
			Reason:      ret.Reason().String(),
			Description: ret.Description(),
			Items:       rawSelection,
			RequestedAt: &requestedAt,
		}
	}

	return OrderDTO{
		ID:         aggregate.ID().Bytes(),
		CustomerID: aggregate.CustomerID().Bytes(),
		Items:      items,
		Address:    addressDTO,
		Total:      aggregate.Total(),
		Status:     aggregate.Status().String(),
		Return:     returnDTO,
		CreatedAt:  aggregate.CreatedAt(),
	}, nil
}

// toDomain converts a database DTO to an order domain aggregate using
// RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	items, err := UnmarshalItems(dto.Items)
	if err != nil {
		return nil, err
	}

	pin, err := kernel.NewPincode(dto.Address.Pincode)
	if err != nil {
		return nil, err
	}

	var coords *kernel.GeoPoint
	if dto.Address.Latitude != nil && dto.Address.Longitude != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Address.Latitude, *dto.Address.Longitude)
		if pointErr != nil {
			return nil, pointErr
		}
		coords = &point
	}

	addr, err := address.NewAddress(
		dto.Address.Street, dto.Address.City, dto.Address.State,
		pin, dto.Address.Landmark, coords,
	)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	ret, err := returnFromDTO(dto.Return)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, customerID, items, addr, dto.Total, dto.CreatedAt, status, ret)
}

// returnFromDTO restores the return request, or nil when none was filed.
func returnFromDTO(dto ReturnDTO) (*order.ReturnRequest, error) {
	if dto.Status == "" {
		return nil, nil
	}

	status, err := order.ReturnStatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	reason, err := order.ReturnReasonFromString(dto.Reason)
	if err != nil {
		return nil, err
	}

	var rawSelection []uuid.UUID
	if len(dto.Items) > 0 {
		if err = json.Unmarshal(dto.Items, &rawSelection); err != nil {
			return nil, err
		}
	}

	selection := make([]kernel.UUID, 0, len(rawSelection))
	for _, raw := range rawSelection {
		id, idErr := kernel.UUIDFromBytes(raw[:])
		if idErr != nil {
			return nil, idErr
		}
		selection = append(selection, id)
	}

	var requestedAt time.Time
	if dto.RequestedAt != nil {
		requestedAt = *dto.RequestedAt
	}

	return order.RestoreReturnRequest(status, reason, dto.Description, selection, requestedAt)
}
