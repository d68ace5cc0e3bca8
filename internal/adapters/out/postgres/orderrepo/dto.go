// Package orderrepo maps live orders to the "orders" table.
package orderrepo

import (
	"time"

	"logistica/internal/core/domain/model/kernel"
	"logistica/internal/core/domain/model/order"
)

// OrderDTO is the row shape of a live order. Status is stored by name so
// the table stays readable from psql.
type OrderDTO struct {
	ID           string  `gorm:"type:varchar(64);primaryKey"`
	StoreKey     string  `gorm:"type:varchar(64);not null;index:orders_store_status_created_idx,priority:1"`
	ClientName   string  `gorm:"not null"`
	Address      string  `gorm:"not null"`
	Phone        string  `gorm:"not null"`
	Price        float64 `gorm:"not null"`
	Lat          float64 `gorm:"not null"`
	Lng          float64 `gorm:"not null"`
	Status       string  `gorm:"type:varchar(16);not null;index:orders_store_status_created_idx,priority:2"`
	CourierName  *string
	CourierPhone *string
	DeliveryCode string    `gorm:"type:char(4);not null"`
	CreatedAt    time.Time `gorm:"not null;index:orders_store_status_created_idx,priority:3,sort:desc"`
}

// TableName overrides GORM's pluralized default.
func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	d := o.Details()
	dto := OrderDTO{
		ID:           o.ID().String(),
		StoreKey:     o.StoreKey().String(),
		ClientName:   d.ClientName,
		Address:      d.Address,
		Phone:        d.Phone,
		Price:        d.Price,
		Lat:          d.Destination.Lat(),
		Lng:          d.Destination.Lng(),
		Status:       o.Status().String(),
		DeliveryCode: o.DeliveryCode().Reveal(),
		CreatedAt:    o.CreatedAt(),
	}

	if c := o.Courier(); c != nil {
		name := c.Name()
		phone := c.Phone().String()
		dto.CourierName = &name
		dto.CourierPhone = &phone
	}
	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	dest, err := kernel.NewLocation(dto.Lat, dto.Lng)
	if err != nil {
		return nil, err
	}

	code, err := order.DeliveryCodeFromString(dto.DeliveryCode)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var courier *order.Courier
	if dto.CourierName != nil && dto.CourierPhone != nil {
		c, courierErr := order.NewCourier(*dto.CourierName, *dto.CourierPhone)
		if courierErr != nil {
			return nil, courierErr
		}
		courier = &c
	}

	return order.RestoreOrder(
		order.ID(dto.ID),
		kernel.StoreKey(dto.StoreKey),
		order.Details{
			ClientName:  dto.ClientName,
			Address:     dto.Address,
			Phone:       dto.Phone,
			Price:       dto.Price,
			Destination: dest,
		},
		code,
		dto.CreatedAt,
		status,
		courier,
	)
}
