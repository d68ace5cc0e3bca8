package http

import (
	"time"

	"logistica/internal/core/application/usecases/commands"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type RegisterDeliveryRequest struct {
	StoreKey   string  `json:"store_slug"`
	ClientName string  `json:"clientName"`
	Address    string  `json:"address"`
	Phone      string  `json:"phone"`
	Price      float64 `json:"price"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
}

// CreatedOrder is the only representation of an order that carries its
// delivery code.
type CreatedOrder struct {
	ID           string    `json:"id"`
	StoreKey     string    `json:"store_slug"`
	ClientName   string    `json:"client_name"`
	Address      string    `json:"address"`
	Phone        string    `json:"phone"`
	Price        float64   `json:"price"`
	Lat          float64   `json:"lat"`
	Lng          float64   `json:"lng"`
	Status       string    `json:"status"`
	DeliveryCode string    `json:"delivery_code"`
	CreatedAt    time.Time `json:"created_at"`
}

type RegisterDeliveryResponse struct {
	Success bool         `json:"success"`
	Order   CreatedOrder `json:"order"`
}

type AssignOrderRequest struct {
	OrderID     string `json:"orderId"`
	StoreKey    string `json:"store_slug"`
	DriverName  string `json:"driverName"`
	DriverPhone string `json:"driverPhone"`
}

type VerifyCodeRequest struct {
	OrderID string `json:"orderId"`
	Code    string `json:"code"`
}

type VerifyCodeResponse struct {
	Valid bool `json:"valid"`
}

type CompleteDeliveryRequest struct {
	OrderID   string `json:"orderId"`
	StoreKey  string `json:"store_slug"`
	Signature string `json:"signature"`
}

func newCreatedOrder(result commands.CreateOrderResult) CreatedOrder {
	o := result.Order
	d := o.Details()
	return CreatedOrder{
		ID:           result.OrderID.String(),
		StoreKey:     o.StoreKey().String(),
		ClientName:   d.ClientName,
		Address:      d.Address,
		Phone:        d.Phone,
		Price:        d.Price,
		Lat:          d.Destination.Lat(),
		Lng:          d.Destination.Lng(),
		Status:       o.Status().String(),
		DeliveryCode: result.DeliveryCode,
		CreatedAt:    o.CreatedAt(),
	}
}
