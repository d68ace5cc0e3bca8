package queries

import (
	"context"

	"logistica/internal/core/domain/model/order"
	"logistica/internal/pkg/errs"

	"gorm.io/gorm"
)

// VerifyDeliveryCodeQueryHandler answers whether a code belongs to a live
// order. A missing order and a wrong code give the same answer.
type VerifyDeliveryCodeQueryHandler struct {
	db *gorm.DB
}

func NewVerifyDeliveryCodeQueryHandler(db *gorm.DB) VerifyDeliveryCodeQueryHandler {
	return VerifyDeliveryCodeQueryHandler{db: db}
}

func (h VerifyDeliveryCodeQueryHandler) Handle(ctx context.Context, query VerifyDeliveryCodeQuery) (bool, error) {
	if err := query.Validate(); err != nil {
		return false, err
	}

	var codes []string
	err := h.db.WithContext(ctx).
		Raw(`SELECT delivery_code FROM orders WHERE id = ?`, query.OrderID().String()).
		Scan(&codes).Error
	if err != nil {
		return false, errs.NewDurableStoreError("verify delivery code", err)
	}
	if len(codes) == 0 {
		return false, nil
	}

	code, err := order.DeliveryCodeFromString(codes[0])
	if err != nil {
		return false, nil //nolint:nilerr // a malformed stored code matches nothing
	}
	return code.Matches(query.Code()), nil
}
