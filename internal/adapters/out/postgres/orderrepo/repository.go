package orderrepo

import (
	"context"
	"errors"

	"logistica/internal/core/domain/model/order"
	"logistica/internal/core/ports"
	"logistica/internal/pkg/errs"

	"gorm.io/gorm"
)

var _ ports.OrderRepository = (*GormOrderRepository)(nil)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker is implemented by the unit of work.
type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new order.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewDurableStoreError("insert order", err)
	}

	r.tracker.TrackAggregate(dto.ID, aggregate)
	return nil
}

// UpdateStatus writes status and courier fields, provided the row is still
// in expected. Zero affected rows means another writer got there first.
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, expected.String()).
		Updates(map[string]any{
			"status":        dto.Status,
			"courier_name":  dto.CourierName,
			"courier_phone": dto.CourierPhone,
		})
	if result.Error != nil {
		return errs.NewDurableStoreError("update order status", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewInvalidTransitionError("update status", "a status other than "+expected.String())
	}

	r.tracker.TrackAggregate(dto.ID, aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id order.ID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order_id", id.String())
		}
		return nil, errs.NewDurableStoreError("get order", err)
	}

	return toDomain(dto)
}

// Delete removes a live order.
func (r *GormOrderRepository) Delete(ctx context.Context, id order.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&OrderDTO{}, "id = ?", id.String())
	if result.Error != nil {
		return errs.NewDurableStoreError("delete order", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order_id", id.String())
	}
	return nil
}
