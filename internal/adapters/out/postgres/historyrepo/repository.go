package historyrepo

import (
	"context"
	"errors"

	"logistica/internal/core/domain/model/history"
	"logistica/internal/core/domain/model/order"
	"logistica/internal/core/ports"
	"logistica/internal/pkg/errs"

	"gorm.io/gorm"
)

var _ ports.HistoryRepository = (*GormHistoryRepository)(nil)

// GormHistoryRepository implements ports.HistoryRepository using GORM.
type GormHistoryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

// NewGormHistoryRepository creates a new GORM history repository.
func NewGormHistoryRepository(db *gorm.DB, tracker aggregateTracker) *GormHistoryRepository {
	return &GormHistoryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a record. The primary key rejects a second record for the
// same order.
func (r *GormHistoryRepository) Add(ctx context.Context, record *history.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewDurableStoreError("insert history record", err)
	}

	r.tracker.TrackAggregate(dto.ID, record)
	return nil
}

// Get retrieves a record by the ID of the order it archives.
func (r *GormHistoryRepository) Get(ctx context.Context, id order.ID) (*history.Record, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RecordDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("record_id", id.String())
		}
		return nil, errs.NewDurableStoreError("get history record", err)
	}

	return toDomain(dto)
}

// Delete removes a record.
func (r *GormHistoryRepository) Delete(ctx context.Context, id order.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&RecordDTO{}, "id = ?", id.String())
	if result.Error != nil {
		return errs.NewDurableStoreError("delete history record", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("record_id", id.String())
	}
	return nil
}
