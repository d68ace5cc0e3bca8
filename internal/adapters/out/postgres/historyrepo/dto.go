// Package historyrepo maps delivery history records to the
// "delivery_history" table.
package historyrepo

import (
	"time"

	"logistica/internal/core/domain/model/history"
	"logistica/internal/core/domain/model/kernel"
	"logistica/internal/core/domain/model/order"
)

// RecordDTO is the row shape of a history record. Courier fields and the
// signature are NOT NULL with an empty default: absent means "".
type RecordDTO struct {
	ID           string    `gorm:"type:varchar(64);primaryKey"`
	StoreKey     string    `gorm:"type:varchar(64);not null;index:delivery_history_store_completed_idx,priority:1"`
	ClientName   string    `gorm:"not null"`
	Address      string    `gorm:"not null;default:''"`
	Phone        string    `gorm:"not null;default:''"`
	Price        float64   `gorm:"not null"`
	CourierName  string    `gorm:"not null;default:''"`
	CourierPhone string    `gorm:"not null;default:''"`
	CompletedAt  time.Time `gorm:"not null;index:delivery_history_store_completed_idx,priority:2,sort:desc"`
	Signature    string    `gorm:"not null;default:''"`
}

// TableName overrides GORM's pluralized default.
func (RecordDTO) TableName() string {
	return "delivery_history"
}

func fromDomain(r *history.Record) RecordDTO {
	s := r.Snapshot()
	return RecordDTO{
		ID:           s.ID.String(),
		StoreKey:     s.StoreKey.String(),
		ClientName:   s.ClientName,
		Address:      s.Address,
		Phone:        s.Phone,
		Price:        s.Price,
		CourierName:  s.CourierName,
		CourierPhone: s.CourierPhone,
		CompletedAt:  s.CompletedAt,
		Signature:    s.Signature,
	}
}

func toDomain(dto RecordDTO) (*history.Record, error) {
	return history.RestoreRecord(history.Snapshot{
		ID:           order.ID(dto.ID),
		StoreKey:     kernel.StoreKey(dto.StoreKey),
		ClientName:   dto.ClientName,
		Address:      dto.Address,
		Phone:        dto.Phone,
		Price:        dto.Price,
		CourierName:  dto.CourierName,
		CourierPhone: dto.CourierPhone,
		CompletedAt:  dto.CompletedAt,
		Signature:    dto.Signature,
	})
}
