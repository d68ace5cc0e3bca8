package history_test

import (
	"testing"
	"time"

	"logistica/internal/core/domain/model/history"
	"logistica/internal/core/domain/model/kernel"
	"logistica/internal/core/domain/model/order"
	"logistica/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrder(t *testing.T) *order.Order {
	t.Helper()
	dest, _ := kernel.NewLocation(-23.5, -46.6)
	code, _ := order.DeliveryCodeFromString("1234")
	o, err := order.NewOrder(order.NewID(), "s1", order.Details{
		ClientName:  "Ana",
		Address:     "Rua Augusta, 100",
		Phone:       "11 98888-7777",
		Price:       30,
		Destination: dest,
	}, code, time.Now())
	require.NoError(t, err)
	return o
}

func TestNewRecordFromOrder_Delivered(t *testing.T) {
	o := newOrder(t)
	c, _ := order.NewCourier("Joao", "5511999")
	require.NoError(t, o.Assign(c))
	require.NoError(t, o.Complete())
	at := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	r, err := history.NewRecordFromOrder(o, "sig-blob", at)

	require.NoError(t, err)
	require.NoError(t, r.Validate())
	assert.Equal(t, o.ID(), r.ID())
	assert.Equal(t, kernel.StoreKey("s1"), r.StoreKey())
	assert.Equal(t, "Ana", r.ClientName())
	assert.Equal(t, "Rua Augusta, 100", r.Address())
	assert.InDelta(t, 30.0, r.Price(), 1e-9)
	assert.Equal(t, "Joao", r.CourierName())
	assert.Equal(t, "5511999", r.CourierPhone())
	assert.Equal(t, at, r.CompletedAt())
	assert.Equal(t, "sig-blob", r.Signature())
}

func TestNewRecordFromOrder_CancelledPendingHasEmptyCourierAndSignature(t *testing.T) {
	o := newOrder(t)
	require.NoError(t, o.Complete())

	r, err := history.NewRecordFromOrder(o, "", time.Now())

	require.NoError(t, err)
	assert.Empty(t, r.CourierName())
	assert.Empty(t, r.CourierPhone())
	assert.Equal(t, "", r.Signature())
}

func TestNewRecordFromOrder_RequiresCompletedOrder(t *testing.T) {
	o := newOrder(t)

	_, err := history.NewRecordFromOrder(o, "", time.Now())
	require.ErrorIs(t, err, errs.ErrInvalidTransition)

	_, err = history.NewRecordFromOrder(&order.Order{}, "", time.Now())
	require.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
}

func TestRestoreRecord(t *testing.T) {
	snap := history.Snapshot{
		ID:          "PED-00000001",
		StoreKey:    "s1",
		ClientName:  "Ana",
		CompletedAt: time.Now(),
	}
	r, err := history.RestoreRecord(snap)
	require.NoError(t, err)
	assert.Equal(t, snap, r.Snapshot())

	_, err = history.RestoreRecord(history.Snapshot{})
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))

	var zero history.Record
	require.ErrorIs(t, zero.Validate(), history.ErrRecordIsNotConstructed)
}
