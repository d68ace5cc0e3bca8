package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"logistica/internal/core/domain/model/kernel"
	"logistica/internal/core/domain/model/order"
	"logistica/internal/core/domain/model/presence"
)

const testCode = "4821"

func newPendingOrder(t *testing.T, id order.ID, storeKey kernel.StoreKey) *order.Order {
	t.Helper()
	dest, err := kernel.NewLocation(-23.55, -46.63)
	require.NoError(t, err)
	code, err := order.DeliveryCodeFromString(testCode)
	require.NoError(t, err)

	o, err := order.NewOrder(id, storeKey, order.Details{
		ClientName:  "Ana",
		Address:     "Rua Augusta, 100",
		Phone:       "11 98888-7777",
		Price:       42.5,
		Destination: dest,
	}, code, fixedNow.Add(-30*time.Minute))
	require.NoError(t, err)
	return o
}

func newOnRouteOrder(t *testing.T, id order.ID, storeKey kernel.StoreKey) *order.Order {
	t.Helper()
	o := newPendingOrder(t, id, storeKey)
	c, err := order.NewCourier("Bruno", "5511999")
	require.NoError(t, err)
	require.NoError(t, o.Assign(c))
	return o
}

func newEntry(t *testing.T, storeKey kernel.StoreKey, phone kernel.Phone, conn kernel.UUID) presence.Entry {
	t.Helper()
	e, err := presence.NewEntry(storeKey, phone, "Bruno", conn, fixedNow)
	require.NoError(t, err)
	return e
}
