package order_test

import (
	"math"
	"math/rand/v2"
	"strconv"
	"testing"
	"time"

	"logistica/internal/core/domain/model/kernel"
	"logistica/internal/core/domain/model/order"
	"logistica/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDetails(t *testing.T) order.Details {
	t.Helper()
	dest, err := kernel.NewLocation(-23.5505, -46.6333)
	require.NoError(t, err)
	return order.Details{
		ClientName:  "Ana Souza",
		Address:     "Rua Augusta, 100",
		Phone:       "11 98888-7777",
		Price:       42.5,
		Destination: dest,
	}
}

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()
	code, err := order.NewRandomDeliveryCode()
	require.NoError(t, err)
	o, err := order.NewOrder(order.NewID(), "s1", validDetails(t), code, time.Now())
	require.NoError(t, err)
	return o
}

func TestNewOrder_Success(t *testing.T) {
	id := order.NewID()
	code, _ := order.DeliveryCodeFromString("1234")
	createdAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	o, err := order.NewOrder(id, "s1", validDetails(t), code, createdAt)

	require.NoError(t, err)
	require.NoError(t, o.Validate())
	assert.Equal(t, id, o.ID())
	assert.Equal(t, kernel.StoreKey("s1"), o.StoreKey())
	assert.Equal(t, order.Pending, o.Status())
	assert.Nil(t, o.Courier())
	assert.Equal(t, createdAt, o.CreatedAt())
	assert.Equal(t, "Ana Souza", o.Details().ClientName)
	assert.True(t, o.BelongsTo("s1"))
	assert.False(t, o.BelongsTo("s2"))
}

func TestNewOrder_ValidationErrors(t *testing.T) {
	code, _ := order.DeliveryCodeFromString("1234")

	tests := []struct {
		name   string
		store  kernel.StoreKey
		mutate func(d *order.Details)
		want   string
	}{
		{name: "missing store key", store: "", mutate: func(*order.Details) {}, want: "store_key"},
		{name: "missing client name", store: "s1", mutate: func(d *order.Details) { d.ClientName = "  " }, want: "client_name"},
		{name: "missing address", store: "s1", mutate: func(d *order.Details) { d.Address = "" }, want: "address"},
		{name: "missing phone", store: "s1", mutate: func(d *order.Details) { d.Phone = "" }, want: "phone"},
		{name: "negative price", store: "s1", mutate: func(d *order.Details) { d.Price = -1 }, want: "price"},
		{name: "NaN price", store: "s1", mutate: func(d *order.Details) { d.Price = math.NaN() }, want: "price"},
		{name: "zero destination", store: "s1", mutate: func(d *order.Details) { d.Destination = kernel.Location{} }, want: "location"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDetails(t)
			tt.mutate(&d)

			o, err := order.NewOrder(order.NewID(), tt.store, d, code, time.Now())

			require.Error(t, err)
			assert.Nil(t, o)
			assert.True(t, errs.IsValidation(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestOrder_ZeroValueIsNotConstructed(t *testing.T) {
	var o order.Order
	require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)

	var nilOrder *order.Order
	require.ErrorIs(t, nilOrder.Validate(), order.ErrOrderIsNotConstructed)
}

func TestOrder_Assign(t *testing.T) {
	o := newPendingOrder(t)
	first, err := order.NewCourier("Joao", "5511999")
	require.NoError(t, err)

	require.NoError(t, o.Assign(first))
	assert.Equal(t, order.OnRoute, o.Status())
	require.NotNil(t, o.Courier())
	assert.Equal(t, "Joao", o.Courier().Name())
	assert.Equal(t, kernel.Phone("5511999"), o.Courier().Phone())

	second, _ := order.NewCourier("Maria", "5511888")
	err = o.Assign(second)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Equal(t, "Joao", o.Courier().Name(), "first assignment must survive")
}

func TestOrder_AssignRejectsZeroCourier(t *testing.T) {
	o := newPendingOrder(t)
	require.ErrorIs(t, o.Assign(order.Courier{}), errs.ErrValueIsRequired)
	assert.Equal(t, order.Pending, o.Status())
}

func TestOrder_CourierIsCopied(t *testing.T) {
	o := newPendingOrder(t)
	c, _ := order.NewCourier("Joao", "5511999")
	require.NoError(t, o.Assign(c))

	got := o.Courier()
	*got = order.Courier{}
	assert.Equal(t, "Joao", o.Courier().Name())
}

func TestOrder_Complete(t *testing.T) {
	t.Run("from_on_route", func(t *testing.T) {
		o := newPendingOrder(t)
		c, _ := order.NewCourier("Joao", "5511999")
		require.NoError(t, o.Assign(c))
		require.NoError(t, o.Complete())
		assert.Equal(t, order.Completed, o.Status())
	})

	t.Run("from_pending_as_cancellation", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.Complete())
		assert.Equal(t, order.Completed, o.Status())
		assert.Nil(t, o.Courier())
	})

	t.Run("twice_fails", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.Complete())
		require.ErrorIs(t, o.Complete(), errs.ErrInvalidTransition)
	})
}

func TestRestoreOrder(t *testing.T) {
	code, _ := order.DeliveryCodeFromString("4321")
	c, _ := order.NewCourier("Joao", "5511999")

	o, err := order.RestoreOrder(order.NewID(), "s1", validDetails(t), code, time.Now(), order.OnRoute, &c)
	require.NoError(t, err)
	assert.Equal(t, order.OnRoute, o.Status())
	assert.Equal(t, "Joao", o.Courier().Name())

	_, err = order.RestoreOrder(order.NewID(), "s1", validDetails(t), code, time.Now(), order.OnRoute, nil)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = order.RestoreOrder(order.NewID(), "s1", validDetails(t), code, time.Now(), order.Pending, &c)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = order.RestoreOrder(order.NewID(), "s1", validDetails(t), code, time.Now(), order.Unknown, nil)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestOrder_VerifyCode(t *testing.T) {
	code, _ := order.DeliveryCodeFromString("2468")
	o, err := order.NewOrder(order.NewID(), "s1", validDetails(t), code, time.Now())
	require.NoError(t, err)

	assert.True(t, o.VerifyCode("2468"))
	assert.False(t, o.VerifyCode("2469"))
	assert.False(t, o.VerifyCode(""))
	assert.False(t, o.VerifyCode("02468"))
	assert.Equal(t, order.Pending, o.Status())
}

// A 4-digit guess by a caller who does not know the code must fail with
// probability of at least 0.999.
func TestOrder_VerifyCode_RandomGuessesFail(t *testing.T) {
	rng := rand.New(rand.NewPCG(20261015, 7))
	const trials = 20000

	hits := 0
	for range trials {
		o := newPendingOrder(t)
		guess := strconv.Itoa(rng.IntN(10000))
		if o.VerifyCode(guess) {
			hits++
		}
	}

	assert.LessOrEqual(t, float64(hits)/trials, 0.001)
}
