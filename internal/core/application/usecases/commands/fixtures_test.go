package commands_test

import (
	"testing"
	"time"

	"oshxona/internal/core/domain/model/branch"
	"oshxona/internal/core/domain/model/courier"
	"oshxona/internal/core/domain/model/kernel"
	"oshxona/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func fixedTime() time.Time {
	return time.Date(2024, 5, 12, 10, 0, 0, 0, time.UTC)
}

func testLocation(t *testing.T, lat, lon float64) kernel.Location {
	t.Helper()
	location, err := kernel.NewLocation(lat, lon)
	require.NoError(t, err)
	return location
}

func newPendingOrder(t *testing.T, orderType order.Type) *order.Order {
	t.Helper()

	item, err := order.NewItem(kernel.NewUUID(), "Lagman", 2, 45000, 20)
	require.NoError(t, err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), orderType, kernel.NewUUID(), 880001, []order.Item{item}, fixedTime())
	require.NoError(t, err)
	return aggregate
}

// newDeliveryOrder builds a pending delivery order with a destination near the
// Tashkent city center and an optional branch.
func newDeliveryOrder(t *testing.T, branchID *kernel.UUID) *order.Order {
	t.Helper()

	aggregate := newPendingOrder(t, order.TypeDelivery)
	require.NoError(t, aggregate.SetDeliveryDetails(
		"12 Amir Temur Avenue", testLocation(t, 41.3111, 69.2797), "second entrance"))
	if branchID != nil {
		require.NoError(t, aggregate.SetBranch(*branchID))
	}
	return aggregate
}

func newActiveCourier(t *testing.T, branchID kernel.UUID) *courier.Courier {
	t.Helper()

	c, err := courier.NewCourier(kernel.NewUUID(), "Bekzod", branchID)
	require.NoError(t, err)
	c.SetOnline(true)
	c.SetAvailable(true)
	return c
}

func newTestBranch(t *testing.T, id kernel.UUID) *branch.Branch {
	t.Helper()

	location := testLocation(t, 41.3111, 69.2797)
	b, err := branch.NewBranch(id, "Chilanzar", &location, -100200300)
	require.NoError(t, err)
	return b
}
