package services_test

import (
	"context"
	"errors"
	"testing"

	"oshxona/internal/core/domain/model/courier"
	"oshxona/internal/core/domain/model/kernel"
	"oshxona/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubActiveOrderCounter struct {
	counts map[kernel.UUID]int64
	err    error
}

func (s stubActiveOrderCounter) CountActiveByCourier(_ context.Context, courierID kernel.UUID) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.counts[courierID], nil
}

func readyCourier(t *testing.T, name string, branchID kernel.UUID) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(kernel.NewUUID(), name, branchID)
	require.NoError(t, err)
	c.SetOnline(true)
	c.SetAvailable(true)
	return c
}

func TestCourierSelector_Best(t *testing.T) {
	ctx := context.Background()
	branchID := kernel.NewUUID()
	selector := services.NewCourierSelector()

	t.Run("should pick the courier with the fewest active orders", func(t *testing.T) {
		busy := readyCourier(t, "Aziz", branchID)
		idle := readyCourier(t, "Bobur", branchID)
		loaded := readyCourier(t, "Davron", branchID)

		counter := stubActiveOrderCounter{counts: map[kernel.UUID]int64{
			busy.ID():   2,
			idle.ID():   0,
			loaded.ID(): 5,
		}}

		best, err := selector.Best(ctx, []*courier.Courier{busy, idle, loaded}, counter)

		require.NoError(t, err)
		require.NotNil(t, best)
		assert.True(t, best.ID().IsEqual(idle.ID()))
	})

	t.Run("should break ties on first candidate encountered", func(t *testing.T) {
		first := readyCourier(t, "Eldor", branchID)
		second := readyCourier(t, "Farrukh", branchID)

		counter := stubActiveOrderCounter{counts: map[kernel.UUID]int64{
			first.ID():  1,
			second.ID(): 1,
		}}

		best, err := selector.Best(ctx, []*courier.Courier{first, second}, counter)

		require.NoError(t, err)
		assert.True(t, best.ID().IsEqual(first.ID()))
	})

	t.Run("should skip offline, busy and deactivated candidates", func(t *testing.T) {
		offline := readyCourier(t, "Gayrat", branchID)
		offline.SetOnline(false)

		busy := readyCourier(t, "Hasan", branchID)
		busy.SetAvailable(false)

		fired := readyCourier(t, "Islom", branchID)
		fired.Deactivate()

		only := readyCourier(t, "Jasur", branchID)

		counter := stubActiveOrderCounter{counts: map[kernel.UUID]int64{only.ID(): 9}}

		best, err := selector.Best(ctx, []*courier.Courier{offline, busy, fired, only}, counter)

		require.NoError(t, err)
		assert.True(t, best.ID().IsEqual(only.ID()))
	})

	t.Run("should return ErrNoCourierAvailable when nobody qualifies", func(t *testing.T) {
		offline := readyCourier(t, "Karim", branchID)
		offline.SetOnline(false)

		best, err := selector.Best(ctx, []*courier.Courier{offline}, stubActiveOrderCounter{})

		require.ErrorIs(t, err, services.ErrNoCourierAvailable)
		assert.Nil(t, best)
	})

	t.Run("should return ErrNoCourierAvailable for an empty candidate list", func(t *testing.T) {
		best, err := selector.Best(ctx, nil, stubActiveOrderCounter{})

		require.ErrorIs(t, err, services.ErrNoCourierAvailable)
		assert.Nil(t, best)
	})

	t.Run("should propagate counter failures", func(t *testing.T) {
		candidate := readyCourier(t, "Lola", branchID)
		counterErr := errors.New("connection reset")

		best, err := selector.Best(ctx, []*courier.Courier{candidate}, stubActiveOrderCounter{err: counterErr})

		require.ErrorIs(t, err, counterErr)
		assert.Nil(t, best)
	})
}
