package services

import (
	"context"
	"errors"

	"oshxona/internal/core/domain/model/courier"
	"oshxona/internal/core/domain/model/kernel"
)

// ErrNoCourierAvailable is returned when a branch has no courier that is
// active, online and available. This is a recoverable condition: the caller may
// hold the order and retry later.
var ErrNoCourierAvailable = errors.New("no courier available")

// ActiveOrderCounter reports how many orders currently occupy a courier.
// Satisfied by ports.OrderRepository.
type ActiveOrderCounter interface {
	CountActiveByCourier(ctx context.Context, courierID kernel.UUID) (int64, error)
}

// CourierSelector is a domain service that picks the least-loaded courier of a
// branch.
//
// Selection algorithm:
//   - Candidates are the branch couriers that are online and available
//   - Each candidate's load is its active-order count (assigned, on_delivery)
//   - The candidate with the minimum count wins; ties go to the first candidate
//     encountered in iteration order — an intentionally simple tie-break, not a
//     scoring system
type CourierSelector struct{}

// NewCourierSelector creates a new CourierSelector instance.
func NewCourierSelector() CourierSelector {
	return CourierSelector{}
}

// Best returns the least-loaded courier among the candidates.
// Returns ErrNoCourierAvailable when the candidate list is empty.
func (s CourierSelector) Best(
	ctx context.Context,
	candidates []*courier.Courier,
	counter ActiveOrderCounter,
) (*courier.Courier, error) {
	var (
		best      *courier.Courier
		bestCount int64 = -1
	)

	for _, c := range candidates {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if !c.IsActive() || !c.IsOnline() || !c.IsAvailable() {
			continue
		}

		count, err := counter.CountActiveByCourier(ctx, c.ID())
		if err != nil {
			return nil, err
		}

		if best == nil || count < bestCount {
			best = c
			bestCount = count
		}
	}

	if best == nil {
		return nil, ErrNoCourierAvailable
	}
	return best, nil
}
