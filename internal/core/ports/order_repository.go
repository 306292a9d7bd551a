// Package ports defines the contracts between the domain core and the
// infrastructure adapters: repositories, the unit of work, the outbound
// notifier and the clock. These interfaces enable dependency inversion and
// testability.
package ports

import (
	"context"

	"oshxona/internal/core/domain/model/kernel"
	"oshxona/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Update persists the whole aggregate — status, history and courier flow — as
// one atomic write; partial writes must never be observable.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate atomically.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order including history and courier flow.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// CountActiveByCourier counts orders assigned to the courier in statuses that
	// occupy them (assigned, on_delivery). Used for load-balanced selection.
	CountActiveByCourier(ctx context.Context, courierID kernel.UUID) (int64, error)

	// GetUnassignedDelivery retrieves delivery orders that are neither closed nor
	// assigned to a courier. Used by the dispatch retry job.
	GetUnassignedDelivery(ctx context.Context) ([]*order.Order, error)
}
