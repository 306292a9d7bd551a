// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"oshxona/internal/core/domain/model/kernel"
	"oshxona/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CourierRepoFactory provides access to courier repository within a transaction.
	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	// BranchRepoFactory provides access to branch repository within a transaction.
	BranchRepoFactory interface {
		BranchRepository() ports.BranchRepository
	}

	// ZoneRepoFactory provides access to zone repository within a transaction.
	ZoneRepoFactory interface {
		ZoneRepository() ports.ZoneRepository
	}

	// OrderUoW manages transactions for order-centric operations. The branch
	// repository rides along because every status change fans out to the
	// branch dashboard channel.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		BranchRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// DispatchUoW manages transactions that coordinate orders, couriers,
	// branches and delivery zones: courier assignment and courier actions.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   courierRepo := uow.CourierRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	DispatchUoW interface {
		TxManager
		OrderRepoFactory
		CourierRepoFactory
		BranchRepoFactory
		ZoneRepoFactory
	}

	// DispatchUoWFactory creates new unit of work instances for dispatch operations.
	DispatchUoWFactory interface {
		Create() DispatchUoW
	}
)

// PickupCompletionScheduler schedules the deferred auto-completion of a pickup
// order after it reaches picked_up. Implementations run the completion off the
// request path and re-check the order state at fire time.
type PickupCompletionScheduler interface {
	Schedule(orderID kernel.UUID)
}
