// Package queries contains read-only operations for the dispatch dashboards.
// Queries bypass the aggregates and read projections straight from the
// database, following the CQRS split: commands go through the domain model,
// queries do not.
package queries

import (
	"errors"
	"time"

	"oshxona/internal/core/domain/model/kernel"
	"oshxona/internal/core/domain/model/order"
	"oshxona/internal/pkg/guard"
)

var ErrGetBranchActiveOrdersQueryIsNotConstructed = errors.New(
	"GetBranchActiveOrdersQuery must be created via NewGetBranchActiveOrdersQuery constructor",
)

// GetBranchActiveOrdersQuery retrieves the orders a branch is currently
// working on: everything that is not yet delivered, completed or cancelled.
// Feeds the branch dashboard channel.
//
// Example:
//
//	query, err := NewGetBranchActiveOrdersQuery(branchID)
//	if err != nil {
//	    return err
//	}
//	active, err := handler.Handle(ctx, query)
type GetBranchActiveOrdersQuery struct { //nolint:recvcheck //using for validation
	branchID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetBranchActiveOrdersQuery creates a query for one branch's active orders.
func NewGetBranchActiveOrdersQuery(branchID kernel.UUID) (GetBranchActiveOrdersQuery, error) {
	query := GetBranchActiveOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setBranchID(branchID); err != nil {
		return GetBranchActiveOrdersQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetBranchActiveOrdersQueryIsNotConstructed if validation fails.
func (q GetBranchActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetBranchActiveOrdersQueryIsNotConstructed)
}

// BranchID returns the branch whose workload is requested.
func (q GetBranchActiveOrdersQuery) BranchID() kernel.UUID {
	return q.branchID
}

func (q *GetBranchActiveOrdersQuery) setBranchID(branchID kernel.UUID) error {
	if err := branchID.Validate(); err != nil {
		return err
	}

	q.branchID = branchID
	return nil
}

// GetBranchActiveOrdersQueryResponse is one dashboard row: an order in flight
// at the branch, with its courier when one is attached.
type GetBranchActiveOrdersQueryResponse struct {
	ID        kernel.UUID
	Type      order.Type
	Status    order.Status
	CourierID *kernel.UUID
	CreatedAt time.Time
}
