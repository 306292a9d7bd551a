package queries

import (
	"errors"
	"fmt"

	"oshxona/internal/core/domain/model/kernel"
	"oshxona/internal/core/domain/services"
	"oshxona/internal/pkg/errs"
	"oshxona/internal/pkg/guard"
)

var ErrGetDeliveryEstimateQueryIsNotConstructed = errors.New(
	"GetDeliveryEstimateQuery must be created via NewGetDeliveryEstimateQuery constructor",
)

// GetDeliveryEstimateQuery quotes a delivery before the order is placed: which
// branch would serve the address, how long the delivery would take and what it
// would cost at the given basket amount. The basket exists only on the client
// at this point, so the query carries the per-line preparation minutes rather
// than order lines; an empty list means the default preparation time applies.
//
// Example:
//
//	location, _ := kernel.NewLocation(41.3111, 69.2797)
//	query, err := NewGetDeliveryEstimateQuery(location, 120000, []int{20, 5})
//	if err != nil {
//	    return err
//	}
//	quote, err := handler.Handle(ctx, query)
type GetDeliveryEstimateQuery struct { //nolint:recvcheck //using for validation
	destination kernel.Location
	orderAmount int64
	prepMinutes []int

	guard guard.ConstructorGuard
}

// NewGetDeliveryEstimateQuery creates a validated estimate query.
// The amount is the prospective basket total used for the free-delivery check.
func NewGetDeliveryEstimateQuery(
	destination kernel.Location,
	orderAmount int64,
	prepMinutes []int,
) (GetDeliveryEstimateQuery, error) {
	query := GetDeliveryEstimateQuery{
		guard:       guard.NewConstructorGuard(),
		orderAmount: orderAmount,
	}

	if err := errors.Join(
		query.setDestination(destination),
		query.setPrepMinutes(prepMinutes),
	); err != nil {
		return GetDeliveryEstimateQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetDeliveryEstimateQueryIsNotConstructed if validation fails.
func (q GetDeliveryEstimateQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryEstimateQueryIsNotConstructed)
}

// Destination returns the prospective delivery coordinate.
func (q GetDeliveryEstimateQuery) Destination() kernel.Location {
	return q.destination
}

// OrderAmount returns the prospective basket total.
func (q GetDeliveryEstimateQuery) OrderAmount() int64 {
	return q.orderAmount
}

// PrepMinutes returns a copy of the basket's per-line preparation minutes.
func (q GetDeliveryEstimateQuery) PrepMinutes() []int {
	return append([]int(nil), q.prepMinutes...)
}

func (q *GetDeliveryEstimateQuery) setDestination(destination kernel.Location) error {
	if err := destination.Validate(); err != nil {
		return err
	}

	q.destination = destination
	return nil
}

func (q *GetDeliveryEstimateQuery) setPrepMinutes(prepMinutes []int) error {
	for _, minutes := range prepMinutes {
		if minutes < 0 {
			return errs.NewValueIsInvalidErrorWithCause("prepMinutes",
				fmt.Errorf("%d is negative", minutes))
		}
	}

	q.prepMinutes = append([]int(nil), prepMinutes...)
	return nil
}

// GetDeliveryEstimateQueryResponse is the combined time and fee quote.
type GetDeliveryEstimateQueryResponse struct {
	BranchID           *kernel.UUID
	Source             services.ResolutionSource
	DistanceKm         float64
	PreparationMinutes int
	TravelMinutes      int
	TotalMinutes       int
	Fee                int64
	IsFreeDelivery     bool
	Message            string
}
