package queries

import (
	"context"
	"time"

	"oshxona/internal/core/domain/model/branch"
	"oshxona/internal/core/domain/model/kernel"
	"oshxona/internal/core/domain/services"
	"oshxona/internal/core/ports"
)

// GetDeliveryEstimateQueryHandler produces a pre-order delivery quote. It
// resolves the governing branch through the active zones, estimates the time
// from the branch to the destination and prices the delivery from the zone's
// fee schedule. Estimation never fails hard: an unresolvable address falls
// back to the fixed quote with the fee waived.
type GetDeliveryEstimateQueryHandler struct {
	zones     ports.ZoneRepository
	branches  ports.BranchRepository
	resolver  services.ZoneResolver
	estimator services.DeliveryEstimator
	clock     ports.Clock
}

// NewGetDeliveryEstimateQueryHandler creates a handler for delivery quotes.
func NewGetDeliveryEstimateQueryHandler(
	zones ports.ZoneRepository,
	branches ports.BranchRepository,
	resolver services.ZoneResolver,
	estimator services.DeliveryEstimator,
	clock ports.Clock,
) GetDeliveryEstimateQueryHandler {
	return GetDeliveryEstimateQueryHandler{
		zones:     zones,
		branches:  branches,
		resolver:  resolver,
		estimator: estimator,
		clock:     clock,
	}
}

// Handle resolves and quotes the delivery for the query's destination.
func (h GetDeliveryEstimateQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryEstimateQuery,
) (GetDeliveryEstimateQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDeliveryEstimateQueryResponse{}, err
	}

	zones, err := h.zones.GetAllActive(ctx)
	if err != nil {
		return GetDeliveryEstimateQueryResponse{}, err
	}
	branches, err := h.branches.GetAllActive(ctx)
	if err != nil {
		return GetDeliveryEstimateQueryResponse{}, err
	}

	now := h.clock.Now()
	resolution, err := h.resolver.Resolve(query.Destination(), now, zones, branches)
	if err != nil {
		return GetDeliveryEstimateQueryResponse{}, err
	}

	estimate := h.estimate(resolution, branches, query, now)
	fee := h.estimator.Fee(resolution.Zone, query.OrderAmount())

	return GetDeliveryEstimateQueryResponse{
		BranchID:           resolution.BranchID,
		Source:             resolution.Source,
		DistanceKm:         estimate.DistanceKm,
		PreparationMinutes: estimate.PreparationMinutes,
		TravelMinutes:      estimate.TravelMinutes,
		TotalMinutes:       estimate.TotalMinutes,
		Fee:                fee.Fee,
		IsFreeDelivery:     fee.IsFreeDelivery,
		Message:            fee.Message,
	}, nil
}

// estimate finds the serving branch's coordinate and quotes travel from there.
// Without a resolvable origin the estimator's fixed fallback applies.
func (h GetDeliveryEstimateQueryHandler) estimate(
	resolution services.Resolution,
	branches []*branch.Branch,
	query GetDeliveryEstimateQuery,
	at time.Time,
) services.Estimate {
	origin := h.originOf(resolution, branches)
	if origin == nil {
		// an invalid origin forces the estimator's fallback path
		return h.estimator.EstimatePrepared(kernel.Location{}, query.Destination(), query.PrepMinutes(), at)
	}
	return h.estimator.EstimatePrepared(*origin, query.Destination(), query.PrepMinutes(), at)
}

func (h GetDeliveryEstimateQueryHandler) originOf(
	resolution services.Resolution,
	branches []*branch.Branch,
) *kernel.Location {
	if resolution.BranchID == nil {
		return nil
	}
	for _, b := range branches {
		if b.ID().IsEqual(*resolution.BranchID) {
			return b.Location()
		}
	}
	return nil
}
