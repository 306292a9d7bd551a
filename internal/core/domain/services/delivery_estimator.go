package services

import (
	"math"
	"time"

	"oshxona/internal/core/domain/model/kernel"
	"oshxona/internal/core/domain/model/order"
	"oshxona/internal/core/domain/model/zone"
)

// Fallback estimate values returned when an estimate cannot be computed.
// ETA is advisory and never blocks an order, so estimation fails open.
const (
	fallbackPreparationMinutes = 20
	fallbackTravelMinutes      = 30
	fallbackTotalMinutes       = 50
)

// Estimate is a delivery time quote. Travel and total minutes are reported
// rush-hour adjusted.
type Estimate struct {
	PreparationMinutes int
	TravelMinutes      int
	TotalMinutes       int
	DistanceKm         float64
}

// FeeQuote is a delivery fee quote for a coordinate and order amount.
type FeeQuote struct {
	Fee            int64
	IsFreeDelivery bool
	Message        string
}

// DeliveryEstimator is a domain service computing preparation time, travel
// time, rush-hour-adjusted ETA and the delivery fee. Given fixed inputs and a
// fixed time the results are pure and deterministic.
type DeliveryEstimator struct {
	settings Settings
}

// NewDeliveryEstimator creates an estimator with the given tuning settings.
func NewDeliveryEstimator(settings Settings) DeliveryEstimator {
	return DeliveryEstimator{settings: settings}
}

// Estimate quotes the delivery time from origin to customer for the given
// order lines at the given local time.
//
//   - preparation is the maximum item preparation time, or the configured
//     default when no line carries one
//   - travel is distance over the configured base speed
//   - inside a rush window both travel and total are inflated by the
//     rush multiplier
//
// Estimation never fails: any internal error yields the fixed fallback quote.
func (e DeliveryEstimator) Estimate(
	origin kernel.Location,
	customer kernel.Location,
	items []order.Item,
	at time.Time,
) Estimate {
	prepMinutes := make([]int, 0, len(items))
	for _, item := range items {
		prepMinutes = append(prepMinutes, item.PreparationMinutes())
	}
	return e.EstimatePrepared(origin, customer, prepMinutes, at)
}

// EstimatePrepared quotes with bare per-line preparation times instead of
// order lines. Pre-order quotes use it: the customer's basket exists only on
// the client, so the request carries the preparation minutes and nothing else.
func (e DeliveryEstimator) EstimatePrepared(
	origin kernel.Location,
	customer kernel.Location,
	prepMinutes []int,
	at time.Time,
) Estimate {
	distance, err := origin.DistanceKm(customer)
	if err != nil {
		return fallbackEstimate()
	}

	preparation := 0
	for _, minutes := range prepMinutes {
		if minutes > preparation {
			preparation = minutes
		}
	}
	if preparation == 0 {
		preparation = e.settings.DefaultPreparationMinutes
	}

	if e.settings.BaseSpeedKmh <= 0 {
		return fallbackEstimate()
	}
	travel := int(math.Ceil(distance / e.settings.BaseSpeedKmh * 60))

	multiplier := 1.0
	if e.settings.IsRushHour(at.Hour()) {
		multiplier = e.settings.RushHourMultiplier
	}

	return Estimate{
		PreparationMinutes: preparation,
		TravelMinutes:      int(math.Ceil(float64(travel) * multiplier)),
		TotalMinutes:       int(math.Ceil(float64(preparation+travel) * multiplier)),
		DistanceKm:         distance,
	}
}

// Fee quotes the delivery fee from a zone resolution. A missing zone fails
// open: no fee, with an explanatory message for the operator.
func (e DeliveryEstimator) Fee(governingZone *zone.DeliveryZone, orderAmount int64) FeeQuote {
	if governingZone == nil {
		return FeeQuote{
			Fee:     0,
			Message: "no delivery zone covers this address, fee waived",
		}
	}

	if orderAmount >= governingZone.FreeDeliveryThreshold() {
		return FeeQuote{Fee: 0, IsFreeDelivery: true}
	}

	return FeeQuote{Fee: governingZone.DeliveryFee()}
}

func fallbackEstimate() Estimate {
	return Estimate{
		PreparationMinutes: fallbackPreparationMinutes,
		TravelMinutes:      fallbackTravelMinutes,
		TotalMinutes:       fallbackTotalMinutes,
		DistanceKm:         0,
	}
}
