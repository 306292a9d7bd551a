// Package zone provides the DeliveryZone entity: a geographic area bound to one
// branch that prices deliveries inside it. Zones are ordered by priority at
// lookup time; the first active zone containing a point governs it.
package zone

import (
	"errors"
	"fmt"
	"time"

	"oshxona/internal/core/domain/model/kernel"
	"oshxona/internal/pkg/errs"
	"oshxona/internal/pkg/guard"
)

// ErrZoneIsNotConstructed is returned when using an improperly initialized DeliveryZone.
var ErrZoneIsNotConstructed = errors.New("DeliveryZone must be created via NewRadiusZone, NewPolygonZone or RestoreZone")

// Geometry distinguishes how a zone's area is described.
type Geometry string

const (
	// GeometryRadius zones are a circle around a center point.
	GeometryRadius Geometry = "radius"
	// GeometryPolygon zones are an arbitrary closed polygon.
	GeometryPolygon Geometry = "polygon"
)

// DeliveryZone is a priced delivery area bound to one branch.
//
// Business rules:
//   - A zone covers a point when its geometry contains it and the zone is
//     active within its hours
//   - Orders at or above the free-delivery threshold pay no fee
//   - When several zones cover a point the highest priority wins
type DeliveryZone struct {
	id                    kernel.UUID
	name                  string
	branchID              kernel.UUID
	geometry              Geometry
	center                kernel.Location
	radiusKm              float64
	polygon               []kernel.Location
	deliveryFee           int64
	freeDeliveryThreshold int64
	priority              int
	isActive              bool
	openHour              int
	closeHour             int

	guard guard.ConstructorGuard
}

// NewRadiusZone creates an always-open radius zone.
func NewRadiusZone(
	id kernel.UUID,
	name string,
	branchID kernel.UUID,
	center kernel.Location,
	radiusKm float64,
	deliveryFee int64,
	freeDeliveryThreshold int64,
	priority int,
) (*DeliveryZone, error) {
	z := &DeliveryZone{
		geometry:  GeometryRadius,
		isActive:  true,
		closeHour: 24,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		z.setID(id),
		z.setName(name),
		z.setBranchID(branchID),
		center.Validate(),
		z.setRadiusKm(radiusKm),
		z.setFees(deliveryFee, freeDeliveryThreshold),
	); err != nil {
		return nil, err
	}

	z.center = center
	z.priority = priority
	return z, nil
}

// NewPolygonZone creates an always-open polygon zone. The polygon needs at
// least three vertices; it is treated as closed (last vertex joins the first).
func NewPolygonZone(
	id kernel.UUID,
	name string,
	branchID kernel.UUID,
	polygon []kernel.Location,
	deliveryFee int64,
	freeDeliveryThreshold int64,
	priority int,
) (*DeliveryZone, error) {
	z := &DeliveryZone{
		geometry:  GeometryPolygon,
		isActive:  true,
		closeHour: 24,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		z.setID(id),
		z.setName(name),
		z.setBranchID(branchID),
		z.setPolygon(polygon),
		z.setFees(deliveryFee, freeDeliveryThreshold),
	); err != nil {
		return nil, err
	}

	z.priority = priority
	return z, nil
}

// RestoreZone reconstructs a DeliveryZone from persistent storage.
func RestoreZone(
	id kernel.UUID,
	name string,
	branchID kernel.UUID,
	geometry Geometry,
	center kernel.Location,
	radiusKm float64,
	polygon []kernel.Location,
	deliveryFee int64,
	freeDeliveryThreshold int64,
	priority int,
	isActive bool,
	openHour int,
	closeHour int,
) (*DeliveryZone, error) {
	var (
		z   *DeliveryZone
		err error
	)

	switch geometry {
	case GeometryRadius:
		z, err = NewRadiusZone(id, name, branchID, center, radiusKm, deliveryFee, freeDeliveryThreshold, priority)
	case GeometryPolygon:
		z, err = NewPolygonZone(id, name, branchID, polygon, deliveryFee, freeDeliveryThreshold, priority)
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause("geometry",
			fmt.Errorf("%q is not a valid zone geometry", string(geometry)))
	}
	if err != nil {
		return nil, err
	}

	if openHour < 0 || openHour > 23 {
		return nil, errs.NewValueIsOutOfRangeError("openHour", openHour, 0, 23)
	}
	if closeHour < 0 || closeHour > 24 {
		return nil, errs.NewValueIsOutOfRangeError("closeHour", closeHour, 0, 24)
	}

	z.isActive = isActive
	z.openHour = openHour
	z.closeHour = closeHour
	return z, nil
}

// Validate ensures the DeliveryZone instance was properly constructed.
func (z *DeliveryZone) Validate() error {
	if z == nil || z.guard.Validate(ErrZoneIsNotConstructed) != nil {
		return ErrZoneIsNotConstructed
	}
	return nil
}

// ID returns the zone's unique identifier.
func (z *DeliveryZone) ID() kernel.UUID {
	return z.id
}

// Name returns the zone display name.
func (z *DeliveryZone) Name() string {
	return z.name
}

// BranchID returns the branch this zone is bound to.
func (z *DeliveryZone) BranchID() kernel.UUID {
	return z.branchID
}

// Geometry returns how the zone's area is described.
func (z *DeliveryZone) Geometry() Geometry {
	return z.geometry
}

// Center returns the circle center of a radius zone.
func (z *DeliveryZone) Center() kernel.Location {
	return z.center
}

// RadiusKm returns the circle radius of a radius zone.
func (z *DeliveryZone) RadiusKm() float64 {
	return z.radiusKm
}

// Polygon returns a copy of the polygon vertices of a polygon zone.
func (z *DeliveryZone) Polygon() []kernel.Location {
	return append([]kernel.Location(nil), z.polygon...)
}

// DeliveryFee returns the fee charged for deliveries inside the zone.
func (z *DeliveryZone) DeliveryFee() int64 {
	return z.deliveryFee
}

// FreeDeliveryThreshold returns the order amount at which delivery is free.
func (z *DeliveryZone) FreeDeliveryThreshold() int64 {
	return z.freeDeliveryThreshold
}

// Priority returns the lookup priority; higher wins.
func (z *DeliveryZone) Priority() int {
	return z.priority
}

// IsActive reports whether the zone is enabled at all.
func (z *DeliveryZone) IsActive() bool {
	return z.isActive
}

// OpenHour returns the opening hour of the zone's active window.
func (z *DeliveryZone) OpenHour() int {
	return z.openHour
}

// CloseHour returns the closing hour of the zone's active window.
func (z *DeliveryZone) CloseHour() int {
	return z.closeHour
}

// IsActiveAt reports whether the zone is enabled and within its hours at t.
func (z *DeliveryZone) IsActiveAt(t time.Time) bool {
	if !z.isActive {
		return false
	}
	if z.openHour == 0 && (z.closeHour == 24 || z.closeHour == 0) {
		return true
	}
	hour := t.Hour()
	if z.openHour <= z.closeHour {
		return hour >= z.openHour && hour < z.closeHour
	}
	return hour >= z.openHour || hour < z.closeHour
}

// Contains reports whether the zone geometry covers the given point.
// Radius zones test great-circle distance to the center; polygon zones use
// ray casting over the vertices.
func (z *DeliveryZone) Contains(point kernel.Location) (bool, error) {
	if err := errors.Join(z.Validate(), point.Validate()); err != nil {
		return false, err
	}

	if z.geometry == GeometryRadius {
		distance, err := z.center.DistanceKm(point)
		if err != nil {
			return false, err
		}
		return distance <= z.radiusKm, nil
	}

	return polygonContains(z.polygon, point), nil
}

// polygonContains runs the even-odd ray casting test in lat/lon space.
// Good enough for city-scale zones where the curvature is negligible.
func polygonContains(polygon []kernel.Location, point kernel.Location) bool {
	inside := false
	j := len(polygon) - 1
	for i := 0; i < len(polygon); i++ {
		yi, xi := polygon[i].Latitude(), polygon[i].Longitude()
		yj, xj := polygon[j].Latitude(), polygon[j].Longitude()

		if (yi > point.Latitude()) != (yj > point.Latitude()) &&
			point.Longitude() < (xj-xi)*(point.Latitude()-yi)/(yj-yi)+xi {
			inside = !inside
		}
		j = i
	}
	return inside
}

func (z *DeliveryZone) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	z.id = id
	return nil
}

func (z *DeliveryZone) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	z.name = name
	return nil
}

func (z *DeliveryZone) setBranchID(branchID kernel.UUID) error {
	if err := branchID.Validate(); err != nil {
		return err
	}
	z.branchID = branchID
	return nil
}

func (z *DeliveryZone) setRadiusKm(radiusKm float64) error {
	if radiusKm <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("radiusKm",
			fmt.Errorf("%f is not greater than 0", radiusKm))
	}
	z.radiusKm = radiusKm
	return nil
}

func (z *DeliveryZone) setPolygon(polygon []kernel.Location) error {
	if len(polygon) < 3 {
		return errs.NewValueIsInvalidErrorWithCause("polygon",
			fmt.Errorf("%d vertices, at least 3 required", len(polygon)))
	}
	for _, vertex := range polygon {
		if err := vertex.Validate(); err != nil {
			return err
		}
	}
	z.polygon = append([]kernel.Location(nil), polygon...)
	return nil
}

func (z *DeliveryZone) setFees(deliveryFee int64, freeDeliveryThreshold int64) error {
	if deliveryFee < 0 {
		return errs.NewValueIsInvalidErrorWithCause("deliveryFee",
			fmt.Errorf("%d is negative", deliveryFee))
	}
	if freeDeliveryThreshold < 0 {
		return errs.NewValueIsInvalidErrorWithCause("freeDeliveryThreshold",
			fmt.Errorf("%d is negative", freeDeliveryThreshold))
	}
	z.deliveryFee = deliveryFee
	z.freeDeliveryThreshold = freeDeliveryThreshold
	return nil
}
