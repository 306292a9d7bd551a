package courier

import (
	"errors"
	"fmt"
	"time"

	"oshxona/internal/core/domain/model/kernel"
	"oshxona/internal/pkg/errs"
	"oshxona/internal/pkg/guard"
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier or RestoreCourier constructor")
)

const (
	ratingMin = 0.0
	ratingMax = 5.0
)

// Courier is a directory entry for a delivery courier. It belongs to one branch
// and carries the availability flags the dispatch engine reads when selecting a
// candidate. The courier toggles isOnline/isAvailable through their own actions;
// the dispatch engine only reads them.
//
// Business rules:
//   - A courier must have a valid UUID, a non-empty name and an owning branch
//   - Rating is within [0..5]
//   - Only active couriers may be assigned to orders
type Courier struct {
	id          kernel.UUID
	name        string
	branchID    kernel.UUID
	isActive    bool
	isOnline    bool
	isAvailable bool
	rating      float64
	location    *kernel.Location
	locationAt  *time.Time

	guard guard.ConstructorGuard
}

// NewCourier creates a new active Courier attached to a branch.
// New couriers start offline and unavailable until they report in.
func NewCourier(id kernel.UUID, name string, branchID kernel.UUID) (*Courier, error) {
	c := &Courier{
		isActive: true,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setBranchID(branchID),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCourier reconstructs a Courier from persistent storage.
func RestoreCourier(
	id kernel.UUID,
	name string,
	branchID kernel.UUID,
	isActive bool,
	isOnline bool,
	isAvailable bool,
	rating float64,
	location *kernel.Location,
	locationAt *time.Time,
) (*Courier, error) {
	c := &Courier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setBranchID(branchID),
		c.setRating(rating),
	); err != nil {
		return nil, err
	}

	c.isActive = isActive
	c.isOnline = isOnline
	c.isAvailable = isAvailable
	c.location = location
	c.locationAt = locationAt

	return c, nil
}

// Validate ensures the Courier instance was properly constructed.
func (c *Courier) Validate() error {
	if c == nil || c.guard.Validate(ErrCourierIsNotConstructed) != nil {
		return ErrCourierIsNotConstructed
	}
	return nil
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the courier's display name.
func (c *Courier) Name() string {
	return c.name
}

// BranchID returns the branch whose courier pool this courier belongs to.
func (c *Courier) BranchID() kernel.UUID {
	return c.branchID
}

// IsActive reports whether the courier account is enabled.
func (c *Courier) IsActive() bool {
	return c.isActive
}

// IsOnline reports whether the courier is on shift.
func (c *Courier) IsOnline() bool {
	return c.isOnline
}

// IsAvailable reports whether the courier accepts new orders.
func (c *Courier) IsAvailable() bool {
	return c.isAvailable
}

// Rating returns the courier's rating in [0..5].
func (c *Courier) Rating() float64 {
	return c.rating
}

// Location returns the last reported position, or nil if never reported.
func (c *Courier) Location() *kernel.Location {
	return c.location
}

// LocationAt returns the timestamp of the last reported position.
func (c *Courier) LocationAt() *time.Time {
	return c.locationAt
}

// SetOnline toggles the on-shift flag. Going offline also drops availability.
func (c *Courier) SetOnline(online bool) {
	c.isOnline = online
	if !online {
		c.isAvailable = false
	}
}

// SetAvailable toggles readiness for new orders.
func (c *Courier) SetAvailable(available bool) {
	c.isAvailable = available
}

// Deactivate disables the courier account.
func (c *Courier) Deactivate() {
	c.isActive = false
	c.isOnline = false
	c.isAvailable = false
}

// UpdateLocation records the courier's current position.
func (c *Courier) UpdateLocation(location kernel.Location, at time.Time) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = &location
	c.locationAt = &at
	return nil
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Courier) setBranchID(branchID kernel.UUID) error {
	if err := branchID.Validate(); err != nil {
		return err
	}
	c.branchID = branchID
	return nil
}

func (c *Courier) setRating(rating float64) error {
	if rating < ratingMin || rating > ratingMax {
		return errs.NewValueIsOutOfRangeError("rating", fmt.Sprintf("%.1f", rating), ratingMin, ratingMax)
	}
	c.rating = rating
	return nil
}
