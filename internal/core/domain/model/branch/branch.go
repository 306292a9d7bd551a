// Package branch provides the Branch entity: the preparation site of an order,
// the origin point for proximity gates and travel-time estimates, and the scope
// of the courier pool.
package branch

import (
	"errors"
	"time"

	"oshxona/internal/core/domain/model/kernel"
	"oshxona/internal/pkg/errs"
	"oshxona/internal/pkg/guard"
)

// ErrBranchIsNotConstructed is returned when using an improperly initialized Branch.
var ErrBranchIsNotConstructed = errors.New("Branch must be created via NewBranch constructor")

// Branch is a restaurant location. Its coordinate is the origin of delivery
// estimates and the reference point of the courier pickup proximity gate; the
// channel ID is the branch's real-time dashboard notification channel.
type Branch struct {
	id        kernel.UUID
	name      string
	location  *kernel.Location
	channelID int64
	isActive  bool
	openHour  int
	closeHour int

	guard guard.ConstructorGuard
}

// NewBranch creates an active Branch. The location may be nil when the branch
// has not been geocoded yet; resolution then falls back to a configured default.
func NewBranch(id kernel.UUID, name string, location *kernel.Location, channelID int64) (*Branch, error) {
	b := &Branch{
		isActive:  true,
		closeHour: 24,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		b.setID(id),
		b.setName(name),
		b.setLocation(location),
	); err != nil {
		return nil, err
	}

	b.channelID = channelID
	return b, nil
}

// RestoreBranch reconstructs a Branch from persistent storage.
func RestoreBranch(
	id kernel.UUID,
	name string,
	location *kernel.Location,
	channelID int64,
	isActive bool,
	openHour int,
	closeHour int,
) (*Branch, error) {
	b := &Branch{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		b.setID(id),
		b.setName(name),
		b.setLocation(location),
		b.setHours(openHour, closeHour),
	); err != nil {
		return nil, err
	}

	b.channelID = channelID
	b.isActive = isActive
	return b, nil
}

// Validate ensures the Branch instance was properly constructed.
func (b *Branch) Validate() error {
	if b == nil || b.guard.Validate(ErrBranchIsNotConstructed) != nil {
		return ErrBranchIsNotConstructed
	}
	return nil
}

// ID returns the branch's unique identifier.
func (b *Branch) ID() kernel.UUID {
	return b.id
}

// Name returns the branch display name.
func (b *Branch) Name() string {
	return b.name
}

// Location returns the branch coordinate, or nil if not geocoded.
func (b *Branch) Location() *kernel.Location {
	return b.location
}

// ChannelID returns the branch dashboard notification channel.
func (b *Branch) ChannelID() int64 {
	return b.channelID
}

// IsActive reports whether the branch takes orders.
func (b *Branch) IsActive() bool {
	return b.isActive
}

// OpenHour returns the opening hour of the working window.
func (b *Branch) OpenHour() int {
	return b.openHour
}

// CloseHour returns the closing hour of the working window.
func (b *Branch) CloseHour() int {
	return b.closeHour
}

// IsOpenAt reports whether the branch is within its working hours at t.
// A close hour of 24 (or equal open/close of 0) means round the clock.
func (b *Branch) IsOpenAt(t time.Time) bool {
	if b.openHour == 0 && (b.closeHour == 24 || b.closeHour == 0) {
		return true
	}
	hour := t.Hour()
	if b.openHour <= b.closeHour {
		return hour >= b.openHour && hour < b.closeHour
	}
	// Overnight window, e.g. 18..02.
	return hour >= b.openHour || hour < b.closeHour
}

func (b *Branch) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Branch) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	b.name = name
	return nil
}

func (b *Branch) setLocation(location *kernel.Location) error {
	if location != nil {
		if err := location.Validate(); err != nil {
			return err
		}
	}
	b.location = location
	return nil
}

func (b *Branch) setHours(openHour int, closeHour int) error {
	if openHour < 0 || openHour > 23 {
		return errs.NewValueIsOutOfRangeError("openHour", openHour, 0, 23)
	}
	if closeHour < 0 || closeHour > 24 {
		return errs.NewValueIsOutOfRangeError("closeHour", closeHour, 0, 24)
	}
	b.openHour = openHour
	b.closeHour = closeHour
	return nil
}
