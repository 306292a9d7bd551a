package kernel

import (
	"fmt"

	"oshxona/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating a zero-value UUID that
// bypassed the constructor functions.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID is the identifier value object shared by every aggregate: orders,
// couriers, branches and delivery zones all carry one. It wraps
// github.com/google/uuid so the domain never depends on the library type
// directly, and so the zero value can be told apart from a constructed id.
//
// The zero value is invalid; build instances through NewUUID, UUIDFromString
// or UUIDFromBytes. UUID is immutable and safe for concurrent reads.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	courierID, err := kernel.UUIDFromString(request.CourierID)
//	if err != nil {
//	    return errs.NewValueIsInvalidErrorWithCause("courierId", err)
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new random UUID (version 4). This is how freshly placed
// orders and newly registered couriers get their identity.
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// UUIDFromString parses a UUID from its string representation, e.g. an order
// id arriving in a URL path or a courier id in a request body. The standard
// textual formats (plain, braced, urn) are accepted.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes creates a UUID from a 16-byte slice, as read back from binary
// storage. The nil UUID is rejected the same way a zero value is.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// String returns the canonical "xxxxxxxx-xxxx-..." form, used in logs, API
// responses and database columns alike. A zero value renders as the nil UUID.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes exposes the underlying uuid.UUID for persistence adapters that map
// the column type directly. Domain code should not need it.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether both UUIDs carry the same value. This is the
// comparison behind courier idempotency checks and aggregate identity.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the zero (nil) UUID. Aggregate
// constructors call this on every incoming identifier.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
