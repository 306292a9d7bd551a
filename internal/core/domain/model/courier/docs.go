// Package courier provides the Courier directory entry used by the dispatch
// engine. A courier belongs to one branch and exposes the availability flags
// (isActive, isOnline, isAvailable) and last reported location.
//
// The dispatch engine only reads availability; the flags are toggled by the
// courier's own actions.
package courier
