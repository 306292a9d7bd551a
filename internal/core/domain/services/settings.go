package services

import "time"

// Settings carries the dispatch tuning constants. The core depends on these
// values but does not own them: they are configuration, injectable for tests
// and overridable from the environment.
type Settings struct {
	// PickupProximityKm is the maximum courier distance from the branch for the
	// pick-up action.
	PickupProximityKm float64
	// DeliverProximityKm is the maximum courier distance from the customer for
	// the deliver action.
	DeliverProximityKm float64
	// BaseSpeedKmh is the travel speed used for ETA computation.
	// NOTE: 5 km/h reads as a walking pace rather than vehicle speed; the value
	// reproduces the reference behaviour and awaits product confirmation, which
	// is exactly why it lives in configuration instead of a constant.
	BaseSpeedKmh float64
	// DefaultPreparationMinutes applies when no item carries a preparation time.
	DefaultPreparationMinutes int
	// RushHourMultiplier inflates the ETA inside the rush windows.
	RushHourMultiplier float64
	// RushHours lists the inclusive local-hour windows of rush traffic.
	RushHours [][2]int
	// AutoCompleteGrace is the delay before a picked-up pickup order is
	// auto-completed if untouched.
	AutoCompleteGrace time.Duration
}

// DefaultSettings returns the reference dispatch configuration.
func DefaultSettings() Settings {
	return Settings{
		PickupProximityKm:         0.2,
		DeliverProximityKm:        0.1,
		BaseSpeedKmh:              5,
		DefaultPreparationMinutes: 15,
		RushHourMultiplier:        1.3,
		RushHours:                 [][2]int{{12, 14}, {18, 20}},
		AutoCompleteGrace:         10 * time.Second,
	}
}

// IsRushHour reports whether the local hour falls inside a rush window.
func (s Settings) IsRushHour(hour int) bool {
	for _, window := range s.RushHours {
		if hour >= window[0] && hour <= window[1] {
			return true
		}
	}
	return false
}
