// Package services provides domain services that orchestrate business
// decisions across multiple domain entities in the dispatch engine. It
// implements logic that doesn't naturally belong to a single aggregate root.
//
// The package includes:
//   - CourierSelector: load-balanced courier selection for a branch
//   - ZoneResolver: resolving a coordinate to its governing branch
//   - DeliveryEstimator: preparation/travel time and delivery fee computation
//   - Settings: the injectable dispatch tuning constants
package services
