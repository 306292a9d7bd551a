package services

import (
	"sort"
	"time"

	"oshxona/internal/core/domain/model/branch"
	"oshxona/internal/core/domain/model/kernel"
	"oshxona/internal/core/domain/model/zone"
)

// ResolutionSource names how a coordinate was resolved to a branch.
type ResolutionSource string

const (
	// SourceZone means an active delivery zone contains the coordinate.
	SourceZone ResolutionSource = "zone"
	// SourceRadius means no zone matched and the nearest active branch governs.
	SourceRadius ResolutionSource = "radius"
	// SourceNone means there is nothing to resolve to. This is a soft failure:
	// callers hold the order or surface an operator prompt, they do not crash.
	SourceNone ResolutionSource = "none"
)

// Resolution is the outcome of resolving a coordinate to its governing branch.
type Resolution struct {
	BranchID   *kernel.UUID
	Zone       *zone.DeliveryZone
	Source     ResolutionSource
	DistanceKm float64
}

// ZoneResolver is a domain service that finds the branch governing a
// coordinate: first by active zone containment in priority order, then by
// nearest active branch, and finally SourceNone when no branch exists.
type ZoneResolver struct {
	// fallbackLocation substitutes for branches that have no coordinate.
	fallbackLocation *kernel.Location
}

// NewZoneResolver creates a resolver. fallbackLocation may be nil, in which
// case branches without a coordinate are skipped during the nearest search.
func NewZoneResolver(fallbackLocation *kernel.Location) ZoneResolver {
	return ZoneResolver{fallbackLocation: fallbackLocation}
}

// Resolve finds the governing branch for a coordinate at the given time.
//
//  1. Zones are scanned in priority-descending order; the first zone whose
//     geometry contains the point and whose hours are active wins.
//  2. Otherwise the nearest active branch by great-circle distance wins.
//  3. With no branches at all the resolution is SourceNone with a nil branch.
func (r ZoneResolver) Resolve(
	point kernel.Location,
	at time.Time,
	zones []*zone.DeliveryZone,
	branches []*branch.Branch,
) (Resolution, error) {
	if err := point.Validate(); err != nil {
		return Resolution{}, err
	}

	ordered := append([]*zone.DeliveryZone(nil), zones...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority() > ordered[j].Priority()
	})

	for _, z := range ordered {
		if !z.IsActiveAt(at) {
			continue
		}
		contains, err := z.Contains(point)
		if err != nil {
			return Resolution{}, err
		}
		if contains {
			branchID := z.BranchID()
			return Resolution{BranchID: &branchID, Zone: z, Source: SourceZone}, nil
		}
	}

	return r.nearestBranch(point, branches)
}

func (r ZoneResolver) nearestBranch(point kernel.Location, branches []*branch.Branch) (Resolution, error) {
	var (
		nearest  *branch.Branch
		bestDist float64
	)

	for _, b := range branches {
		if !b.IsActive() {
			continue
		}

		origin := b.Location()
		if origin == nil {
			origin = r.fallbackLocation
		}
		if origin == nil {
			continue
		}

		distance, err := origin.DistanceKm(point)
		if err != nil {
			return Resolution{}, err
		}

		if nearest == nil || distance < bestDist {
			nearest = b
			bestDist = distance
		}
	}

	if nearest == nil {
		return Resolution{Source: SourceNone}, nil
	}

	branchID := nearest.ID()
	return Resolution{BranchID: &branchID, Source: SourceRadius, DistanceKm: bestDist}, nil
}
