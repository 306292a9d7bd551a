package zone_test

import (
	"testing"
	"time"

	"oshxona/internal/core/domain/model/kernel"
	"oshxona/internal/core/domain/model/zone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLocation(t *testing.T, lat float64, lon float64) kernel.Location {
	t.Helper()
	location, err := kernel.NewLocation(lat, lon)
	require.NoError(t, err)
	return location
}

func TestNewRadiusZone(t *testing.T) {
	center := mustLocation(t, 41.3111, 69.2797)

	t.Run("should create an always-open active zone", func(t *testing.T) {
		z, err := zone.NewRadiusZone(kernel.NewUUID(), "Center", kernel.NewUUID(), center, 3, 10000, 150000, 10)

		require.NoError(t, err)
		assert.Equal(t, zone.GeometryRadius, z.Geometry())
		assert.True(t, z.IsActive())
		assert.Equal(t, 0, z.OpenHour())
		assert.Equal(t, 24, z.CloseHour())
		assert.Equal(t, 10, z.Priority())
	})

	t.Run("should reject a non-positive radius", func(t *testing.T) {
		_, err := zone.NewRadiusZone(kernel.NewUUID(), "Center", kernel.NewUUID(), center, 0, 10000, 150000, 10)
		require.Error(t, err)
	})
}

func TestNewPolygonZone(t *testing.T) {
	square := []kernel.Location{
		mustLocation(t, 41.30, 69.25),
		mustLocation(t, 41.30, 69.30),
		mustLocation(t, 41.35, 69.30),
		mustLocation(t, 41.35, 69.25),
	}

	t.Run("should create a polygon zone", func(t *testing.T) {
		z, err := zone.NewPolygonZone(kernel.NewUUID(), "Square", kernel.NewUUID(), square, 15000, 200000, 5)

		require.NoError(t, err)
		assert.Equal(t, zone.GeometryPolygon, z.Geometry())
		assert.Len(t, z.Polygon(), 4)
	})

	t.Run("should require at least three vertices", func(t *testing.T) {
		_, err := zone.NewPolygonZone(kernel.NewUUID(), "Line", kernel.NewUUID(), square[:2], 15000, 200000, 5)
		require.Error(t, err)
	})
}

func TestZoneContains(t *testing.T) {
	t.Run("radius zone tests great-circle distance to the center", func(t *testing.T) {
		center := mustLocation(t, 41.3111, 69.2797)
		z, err := zone.NewRadiusZone(kernel.NewUUID(), "Center", kernel.NewUUID(), center, 2, 10000, 150000, 10)
		require.NoError(t, err)

		inside, err := z.Contains(mustLocation(t, 41.3150, 69.2800))
		require.NoError(t, err)
		assert.True(t, inside)

		outside, err := z.Contains(mustLocation(t, 41.3600, 69.3400))
		require.NoError(t, err)
		assert.False(t, outside)
	})

	t.Run("polygon zone uses ray casting", func(t *testing.T) {
		square := []kernel.Location{
			mustLocation(t, 41.30, 69.25),
			mustLocation(t, 41.30, 69.30),
			mustLocation(t, 41.35, 69.30),
			mustLocation(t, 41.35, 69.25),
		}
		z, err := zone.NewPolygonZone(kernel.NewUUID(), "Square", kernel.NewUUID(), square, 15000, 200000, 5)
		require.NoError(t, err)

		inside, err := z.Contains(mustLocation(t, 41.32, 69.27))
		require.NoError(t, err)
		assert.True(t, inside)

		outside, err := z.Contains(mustLocation(t, 41.40, 69.27))
		require.NoError(t, err)
		assert.False(t, outside)
	})

	t.Run("should reject an unconstructed point", func(t *testing.T) {
		center := mustLocation(t, 41.3111, 69.2797)
		z, err := zone.NewRadiusZone(kernel.NewUUID(), "Center", kernel.NewUUID(), center, 2, 10000, 150000, 10)
		require.NoError(t, err)

		_, err = z.Contains(kernel.Location{})
		require.Error(t, err)
	})
}

func TestZoneIsActiveAt(t *testing.T) {
	center := mustLocation(t, 41.3111, 69.2797)
	branchID := kernel.NewUUID()

	restore := func(t *testing.T, isActive bool, openHour int, closeHour int) *zone.DeliveryZone {
		t.Helper()
		z, err := zone.RestoreZone(
			kernel.NewUUID(), "Hours", branchID,
			zone.GeometryRadius, center, 3, nil,
			10000, 150000, 10, isActive, openHour, closeHour,
		)
		require.NoError(t, err)
		return z
	}

	at := func(hour int) time.Time {
		return time.Date(2024, 5, 12, hour, 30, 0, 0, time.UTC)
	}

	t.Run("disabled zone is never active", func(t *testing.T) {
		z := restore(t, false, 0, 24)
		assert.False(t, z.IsActiveAt(at(12)))
	})

	t.Run("round-the-clock window", func(t *testing.T) {
		z := restore(t, true, 0, 24)
		assert.True(t, z.IsActiveAt(at(3)))
		assert.True(t, z.IsActiveAt(at(23)))
	})

	t.Run("daytime window is half-open", func(t *testing.T) {
		z := restore(t, true, 9, 22)
		assert.False(t, z.IsActiveAt(at(8)))
		assert.True(t, z.IsActiveAt(at(9)))
		assert.True(t, z.IsActiveAt(at(21)))
		assert.False(t, z.IsActiveAt(at(22)))
	})

	t.Run("overnight window wraps midnight", func(t *testing.T) {
		z := restore(t, true, 22, 6)
		assert.True(t, z.IsActiveAt(at(23)))
		assert.True(t, z.IsActiveAt(at(2)))
		assert.False(t, z.IsActiveAt(at(12)))
	})
}

func TestRestoreZone(t *testing.T) {
	center := mustLocation(t, 41.3111, 69.2797)

	t.Run("should reject unknown geometry", func(t *testing.T) {
		_, err := zone.RestoreZone(
			kernel.NewUUID(), "Broken", kernel.NewUUID(),
			zone.Geometry("hexagon"), center, 3, nil,
			10000, 150000, 10, true, 0, 24,
		)
		require.Error(t, err)
	})

	t.Run("should reject hours outside the day", func(t *testing.T) {
		_, err := zone.RestoreZone(
			kernel.NewUUID(), "Broken", kernel.NewUUID(),
			zone.GeometryRadius, center, 3, nil,
			10000, 150000, 10, true, 25, 24,
		)
		require.Error(t, err)
	})
}
