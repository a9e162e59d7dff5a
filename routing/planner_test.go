package routing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locatour/tourguide/core"
	"github.com/locatour/tourguide/storage"
	"github.com/locatour/tourguide/storage/memory"
)

func testPlanner(t *testing.T) *Planner {
	t.Helper()
	store, err := memory.NewRecordStore([]core.Record{
		{Id: "TS01", Name: "Saud Beach", Type: core.TypeTouristSpot, Location: "Pagudpud"},
		{Id: "TS02", Name: "Paoay Church", Type: core.TypeTouristSpot, Location: "Paoay"},
		{Id: "CU01", Name: "Batac Empanada", Type: core.TypeCuisine, Location: "Batac", NearestHub: "Batac Terminal"},
		{Id: "TS99", Name: "Hidden Cave", Type: core.TypeTouristSpot, Location: "Unknown Barangay", NearestHub: "Laoag"},
		{Id: "TS98", Name: "Lost Spring", Type: core.TypeTouristSpot, Location: "Unknown Barangay", NearestHub: "n/a"},
	})
	require.NoError(t, err)
	planner, err := NewPlanner(store)
	require.NoError(t, err)
	return planner
}

func TestHaversine(t *testing.T) {
	// Laoag to Pagudpud is roughly 45 km as the crow flies
	d := Haversine(18.1984, 120.5936, 18.5667, 120.7833)
	assert.InDelta(t, 45, d, 5)

	t.Run("zero distance", func(t *testing.T) {
		assert.Zero(t, Haversine(18.0, 120.0, 18.0, 120.0))
	})
}

func TestFares(t *testing.T) {
	assert.Equal(t, 35.0, TricycleFare(2))
	assert.Equal(t, 12.0, JeepneyFare(3))
	assert.Equal(t, 18.0, JeepneyFare(8))
	assert.Equal(t, 20.0, VanFare(5))
	assert.Equal(t, 30.0, VanFare(10))
	assert.Equal(t, 18.0, BusFare(4))
	assert.Equal(t, 27.0, BusFare(10))
}

func TestCalculateRouteTouristSpot(t *testing.T) {
	planner := testPlanner(t)
	ctx := context.Background()

	t.Run("walking distance", func(t *testing.T) {
		// Start essentially at Pagudpud
		route, err := planner.CalculateRoute(ctx, 18.5665, 120.7830, "TS01")
		require.NoError(t, err)
		require.Len(t, route.Steps, 1)
		assert.Equal(t, ModeWalking, route.Steps[0].TransportMode)
		assert.Zero(t, route.TotalFare)
	})

	t.Run("scheduled route via terminal", func(t *testing.T) {
		// Start next to the Laoag terminal; Laoag to Pagudpud has a van route
		route, err := planner.CalculateRoute(ctx, 18.1950, 120.5921, "TS01")
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(route.Steps), 3)
		assert.Equal(t, ModeWalking, route.Steps[0].TransportMode)
		assert.Equal(t, ModeVan, route.Steps[1].TransportMode)
		assert.Equal(t, 150.0, route.Steps[1].Fare)
		assert.Empty(t, route.Warnings)
		// final step is arrival
		last := route.Steps[len(route.Steps)-1]
		assert.Contains(t, last.Instruction, "Saud Beach")
	})

	t.Run("unknown connection falls back to estimate", func(t *testing.T) {
		// Paoay Terminal to Pagudpud has no scheduled route
		route, err := planner.CalculateRoute(ctx, 18.0540, 120.5281, "TS01")
		require.NoError(t, err)
		assert.Contains(t, route.Warnings, "No direct route found. Fare is estimated.")
	})
}

func TestCalculateRouteCuisine(t *testing.T) {
	planner := testPlanner(t)
	ctx := context.Background()

	t.Run("short hop", func(t *testing.T) {
		route, err := planner.CalculateRoute(ctx, 18.0556, 120.5640, "CU01")
		require.NoError(t, err)
		assert.Equal(t, core.TypeCuisine, route.ItemType)
		require.NotEmpty(t, route.Warnings)
		assert.Contains(t, route.Warnings[0], "food establishment")
	})

	t.Run("long trip routes through hub", func(t *testing.T) {
		// Start in Pagudpud, far from Batac
		route, err := planner.CalculateRoute(ctx, 18.5667, 120.7833, "CU01")
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(route.Steps), 1)
		assert.Positive(t, route.TotalFare)
	})
}

func TestCalculateRouteFallbacks(t *testing.T) {
	planner := testPlanner(t)
	ctx := context.Background()

	t.Run("unknown location uses nearest hub", func(t *testing.T) {
		route, err := planner.CalculateRoute(ctx, 18.1984, 120.5936, "TS99")
		require.NoError(t, err)
		assert.Equal(t, "Laoag", route.DestinationLocation)
	})

	t.Run("no coordinates at all", func(t *testing.T) {
		_, err := planner.CalculateRoute(ctx, 18.1984, 120.5936, "TS98")
		assert.ErrorIs(t, err, ErrNoCoordinates)
	})

	t.Run("missing record", func(t *testing.T) {
		_, err := planner.CalculateRoute(ctx, 18.1984, 120.5936, "nope")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestFindNearby(t *testing.T) {
	planner := testPlanner(t)
	ctx := context.Background()

	t.Run("sorted by distance", func(t *testing.T) {
		places, err := planner.FindNearby(ctx, 18.0556, 120.5647, 50, 10, "")
		require.NoError(t, err)
		require.NotEmpty(t, places)
		for i := 1; i < len(places); i++ {
			assert.LessOrEqual(t, places[i-1].DistanceKM, places[i].DistanceKM)
		}
	})

	t.Run("type filter", func(t *testing.T) {
		places, err := planner.FindNearby(ctx, 18.0556, 120.5647, 50, 10, core.TypeCuisine)
		require.NoError(t, err)
		require.Len(t, places, 1)
		assert.Equal(t, "CU01", places[0].ID)
	})

	t.Run("walking flag within one km", func(t *testing.T) {
		places, err := planner.FindNearby(ctx, 18.0556, 120.5647, 1, 10, "")
		require.NoError(t, err)
		for _, p := range places {
			assert.True(t, p.WalkingDistance)
			assert.GreaterOrEqual(t, p.EstimatedWalkingTime, 0)
		}
	})

	t.Run("limit", func(t *testing.T) {
		places, err := planner.FindNearby(ctx, 18.0556, 120.5647, 500, 2, "")
		require.NoError(t, err)
		assert.LessOrEqual(t, len(places), 2)
	})
}

func TestNewPlannerRequiresStore(t *testing.T) {
	_, err := NewPlanner(nil)
	assert.ErrorIs(t, err, ErrRecordStoreRequired)
}
