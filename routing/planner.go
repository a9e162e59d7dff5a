package routing

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/locatour/tourguide/core"
	"github.com/locatour/tourguide/storage"
)

// TransportMode identifies how a route step is traveled.
type TransportMode string

const (
	ModeWalking  TransportMode = "walking"
	ModeTricycle TransportMode = "tricycle"
	ModeJeepney  TransportMode = "jeepney"
	ModeBus      TransportMode = "bus"
	ModeVan      TransportMode = "van"
)

// RouteStep is one leg of a planned route.
type RouteStep struct {
	StepNumber           int           `json:"step_number"`
	Instruction          string        `json:"instruction"`
	TransportMode        TransportMode `json:"transport_mode"`
	FromLocation         string        `json:"from_location"`
	ToLocation           string        `json:"to_location"`
	DistanceKM           float64       `json:"distance_km"`
	Fare                 float64       `json:"fare"`
	EstimatedTimeMinutes int           `json:"estimated_time_minutes"`
	Landmark             string        `json:"landmark,omitempty"`
}

// Route is a complete plan from the traveler's position to a destination.
type Route struct {
	DestinationName     string      `json:"destination_name"`
	DestinationLocation string      `json:"destination_location"`
	TotalDistanceKM     float64     `json:"total_distance_km"`
	TotalFare           float64     `json:"total_fare"`
	TotalTimeMinutes    int         `json:"total_time_minutes"`
	Steps               []RouteStep `json:"steps"`
	Warnings            []string    `json:"warnings,omitempty"`
	ItemType            string      `json:"item_type"`
}

// NearbyPlace is a dataset record within a search radius.
type NearbyPlace struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	Type                 string  `json:"type"`
	Location             string  `json:"location"`
	DistanceKM           float64 `json:"distance_km"`
	WalkingDistance      bool    `json:"walking_distance"`
	EstimatedWalkingTime int     `json:"estimated_walking_time,omitempty"`
}

// Planner plans routes against the tourism dataset.
type Planner struct {
	store  storage.RecordStore
	logger *slog.Logger
}

// PlannerOption configures a Planner.
type PlannerOption func(*Planner)

// WithPlannerLogger sets a custom logger. Default is slog.Default().
func WithPlannerLogger(logger *slog.Logger) PlannerOption {
	return func(p *Planner) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPlanner creates a route planner over the record store.
func NewPlanner(store storage.RecordStore, opts ...PlannerOption) (*Planner, error) {
	if store == nil {
		return nil, ErrRecordStoreRequired
	}
	p := &Planner{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// CalculateRoute plans a route from the traveler's position to a dataset
// record. Food destinations get shorter, tricycle-oriented plans; tourist
// spots route through the nearest terminal and scheduled connections.
func (p *Planner) CalculateRoute(ctx context.Context, fromLat, fromLon float64, destinationID string) (*Route, error) {
	record, err := p.store.GetByID(ctx, destinationID)
	if err != nil {
		return nil, err
	}

	dest, destLocation, err := destinationCoordinates(record)
	if err != nil {
		return nil, err
	}

	totalDistance := Haversine(fromLat, fromLon, dest.Lat, dest.Lon)

	route := &Route{
		DestinationName:     record.Name,
		DestinationLocation: destLocation,
		TotalDistanceKM:     round2(totalDistance),
		ItemType:            record.NormalizedType(),
	}

	if record.NormalizedType() == core.TypeCuisine {
		route.Steps, route.TotalFare, route.TotalTimeMinutes = p.routeToCuisine(
			fromLat, fromLon, record.Name, destLocation, totalDistance, record.NearestHub)
		route.Warnings = append(route.Warnings,
			"This is a food establishment. Directions lead to the restaurant location.")
	} else {
		var warnings []string
		route.Steps, route.TotalFare, route.TotalTimeMinutes, warnings = p.routeToTouristSpot(
			fromLat, fromLon, record.Name, destLocation, totalDistance)
		route.Warnings = append(route.Warnings, warnings...)
	}

	route.TotalFare = round2(route.TotalFare)
	return route, nil
}

func (p *Planner) routeToTouristSpot(fromLat, fromLon float64, destName, destLocation string, totalDistance float64) ([]RouteStep, float64, int, []string) {
	var steps []RouteStep
	var warnings []string
	var totalFare float64
	totalTime := 0
	stepNum := 1

	if totalDistance <= WalkingThresholdKM {
		walkingTime := walkingMinutes(totalDistance)
		steps = append(steps, RouteStep{
			StepNumber:           stepNum,
			Instruction:          fmt.Sprintf("Walk directly to %s", destName),
			TransportMode:        ModeWalking,
			FromLocation:         "Your current location",
			ToLocation:           destName,
			DistanceKM:           round2(totalDistance),
			EstimatedTimeMinutes: walkingTime,
			Landmark:             fmt.Sprintf("Located in %s", destLocation),
		})
		return steps, 0, walkingTime, nil
	}

	terminal, terminalDistance := nearestTerminal(fromLat, fromLon)

	if terminalDistance <= WalkingThresholdKM {
		walkingTime := walkingMinutes(terminalDistance)
		steps = append(steps, RouteStep{
			StepNumber:           stepNum,
			Instruction:          fmt.Sprintf("Walk to %s", terminal),
			TransportMode:        ModeWalking,
			FromLocation:         "Your current location",
			ToLocation:           terminal,
			DistanceKM:           round2(terminalDistance),
			EstimatedTimeMinutes: walkingTime,
			Landmark:             "Look for the jeepney terminal",
		})
		totalTime += walkingTime
	} else {
		fare := TricycleFare(terminalDistance)
		tricycleTime := int(terminalDistance * 5)
		steps = append(steps, RouteStep{
			StepNumber:           stepNum,
			Instruction:          fmt.Sprintf("Take a tricycle to %s", terminal),
			TransportMode:        ModeTricycle,
			FromLocation:         "Your current location",
			ToLocation:           terminal,
			DistanceKM:           round2(terminalDistance),
			Fare:                 fare,
			EstimatedTimeMinutes: tricycleTime,
			Landmark:             fmt.Sprintf("Tell the driver: '%s'", terminal),
		})
		totalFare += fare
		totalTime += tricycleTime
	}
	stepNum++

	if mode, leg, ok := findScheduledRoute(terminal, destLocation); ok {
		steps = append(steps, RouteStep{
			StepNumber:           stepNum,
			Instruction:          fmt.Sprintf("Take a %s from %s to %s", mode, terminal, destLocation),
			TransportMode:        mode,
			FromLocation:         terminal,
			ToLocation:           destLocation,
			DistanceKM:           round2(leg.DistanceKM),
			Fare:                 leg.Fare,
			EstimatedTimeMinutes: leg.TimeMinutes,
			Landmark:             fmt.Sprintf("Look for %ss with sign '%s'", mode, destLocation),
		})
		totalFare += leg.Fare
		totalTime += leg.TimeMinutes
	} else {
		remaining := totalDistance - terminalDistance
		fare := JeepneyFare(remaining)
		estimatedTime := int(remaining / 40 * 60)
		steps = append(steps, RouteStep{
			StepNumber:           stepNum,
			Instruction:          fmt.Sprintf("Take a jeepney towards %s", destLocation),
			TransportMode:        ModeJeepney,
			FromLocation:         terminal,
			ToLocation:           destLocation,
			DistanceKM:           round2(remaining),
			Fare:                 fare,
			EstimatedTimeMinutes: estimatedTime,
			Landmark:             fmt.Sprintf("Ask driver: 'Going to %s?'", destLocation),
		})
		totalFare += fare
		totalTime += estimatedTime
		warnings = append(warnings, "No direct route found. Fare is estimated.")
	}
	stepNum++

	steps = append(steps, RouteStep{
		StepNumber:    stepNum,
		Instruction:   fmt.Sprintf("You will arrive at %s", destName),
		TransportMode: ModeWalking,
		FromLocation:  fmt.Sprintf("%s drop-off point", destLocation),
		ToLocation:    destName,
		Landmark:      fmt.Sprintf("Ask locals for '%s' - it's a well-known tourist spot!", destName),
	})

	return steps, totalFare, totalTime, warnings
}

func (p *Planner) routeToCuisine(fromLat, fromLon float64, destName, destLocation string, totalDistance float64, nearestHub string) ([]RouteStep, float64, int) {
	var steps []RouteStep
	var totalFare float64
	totalTime := 0
	stepNum := 1

	switch {
	case totalDistance <= WalkingThresholdKM:
		walkingTime := walkingMinutes(totalDistance)
		steps = append(steps, RouteStep{
			StepNumber:           stepNum,
			Instruction:          fmt.Sprintf("Walk to %s", destName),
			TransportMode:        ModeWalking,
			FromLocation:         "Your current location",
			ToLocation:           destName,
			DistanceKM:           round2(totalDistance),
			EstimatedTimeMinutes: walkingTime,
			Landmark:             fmt.Sprintf("Located at %s", destLocation),
		})
		totalTime = walkingTime

	case totalDistance <= 5:
		if totalDistance <= 2 {
			walkingTime := walkingMinutes(totalDistance)
			steps = append(steps, RouteStep{
				StepNumber:           stepNum,
				Instruction:          fmt.Sprintf("Walk to %s (or take tricycle)", destName),
				TransportMode:        ModeWalking,
				FromLocation:         "Your current location",
				ToLocation:           destName,
				DistanceKM:           round2(totalDistance),
				EstimatedTimeMinutes: walkingTime,
				Landmark:             fmt.Sprintf("Located in %s", destLocation),
			})
			totalTime = walkingTime
		} else {
			fare := TricycleFare(totalDistance)
			tricycleTime := int(totalDistance * 5)
			steps = append(steps, RouteStep{
				StepNumber:           stepNum,
				Instruction:          fmt.Sprintf("Take a tricycle to %s", destName),
				TransportMode:        ModeTricycle,
				FromLocation:         "Your current location",
				ToLocation:           destName,
				DistanceKM:           round2(totalDistance),
				Fare:                 fare,
				EstimatedTimeMinutes: tricycleTime,
				Landmark:             fmt.Sprintf("Tell driver: '%s' or '%s'", destLocation, destName),
			})
			totalFare = fare
			totalTime = tricycleTime
		}

	default:
		hub := nearestHub
		if _, known := LookupCoordinates(hub); hub == "" || !known {
			hub, _ = nearestTerminal(fromLat, fromLon)
		}
		hubCoords, _ := LookupCoordinates(hub)
		hubDistance := Haversine(fromLat, fromLon, hubCoords.Lat, hubCoords.Lon)

		if hubDistance <= WalkingThresholdKM {
			walkingTime := walkingMinutes(hubDistance)
			steps = append(steps, RouteStep{
				StepNumber:           stepNum,
				Instruction:          fmt.Sprintf("Walk to %s", hub),
				TransportMode:        ModeWalking,
				FromLocation:         "Your current location",
				ToLocation:           hub,
				DistanceKM:           round2(hubDistance),
				EstimatedTimeMinutes: walkingTime,
				Landmark:             fmt.Sprintf("Nearest hub to %s", destLocation),
			})
			totalTime += walkingTime
		} else {
			fare := TricycleFare(hubDistance)
			steps = append(steps, RouteStep{
				StepNumber:           stepNum,
				Instruction:          fmt.Sprintf("Take tricycle to %s", hub),
				TransportMode:        ModeTricycle,
				FromLocation:         "Your current location",
				ToLocation:           hub,
				DistanceKM:           round2(hubDistance),
				Fare:                 fare,
				EstimatedTimeMinutes: int(hubDistance * 5),
				Landmark:             fmt.Sprintf("Gateway to %s", destLocation),
			})
			totalFare += fare
			totalTime += int(hubDistance * 5)
		}
		stepNum++

		if remaining := totalDistance - hubDistance; remaining > 0.1 {
			fare := TricycleFare(remaining)
			steps = append(steps, RouteStep{
				StepNumber:           stepNum,
				Instruction:          fmt.Sprintf("Take tricycle to %s", destName),
				TransportMode:        ModeTricycle,
				FromLocation:         hub,
				ToLocation:           destName,
				DistanceKM:           round2(remaining),
				Fare:                 fare,
				EstimatedTimeMinutes: int(remaining * 5),
				Landmark:             fmt.Sprintf("Located at %s", destLocation),
			})
			totalFare += fare
			totalTime += int(remaining * 5)
		}
	}

	return steps, totalFare, totalTime
}

// FindNearby returns dataset records within the radius, nearest first.
// An empty itemType matches every record.
func (p *Planner) FindNearby(ctx context.Context, lat, lon, radiusKM float64, limit int, itemType string) ([]NearbyPlace, error) {
	records, err := p.store.ScanAll(ctx)
	if err != nil {
		return nil, err
	}

	var nearby []NearbyPlace
	for _, r := range records {
		if itemType != "" && r.NormalizedType() != itemType {
			continue
		}
		coords, ok := LookupCoordinates(r.Location)
		if !ok {
			continue
		}
		distance := Haversine(lat, lon, coords.Lat, coords.Lon)
		if distance > radiusKM {
			continue
		}

		place := NearbyPlace{
			ID:              r.Id,
			Name:            r.Name,
			Type:            r.NormalizedType(),
			Location:        r.Location,
			DistanceKM:      round2(distance),
			WalkingDistance: distance <= WalkingThresholdKM,
		}
		if place.WalkingDistance {
			place.EstimatedWalkingTime = walkingMinutes(distance)
		}
		nearby = append(nearby, place)
	}

	sort.SliceStable(nearby, func(i, j int) bool {
		return nearby[i].DistanceKM < nearby[j].DistanceKM
	})
	if limit > 0 && len(nearby) > limit {
		nearby = nearby[:limit]
	}
	return nearby, nil
}

// destinationCoordinates resolves a record's coordinates, falling back to
// its nearest hub when the location itself is unknown.
func destinationCoordinates(record *core.Record) (Coordinate, string, error) {
	if c, ok := LookupCoordinates(record.Location); ok {
		return c, record.Location, nil
	}
	if record.NearestHub != "" && !core.IsPlaceholder(record.NearestHub) {
		if c, ok := LookupCoordinates(record.NearestHub); ok {
			return c, record.NearestHub, nil
		}
	}
	return Coordinate{}, "", fmt.Errorf("%w: %s", ErrNoCoordinates, record.Id)
}

// nearestTerminal picks the closest terminal or major hub.
func nearestTerminal(lat, lon float64) (string, float64) {
	minDistance := -1.0
	var nearest string
	for name, coords := range locationCoordinates {
		if !isTerminal(name) {
			continue
		}
		d := Haversine(lat, lon, coords.Lat, coords.Lon)
		if minDistance < 0 || d < minDistance {
			minDistance = d
			nearest = name
		}
	}
	return nearest, minDistance
}

func isTerminal(name string) bool {
	if name == "Laoag" || name == "Batac" || name == "Pagudpud" {
		return true
	}
	return strings.HasSuffix(name, " Terminal")
}

func walkingMinutes(distanceKM float64) int {
	return int(distanceKM / WalkingSpeedKMH * 60)
}
