package services

import (
	"context"
	"fmt"

	"roamio/internal/models/response_models"
	"roamio/pkg/logger"
)

// RouteService reorders each day's activities to minimize backtracking
// and derives the transport legs between consecutive stops.
type RouteService interface {
	OptimizeItinerary(ctx context.Context, itinerary *response_models.Itinerary, transportPreference string)
}

type routeService struct {
	matrix DistanceMatrixService
}

func NewRouteService(matrix DistanceMatrixService) RouteService {
	return &routeService{matrix: matrix}
}

func (s *routeService) OptimizeItinerary(ctx context.Context, itinerary *response_models.Itinerary, transportPreference string) {
	if itinerary == nil {
		return
	}
	for i := range itinerary.DailyItineraries {
		day := &itinerary.DailyItineraries[i]
		if len(day.Activities) < 2 {
			continue
		}
		ordered, legs, err := s.orderDay(ctx, day.Activities, transportPreference)
		if err != nil {
			logger.Log.WithError(err).WithField("day", day.DayNumber).
				Warn("route optimization skipped for day")
			continue
		}
		day.Activities = ordered
		day.Transport = legs
	}
}

// orderDay greedily visits the nearest unvisited activity starting from
// the first one. Activities without coordinates keep their original slot
// relative to the ordered ones.
func (s *routeService) orderDay(ctx context.Context, activities []response_models.Activity, transportPreference string) ([]response_models.Activity, []response_models.TransportLeg, error) {
	points := make([]MatrixPoint, 0, len(activities))
	located := make([]int, 0, len(activities))
	for idx, a := range activities {
		c := a.Location.Coordinates
		if c.Lat == 0 && c.Lng == 0 {
			continue
		}
		points = append(points, MatrixPoint{ID: fmt.Sprintf("a%d", idx), Lat: c.Lat, Lng: c.Lng})
		located = append(located, idx)
	}
	if len(points) < 2 {
		return activities, nil, nil
	}

	mat, err := s.matrix.ComputeDistances(ctx, points)
	if err != nil {
		return nil, nil, err
	}

	order := nearestNeighborOrder(points, mat)

	// Rebuild the day: ordered located activities, then the rest in place.
	ordered := make([]response_models.Activity, 0, len(activities))
	used := make(map[int]bool, len(located))
	for _, pi := range order {
		ordered = append(ordered, activities[located[pi]])
		used[located[pi]] = true
	}
	for idx, a := range activities {
		if !used[idx] {
			ordered = append(ordered, a)
		}
	}

	legs := make([]response_models.TransportLeg, 0, len(order)-1)
	for i := 1; i < len(order); i++ {
		from := points[order[i-1]]
		to := points[order[i]]
		edge := mat[from.ID][to.ID]
		legs = append(legs, buildTransportLeg(
			activities[located[order[i-1]]].Location.Name,
			activities[located[order[i]]].Location.Name,
			edge, transportPreference))
	}

	return ordered, legs, nil
}

func nearestNeighborOrder(points []MatrixPoint, mat DistanceMatrix) []int {
	n := len(points)
	order := make([]int, 0, n)
	visited := make([]bool, n)

	current := 0
	order = append(order, current)
	visited[current] = true

	for len(order) < n {
		next := -1
		best := 0
		for j := 0; j < n; j++ {
			if visited[j] {
				continue
			}
			d := mat[points[current].ID][points[j].ID].DistanceMeters
			if next == -1 || d < best {
				next = j
				best = d
			}
		}
		order = append(order, next)
		visited[next] = true
		current = next
	}
	return order
}

// buildTransportLeg picks a mode and fare from distance. Fares are rough
// INR estimates used when the generated plan carries no transport data.
func buildTransportLeg(from, to string, edge MatrixEdge, preference string) response_models.TransportLeg {
	km := float64(edge.DistanceMeters) / 1000
	minutes := float64(edge.DurationSeconds) / 60

	mode := preference
	if mode == "" {
		switch {
		case km < 1.0:
			mode = "walk"
		case km < 6.0:
			mode = "auto"
		default:
			mode = "taxi"
		}
	}

	var cost float64
	switch mode {
	case "walk":
		cost = 0
	case "auto":
		cost = 30 + km*15
	case "metro", "bus":
		cost = 10 + km*2
	default:
		cost = 50 + km*20
	}

	return response_models.TransportLeg{
		FromLocation:    from,
		ToLocation:      to,
		Mode:            mode,
		DistanceKm:      roundTo(km, 2),
		DurationMinutes: roundTo(minutes, 0),
		Cost:            roundTo(cost, 0),
	}
}

func roundTo(v float64, places int) float64 {
	p := 1.0
	for i := 0; i < places; i++ {
		p *= 10
	}
	return float64(int(v*p+0.5)) / p
}
