package route

import "math"

// OrderNearestNeighbor returns a visiting order built greedily from points[0]:
// each step appends the closest unvisited point, the first one on ties.
// Inputs of two or fewer points come back unchanged. The input slice is not
// modified. This is an approximation, not a shortest-path solver.
func OrderNearestNeighbor(points []Waypoint) []Waypoint {
	if len(points) <= 2 {
		return points
	}

	unvisited := make([]Waypoint, len(points)-1)
	copy(unvisited, points[1:])

	ordered := make([]Waypoint, 0, len(points))
	current := points[0]
	ordered = append(ordered, current)

	for len(unvisited) > 0 {
		nearest := 0
		minDistance := math.Inf(1)
		for i, candidate := range unvisited {
			if d := HaversineKm(current, candidate); d < minDistance {
				minDistance = d
				nearest = i
			}
		}

		current = unvisited[nearest]
		ordered = append(ordered, current)
		unvisited = append(unvisited[:nearest], unvisited[nearest+1:]...)
	}

	return ordered
}

// Pairs returns the consecutive (origin, destination) legs of an ordered tour.
func Pairs(ordered []Waypoint) [][2]Waypoint {
	if len(ordered) < 2 {
		return nil
	}
	pairs := make([][2]Waypoint, 0, len(ordered)-1)
	for i := 0; i < len(ordered)-1; i++ {
		pairs = append(pairs, [2]Waypoint{ordered[i], ordered[i+1]})
	}
	return pairs
}

// TotalKm sums the straight-line leg distances of an ordered tour.
func TotalKm(ordered []Waypoint) float64 {
	var total float64
	for _, p := range Pairs(ordered) {
		total += HaversineKm(p[0], p[1])
	}
	return total
}
