package route

import "fmt"

// Waypoint is a named geographic point to be visited.
type Waypoint struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
	Title     string  `json:"title"`
}

// LatLng formats the point as "lat,lng" for directions queries.
func (w Waypoint) LatLng() string {
	return fmt.Sprintf("%.6f,%.6f", w.Latitude, w.Longitude)
}

func (w Waypoint) String() string {
	return fmt.Sprintf("%s (%.4f, %.4f)", w.Title, w.Latitude, w.Longitude)
}

// SeoulTour is the fixed set of stops shown on the board page.
func SeoulTour() []Waypoint {
	return []Waypoint{
		{Latitude: 37.5665, Longitude: 126.9780, Title: "Seoul City Hall"},
		{Latitude: 37.5796, Longitude: 126.9770, Title: "Gyeongbokgung Palace"},
		{Latitude: 37.5139, Longitude: 127.0606, Title: "Gangnam Station"},
		{Latitude: 37.5519, Longitude: 126.9882, Title: "Myeongdong"},
		{Latitude: 37.5716, Longitude: 126.9764, Title: "Gwanghwamun"},
	}
}
