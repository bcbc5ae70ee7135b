package waypoints

import "strings"

const directionsBase = "https://www.google.com/maps/dir/"

// DirectionsURL builds a Google Maps directions link visiting locations in order.
func DirectionsURL(locations []string) string {
	parts := make([]string, 0, len(locations))
	for _, loc := range locations {
		loc = strings.TrimSpace(loc)
		if loc == "" {
			continue
		}
		parts = append(parts, strings.ReplaceAll(loc, " ", "+"))
	}
	return directionsBase + strings.Join(parts, "/")
}
