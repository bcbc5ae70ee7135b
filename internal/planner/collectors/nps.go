package collectors

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

const (
	earthRadiusKM  = 6371.0
	npsParkFetch   = 1000
	npsDescription = 600
)

// NPSCollector finds national parks near the destination and highlights activities that match
// the traveller's interests.
type NPSCollector struct {
	client        *http.Client
	apiKey        string
	baseURL       string
	geocoderURL   string
	userAgent     string
	maxDistanceKM float64
}

type NPSOptions struct {
	APIKey        string
	BaseURL       string
	GeocoderURL   string
	UserAgent     string
	MaxDistanceKM float64
}

func NewNPSCollector(client *http.Client, opts NPSOptions) *NPSCollector {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://developer.nps.gov/api/v1"
	}
	if opts.GeocoderURL == "" {
		opts.GeocoderURL = "https://nominatim.openstreetmap.org"
	}
	if opts.MaxDistanceKM <= 0 {
		opts.MaxDistanceKM = 100
	}
	return &NPSCollector{
		client:        client,
		apiKey:        opts.APIKey,
		baseURL:       strings.TrimRight(opts.BaseURL, "/"),
		geocoderURL:   strings.TrimRight(opts.GeocoderURL, "/"),
		userAgent:     opts.UserAgent,
		maxDistanceKM: opts.MaxDistanceKM,
	}
}

func (n *NPSCollector) Name() string { return "nps" }

// Coordinates is a WGS84 point in degrees.
type Coordinates struct {
	Lat float64
	Lng float64
}

type nominatimPlace struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

type npsParksResponse struct {
	Data []npsPark `json:"data"`
}

type npsPark struct {
	FullName    string `json:"fullName"`
	ParkCode    string `json:"parkCode"`
	Description string `json:"description"`
	Latitude    string `json:"latitude"`
	Longitude   string `json:"longitude"`
	LatLong     string `json:"latLong"`
	States      string `json:"states"`
	Activities  []struct {
		Name string `json:"name"`
	} `json:"activities"`
}

type nearbyPark struct {
	park       npsPark
	distanceKM float64
}

func (n *NPSCollector) Collect(ctx context.Context, destination, interests string, limit int) ([]string, error) {
	origin, err := n.geocode(ctx, destination)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("limit", strconv.Itoa(npsParkFetch))
	params.Set("api_key", n.apiKey)
	var parks npsParksResponse
	if err := getJSON(ctx, n.client, n.baseURL+"/parks", params, nil, &parks); err != nil {
		return nil, err
	}

	var nearby []nearbyPark
	for _, p := range parks.Data {
		at, ok := p.coordinates()
		if !ok {
			continue
		}
		if d := HaversineKM(origin, at); d <= n.maxDistanceKM {
			nearby = append(nearby, nearbyPark{park: p, distanceKM: d})
		}
	}
	sort.SliceStable(nearby, func(i, j int) bool { return nearby[i].distanceKM < nearby[j].distanceKM })

	wanted := interestTerms(interests)
	out := make([]string, 0, min(limit, len(nearby)))
	for _, np := range nearby {
		if len(out) == limit {
			break
		}
		out = append(out, describePark(np, wanted))
	}
	return out, nil
}

func (n *NPSCollector) geocode(ctx context.Context, place string) (Coordinates, error) {
	params := url.Values{}
	params.Set("q", place)
	params.Set("format", "json")
	params.Set("limit", "1")
	var places []nominatimPlace
	headers := map[string]string{"User-Agent": n.userAgent}
	if err := getJSON(ctx, n.client, n.geocoderURL+"/search", params, headers, &places); err != nil {
		return Coordinates{}, err
	}
	if len(places) == 0 {
		return Coordinates{}, fmt.Errorf("%w: could not find coordinates for %s", ErrNoData, place)
	}
	lat, errLat := strconv.ParseFloat(places[0].Lat, 64)
	lng, errLng := strconv.ParseFloat(places[0].Lon, 64)
	if err := errors.Join(errLat, errLng); err != nil {
		return Coordinates{}, fmt.Errorf("parse coordinates for %s: %w", place, err)
	}
	return Coordinates{Lat: lat, Lng: lng}, nil
}

// coordinates prefers the numeric fields and falls back to "lat:.., long:..".
func (p npsPark) coordinates() (Coordinates, bool) {
	lat, errLat := strconv.ParseFloat(strings.TrimSpace(p.Latitude), 64)
	lng, errLng := strconv.ParseFloat(strings.TrimSpace(p.Longitude), 64)
	if errLat == nil && errLng == nil {
		return Coordinates{Lat: lat, Lng: lng}, true
	}
	if p.LatLong == "" {
		return Coordinates{}, false
	}
	parts := strings.Split(strings.NewReplacer("lat:", "", "long:", "").Replace(p.LatLong), ",")
	if len(parts) != 2 {
		return Coordinates{}, false
	}
	lat, errLat = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lng, errLng = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errLat != nil || errLng != nil {
		return Coordinates{}, false
	}
	return Coordinates{Lat: lat, Lng: lng}, true
}

// HaversineKM returns the great-circle distance between two points.
func HaversineKM(a, b Coordinates) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKM * math.Asin(math.Min(1, math.Sqrt(h)))
}

func interestTerms(interests string) []string {
	fields := strings.FieldsFunc(strings.ToLower(interests), func(r rune) bool {
		return r == ',' || r == ';' || r == '\n' || r == ' '
	})
	terms := fields[:0]
	for _, f := range fields {
		if len(f) > 2 {
			terms = append(terms, f)
		}
	}
	return terms
}

func describePark(np nearbyPark, wanted []string) string {
	var matching, other []string
	for _, a := range np.park.Activities {
		name := strings.ToLower(a.Name)
		matched := false
		for _, w := range wanted {
			if strings.Contains(name, w) {
				matched = true
				break
			}
		}
		if matched {
			matching = append(matching, a.Name)
		} else {
			other = append(other, a.Name)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s, %.1f km away)", np.park.FullName, np.park.States, np.distanceKM)
	if desc := truncate(np.park.Description, npsDescription); desc != "" {
		b.WriteString(": ")
		b.WriteString(desc)
	}
	if len(matching) > 0 {
		b.WriteString("\nActivities matching your interests: ")
		b.WriteString(strings.Join(matching, ", "))
	}
	if len(other) > 0 {
		b.WriteString("\nOther activities: ")
		b.WriteString(strings.Join(other, ", "))
	}
	return b.String()
}

var _ Collector = (*NPSCollector)(nil)
