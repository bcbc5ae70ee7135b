package collectors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNoData is returned when a source has nothing usable for the request.
var ErrNoData = errors.New("no data available")

// Collector fetches text snippets about a destination for the draft prompt.
type Collector interface {
	// Name identifies the source in document metadata and logs.
	Name() string

	// Collect returns at most limit snippets.
	Collect(ctx context.Context, destination, interests string, limit int) ([]string, error)
}

// FlightSource returns human-readable flight offers between two places.
type FlightSource interface {
	FindFlights(ctx context.Context, origin, destination, departureDate, returnDate string) (string, error)
}

// HotelSource returns human-readable hotel options for a city.
type HotelSource interface {
	FindHotels(ctx context.Context, city, checkIn, checkOut string) (string, error)
}

// Unavailable stands in for a source whose credentials are not configured.
type Unavailable struct {
	Source string
	Reason string
}

func (u Unavailable) Name() string { return u.Source }

func (u Unavailable) Collect(context.Context, string, string, int) ([]string, error) {
	return nil, u.err()
}

func (u Unavailable) FindFlights(context.Context, string, string, string, string) (string, error) {
	return "", u.err()
}

func (u Unavailable) FindHotels(context.Context, string, string, string) (string, error) {
	return "", u.err()
}

func (u Unavailable) err() error {
	if u.Reason == "" {
		return ErrNoData
	}
	return fmt.Errorf("%w: %s", ErrNoData, u.Reason)
}

var (
	_ FlightSource = Unavailable{}
	_ HotelSource  = Unavailable{}
	_ Collector    = Unavailable{}
)

// NewHTTPClient returns the client shared by the REST collectors.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	URL    string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: status %d: %s", e.URL, e.Status, e.Body)
}

// getJSON issues a GET with query params and headers and decodes the JSON body into out.
func getJSON(ctx context.Context, client *http.Client, endpoint string, params url.Values, headers map[string]string, out any) error {
	u := endpoint
	if len(params) > 0 {
		sep := "?"
		if strings.Contains(endpoint, "?") {
			sep = "&"
		}
		u = endpoint + sep + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{URL: endpoint, Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", endpoint, err)
	}
	return nil
}

// truncate keeps prompt context bounded per snippet.
func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if max <= 0 || len(runes) <= max {
		return s
	}
	cut := string(runes[:max])
	if i := strings.LastIndexAny(cut, " \n"); i > len(cut)/2 {
		cut = cut[:i]
	}
	return cut + "..."
}
