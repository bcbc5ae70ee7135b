package collectors

import (
	"github.com/wayfarer-core-poc/server/internal/planner/model"
)

// Set is everything the itinerary graph needs from the outside world.
type Set struct {
	// Documents run in this order: discussion, parks, encyclopedia.
	Documents []Collector
	Flights   FlightSource
	Hotels    HotelSource
}

// NewSet builds the collectors from configuration. Sources without credentials are replaced by
// Unavailable so the pipeline degrades to its "no data" messages instead of failing.
func NewSet(cfg model.CollectorConfig) Set {
	client := NewHTTPClient(cfg.HTTPTimeout)

	var parks Collector = Unavailable{Source: "nps", Reason: "NPS_API_KEY not set"}
	if cfg.NPSAPIKey != "" {
		parks = NewNPSCollector(client, NPSOptions{
			APIKey:        cfg.NPSAPIKey,
			BaseURL:       cfg.NPSBaseURL,
			GeocoderURL:   cfg.GeocoderBaseURL,
			UserAgent:     cfg.RedditUserAgent,
			MaxDistanceKM: cfg.NPSMaxDistanceKM,
		})
	}

	var flights FlightSource = Unavailable{Source: "amadeus", Reason: "AMADEUS_API_KEY not set"}
	if cfg.AmadeusAPIKey != "" && cfg.AmadeusSecret != "" {
		flights = NewAmadeusFlights(client, cfg.AmadeusBaseURL, cfg.AmadeusAPIKey, cfg.AmadeusSecret)
	}

	var hotels HotelSource = Unavailable{Source: "priceline", Reason: "RAPIDAPI_KEY not set"}
	if cfg.RapidAPIKey != "" {
		hotels = NewPricelineHotels(client, cfg.PricelineBaseURL, cfg.RapidAPIKey)
	}

	return Set{
		Documents: []Collector{
			NewRedditCollector(client, cfg.RedditBaseURL, cfg.RedditUserAgent),
			parks,
			NewWikipediaCollector(client, cfg.WikipediaLang, cfg.WikipediaBaseURL),
		},
		Flights: flights,
		Hotels:  hotels,
	}
}
