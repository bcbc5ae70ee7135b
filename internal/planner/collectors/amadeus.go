package collectors

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const amadeusMaxOffers = 5

// AmadeusFlights searches round-trip offers through the Amadeus self-service API.
type AmadeusFlights struct {
	client  *http.Client
	baseURL string
}

// NewAmadeusFlights wires the client-credentials token flow on top of base.
// Tokens are cached and refreshed by the oauth2 transport.
func NewAmadeusFlights(base *http.Client, baseURL, apiKey, secret string) *AmadeusFlights {
	baseURL = strings.TrimRight(baseURL, "/")
	cc := clientcredentials.Config{
		ClientID:     apiKey,
		ClientSecret: secret,
		TokenURL:     baseURL + "/v1/security/oauth2/token",
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	client := cc.Client(tokenCtx)
	client.Timeout = base.Timeout
	return &AmadeusFlights{client: client, baseURL: baseURL}
}

type amadeusLocations struct {
	Data []struct {
		IATACode string `json:"iataCode"`
		Name     string `json:"name"`
	} `json:"data"`
}

type amadeusOffers struct {
	Data []amadeusOffer `json:"data"`
}

type amadeusOffer struct {
	Price struct {
		Total    string `json:"total"`
		Currency string `json:"currency"`
	} `json:"price"`
	Itineraries []struct {
		Duration string `json:"duration"`
		Segments []struct {
			CarrierCode string `json:"carrierCode"`
			Number      string `json:"number"`
			Departure   struct {
				IATACode string `json:"iataCode"`
				At       string `json:"at"`
			} `json:"departure"`
			Arrival struct {
				IATACode string `json:"iataCode"`
				At       string `json:"at"`
			} `json:"arrival"`
		} `json:"segments"`
	} `json:"itineraries"`
}

func (a *AmadeusFlights) FindFlights(ctx context.Context, origin, destination, departureDate, returnDate string) (string, error) {
	from, err := a.iataCode(ctx, origin)
	if err != nil {
		return "", err
	}
	to, err := a.iataCode(ctx, destination)
	if err != nil {
		return "", err
	}

	params := url.Values{}
	params.Set("originLocationCode", from)
	params.Set("destinationLocationCode", to)
	params.Set("departureDate", departureDate)
	if returnDate != "" {
		params.Set("returnDate", returnDate)
	}
	params.Set("adults", "1")
	params.Set("currencyCode", "USD")
	params.Set("max", strconv.Itoa(amadeusMaxOffers))

	var offers amadeusOffers
	if err := getJSON(ctx, a.client, a.baseURL+"/v2/shopping/flight-offers", params, nil, &offers); err != nil {
		return "", err
	}
	if len(offers.Data) == 0 {
		return "", fmt.Errorf("%w: no flights from %s to %s", ErrNoData, from, to)
	}
	return formatOffers(origin, from, destination, to, offers.Data), nil
}

// iataCode resolves a city name ("Boston, MA") to an airport or city code.
func (a *AmadeusFlights) iataCode(ctx context.Context, place string) (string, error) {
	place = strings.TrimSpace(place)
	if isIATACode(place) {
		return place, nil
	}
	keyword := place
	if i := strings.Index(keyword, ","); i > 0 {
		keyword = keyword[:i]
	}

	params := url.Values{}
	params.Set("subType", "CITY,AIRPORT")
	params.Set("keyword", strings.ToUpper(strings.TrimSpace(keyword)))
	params.Set("page[limit]", "1")
	var locs amadeusLocations
	if err := getJSON(ctx, a.client, a.baseURL+"/v1/reference-data/locations", params, nil, &locs); err != nil {
		return "", err
	}
	if len(locs.Data) == 0 || locs.Data[0].IATACode == "" {
		return "", fmt.Errorf("%w: no airport found for %s", ErrNoData, place)
	}
	return locs.Data[0].IATACode, nil
}

func isIATACode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

func formatOffers(origin, from, destination, to string, offers []amadeusOffer) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Flight offers from %s (%s) to %s (%s):\n", origin, from, destination, to)
	cheapest := 0
	cheapestPrice := -1.0
	for i, o := range offers {
		fmt.Fprintf(&b, "%d. %s %s\n", i+1, o.Price.Currency, o.Price.Total)
		for j, it := range o.Itineraries {
			leg := "Outbound"
			if j > 0 {
				leg = "Return"
			}
			for _, s := range it.Segments {
				fmt.Fprintf(&b, "   %s: %s%s %s %s -> %s %s\n", leg, s.CarrierCode, s.Number,
					s.Departure.IATACode, s.Departure.At, s.Arrival.IATACode, s.Arrival.At)
			}
		}
		if p, err := strconv.ParseFloat(o.Price.Total, 64); err == nil && (cheapestPrice < 0 || p < cheapestPrice) {
			cheapest, cheapestPrice = i, p
		}
	}
	if cheapestPrice >= 0 {
		fmt.Fprintf(&b, "Recommended: option %d, the lowest fare at %s %s.",
			cheapest+1, offers[cheapest].Price.Currency, offers[cheapest].Price.Total)
	}
	return strings.TrimRight(b.String(), "\n")
}

var _ FlightSource = (*AmadeusFlights)(nil)
