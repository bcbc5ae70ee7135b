package collectors

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const pricelineMaxHotels = 5

// PricelineHotels looks up hotels through the Priceline RapidAPI provider.
type PricelineHotels struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

func NewPricelineHotels(client *http.Client, baseURL, apiKey string) *PricelineHotels {
	return &PricelineHotels{client: client, baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey}
}

type pricelineAutoComplete struct {
	Data struct {
		SearchItems []struct {
			Type string `json:"type"`
			ID   string `json:"id"`
		} `json:"searchItems"`
	} `json:"data"`
}

type pricelineSearch struct {
	Data struct {
		Hotels []pricelineHotel `json:"hotels"`
	} `json:"data"`
}

type pricelineHotel struct {
	Name               string `json:"name"`
	Brand              string `json:"brand"`
	StarRating         any    `json:"starRating"`
	OverallGuestRating any    `json:"overallGuestRating"`
	Location           struct {
		Address struct {
			AddressLine1 string `json:"addressLine1"`
			CityName     string `json:"cityName"`
		} `json:"address"`
	} `json:"location"`
	RatesSummary struct {
		MinPrice        string `json:"minPrice"`
		MinCurrencyCode string `json:"minCurrencyCode"`
	} `json:"ratesSummary"`
}

func (p *PricelineHotels) headers() map[string]string {
	host := strings.TrimPrefix(strings.TrimPrefix(p.baseURL, "https://"), "http://")
	return map[string]string{
		"x-rapidapi-key":  p.apiKey,
		"x-rapidapi-host": host,
	}
}

func (p *PricelineHotels) FindHotels(ctx context.Context, city, checkIn, checkOut string) (string, error) {
	locationID, err := p.locationID(ctx, city)
	if err != nil {
		return "", err
	}

	params := url.Values{}
	params.Set("locationId", locationID)
	params.Set("checkIn", checkIn)
	params.Set("checkOut", checkOut)
	params.Set("rooms", "1")
	params.Set("adults", "1")
	var res pricelineSearch
	if err := getJSON(ctx, p.client, p.baseURL+"/hotels/search", params, p.headers(), &res); err != nil {
		return "", err
	}
	if len(res.Data.Hotels) == 0 {
		return "", fmt.Errorf("%w: no available rooms in %s", ErrNoData, city)
	}

	hotels := res.Data.Hotels
	if len(hotels) > pricelineMaxHotels {
		hotels = hotels[:pricelineMaxHotels]
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Hotel options in %s from %s to %s:\n", city, checkIn, checkOut)
	for i, h := range hotels {
		fmt.Fprintf(&b, "%d. %s", i+1, h.Name)
		if h.Brand != "" {
			fmt.Fprintf(&b, " (%s)", h.Brand)
		}
		if addr := h.Location.Address.AddressLine1; addr != "" {
			fmt.Fprintf(&b, ", %s", addr)
		}
		if h.RatesSummary.MinPrice != "" {
			fmt.Fprintf(&b, ", from %s %s per night", h.RatesSummary.MinCurrencyCode, h.RatesSummary.MinPrice)
		}
		if h.OverallGuestRating != nil {
			fmt.Fprintf(&b, ", guest rating %v", h.OverallGuestRating)
		}
		if h.StarRating != nil {
			fmt.Fprintf(&b, ", %v stars", h.StarRating)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (p *PricelineHotels) locationID(ctx context.Context, city string) (string, error) {
	params := url.Values{}
	params.Set("query", city)
	var res pricelineAutoComplete
	if err := getJSON(ctx, p.client, p.baseURL+"/hotels/auto-complete", params, p.headers(), &res); err != nil {
		return "", err
	}
	for _, item := range res.Data.SearchItems {
		if item.Type == "CITY" && item.ID != "" {
			return item.ID, nil
		}
	}
	return "", fmt.Errorf("%w: no city location for %s", ErrNoData, city)
}

var _ HotelSource = (*PricelineHotels)(nil)
