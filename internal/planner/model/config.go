package model

import "time"

// ================ Config ================
type ItineraryModelConfig struct {
	Model       string  `envconfig:"ITINERARY_MODEL" default:"gemini-2.0-flash"`
	MaxTokens   int     `envconfig:"ITINERARY_MAX_TOKENS" default:"8192"`
	Temperature float32 `envconfig:"ITINERARY_TEMPERATURE" default:"0"`
}

type RetryConfig struct {
	// Attempts is the total number of model calls tried for quota errors.
	Attempts     int           `envconfig:"MODEL_RETRY_ATTEMPTS" default:"3"`
	InitialDelay time.Duration `envconfig:"MODEL_RETRY_INITIAL_DELAY" default:"2s"`
	MaxDelay     time.Duration `envconfig:"MODEL_RETRY_MAX_DELAY" default:"1m"`
	// CallInterval paces consecutive model calls; zero disables pacing.
	CallInterval time.Duration `envconfig:"MODEL_CALL_INTERVAL" default:"2s"`
}

type PipelineConfig struct {
	DocumentLimit   int `envconfig:"DOCUMENT_LIMIT" default:"10"`
	SalesPitchWords int `envconfig:"SALES_PITCH_WORDS" default:"350"`
}

type StoreConfig struct {
	Backend string `envconfig:"PLAN_STORE" default:"file"`
	Path    string `envconfig:"PLAN_STORE_PATH" default:"travel_data.json"`
	Key     string `envconfig:"PLAN_STORE_KEY" default:"wayfarer:travel_data"`
}

type CollectorConfig struct {
	RedditUserAgent  string        `envconfig:"REDDIT_USER_AGENT" default:"wayfarer-itinerary/1.0"`
	RedditBaseURL    string        `envconfig:"REDDIT_BASE_URL" default:"https://www.reddit.com"`
	WikipediaLang    string        `envconfig:"WIKIPEDIA_LANG" default:"en"`
	WikipediaBaseURL string        `envconfig:"WIKIPEDIA_BASE_URL"`
	NPSAPIKey        string        `envconfig:"NPS_API_KEY"`
	NPSBaseURL       string        `envconfig:"NPS_BASE_URL" default:"https://developer.nps.gov/api/v1"`
	NPSMaxDistanceKM float64       `envconfig:"NPS_MAX_DISTANCE_KM" default:"100"`
	GeocoderBaseURL  string        `envconfig:"GEOCODER_BASE_URL" default:"https://nominatim.openstreetmap.org"`
	AmadeusAPIKey    string        `envconfig:"AMADEUS_API_KEY"`
	AmadeusSecret    string        `envconfig:"AMADEUS_CLIENT_SECRET"`
	AmadeusBaseURL   string        `envconfig:"AMADEUS_BASE_URL" default:"https://test.api.amadeus.com"`
	RapidAPIKey      string        `envconfig:"RAPIDAPI_KEY"`
	PricelineBaseURL string        `envconfig:"PRICELINE_BASE_URL" default:"https://priceline-com2.p.rapidapi.com"`
	HTTPTimeout      time.Duration `envconfig:"COLLECTOR_HTTP_TIMEOUT" default:"20s"`
}
