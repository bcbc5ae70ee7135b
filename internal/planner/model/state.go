package model

// PipelineState is threaded through the itinerary stages by value.
// Every stage returns a copy with only its own fields set; earlier fields are read-only.
//
//   - draft       -> Draft
//   - flight      -> FlightInfo, FlightItinerary
//   - hotel       -> HotelInfo, HotelItinerary
//   - normalize   -> ImprovedItinerary
//   - filter      -> FinalItinerary
//   - sales_pitch -> SalesPitch
type PipelineState struct {
	Request TripRequest `json:"request"`

	Draft             string `json:"draft"`
	FlightInfo        string `json:"flight_info"`
	FlightItinerary   string `json:"flight_itinerary"`
	HotelInfo         string `json:"hotel_info"`
	HotelItinerary    string `json:"hotel_itinerary"`
	ImprovedItinerary string `json:"improved_itinerary"`
	FinalItinerary    string `json:"final_itinerary"`
	SalesPitch        string `json:"sales_pitch"`
}

// NewPipelineState seeds the state for one run.
func NewPipelineState(req TripRequest) PipelineState {
	return PipelineState{Request: req}
}

func (s PipelineState) WithDraft(draft string) PipelineState {
	s.Draft = draft
	return s
}

func (s PipelineState) WithFlight(info, itinerary string) PipelineState {
	s.FlightInfo = info
	s.FlightItinerary = itinerary
	return s
}

func (s PipelineState) WithHotel(info, itinerary string) PipelineState {
	s.HotelInfo = info
	s.HotelItinerary = itinerary
	return s
}

func (s PipelineState) WithImproved(itinerary string) PipelineState {
	s.ImprovedItinerary = itinerary
	return s
}

func (s PipelineState) WithFinal(itinerary string) PipelineState {
	s.FinalItinerary = itinerary
	return s
}

func (s PipelineState) WithSalesPitch(pitch string) PipelineState {
	s.SalesPitch = pitch
	return s
}

// Result is the terminal pipeline output: the sales pitch followed by the final itinerary.
func (s PipelineState) Result() string {
	return s.SalesPitch
}
