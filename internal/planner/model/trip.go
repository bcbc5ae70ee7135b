package model

import (
	"strings"
	"time"

	errx "github.com/wayfarer-core-poc/server/internal/core/error"
)

// DateLayout is the ISO date format used for trip dates.
const DateLayout = "2006-01-02"

// DefaultDocumentLimit bounds how many documents each collector contributes.
const DefaultDocumentLimit = 10

// TripRequest is the user's submission. It is passed by value and never mutated by the pipeline.
type TripRequest struct {
	Destination string `json:"destination"`
	Origin      string `json:"origin"`
	DateStart   string `json:"date_start"`
	DateEnd     string `json:"date_end"`
	Interests   string `json:"interests"`
	Limit       int    `json:"limit"`
	// Prompt is the raw text the user typed; it doubles as Interests when Interests is empty.
	Prompt string `json:"prompt,omitempty"`
}

// Normalized fills defaults without touching the caller's copy.
func (r TripRequest) Normalized() TripRequest {
	r.Destination = strings.TrimSpace(r.Destination)
	r.Origin = strings.TrimSpace(r.Origin)
	r.Interests = strings.TrimSpace(r.Interests)
	r.Prompt = strings.TrimSpace(r.Prompt)
	if r.Interests == "" {
		r.Interests = r.Prompt
	}
	if r.Prompt == "" {
		r.Prompt = r.Interests
	}
	if r.Limit <= 0 {
		r.Limit = DefaultDocumentLimit
	}
	return r
}

// Validate rejects requests the pipeline cannot plan for.
func (r TripRequest) Validate() error {
	if strings.TrimSpace(r.Destination) == "" {
		return errx.Invalid("destination is required")
	}
	var start, end time.Time
	var err error
	if r.DateStart != "" {
		if start, err = time.Parse(DateLayout, r.DateStart); err != nil {
			return errx.Invalid("date_start %q is not a YYYY-MM-DD date", r.DateStart)
		}
	}
	if r.DateEnd != "" {
		if end, err = time.Parse(DateLayout, r.DateEnd); err != nil {
			return errx.Invalid("date_end %q is not a YYYY-MM-DD date", r.DateEnd)
		}
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return errx.Invalid("date_end %s is before date_start %s", r.DateEnd, r.DateStart)
	}
	return nil
}
