package parsers

import (
	"regexp"
	"strings"
)

// ItineraryEntry is one timed activity of a day.
type ItineraryEntry struct {
	Time        string
	Description string
}

// ItineraryDay groups the entries under one "**Day ...**" header.
type ItineraryDay struct {
	Title   string
	Entries []ItineraryEntry
}

// ItineraryView is the stored plan split for display: the pitch paragraphs that precede the
// schedule, the days, and the logistics lines that follow the first day header.
type ItineraryView struct {
	SalesPitch []string
	Days       []ItineraryDay
	Logistics  []string
}

var entryPattern = regexp.MustCompile(`^\*\s+\*\*(.+?)\*\*\s*(.*)$`)

// ParseItineraryView splits the stored itinerary lines. Days without a timed entry are dropped.
func ParseItineraryView(steps []string) ItineraryView {
	var view ItineraryView
	var current *ItineraryDay
	inSchedule := false

	flush := func() {
		if current != nil && len(current.Entries) > 0 {
			view.Days = append(view.Days, *current)
		}
		current = nil
	}

	for _, step := range steps {
		step = strings.TrimSpace(step)
		if step == "" {
			continue
		}

		switch {
		case strings.HasPrefix(step, "**Day"):
			flush()
			current = &ItineraryDay{Title: strings.TrimSpace(strings.Trim(step, "*"))}
			inSchedule = true
		case inSchedule && strings.HasPrefix(step, "*"):
			if m := entryPattern.FindStringSubmatch(step); m != nil && current != nil {
				current.Entries = append(current.Entries, ItineraryEntry{
					Time:        strings.TrimSpace(m[1]),
					Description: strings.TrimSpace(m[2]),
				})
			}
		case inSchedule:
			view.Logistics = append(view.Logistics, step)
		case !strings.HasPrefix(step, "*"):
			view.SalesPitch = append(view.SalesPitch, step)
		}
	}
	flush()
	return view
}
