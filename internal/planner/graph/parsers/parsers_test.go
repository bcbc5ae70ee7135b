package parsers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-core-poc/server/internal/planner/model"
)

func scheduleMap(s *model.WaypointSchedule) ([]string, map[string][]string) {
	out := map[string][]string{}
	for pair := s.Oldest(); pair != nil; pair = pair.Next() {
		out[pair.Key] = pair.Value
	}
	return model.ScheduleDays(s), out
}

func TestParseWaypointSchedule(t *testing.T) {
	s := ParseWaypointSchedule("Paris, France\nstop\nLyon, France\nMarseille, France\nstop")

	days, got := scheduleMap(s)
	assert.Equal(t, []string{"Day 1", "Day 2"}, days)
	assert.Equal(t, map[string][]string{
		"Day 1": {"Paris, France"},
		"Day 2": {"Lyon, France", "Marseille, France"},
	}, got)
}

func TestParseWaypointScheduleStopIsCaseInsensitive(t *testing.T) {
	s := ParseWaypointSchedule("Rome, Italy\nStop\nVatican City\n  STOP  \n")

	days, got := scheduleMap(s)
	assert.Equal(t, []string{"Day 1", "Day 2"}, days)
	assert.Equal(t, []string{"Rome, Italy"}, got["Day 1"])
	assert.Equal(t, []string{"Vatican City"}, got["Day 2"])
}

func TestParseWaypointScheduleSkipsEmptyDays(t *testing.T) {
	s := ParseWaypointSchedule("\nstop\n\n  \nKyoto, Japan\nstop\nstop\nNara, Japan")

	days, got := scheduleMap(s)
	assert.Equal(t, []string{"Day 2", "Day 4"}, days)
	assert.Equal(t, []string{"Kyoto, Japan"}, got["Day 2"])
	assert.Equal(t, []string{"Nara, Japan"}, got["Day 4"])
}

func TestParseWaypointScheduleEmptyInput(t *testing.T) {
	assert.True(t, model.ScheduleEmpty(ParseWaypointSchedule("")))
	assert.True(t, model.ScheduleEmpty(ParseWaypointSchedule("stop\nSTOP")))
}

func TestParseWaypointScheduleJSONKeepsDayOrder(t *testing.T) {
	s := ParseWaypointSchedule("a\nstop\nb\nstop\nc")
	raw, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Day 1":["a"],"Day 2":["b"],"Day 3":["c"]}`, string(raw))
	assert.Equal(t, `{"Day 1":["a"],"Day 2":["b"],"Day 3":["c"]}`, string(raw))
}

func TestParseItineraryView(t *testing.T) {
	steps := []string{
		"Get ready for sun, art and croissants!",
		"",
		"* stray bullet before the schedule",
		"Paris is waiting.",
		"**Day 1: Arrival**",
		"*   **9:00 AM** Land at CDG",
		"* **1:00 PM**   Lunch in Le Marais ",
		"* not a timed entry",
		"**Day 2**",
		"**Day 3: Museums**",
		"* **10:00 AM** Louvre",
		"Flight offers from Boston (BOS) to Paris (PAR):",
		"Hotel options in Paris:",
	}

	view := ParseItineraryView(steps)
	assert.Equal(t, []string{"Get ready for sun, art and croissants!", "Paris is waiting."}, view.SalesPitch)
	require.Len(t, view.Days, 2)
	assert.Equal(t, "Day 1: Arrival", view.Days[0].Title)
	assert.Equal(t, []ItineraryEntry{
		{Time: "9:00 AM", Description: "Land at CDG"},
		{Time: "1:00 PM", Description: "Lunch in Le Marais"},
	}, view.Days[0].Entries)
	assert.Equal(t, "Day 3: Museums", view.Days[1].Title)
	assert.Equal(t, []string{"Flight offers from Boston (BOS) to Paris (PAR):", "Hotel options in Paris:"}, view.Logistics)
}

func TestParseItineraryViewWithoutDays(t *testing.T) {
	view := ParseItineraryView([]string{"Just a pitch.", "Another paragraph."})
	assert.Equal(t, []string{"Just a pitch.", "Another paragraph."}, view.SalesPitch)
	assert.Empty(t, view.Days)
	assert.Empty(t, view.Logistics)
}
