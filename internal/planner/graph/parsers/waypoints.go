package parsers

import (
	"fmt"
	"strings"

	"github.com/wayfarer-core-poc/server/internal/planner/model"
)

// DayStopWord closes the current day in the waypoint listing.
const DayStopWord = "stop"

// DayLabel returns the schedule key for the n-th day.
func DayLabel(n int) string {
	return fmt.Sprintf("Day %d", n)
}

// ParseWaypointSchedule turns the model's listing into a day schedule.
//
// Lines are trimmed and blank ones ignored. A line equal to "stop" (any case) closes the open
// day and advances the day number, even when that day received no locations; such a day never
// becomes a key. Any other line is a location appended to the open day, opening "Day N" first
// if none is open.
func ParseWaypointSchedule(content string) *model.WaypointSchedule {
	schedule := model.NewWaypointSchedule()
	day := 1
	open := ""
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.EqualFold(line, DayStopWord) {
			open = ""
			day++
			continue
		}
		if open == "" {
			open = DayLabel(day)
		}
		locations, _ := schedule.Get(open)
		schedule.Set(open, append(locations, line))
	}
	return schedule
}
