package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wayfarer-core-poc/server/internal/planner/graph/parsers"
	"github.com/wayfarer-core-poc/server/internal/planner/model"
	"github.com/wayfarer-core-poc/server/internal/planner/waypoints"
)

const (
	renderWidth     = 88
	logisticsHeader = "Logistics & Final Notes"
)

// RenderPlan lays out a stored plan: pitch first, then each day, then the logistics box.
func RenderPlan(plan *model.Plan) string {
	view := parsers.ParseItineraryView(plan.Steps)

	var blocks []string
	blocks = append(blocks, titleStyle.Render(planTitle(plan)))

	if len(view.SalesPitch) > 0 {
		pitch := lipgloss.NewStyle().Width(renderWidth).Render(strings.Join(view.SalesPitch, "\n\n"))
		blocks = append(blocks, pitch)
	}

	for _, day := range view.Days {
		rows := []string{dayStyle.Render(day.Title)}
		for _, e := range day.Entries {
			desc := lipgloss.NewStyle().Width(renderWidth - timeStyle.GetWidth()).Render(e.Description)
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, timeStyle.Render(e.Time), desc))
		}
		blocks = append(blocks, strings.Join(rows, "\n"))
	}

	if len(view.Logistics) > 0 {
		body := subtleStyle.Render(logisticsHeader) + "\n" + strings.Join(view.Logistics, "\n")
		blocks = append(blocks, boxStyle.Width(renderWidth).Render(body))
	}

	if len(view.SalesPitch) == 0 && len(view.Days) == 0 && len(view.Logistics) == 0 {
		blocks = append(blocks, subtleStyle.Render("No itinerary yet."))
	}
	return strings.Join(blocks, "\n\n")
}

func planTitle(plan *model.Plan) string {
	title := plan.Destination
	if plan.DateStart != "" && plan.DateEnd != "" {
		title = fmt.Sprintf("%s (%s to %s)", title, plan.DateStart, plan.DateEnd)
	}
	if plan.Origin != "" {
		title += " from " + plan.Origin
	}
	return title
}

// RenderWaypoints lists each day's stops with a directions link.
func RenderWaypoints(plan *model.Plan) string {
	if model.ScheduleEmpty(plan.DailyWaypoints) {
		return subtleStyle.Render("No waypoints provided.")
	}

	var blocks []string
	for pair := plan.DailyWaypoints.Oldest(); pair != nil; pair = pair.Next() {
		locations := pair.Value
		var b strings.Builder
		b.WriteString(dayStyle.Render(pair.Key))
		if len(locations) > 0 {
			fmt.Fprintf(&b, "\nTrip from %s to %s", locations[0], locations[len(locations)-1])
		}
		for i, loc := range locations {
			fmt.Fprintf(&b, "\n  %d. %s", i+1, loc)
		}
		b.WriteString("\n" + subtleStyle.Render(waypoints.DirectionsURL(locations)))
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}
