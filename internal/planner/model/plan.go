package model

import (
	"context"
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// WaypointSchedule maps "Day N" to the ordered locations visited that day.
// Keys keep the order in which days were first seen.
type WaypointSchedule = orderedmap.OrderedMap[string, []string]

// NewWaypointSchedule returns an empty schedule.
func NewWaypointSchedule() *WaypointSchedule {
	return orderedmap.New[string, []string]()
}

// ScheduleEmpty reports whether the schedule is missing or holds no days.
func ScheduleEmpty(s *WaypointSchedule) bool {
	return s == nil || s.Len() == 0
}

// ScheduleDays returns the day labels in order.
func ScheduleDays(s *WaypointSchedule) []string {
	if s == nil {
		return nil
	}
	days := make([]string, 0, s.Len())
	for pair := s.Oldest(); pair != nil; pair = pair.Next() {
		days = append(days, pair.Key)
	}
	return days
}

// Plan is the persisted result for one destination.
type Plan struct {
	Destination    string            `json:"destination"`
	Prompt         string            `json:"prompt"`
	Steps          []string          `json:"steps"`
	DailyWaypoints *WaypointSchedule `json:"daily_waypoints"`
	DateStart      string            `json:"date_start,omitempty"`
	DateEnd        string            `json:"date_end,omitempty"`
	Origin         string            `json:"origin,omitempty"`
}

// TravelData is the whole persisted document: destination names in insertion order plus a plan
// per destination. It is always read and written wholesale.
type TravelData struct {
	Destinations []string         `json:"destinations"`
	Plans        map[string]*Plan `json:"plans"`
}

// NewTravelData returns the document used when nothing has been stored yet.
func NewTravelData() *TravelData {
	return &TravelData{Destinations: []string{}, Plans: map[string]*Plan{}}
}

// AddDestination records a destination once, keeping first-added order.
func (d *TravelData) AddDestination(name string) {
	if !slices.Contains(d.Destinations, name) {
		d.Destinations = append(d.Destinations, name)
	}
}

// PutPlan replaces the destination's plan wholesale.
func (d *TravelData) PutPlan(p *Plan) {
	if d.Plans == nil {
		d.Plans = map[string]*Plan{}
	}
	d.AddDestination(p.Destination)
	d.Plans[p.Destination] = p
}

// Plan returns the stored plan for a destination.
func (d *TravelData) Plan(name string) (*Plan, bool) {
	p, ok := d.Plans[name]
	return p, ok && p != nil
}

// CachedSchedule returns the stored schedule for a destination, or nil.
func (d *TravelData) CachedSchedule(name string) *WaypointSchedule {
	if p, ok := d.Plan(name); ok {
		return p.DailyWaypoints
	}
	return nil
}

// PlanRepository loads and saves the whole TravelData document.
// There is no locking: concurrent writers for the same destination are last-writer-wins.
type PlanRepository interface {
	// Load returns the stored document, or an empty one when nothing was saved yet.
	Load(ctx context.Context) (*TravelData, error)

	// Save replaces the stored document.
	Save(ctx context.Context, data *TravelData) error
}
