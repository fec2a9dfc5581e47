// Package activity defines a single plannable item inside a day.
package activity

import (
	"fmt"
	"strings"
)

// Category groups activities for summaries and export.
type Category string

const (
	Food           Category = "Food"
	Sightseeing    Category = "Sightseeing"
	Adventure      Category = "Adventure"
	Transportation Category = "Transportation"
	Accommodation  Category = "Accommodation"
	Shopping       Category = "Shopping"
	Entertainment  Category = "Entertainment"
	Other          Category = "Other"
)

// AllCategories returns the supported categories in display order.
func AllCategories() []Category {
	return []Category{
		Food,
		Sightseeing,
		Adventure,
		Transportation,
		Accommodation,
		Shopping,
		Entertainment,
		Other,
	}
}

// ParseCategory matches raw case-insensitively. Empty input is Other.
func ParseCategory(raw string) (Category, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Other, nil
	}
	for _, c := range AllCategories() {
		if strings.EqualFold(string(c), trimmed) {
			return c, nil
		}
	}
	return Other, fmt.Errorf("activity: unknown category %q", raw)
}

// OrDefault maps the zero value to Other.
func (c Category) OrDefault() Category {
	if c == "" {
		return Other
	}
	return c
}

// Priority ranks activities; it drives the colored border on print output.
type Priority string

const (
	High   Priority = "high"
	Medium Priority = "medium"
	Low    Priority = "low"
)

// AllPriorities returns priorities from most to least important.
func AllPriorities() []Priority {
	return []Priority{High, Medium, Low}
}

// ParsePriority matches raw case-insensitively. Empty input is Medium.
func ParsePriority(raw string) (Priority, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Medium, nil
	}
	for _, p := range AllPriorities() {
		if strings.EqualFold(string(p), trimmed) {
			return p, nil
		}
	}
	return Medium, fmt.Errorf("activity: unknown priority %q", raw)
}

// OrDefault maps the zero value to Medium.
func (p Priority) OrDefault() Priority {
	if p == "" {
		return Medium
	}
	return p
}

// Coordinates is a WGS84 point attached to activities added from place search.
type Coordinates struct {
	Lat float64 `json:"lat" yaml:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" yaml:"lng" validate:"gte=-180,lte=180"`
}

// Activity is one item of a day. ID never changes after creation.
type Activity struct {
	ID          string       `json:"id" yaml:"id"`
	Title       string       `json:"title" yaml:"title"`
	Time        string       `json:"time" yaml:"time"`
	Location    string       `json:"location" yaml:"location"`
	Notes       string       `json:"notes" yaml:"notes"`
	Category    Category     `json:"category" yaml:"category"`
	Priority    Priority     `json:"priority" yaml:"priority"`
	Cost        Amount       `json:"cost" yaml:"cost"`
	Duration    Minutes      `json:"duration" yaml:"duration"`
	Coordinates *Coordinates `json:"coordinates,omitempty" yaml:"coordinates,omitempty"`
}

// Clone returns a copy that shares no pointers with a.
func (a Activity) Clone() Activity {
	cp := a
	if a.Coordinates != nil {
		c := *a.Coordinates
		cp.Coordinates = &c
	}
	return cp
}

func (a Activity) String() string {
	return fmt.Sprintf("%s (%s)", a.Title, a.ID)
}
