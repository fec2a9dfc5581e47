package activity

import "strings"

const (
	DefaultTitle    = "New Activity"
	DefaultDuration = Minutes(60)
)

// Input carries the fields of a new activity. Zero values mean "not provided".
type Input struct {
	Title       string       `json:"title,omitempty"`
	Time        string       `json:"time,omitempty"`
	Location    string       `json:"location,omitempty"`
	Notes       string       `json:"notes,omitempty"`
	Category    Category     `json:"category,omitempty" validate:"omitempty,oneof=Food Sightseeing Adventure Transportation Accommodation Shopping Entertainment Other"`
	Priority    Priority     `json:"priority,omitempty" validate:"omitempty,oneof=high medium low"`
	Cost        Amount       `json:"cost,omitempty" validate:"gte=0"`
	Duration    Minutes      `json:"duration,omitempty" validate:"gte=0"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// New builds an activity from in, filling defaults for every field left empty.
// A zero duration counts as unset and becomes DefaultDuration.
func New(id string, in Input) Activity {
	a := Activity{
		ID:       id,
		Title:    strings.TrimSpace(in.Title),
		Time:     in.Time,
		Location: in.Location,
		Notes:    in.Notes,
		Category: in.Category.OrDefault(),
		Priority: in.Priority.OrDefault(),
		Cost:     Amount(in.Cost.Float()),
		Duration: in.Duration,
	}
	if a.Title == "" {
		a.Title = DefaultTitle
	}
	if a.Duration.Int() == 0 {
		a.Duration = DefaultDuration
	}
	if in.Coordinates != nil {
		c := *in.Coordinates
		a.Coordinates = &c
	}
	return a
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Title       *string      `json:"title,omitempty"`
	Time        *string      `json:"time,omitempty"`
	Location    *string      `json:"location,omitempty"`
	Notes       *string      `json:"notes,omitempty"`
	Category    *Category    `json:"category,omitempty"`
	Priority    *Priority    `json:"priority,omitempty"`
	Cost        *Amount      `json:"cost,omitempty"`
	Duration    *Minutes     `json:"duration,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// Empty reports whether p would change nothing.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Time == nil && p.Location == nil && p.Notes == nil &&
		p.Category == nil && p.Priority == nil && p.Cost == nil && p.Duration == nil &&
		p.Coordinates == nil
}

// Apply merges p into a copy of a. The ID is always preserved.
func Apply(a Activity, p Patch) Activity {
	out := a.Clone()
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Time != nil {
		out.Time = *p.Time
	}
	if p.Location != nil {
		out.Location = *p.Location
	}
	if p.Notes != nil {
		out.Notes = *p.Notes
	}
	if p.Category != nil {
		out.Category = *p.Category
	}
	if p.Priority != nil {
		out.Priority = *p.Priority
	}
	if p.Cost != nil {
		out.Cost = Amount(p.Cost.Float())
	}
	if p.Duration != nil {
		out.Duration = Minutes(p.Duration.Int())
	}
	if p.Coordinates != nil {
		c := *p.Coordinates
		out.Coordinates = &c
	}
	out.ID = a.ID
	return out
}
