package activity

import "strings"

// Template is a quick-add preset. Its fields override the form it is merged into.
type Template struct {
	Name  string
	Input Input
}

// Templates returns the quick-add presets.
func Templates() []Template {
	return []Template{
		{Name: "Breakfast", Input: Input{Title: "Breakfast", Duration: 60, Category: Food, Cost: 15, Priority: Medium}},
		{Name: "Lunch", Input: Input{Title: "Lunch", Duration: 90, Category: Food, Cost: 25, Priority: Medium}},
		{Name: "Dinner", Input: Input{Title: "Dinner", Duration: 120, Category: Food, Cost: 40, Priority: Medium}},
		{Name: "Museum", Input: Input{Title: "Museum", Duration: 180, Category: Sightseeing, Cost: 20, Priority: Medium}},
		{Name: "Tour", Input: Input{Title: "Tour", Duration: 120, Category: Sightseeing, Cost: 30, Priority: High}},
		{Name: "Hiking", Input: Input{Title: "Hiking", Duration: 180, Category: Adventure, Cost: 0, Priority: High}},
	}
}

// LookupTemplate finds a template by name, ignoring case.
func LookupTemplate(name string) (Template, bool) {
	name = strings.TrimSpace(name)
	for _, t := range Templates() {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return Template{}, false
}

// Merge overlays the template on form. Time, location and notes come from the
// form; everything the template defines wins.
func (t Template) Merge(form Input) Input {
	out := form
	out.Title = t.Input.Title
	out.Duration = t.Input.Duration
	out.Category = t.Input.Category
	out.Cost = t.Input.Cost
	out.Priority = t.Input.Priority
	return out
}
