package options

import (
	"strings"
	"time"

	"tableflip.dev/trip/pkg/itinerary"
)

const layoutUSShort = "1/2"

// ParseDate reads a trip date. Besides the forms itinerary.ParseDate takes it
// accepts "today", "tomorrow" and a month/day pair, which lands on the next
// such day from now.
func ParseDate(raw string, now time.Time) (itinerary.Date, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "today":
		return itinerary.DateOf(now), nil
	case "tomorrow":
		return itinerary.DateOf(now).AddDays(1), nil
	}
	d, err := itinerary.ParseDate(raw)
	if err == nil {
		return d, nil
	}
	t, serr := time.Parse(layoutUSShort, strings.TrimSpace(raw))
	if serr != nil {
		return itinerary.Date{}, err
	}
	out := itinerary.NewDate(now.Year(), t.Month(), t.Day())
	// 1/3 asked for on 12/5 means next year, not eleven months ago.
	if out.Before(itinerary.DateOf(now).Time) {
		out = itinerary.NewDate(now.Year()+1, t.Month(), t.Day())
	}
	return out, nil
}
