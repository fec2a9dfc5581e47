package glyph

import (
	"fmt"

	"tableflip.dev/trip/pkg/activity"
	"tableflip.dev/trip/pkg/weather"
)

// Group is the legend section a glyph belongs to.
type Group string

const (
	GroupCategory Group = "Categories"
	GroupPriority Group = "Priorities"
	GroupWeather  Group = "Weather"
)

type Glyph struct {
	Key     string
	Symbol  string
	Meaning string
	Group   Group
}

const (
	escape        = "\x1b"
	resetCode     = 0
	boldCode      = 1
	underlineCode = 4
)

func Bold(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, boldCode, in, escape, resetCode)
}

func Underline(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, underlineCode, in, escape, resetCode)
}

var categorySymbols = map[activity.Category]string{
	activity.Food:           "♨",
	activity.Sightseeing:    "◉",
	activity.Adventure:      "▲",
	activity.Transportation: "➜",
	activity.Accommodation:  "⌂",
	activity.Shopping:       "¤",
	activity.Entertainment:  "♫",
	activity.Other:          "•",
}

var prioritySymbols = map[activity.Priority]string{
	activity.High:   "‼",
	activity.Medium: "!",
	activity.Low:    "·",
}

var conditionSymbols = map[weather.Condition]string{
	weather.Sunny:        "☀",
	weather.PartlyCloudy: "⛅",
	weather.Cloudy:       "☁",
	weather.Rainy:        "☂",
	weather.Thunderstorm: "⚡",
}

func DefaultGlyphs() []Glyph {
	g := make([]Glyph, 0, 16)
	for _, c := range activity.AllCategories() {
		g = append(g, ForCategory(c))
	}
	for _, p := range activity.AllPriorities() {
		g = append(g, ForPriority(p))
	}
	for _, c := range weather.AllConditions() {
		g = append(g, ForCondition(c))
	}
	return g
}

func ForCategory(c activity.Category) Glyph {
	c = c.OrDefault()
	sym, ok := categorySymbols[c]
	if !ok {
		sym = categorySymbols[activity.Other]
	}
	return Glyph{Key: string(c), Symbol: sym, Meaning: string(c) + " activity", Group: GroupCategory}
}

func ForPriority(p activity.Priority) Glyph {
	p = p.OrDefault()
	sym, ok := prioritySymbols[p]
	if !ok {
		sym = prioritySymbols[activity.Medium]
	}
	return Glyph{Key: string(p), Symbol: sym, Meaning: string(p) + " priority", Group: GroupPriority}
}

func ForCondition(c weather.Condition) Glyph {
	sym, ok := conditionSymbols[c]
	if !ok {
		sym = "?"
	}
	return Glyph{Key: string(c), Symbol: sym, Meaning: string(c), Group: GroupWeather}
}

func (g Glyph) String() string {
	return g.Symbol
}
