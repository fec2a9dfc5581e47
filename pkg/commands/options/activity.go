package options

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/trip/pkg/activity"
	"tableflip.dev/trip/pkg/timeutil"
)

// ActivityOptions are the fields of an activity as flags.
type ActivityOptions struct {
	Title    string
	Time     string
	Location string
	Notes    string
	Category string
	Priority string
	Cost     string
	Duration string

	cmd *cobra.Command
}

// ActivityFlags lists the flag names in prompt order.
var ActivityFlags = []string{"title", "time", "location", "notes", "category", "priority", "cost", "duration"}

func AddActivityArgs(cmd *cobra.Command, o *ActivityOptions) {
	o.cmd = cmd
	var cats []string
	for _, c := range activity.AllCategories() {
		cats = append(cats, string(c))
	}
	var prios []string
	for _, p := range activity.AllPriorities() {
		prios = append(prios, string(p))
	}

	cmd.Flags().StringVarP(&o.Title, "title", "t", "",
		"Activity title.")
	cmd.Flags().StringVar(&o.Time, "time", "",
		`Start time, example: --time="09:30".`)
	cmd.Flags().StringVarP(&o.Location, "location", "l", "",
		"Where it happens.")
	cmd.Flags().StringVarP(&o.Notes, "notes", "n", "",
		"Free-form notes.")
	cmd.Flags().StringVarP(&o.Category, "category", "c", "",
		fmt.Sprintf("One of %s.", strings.Join(cats, ", ")))
	cmd.Flags().StringVarP(&o.Priority, "priority", "p", "",
		fmt.Sprintf("One of %s.", strings.Join(prios, ", ")))
	cmd.Flags().StringVar(&o.Cost, "cost", "",
		"Cost, zero or more.")
	cmd.Flags().StringVarP(&o.Duration, "duration", "d", "",
		`Length, example: --duration="1h30m" or --duration=90.`)

	_ = cmd.RegisterFlagCompletionFunc("category", fixedCompletions(cats))
	_ = cmd.RegisterFlagCompletionFunc("priority", fixedCompletions(prios))
}

func fixedCompletions(values []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

// Validators check flag answers entered at a prompt.
func (o *ActivityOptions) Validators() map[string]func(string) error {
	return map[string]func(string) error{
		"category": func(s string) error { _, err := activity.ParseCategory(s); return err },
		"priority": func(s string) error { _, err := activity.ParsePriority(s); return err },
		"cost":     func(s string) error { _, err := parseCost(s); return err },
		"duration": func(s string) error { _, err := timeutil.ParseMinutes(s); return err },
	}
}

func (o *ActivityOptions) changed(name string) bool {
	return o.cmd != nil && o.cmd.Flags().Changed(name)
}

// Patch holds only the flags that were set.
func (o *ActivityOptions) Patch() (activity.Patch, error) {
	var p activity.Patch
	if o.changed("title") {
		p.Title = &o.Title
	}
	if o.changed("time") {
		p.Time = &o.Time
	}
	if o.changed("location") {
		p.Location = &o.Location
	}
	if o.changed("notes") {
		p.Notes = &o.Notes
	}
	if o.changed("category") {
		c, err := activity.ParseCategory(o.Category)
		if err != nil {
			return p, err
		}
		p.Category = &c
	}
	if o.changed("priority") {
		pr, err := activity.ParsePriority(o.Priority)
		if err != nil {
			return p, err
		}
		p.Priority = &pr
	}
	if o.changed("cost") {
		c, err := parseCost(o.Cost)
		if err != nil {
			return p, err
		}
		p.Cost = &c
	}
	if o.changed("duration") {
		m, err := timeutil.ParseMinutes(o.Duration)
		if err != nil {
			return p, err
		}
		d := activity.Minutes(m)
		p.Duration = &d
	}
	return p, nil
}

// Input is a new activity from the flags. Unset flags stay empty so the
// defaults apply.
func (o *ActivityOptions) Input() (activity.Input, error) {
	p, err := o.Patch()
	if err != nil {
		return activity.Input{}, err
	}
	in := activity.Input{
		Title:    o.Title,
		Time:     o.Time,
		Location: o.Location,
		Notes:    o.Notes,
	}
	if p.Category != nil {
		in.Category = *p.Category
	}
	if p.Priority != nil {
		in.Priority = *p.Priority
	}
	if p.Cost != nil {
		in.Cost = *p.Cost
	}
	if p.Duration != nil {
		in.Duration = *p.Duration
	}
	return in, nil
}

func parseCost(raw string) (activity.Amount, error) {
	v, err := strconv.ParseFloat(strings.TrimPrefix(strings.TrimSpace(raw), "$"), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid cost %q", raw)
	}
	return activity.Amount(v), nil
}
