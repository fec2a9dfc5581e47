package info

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/trip/pkg/app"
	"tableflip.dev/trip/pkg/itinerary"
	"tableflip.dev/trip/pkg/store"
)

type Info struct {
	Settings *store.Settings
	Service  *app.Service
	Out      io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv("TRIP_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "TRIP_CONFIG_PATH found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(out, "TRIP_CONFIG_PATH env var not set")
	}

	if n.Settings == nil {
		var err error
		n.Settings, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	config := n.Settings.ConfigFile
	if config == "" {
		config = "none"
	}
	tbl.AddRow("Config file:", config)
	tbl.AddRow("Store path:", n.Settings.BasePath())
	tbl.AddRow("Autosave delay:", n.Settings.AutosaveDelay)
	tbl.AddRow("Weather delay:", n.Settings.WeatherDelay)
	tbl.AddRow("Search delay:", n.Settings.SearchDelay)
	tbl.AddRow("Weather seed:", n.Settings.Seed)

	if n.Service == nil {
		_, _ = fmt.Fprintln(out, tbl)
		return errors.New("failed to open the itinerary")
	}
	doc := n.Service.Snapshot()
	theme, err := n.Service.Theme(ctx)
	if err != nil {
		return err
	}
	tbl.AddRow("Theme:", theme)
	start := "not set"
	if doc.StartDate != nil {
		start = doc.StartDate.String()
	}
	tbl.AddRow("Start date:", start)
	tbl.AddRow("Days:", len(doc.Days))
	tbl.AddRow("Activities:", itinerary.ActivityCount(doc))
	_, _ = fmt.Fprintln(out, tbl)
	return nil
}
