package show

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/trip/pkg/app"
	"tableflip.dev/trip/pkg/itinerary"
	"tableflip.dev/trip/pkg/printers"
)

type Show struct {
	Service  *app.Service
	Out      io.Writer
	ShowID   bool
	Calendar bool
	// DayID limits the output to one day.
	DayID string
}

func (n *Show) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not show, no itinerary")
	}
	doc := n.Service.Snapshot()
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}

	pp.NewLine()
	if n.DayID != "" {
		i := itinerary.DayIndex(doc, n.DayID)
		if i < 0 {
			return fmt.Errorf("%w: %s", itinerary.ErrDayNotFound, n.DayID)
		}
		pp.Day(doc, i)
		return nil
	}

	if n.Calendar {
		pp.Calendar(doc)
		return nil
	}
	pp.Document(doc)
	return nil
}
