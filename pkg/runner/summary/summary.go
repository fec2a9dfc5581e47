package summary

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/trip/pkg/app"
	"tableflip.dev/trip/pkg/metrics"
	"tableflip.dev/trip/pkg/printers"
)

type Summary struct {
	Service *app.Service
	Out     io.Writer
}

func (n *Summary) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not summarize, no itinerary")
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.NewLine()
	pp.Summary(metrics.Summarize(n.Service.Snapshot()))
	return nil
}
