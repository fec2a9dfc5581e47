package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"tableflip.dev/trip/pkg/app"
	"tableflip.dev/trip/pkg/metrics"
	"tableflip.dev/trip/pkg/store"
	"tableflip.dev/trip/pkg/timeutil"
)

// Watch reports changes other trip processes make to the store until ctx is
// done.
type Watch struct {
	Service *app.Service
	Out     io.Writer
	Now     func() time.Time
}

func (n *Watch) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not watch, no itinerary")
	}
	if n.Now == nil {
		n.Now = time.Now
	}
	events, err := n.Service.Watch(ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(n.Out, "Watching for changes, ctrl+c to stop.")
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := n.handle(ctx, ev); err != nil {
				return err
			}
		}
	}
}

func (n *Watch) handle(ctx context.Context, ev store.Event) error {
	stamp := n.Now().Format("15:04:05")
	switch ev.Type {
	case store.EventDocumentChanged:
		if err := n.Service.Reload(ctx); err != nil {
			return err
		}
		s := metrics.Summarize(n.Service.Snapshot())
		_, _ = fmt.Fprintf(n.Out, "%s itinerary changed: %d days, %d activities, %s, $%.2f\n",
			stamp, s.Days, s.Activities, timeutil.FormatMinutes(s.TotalDuration), s.TotalCost)
	case store.EventThemeChanged:
		theme, err := n.Service.Theme(ctx)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(n.Out, "%s theme changed: %s\n", stamp, theme)
	default:
		_, _ = fmt.Fprintf(n.Out, "%s %s changed\n", stamp, ev.Type)
	}
	return nil
}
