package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"tableflip.dev/trip/pkg/app"
	"tableflip.dev/trip/pkg/export"
)

// DefaultName is the file name used when only a directory is given.
const DefaultName = "itinerary"

type Export struct {
	Service *app.Service
	Format  export.Format
	// Path is a file or directory. Empty writes to Out.
	Path string
	Out  io.Writer
}

func (n *Export) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not export, no itinerary")
	}
	doc := n.Service.Snapshot()

	if n.Path == "" {
		out := n.Out
		if out == nil {
			out = os.Stdout
		}
		return export.Render(out, n.Format, doc)
	}

	path := n.Target()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.Render(f, n.Format, doc); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if n.Out != nil {
		_, _ = fmt.Fprintf(n.Out, "Exported %s to %s\n", n.Format, path)
	}
	return nil
}

// Target is the file Path resolves to. A directory gets DefaultName plus the
// format's extension.
func (n *Export) Target() string {
	if fi, err := os.Stat(n.Path); err == nil && fi.IsDir() {
		return filepath.Join(n.Path, DefaultName+"."+n.Format.Extension())
	}
	return n.Path
}
