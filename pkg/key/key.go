package key

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/trip/pkg/glyph"
)

type Key struct {
	Out io.Writer
}

func (k *Key) Do(ctx context.Context) error {
	for _, g := range []glyph.Group{glyph.GroupCategory, glyph.GroupPriority, glyph.GroupWeather} {
		k.Key(ctx, glyph.DefaultGlyphs(), g)
	}
	return nil
}

func (k *Key) Key(ctx context.Context, glyfs []glyph.Glyph, group glyph.Group) {
	out := k.Out
	if out == nil {
		out = color.Output
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(glyph.Bold("Key"), glyph.Bold("Symbol"), glyph.Bold("Meaning"))
	for _, v := range glyfs {
		if v.Group == group {
			tbl.AddRow(v.Key, v.Symbol, v.Meaning)
		}
	}

	_, _ = fmt.Fprintln(out, glyph.Bold(glyph.Underline("\n"+string(group))))
	_, _ = fmt.Fprintln(out, tbl)
}
