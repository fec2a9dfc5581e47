package options

import (
	"testing"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/trip/pkg/activity"
)

func TestParseDate(t *testing.T) {
	now := time.Date(2025, time.December, 5, 15, 0, 0, 0, time.UTC)
	tests := map[string]string{
		"2026-02-01":           "2026-02-01",
		"today":                "2025-12-05",
		"Tomorrow":             "2025-12-06",
		"12/24":                "2025-12-24",
		"1/3":                  "2026-01-03",
		"2025-07-01T23:30:00Z": "2025-07-01",
	}
	for in, want := range tests {
		got, err := ParseDate(in, now)
		if err != nil {
			t.Errorf("ParseDate(%q): %v", in, err)
			continue
		}
		if got.String() != want {
			t.Errorf("ParseDate(%q) = %s, want %s", in, got, want)
		}
	}
	if _, err := ParseDate("someday", now); err == nil {
		t.Errorf("expected an error")
	}
}

func newActivityCmd(t *testing.T, args ...string) *ActivityOptions {
	t.Helper()
	o := &ActivityOptions{}
	cmd := &cobra.Command{Use: "x"}
	AddActivityArgs(cmd, o)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return o
}

func TestActivityPatchOnlyChanged(t *testing.T) {
	o := newActivityCmd(t, "--notes", "", "--duration", "2 hours", "--cost", "$12.50", "-p", "HIGH")

	p, err := o.Patch()
	if err != nil {
		t.Fatalf("Patch: %v", err)
	}
	if p.Title != nil || p.Time != nil || p.Category != nil {
		t.Fatalf("unset flags must stay nil: %+v", p)
	}
	if p.Notes == nil || *p.Notes != "" {
		t.Fatalf("expected notes cleared, got %v", p.Notes)
	}
	if *p.Duration != 120 || *p.Cost != 12.5 || *p.Priority != activity.High {
		t.Fatalf("unexpected patch %+v", p)
	}
}

func TestActivityInput(t *testing.T) {
	o := newActivityCmd(t, "-t", "Ferry", "-c", "transportation", "--time", "07:15")

	in, err := o.Input()
	if err != nil {
		t.Fatalf("Input: %v", err)
	}
	if in.Title != "Ferry" || in.Category != activity.Transportation || in.Time != "07:15" {
		t.Fatalf("unexpected input %+v", in)
	}
	if in.Duration != 0 || in.Priority != "" {
		t.Fatalf("unset fields must stay empty: %+v", in)
	}

	bad := newActivityCmd(t, "--duration", "a while")
	if _, err := bad.Input(); err == nil {
		t.Fatalf("expected a duration error")
	}
}
