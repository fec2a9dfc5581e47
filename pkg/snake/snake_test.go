package snake

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
)

func TestParseBool(t *testing.T) {
	for _, in := range []string{"y", "Yes", "true", "1"} {
		if v, err := ParseBool(in); err != nil || !v {
			t.Errorf("ParseBool(%q) = %v, %v", in, v, err)
		}
	}
	for _, in := range []string{"n", "no", "False", "0"} {
		if v, err := ParseBool(in); err != nil || v {
			t.Errorf("ParseBool(%q) = %v, %v", in, v, err)
		}
	}
	if _, err := ParseBool("maybe"); err == nil {
		t.Errorf("expected an error for maybe")
	}
}

func TestPromptFlagsSkipsChangedFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "x"}
	var title string
	cmd.Flags().StringVar(&title, "title", "", "Activity title.")
	if err := cmd.Flags().Set("title", "Lunch"); err != nil {
		t.Fatal(err)
	}
	cmd.SetIn(&bytes.Buffer{})
	cmd.SetOut(&bytes.Buffer{})

	if err := PromptFlags(cmd, nil, "title"); err != nil {
		t.Fatalf("PromptFlags: %v", err)
	}
	if title != "Lunch" {
		t.Fatalf("expected the flag to be left alone, got %q", title)
	}
}

func TestPromptFlagsUnknownFlag(t *testing.T) {
	cmd := &cobra.Command{Use: "x"}
	if err := PromptFlags(cmd, nil, "nope"); err == nil {
		t.Fatalf("expected an error")
	}
}
