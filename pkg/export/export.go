// Package export renders a trip as JSON, plain text, printable HTML or YAML.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"tableflip.dev/trip/pkg/itinerary"
)

// Format names an export format.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
	FormatHTML Format = "html"
	FormatYAML Format = "yaml"
)

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatJSON, FormatText, FormatHTML, FormatYAML}
}

// ParseFormat accepts a format name or a file extension such as "txt".
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(raw), ".")) {
	case "json", "":
		return FormatJSON, nil
	case "text", "txt":
		return FormatText, nil
	case "html", "htm", "print":
		return FormatHTML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("export: unknown format %q", raw)
}

// Extension is the file extension used when saving f.
func (f Format) Extension() string {
	switch f {
	case FormatText:
		return "txt"
	case FormatHTML:
		return "html"
	case FormatYAML:
		return "yaml"
	}
	return "json"
}

// Now stamps the printable footer.
var Now = time.Now

// Render writes doc to w in the given format.
func Render(w io.Writer, f Format, doc itinerary.Document) error {
	switch f {
	case FormatJSON:
		return JSON(w, doc.Days)
	case FormatText:
		return Text(w, doc.Days, doc.StartDate)
	case FormatHTML:
		return HTML(w, doc.Days, doc.StartDate, Now())
	case FormatYAML:
		return YAML(w, doc.Days)
	}
	return fmt.Errorf("export: unknown format %q", f)
}

// JSON writes the day list with two space indentation.
func JSON(w io.Writer, days []itinerary.Day) error {
	if days == nil {
		days = []itinerary.Day{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(days)
}

// YAML writes the day list as a YAML sequence.
func YAML(w io.Writer, days []itinerary.Day) error {
	if days == nil {
		days = []itinerary.Day{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(days); err != nil {
		return err
	}
	return enc.Close()
}

// displayDate is how dates appear in text and printable exports.
const displayDate = "1/2/2006"

func dateRange(days []itinerary.Day, start *itinerary.Date) (string, string, bool) {
	if start == nil {
		return "", "", false
	}
	end := start.AddDays(len(days) - 1)
	return start.Format(displayDate), end.Format(displayDate), true
}
