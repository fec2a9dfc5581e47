package export

import (
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"tableflip.dev/trip/pkg/activity"
	"tableflip.dev/trip/pkg/itinerary"
	"tableflip.dev/trip/pkg/timeutil"
)

var printTemplate = template.Must(template.New("print").Parse(`<html>
  <head>
    <title>Travel Itinerary</title>
    <style>
      body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 800px; margin: 0 auto; padding: 20px; }
      h1 { text-align: center; color: #2563eb; margin-bottom: 10px; }
      h2 { color: #2563eb; border-bottom: 1px solid #e5e7eb; padding-bottom: 5px; margin-top: 30px; }
      .date { color: #6b7280; font-size: 0.9em; margin-bottom: 20px; text-align: center; }
      .activity { margin-bottom: 20px; padding-left: 15px; border-left: 3px solid #e5e7eb; }
      .activity-title { font-weight: bold; font-size: 1.1em; margin-bottom: 5px; }
      .activity-meta { color: #6b7280; font-size: 0.9em; margin-bottom: 5px; }
      .activity-notes { font-style: italic; color: #6b7280; }
      .priority-high { border-left-color: #ef4444; }
      .priority-medium { border-left-color: #f59e0b; }
      .priority-low { border-left-color: #3b82f6; }
      .footer { text-align: center; margin-top: 40px; color: #6b7280; font-size: 0.8em; }
      @media print { body { padding: 0; } }
    </style>
  </head>
  <body>
    <h1>Travel Itinerary</h1>
{{- if .Range}}
    <div class="date">{{.Range}}</div>
{{- end}}
{{- range .Days}}
    <h2>{{.Title}}</h2>
{{- if .Date}}
    <div class="date">{{.Date}}</div>
{{- end}}
{{- if not .Activities}}
    <p>No activities planned.</p>
{{- end}}
{{- range .Activities}}
    <div class="{{.Class}}">
      <div class="activity-title">{{.Title}}</div>
{{- if .Meta}}
      <div class="activity-meta">{{.Meta}}</div>
{{- end}}
{{- if .Notes}}
      <div class="activity-notes">{{.Notes}}</div>
{{- end}}
    </div>
{{- end}}
{{- end}}
    <div class="footer">Generated on {{.Generated}} with Travel Itinerary Planner</div>
  </body>
</html>
`))

type printPage struct {
	Range     string
	Days      []printDay
	Generated string
}

type printDay struct {
	Title      string
	Date       string
	Activities []printActivity
}

type printActivity struct {
	Class string
	Title string
	Meta  string
	Notes string
}

// HTML writes a printable page. All text is escaped.
func HTML(w io.Writer, days []itinerary.Day, start *itinerary.Date, generated time.Time) error {
	page := printPage{Generated: generated.Format(displayDate)}
	if from, to, ok := dateRange(days, start); ok {
		page.Range = from + " - " + to
	}
	for i, day := range days {
		pd := printDay{Title: day.Title}
		if start != nil {
			pd.Date = start.AddDays(i).Format(displayDate)
		}
		for _, a := range day.Activities {
			pd.Activities = append(pd.Activities, printActivity{
				Class: activityClass(a),
				Title: a.Title,
				Meta:  strings.Join(metaLine(a), " • "),
				Notes: a.Notes,
			})
		}
		page.Days = append(page.Days, pd)
	}
	return printTemplate.Execute(w, page)
}

func activityClass(a activity.Activity) string {
	if a.Priority == "" {
		return "activity"
	}
	return "activity priority-" + string(a.Priority)
}

// metaLine is the printable detail line. Priority shows as the border color
// instead of text.
func metaLine(a activity.Activity) []string {
	var meta []string
	if a.Time != "" {
		meta = append(meta, "Time: "+a.Time)
	}
	if d := a.Duration.Int(); d > 0 {
		meta = append(meta, "Duration: "+timeutil.FormatMinutesCompact(d))
	}
	if a.Location != "" {
		meta = append(meta, "Location: "+a.Location)
	}
	if a.Category != "" {
		meta = append(meta, "Category: "+string(a.Category))
	}
	if c := a.Cost.Float(); c > 0 {
		meta = append(meta, fmt.Sprintf("Cost: $%.2f", c))
	}
	return meta
}
