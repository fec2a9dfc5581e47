package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/trip/pkg/activity"
	"tableflip.dev/trip/pkg/export"
	"tableflip.dev/trip/pkg/timeutil"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerGetItineraryTool(srv, svc)
	registerSummaryTool(srv, svc)
	registerAddDayTool(srv, svc)
	registerRemoveDayTool(srv, svc)
	registerRenameDayTool(srv, svc)
	registerReorderDaysTool(srv, svc)
	registerAddActivityTool(srv, svc)
	registerUpdateActivityTool(srv, svc)
	registerDeleteActivityTool(srv, svc)
	registerMoveActivityTool(srv, svc)
	registerSetStartDateTool(srv, svc)
	registerSearchPlacesTool(srv, svc)
	registerAddPlaceTool(srv, svc)
	registerExportTool(srv, svc)
}

func categoryNames() []string {
	var out []string
	for _, c := range activity.AllCategories() {
		out = append(out, string(c))
	}
	return out
}

func priorityNames() []string {
	var out []string
	for _, p := range activity.AllPriorities() {
		out = append(out, string(p))
	}
	return out
}

func templateNames() []string {
	var out []string
	for _, t := range activity.Templates() {
		out = append(out, t.Name)
	}
	return out
}

// activityFields are the optional arguments shared by add and update.
func activityFields() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("title", mcp.Description("Activity title.")),
		mcp.WithString("time", mcp.Description("Start time, for example 09:30.")),
		mcp.WithString("location", mcp.Description("Free-form location.")),
		mcp.WithString("notes", mcp.Description("Notes.")),
		mcp.WithString("category",
			mcp.Description("Activity category."),
			mcp.Enum(categoryNames()...),
		),
		mcp.WithString("priority",
			mcp.Description("Activity priority."),
			mcp.Enum(priorityNames()...),
		),
		mcp.WithNumber("cost", mcp.Description("Cost, zero or more.")),
		mcp.WithString("duration", mcp.Description("Duration such as 90, 1h30m or 2 hours.")),
	}
}

type activityArgs struct {
	DayID    string   `json:"day_id"`
	ID       string   `json:"id"`
	Template string   `json:"template"`
	Title    *string  `json:"title"`
	Time     *string  `json:"time"`
	Location *string  `json:"location"`
	Notes    *string  `json:"notes"`
	Category *string  `json:"category"`
	Priority *string  `json:"priority"`
	Cost     *float64 `json:"cost"`
	Duration *string  `json:"duration"`
}

func (a activityArgs) patch() (activity.Patch, error) {
	p := activity.Patch{
		Title:    a.Title,
		Time:     a.Time,
		Location: a.Location,
		Notes:    a.Notes,
	}
	if a.Category != nil {
		c, err := activity.ParseCategory(*a.Category)
		if err != nil {
			return p, err
		}
		p.Category = &c
	}
	if a.Priority != nil {
		pr, err := activity.ParsePriority(*a.Priority)
		if err != nil {
			return p, err
		}
		p.Priority = &pr
	}
	if a.Cost != nil {
		c := activity.Amount(*a.Cost)
		p.Cost = &c
	}
	if a.Duration != nil {
		m, err := timeutil.ParseMinutes(*a.Duration)
		if err != nil {
			return p, err
		}
		d := activity.Minutes(m)
		p.Duration = &d
	}
	return p, nil
}

func (a activityArgs) input() (activity.Input, error) {
	p, err := a.patch()
	if err != nil {
		return activity.Input{}, err
	}
	var in activity.Input
	if p.Title != nil {
		in.Title = *p.Title
	}
	if p.Time != nil {
		in.Time = *p.Time
	}
	if p.Location != nil {
		in.Location = *p.Location
	}
	if p.Notes != nil {
		in.Notes = *p.Notes
	}
	if p.Category != nil {
		in.Category = *p.Category
	}
	if p.Priority != nil {
		in.Priority = *p.Priority
	}
	if p.Cost != nil {
		in.Cost = *p.Cost
	}
	if p.Duration != nil {
		in.Duration = *p.Duration
	}
	return in, nil
}

func registerGetItineraryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_itinerary",
		mcp.WithDescription("Return every day of the trip with its activities, date and weather."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return toJSONResult(svc.Itinerary(ctx))
	})
}

func registerSummaryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"trip_summary",
		mcp.WithDescription("Totals, averages and histograms for the whole trip."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return toJSONResult(svc.Summary(ctx))
	})
}

func registerAddDayTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_day",
		mcp.WithDescription("Append a new empty day to the trip."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, err := svc.AddDay(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerRemoveDayTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"remove_day",
		mcp.WithDescription("Remove a day and its activities. Remaining days are renumbered."),
		mcp.WithString("day_id",
			mcp.Required(),
			mcp.Description("Day identifier to remove."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("day_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.RemoveDay(ctx, id); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(svc.Itinerary(ctx))
	})
}

func registerRenameDayTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"rename_day",
		mcp.WithDescription("Change the title of a day."),
		mcp.WithString("day_id",
			mcp.Required(),
			mcp.Description("Day identifier to rename."),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("New title."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("day_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		title, err := request.RequireString("title")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.RenameDay(ctx, id, title)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerReorderDaysTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"reorder_days",
		mcp.WithDescription("Move the day at one position to another. Titles move with their days."),
		mcp.WithNumber("from",
			mcp.Required(),
			mcp.Description("Zero-based index of the day to move."),
		),
		mcp.WithNumber("to",
			mcp.Required(),
			mcp.Description("Zero-based destination index."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			From int `json:"from"`
			To   int `json:"to"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		dto, err := svc.ReorderDays(ctx, args.From, args.To)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerAddActivityTool(srv *server.MCPServer, svc *Service) {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Add an activity to a day. Missing fields get defaults; a template fills title, duration, category, cost and priority."),
		mcp.WithString("day_id",
			mcp.Required(),
			mcp.Description("Day that should hold the activity."),
		),
		mcp.WithString("template",
			mcp.Description("Optional quick-add template."),
			mcp.Enum(templateNames()...),
		),
	}
	tool := mcp.NewTool("add_activity", append(opts, activityFields()...)...)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args activityArgs
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		in, err := args.input()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		a, err := svc.AddActivity(ctx, args.DayID, args.Template, in)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(a)
	})
}

func registerUpdateActivityTool(srv *server.MCPServer, svc *Service) {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Change fields of an activity. Only the provided fields are updated."),
		mcp.WithString("day_id",
			mcp.Required(),
			mcp.Description("Day holding the activity."),
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Activity identifier."),
		),
	}
	tool := mcp.NewTool("update_activity", append(opts, activityFields()...)...)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args activityArgs
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		patch, err := args.patch()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		a, err := svc.UpdateActivity(ctx, args.DayID, args.ID, patch)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(a)
	})
}

func registerDeleteActivityTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_activity",
		mcp.WithDescription("Delete an activity from a day."),
		mcp.WithString("day_id",
			mcp.Required(),
			mcp.Description("Day holding the activity."),
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Activity identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dayID, err := request.RequireString("day_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.DeleteActivity(ctx, dayID, id); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]string{"deleted": id})
	})
}

func registerMoveActivityTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"move_activity",
		mcp.WithDescription("Move an activity to a position in the same or another day."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Activity identifier to move."),
		),
		mcp.WithString("target_day_id",
			mcp.Description("Destination day. Defaults to the activity's current day."),
		),
		mcp.WithNumber("index",
			mcp.Required(),
			mcp.Description("Zero-based position in the destination day."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			ID     string `json:"id"`
			Target string `json:"target_day_id"`
			Index  int    `json:"index"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if args.ID == "" {
			return mcp.NewToolResultError("id is required"), nil
		}
		dto, err := svc.MoveActivity(ctx, args.ID, args.Target, args.Index)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerSetStartDateTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"set_start_date",
		mcp.WithDescription("Set the first day of the trip and refresh the forecast for every day. An empty date clears it."),
		mcp.WithString("date",
			mcp.Description("Date as YYYY-MM-DD or an RFC3339 timestamp."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, err := svc.SetStartDate(ctx, request.GetString("date", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerSearchPlacesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"search_places",
		mcp.WithDescription("Search for places. Results can be added to a day with add_place."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Free-text search."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := request.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		results, err := svc.SearchPlaces(ctx, query)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"query":   strings.TrimSpace(query),
			"count":   len(results),
			"results": results,
		})
	})
}

func registerAddPlaceTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_place",
		mcp.WithDescription("Add a place from the latest search_places results as a sightseeing activity."),
		mcp.WithString("day_id",
			mcp.Required(),
			mcp.Description("Day that should hold the activity."),
		),
		mcp.WithString("place_id",
			mcp.Required(),
			mcp.Description("Place identifier from search_places."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dayID, err := request.RequireString("day_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		placeID, err := request.RequireString("place_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		a, err := svc.AddPlace(ctx, dayID, placeID)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(a)
	})
}

func registerExportTool(srv *server.MCPServer, svc *Service) {
	var formats []string
	for _, f := range export.Formats() {
		formats = append(formats, string(f))
	}
	tool := mcp.NewTool(
		"export_itinerary",
		mcp.WithDescription("Render the itinerary as JSON, YAML, plain text or printable HTML."),
		mcp.WithString("format",
			mcp.Description("Output format."),
			mcp.Enum(formats...),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		out, err := svc.Export(ctx, request.GetString("format", string(export.FormatText)))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(out), nil
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
