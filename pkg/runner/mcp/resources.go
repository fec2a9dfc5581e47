package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerItineraryResource(srv, svc)
	registerSummaryResource(srv, svc)
	registerDayTemplate(srv, svc)
}

func registerItineraryResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"trip://itinerary",
		"Itinerary",
		mcp.WithResourceDescription("Every day of the trip with activities, dates and weather."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		it := svc.Itinerary(ctx)
		payload := map[string]any{
			"startDate": it.StartDate,
			"days":      it.Days,
			"count":     len(it.Days),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerSummaryResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"trip://summary",
		"Trip Summary",
		mcp.WithResourceDescription("Cost and duration totals, averages and category counts."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return encodeResourceJSON(request.Params.URI, svc.Summary(ctx))
	})
}

func registerDayTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"trip://days/{id}",
		"Day Details",
		mcp.WithTemplateDescription("A single day with its activities and totals."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id := templateArg(request.Params.Arguments["id"])
		if id == "" {
			return nil, fmt.Errorf("day id is required")
		}

		dto, err := svc.Day(ctx, id)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"day": dto,
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

// templateArg reads a URI template variable, which arrives as a string or a
// one element list depending on the server version.
func templateArg(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []string:
		if len(t) > 0 {
			return t[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
