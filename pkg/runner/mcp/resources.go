package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerSheetsResource(srv, svc)
	registerSheetTemplate(srv, svc)
}

func registerSheetsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"leadsheet://sheets",
		"Lead Sheets",
		mcp.WithResourceDescription("All stored lead sheets with bar, section and chord counts."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		sheets, err := svc.ListSheets(ctx)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"sheets": sheets,
			"count":  len(sheets),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerSheetTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"leadsheet://sheets/{name}",
		"Lead Sheet",
		mcp.WithTemplateDescription("Items, text chart and section report of one lead sheet."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		name := templateArg(request.Params.Arguments, "name")
		if name == "" {
			return nil, fmt.Errorf("sheet name is required")
		}

		sheet, err := svc.Sheet(ctx, name)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, sheet)
	})
}

// templateArg reads a URI template variable, which arrives either as a
// string or as a one element list.
func templateArg(args map[string]any, key string) string {
	switch v := args[key].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
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
