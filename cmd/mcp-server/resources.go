package main

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/simplefin-mcp/simplefin-go/docs"
)

const (
	usageResourceURI  = "resource://simplefin/usage"
	usageResourceName = "SimpleFIN MCP Usage Guide"
	usageResourceDesc = "Usage guide and privacy notes for the SimpleFIN MCP server."
	markdownMIMEType  = "text/markdown"
)

// resourceIndex lists every resource this server serves. The index backs both
// the MCP resource listing and the list_resources/read_resource tools.
func resourceIndex() []ResourceInfo {
	return []ResourceInfo{
		{
			URI:         usageResourceURI,
			Name:        usageResourceName,
			Description: usageResourceDesc,
			MIMEType:    markdownMIMEType,
		},
	}
}

// resourceContent returns the verbatim content for a known resource URI
func resourceContent(uri string) string {
	if uri == usageResourceURI {
		return docs.UsageGuide()
	}
	return ""
}

func registerResources(server *mcp.Server) {
	server.AddResource(&mcp.Resource{
		URI:         usageResourceURI,
		Name:        usageResourceName,
		Description: usageResourceDesc,
		MIMEType:    markdownMIMEType,
	}, readUsageGuide)
}

func readUsageGuide(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      usageResourceURI,
				MIMEType: markdownMIMEType,
				Text:     docs.UsageGuide(),
			},
		},
	}, nil
}
