// Package docs embeds the static documents served as MCP resources.
package docs

import (
	_ "embed"
)

//go:embed simplefin-mcp-usage.md
var usageGuide string

// UsageGuide returns the SimpleFIN MCP usage and privacy guide verbatim
func UsageGuide() string {
	return usageGuide
}
