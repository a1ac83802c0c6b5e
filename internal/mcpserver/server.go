// Package mcpserver implements an MCP (Model Context Protocol) server that
// exposes minification as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasminify"
)

const serverInstructions = `oasminify MCP server: extracts minimal, self-contained OpenAPI documents.

Tools:
- operations: list or search the operations of a document. Use it first to
  discover operationIds before minifying.
- minify: build a minimal document containing only the requested operations
  and the schemas they transitively require. Operations accept an
  operationId, "METHOD /path", "METHOD:/path", a bare path, or free text.
- validate: run the structural checks against a document without minifying.

Provide documents either as a file path or as inline content.`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasminify", Version: oasminify.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "minify",
		Description: "Minify an OpenAPI Specification document down to the requested operations and the schemas they transitively require. Operations accept operationIds, METHOD /path or METHOD:/path pairs, bare paths (all methods), or fuzzy free text. Returns the selection, the schema closure, size metrics, and the minimal document. Use output to write to a file instead of returning the document inline.",
	}, handleMinify)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "operations",
		Description: "List the operations of an OpenAPI Specification document, or resolve selector strings against them. Returns method, path, operationId, summary, and tags per operation. Use this to discover operationIds before calling minify.",
	}, handleOperations)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate",
		Description: "Run the structural validation checks against an OpenAPI Specification document without minifying it. Returns errors and warnings with JSON path locations.",
	}, handleValidate)
}

// sanitizeError strips absolute filesystem paths from error messages to
// prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}
