// Package mcp exposes the Joplin Data API as MCP tools: the operation
// catalogue, per-operation argument validation and business rules, and the
// markdown/JSON rendering of results.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kutbudev/joplin-mcp/internal/api"
)

// Version is stamped at build time with ldflags.
var Version = "1.2.0"

// apiClient and autoLaunch are set once at server construction and read-only
// afterwards, so concurrent tool dispatch needs no synchronization.
var (
	apiClient  *api.Client
	autoLaunch bool
)

const serverInstructions = `Joplin note-taking bridge.

All tools talk to the local Joplin desktop app over its Web Clipper API.
If a tool reports a connection error, the app is probably closed - call
joplin_ensure_running first, or ask the user to start Joplin.

Workflow hints:
- List notebooks before creating one; joplin_create_notebook reuses an
  existing notebook with the same title instead of duplicating it.
- joplin_list_notes and joplin_search_notes return metadata only; use
  joplin_get_note for the full body.
- Search supports Joplin query syntax verbatim: title:, body:, tag:,
  notebook:, type:todo, iscompleted:0, created:, updated:.`

// Options configures server construction.
type Options struct {
	Client     *api.Client
	AutoLaunch bool
}

func newServer(opts Options) (*mcp.Server, error) {
	if opts.Client == nil {
		return nil, errors.New("api client is required")
	}
	apiClient = opts.Client
	autoLaunch = opts.AutoLaunch

	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "joplin",
			Version: Version,
		},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerTools(server)
	return server, nil
}

// ServeStdio runs the MCP server over stdio until the client disconnects.
func ServeStdio(opts Options) error {
	server, err := newServer(opts)
	if err != nil {
		return err
	}
	return server.Run(context.Background(), &mcp.StdioTransport{})
}

// HTTPHandler returns a stateless streamable-HTTP handler for the same
// server, for hosts that speak MCP over HTTP instead of stdio.
func HTTPHandler(opts Options) (http.Handler, error) {
	server, err := newServer(opts)
	if err != nil {
		return nil, err
	}
	return mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server {
			return server
		},
		&mcp.StreamableHTTPOptions{
			Stateless: true,
		},
	), nil
}

// textResult wraps rendered output as MCP text content.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// errorResult converts a gateway failure into a structured tool error with
// an actionable message. Failures stop here: the caller gets a kind and a
// message, never a crash and never an automatic retry.
func errorResult(err error) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: friendlyError(err)},
		},
	}, nil, nil
}

// friendlyError maps the failure taxonomy onto messages an agent can act
// on. Transport failures dominate (the desktop app is closed more often
// than anything else goes wrong), so that message carries the checklist.
func friendlyError(err error) string {
	switch {
	case api.IsTransport(err):
		return "Error: Cannot connect to Joplin. Make sure:\n" +
			"1. Joplin desktop is running (try joplin_ensure_running)\n" +
			"2. The Web Clipper service is enabled (Tools > Options > Web Clipper)\n" +
			fmt.Sprintf("3. The API port matches JOPLIN_PORT (default: %d)", 41184)
	case api.IsAuth(err):
		return "Error: Invalid or missing API token. Check that JOPLIN_TOKEN matches " +
			"the token in Joplin under Tools > Options > Web Clipper."
	case api.IsNotFound(err):
		return "Error: Resource not found. Check the ID is correct."
	case api.IsPaginationLimit(err):
		return "Error: " + err.Error() + ". The result set did not terminate; narrow the request."
	case api.IsSchema(err):
		return "Error: Internal field-selection defect: " + err.Error()
	case api.IsValidation(err):
		return "Error: " + err.Error()
	default:
		return "Error: " + err.Error()
	}
}
