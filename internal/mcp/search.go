package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const defaultSearchLimit = 20

type SearchNotesInput struct {
	Query          string `json:"query" jsonschema:"search query in Joplin syntax; supports title:, body:, tag:, notebook:, type:, iscompleted:, created:, updated: prefixes"`
	Limit          int    `json:"limit,omitempty" jsonschema:"maximum results to return (default 20, max 100)"`
	ResponseFormat string `json:"response_format,omitempty" jsonschema:"output format: 'markdown' (default) or 'json'"`
}

// handleSearchNotes passes the query to Joplin verbatim. No local syntax
// validation: the query language belongs to the service, and a malformed
// query surfaces as whatever the service answers.
func handleSearchNotes(ctx context.Context, req *mcp.CallToolRequest, input SearchNotesInput) (*mcp.CallToolResult, any, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, nil, errors.New("query is required")
	}

	notes, err := apiClient.SearchNotes(ctx, query, clampLimit(input.Limit, defaultSearchLimit))
	if err != nil {
		return errorResult(err)
	}
	if len(notes) == 0 {
		return textResult(fmt.Sprintf("No notes found matching '%s'.", query)), nil, nil
	}
	if wantsJSON(input.ResponseFormat) {
		return textResult(jsonBlock(notes)), nil, nil
	}
	heading := fmt.Sprintf("Search Results: '%s'", query)
	subtitle := fmt.Sprintf("Found %d notes", len(notes))
	return textResult(renderNoteList(heading, subtitle, notes)), nil, nil
}
