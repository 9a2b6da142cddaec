package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// titleEqual is the duplicate-detection policy for notebook and tag titles:
// trimmed, Unicode simple case folding. The policy lives here, in exactly
// one place, so it can change without hunting call sites.
func titleEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

type ListNotebooksInput struct {
	ResponseFormat string `json:"response_format,omitempty" jsonschema:"output format: 'markdown' (default) or 'json'"`
}

func handleListNotebooks(ctx context.Context, req *mcp.CallToolRequest, input ListNotebooksInput) (*mcp.CallToolResult, any, error) {
	notebooks, err := apiClient.ListNotebooks(ctx)
	if err != nil {
		return errorResult(err)
	}
	if len(notebooks) == 0 {
		return textResult("No notebooks found."), nil, nil
	}
	if wantsJSON(input.ResponseFormat) {
		return textResult(jsonBlock(notebooks)), nil, nil
	}
	return textResult(renderNotebookTree(notebooks)), nil, nil
}

type CreateNotebookInput struct {
	Title    string `json:"title" jsonschema:"notebook title"`
	ParentID string `json:"parent_id,omitempty" jsonschema:"parent notebook ID for creating a sub-notebook"`
}

// handleCreateNotebook is idempotent by construction: an existing notebook
// with the same (case-insensitively folded) title at the same parent level
// is returned unchanged instead of creating a duplicate. Joplin itself
// enforces no title uniqueness, so the check has to happen here, before the
// create.
func handleCreateNotebook(ctx context.Context, req *mcp.CallToolRequest, input CreateNotebookInput) (*mcp.CallToolResult, any, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, nil, errors.New("title is required")
	}

	existing, err := apiClient.ListNotebooks(ctx)
	if err != nil {
		return errorResult(err)
	}
	for _, nb := range existing {
		if titleEqual(nb.Title, title) && nb.ParentID == input.ParentID {
			return textResult(fmt.Sprintf(
				"📁 Notebook **%s** already exists (ID: `%s`). Using existing notebook.",
				nb.Title, nb.ID)), nil, nil
		}
	}

	notebook, err := apiClient.CreateNotebook(ctx, title, input.ParentID)
	if err != nil {
		return errorResult(err)
	}
	return textResult(fmt.Sprintf(
		"✅ Created notebook **%s** (ID: `%s`)", notebook.Title, notebook.ID)), nil, nil
}
