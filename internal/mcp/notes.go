package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kutbudev/joplin-mcp/internal/api"
)

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

func clampLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

type ListNotesInput struct {
	NotebookID     string `json:"notebook_id,omitempty" jsonschema:"filter by notebook ID; lists all notes when unset"`
	Limit          int    `json:"limit,omitempty" jsonschema:"maximum notes to return (default 50, max 100)"`
	OrderBy        string `json:"order_by,omitempty" jsonschema:"sort field: updated_time (default), created_time, title, order"`
	OrderAsc       bool   `json:"order_asc,omitempty" jsonschema:"sort ascending instead of newest-first"`
	ResponseFormat string `json:"response_format,omitempty" jsonschema:"output format: 'markdown' (default) or 'json'"`
}

func handleListNotes(ctx context.Context, req *mcp.CallToolRequest, input ListNotesInput) (*mcp.CallToolResult, any, error) {
	notes, err := apiClient.ListNotes(ctx, api.NoteQuery{
		NotebookID: input.NotebookID,
		OrderBy:    input.OrderBy,
		OrderDesc:  !input.OrderAsc,
		Limit:      clampLimit(input.Limit, defaultListLimit),
	})
	if err != nil {
		return errorResult(err)
	}
	if len(notes) == 0 {
		return textResult("No notes found."), nil, nil
	}
	if wantsJSON(input.ResponseFormat) {
		return textResult(jsonBlock(notes)), nil, nil
	}
	subtitle := fmt.Sprintf("Showing %d notes", len(notes))
	return textResult(renderNoteList("Notes", subtitle, notes)), nil, nil
}

type GetNoteInput struct {
	NoteID         string `json:"note_id" jsonschema:"the note ID"`
	IncludeBody    *bool  `json:"include_body,omitempty" jsonschema:"include the full note body (default true)"`
	ResponseFormat string `json:"response_format,omitempty" jsonschema:"output format: 'markdown' (default) or 'json'"`
}

func handleGetNote(ctx context.Context, req *mcp.CallToolRequest, input GetNoteInput) (*mcp.CallToolResult, any, error) {
	id := strings.TrimSpace(input.NoteID)
	if id == "" {
		return nil, nil, errors.New("note_id is required")
	}
	includeBody := input.IncludeBody == nil || *input.IncludeBody

	note, err := apiClient.GetNote(ctx, id, includeBody)
	if err != nil {
		return errorResult(err)
	}
	if wantsJSON(input.ResponseFormat) {
		return textResult(jsonBlock(note)), nil, nil
	}
	return textResult(renderNote(*note, includeBody)), nil, nil
}

type CreateNoteInput struct {
	Title      string   `json:"title" jsonschema:"note title"`
	Body       string   `json:"body,omitempty" jsonschema:"note content in Markdown"`
	NotebookID string   `json:"notebook_id,omitempty" jsonschema:"notebook to create the note in; default notebook when unset"`
	Tags       []string `json:"tags,omitempty" jsonschema:"tag names to apply; created if they don't exist"`
	IsTodo     bool     `json:"is_todo,omitempty" jsonschema:"create as a to-do item instead of a regular note"`
}

// handleCreateNote is deliberately not idempotent: repeated calls create
// repeated notes, because notes have no natural dedup key. This is the one
// creation tool documented with that limitation (notebooks and tags dedup
// by title).
func handleCreateNote(ctx context.Context, req *mcp.CallToolRequest, input CreateNoteInput) (*mcp.CallToolResult, any, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, nil, errors.New("title is required")
	}

	note, err := apiClient.CreateNote(ctx, api.NewNote{
		Title:      title,
		Body:       input.Body,
		NotebookID: input.NotebookID,
		IsTodo:     input.IsTodo,
	})
	if err != nil {
		return errorResult(err)
	}

	// Tagging is best-effort: the note exists either way, and a failed tag
	// must not turn a successful create into a reported failure.
	var failedTags []string
	for _, tagName := range input.Tags {
		tagName = strings.TrimSpace(tagName)
		if tagName == "" {
			continue
		}
		tagID, err := resolveTagID(ctx, tagName)
		if err == nil {
			err = apiClient.AddTagToNote(ctx, tagID, note.ID)
		}
		if err != nil {
			failedTags = append(failedTags, tagName)
		}
	}

	kind := "note"
	if input.IsTodo {
		kind = "to-do"
	}
	msg := fmt.Sprintf("✅ Created %s **%s** (ID: `%s`)", kind, note.Title, note.ID)
	if len(failedTags) > 0 {
		msg += fmt.Sprintf("\n⚠️ Could not apply tags: %s", strings.Join(failedTags, ", "))
	}
	return textResult(msg), nil, nil
}

type UpdateNoteInput struct {
	NoteID        string  `json:"note_id" jsonschema:"the note ID to update"`
	Title         *string `json:"title,omitempty" jsonschema:"new note title"`
	Body          *string `json:"body,omitempty" jsonschema:"new note content in Markdown"`
	NotebookID    *string `json:"notebook_id,omitempty" jsonschema:"move the note to a different notebook"`
	IsTodo        *bool   `json:"is_todo,omitempty" jsonschema:"convert to or from a to-do item"`
	TodoCompleted *bool   `json:"todo_completed,omitempty" jsonschema:"mark a to-do as completed or reopen it"`
}

func handleUpdateNote(ctx context.Context, req *mcp.CallToolRequest, input UpdateNoteInput) (*mcp.CallToolResult, any, error) {
	id := strings.TrimSpace(input.NoteID)
	if id == "" {
		return nil, nil, errors.New("note_id is required")
	}

	note, err := apiClient.UpdateNote(ctx, id, api.NotePatch{
		Title:         input.Title,
		Body:          input.Body,
		NotebookID:    input.NotebookID,
		IsTodo:        input.IsTodo,
		TodoCompleted: input.TodoCompleted,
	})
	if err != nil {
		return errorResult(err)
	}

	title := ""
	if input.Title != nil {
		title = *input.Title
	} else if note != nil {
		title = note.Title
	}
	if title == "" {
		title = "Note"
	}
	return textResult(fmt.Sprintf("✅ Updated note **%s** (ID: `%s`)", title, id)), nil, nil
}

type DeleteNoteInput struct {
	NoteID string `json:"note_id" jsonschema:"the note ID to delete"`
}

// handleDeleteNote treats NotFound as a terminal success: the caller wanted
// the note gone, and it is. A design choice, not service behavior.
func handleDeleteNote(ctx context.Context, req *mcp.CallToolRequest, input DeleteNoteInput) (*mcp.CallToolResult, any, error) {
	id := strings.TrimSpace(input.NoteID)
	if id == "" {
		return nil, nil, errors.New("note_id is required")
	}

	if err := apiClient.DeleteNote(ctx, id); err != nil {
		if api.IsNotFound(err) {
			return textResult(fmt.Sprintf("🗑️ Note already deleted (ID: `%s`)", id)), nil, nil
		}
		return errorResult(err)
	}
	return textResult(fmt.Sprintf("🗑️ Deleted note (ID: `%s`)", id)), nil, nil
}
