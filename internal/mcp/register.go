package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func boolPtr(b bool) *bool { return &b }

// registerTools declares the tool catalogue. Descriptions are front-loaded
// with the action verb and outcome, since hosts truncate them in previews.
func registerTools(server *mcp.Server) {
	// System
	mcp.AddTool(server, &mcp.Tool{
		Name: "joplin_ensure_running",
		Description: "Ensure the API is ready. Launches Joplin if needed and waits for the connection. " +
			"Use proactively before batch operations to avoid cold-start delays; returns immediately when already running.",
		Annotations: &mcp.ToolAnnotations{
			Title:           "Ensure Joplin is Running",
			ReadOnlyHint:    true,
			DestructiveHint: boolPtr(false),
			IdempotentHint:  true,
			OpenWorldHint:   boolPtr(false),
		},
	}, handleEnsureRunning)

	// Notebooks
	mcp.AddTool(server, &mcp.Tool{
		Name: "joplin_list_notebooks",
		Description: "List notebooks with IDs and hierarchy. Use to find a notebook_id for filtering. " +
			"Always list notebooks before creating new ones to avoid duplicates.",
		Annotations: &mcp.ToolAnnotations{
			Title:           "List Notebooks",
			ReadOnlyHint:    true,
			DestructiveHint: boolPtr(false),
			IdempotentHint:  true,
			OpenWorldHint:   boolPtr(false),
		},
	}, handleListNotebooks)

	mcp.AddTool(server, &mcp.Tool{
		Name: "joplin_create_notebook",
		Description: "Create a notebook or return the existing one. Checks for a duplicate title first " +
			"(case-insensitive, same parent level) and reuses it, so repeated calls never create duplicates.",
		Annotations: &mcp.ToolAnnotations{
			Title:           "Create Notebook",
			DestructiveHint: boolPtr(false),
			IdempotentHint:  true,
			OpenWorldHint:   boolPtr(false),
		},
	}, handleCreateNotebook)

	// Notes
	mcp.AddTool(server, &mcp.Tool{
		Name: "joplin_list_notes",
		Description: "List notes with IDs, titles and dates. Filter by notebook_id, sort by date or title. " +
			"Returns metadata only; use joplin_get_note for full content.",
		Annotations: &mcp.ToolAnnotations{
			Title:           "List Notes",
			ReadOnlyHint:    true,
			DestructiveHint: boolPtr(false),
			IdempotentHint:  true,
			OpenWorldHint:   boolPtr(false),
		},
	}, handleListNotes)

	mcp.AddTool(server, &mcp.Tool{
		Name: "joplin_get_note",
		Description: "Get a note by ID with its full Markdown content and metadata. " +
			"Use after list or search to read a note; set include_body=false for metadata only.",
		Annotations: &mcp.ToolAnnotations{
			Title:           "Get Note",
			ReadOnlyHint:    true,
			DestructiveHint: boolPtr(false),
			IdempotentHint:  true,
			OpenWorldHint:   boolPtr(false),
		},
	}, handleGetNote)

	mcp.AddTool(server, &mcp.Tool{
		Name: "joplin_create_note",
		Description: "Create a note with a Markdown body, optional tags and to-do support. " +
			"Specify notebook_id to target a notebook (list notebooks first). Duplicate calls create duplicate notes.",
		Annotations: &mcp.ToolAnnotations{
			Title:           "Create Note",
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(false),
		},
	}, handleCreateNote)

	mcp.AddTool(server, &mcp.Tool{
		Name: "joplin_update_note",
		Description: "Update a note's title, body or notebook, convert to/from a to-do, or mark it complete. " +
			"Partial update: only provided fields change.",
		Annotations: &mcp.ToolAnnotations{
			Title:           "Update Note",
			DestructiveHint: boolPtr(false),
			IdempotentHint:  true,
			OpenWorldHint:   boolPtr(false),
		},
	}, handleUpdateNote)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "joplin_delete_note",
		Description: "Delete a note permanently. Cannot be undone. Deleting an already-deleted note still reports success.",
		Annotations: &mcp.ToolAnnotations{
			Title:           "Delete Note",
			DestructiveHint: boolPtr(true),
			IdempotentHint:  true,
			OpenWorldHint:   boolPtr(false),
		},
	}, handleDeleteNote)

	mcp.AddTool(server, &mcp.Tool{
		Name: "joplin_search_notes",
		Description: "Search notes with Joplin query syntax: title:, body:, tag:, notebook:, type: prefixes, " +
			"plus created:/updated: date filters and iscompleted:1/0. Example: \"tag:work type:todo\".",
		Annotations: &mcp.ToolAnnotations{
			Title:           "Search Notes",
			ReadOnlyHint:    true,
			DestructiveHint: boolPtr(false),
			IdempotentHint:  true,
			OpenWorldHint:   boolPtr(false),
		},
	}, handleSearchNotes)

	// Tags
	mcp.AddTool(server, &mcp.Tool{
		Name: "joplin_list_tags",
		Description: "List all tags with IDs, alphabetically. Use for the tag: search prefix or before tagging notes.",
		Annotations: &mcp.ToolAnnotations{
			Title:           "List Tags",
			ReadOnlyHint:    true,
			DestructiveHint: boolPtr(false),
			IdempotentHint:  true,
			OpenWorldHint:   boolPtr(false),
		},
	}, handleListTags)

	mcp.AddTool(server, &mcp.Tool{
		Name: "joplin_tag_note",
		Description: "Add a tag to a note, creating the tag if it doesn't exist. Idempotent: " +
			"re-adding an existing tag has no effect, and tag names match case-insensitively.",
		Annotations: &mcp.ToolAnnotations{
			Title:           "Tag Note",
			DestructiveHint: boolPtr(false),
			IdempotentHint:  true,
			OpenWorldHint:   boolPtr(false),
		},
	}, handleTagNote)
}
