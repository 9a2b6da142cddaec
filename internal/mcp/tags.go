package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type ListTagsInput struct {
	ResponseFormat string `json:"response_format,omitempty" jsonschema:"output format: 'markdown' (default) or 'json'"`
}

func handleListTags(ctx context.Context, req *mcp.CallToolRequest, input ListTagsInput) (*mcp.CallToolResult, any, error) {
	tags, err := apiClient.ListTags(ctx)
	if err != nil {
		return errorResult(err)
	}
	if len(tags) == 0 {
		return textResult("No tags found."), nil, nil
	}
	if wantsJSON(input.ResponseFormat) {
		return textResult(jsonBlock(tags)), nil, nil
	}
	return textResult(renderTags(tags)), nil, nil
}

type TagNoteInput struct {
	NoteID string `json:"note_id" jsonschema:"the note ID to tag"`
	Tag    string `json:"tag" jsonschema:"tag name to add; created if it doesn't exist"`
}

// handleTagNote resolves the tag name to an id, creating the tag on demand,
// then associates it with the note. Tag creation follows the same
// case-insensitive reuse rule as notebooks, so two calls with "urgent" and
// "URGENT" land on one tag.
func handleTagNote(ctx context.Context, req *mcp.CallToolRequest, input TagNoteInput) (*mcp.CallToolResult, any, error) {
	noteID := strings.TrimSpace(input.NoteID)
	tagName := strings.TrimSpace(input.Tag)
	if noteID == "" || tagName == "" {
		return nil, nil, errors.New("note_id and tag are required")
	}

	tagID, err := resolveTagID(ctx, tagName)
	if err != nil {
		return errorResult(err)
	}
	if err := apiClient.AddTagToNote(ctx, tagID, noteID); err != nil {
		return errorResult(err)
	}
	return textResult(fmt.Sprintf("✅ Added tag **%s** to note `%s`", tagName, noteID)), nil, nil
}

// resolveTagID finds an existing tag by title, case-insensitively, or
// creates one. Search narrows the candidate set; the fold decides the match.
func resolveTagID(ctx context.Context, name string) (string, error) {
	tags, err := apiClient.SearchTags(ctx, name)
	if err != nil {
		return "", err
	}
	for _, tag := range tags {
		if titleEqual(tag.Title, name) {
			return tag.ID, nil
		}
	}

	tag, err := apiClient.CreateTag(ctx, name)
	if err != nil {
		return "", err
	}
	return tag.ID, nil
}
