package mcp

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kutbudev/joplin-mcp/internal/models"
)

// ResponseFormat selects the output encoding of a tool result. Both
// encodings are derived from the same fetched data, so switching formats
// never re-queries.
const (
	formatMarkdown = "markdown"
	formatJSON     = "json"
)

// characterLimit bounds rendered markdown so one tool reply cannot blow the
// calling agent's context.
const characterLimit = 25000

func wantsJSON(format string) bool {
	return strings.EqualFold(strings.TrimSpace(format), formatJSON)
}

func jsonBlock(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(b)
}

// formatTimestamp renders a Unix-millisecond timestamp for humans.
func formatTimestamp(ms int64) string {
	if ms == 0 {
		return "Unknown"
	}
	return time.UnixMilli(ms).Format("2006-01-02 15:04")
}

// truncateRendered caps markdown output, noting how many items the full
// result held so the agent knows to narrow the request.
func truncateRendered(s string, itemCount int) string {
	if len(s) <= characterLimit {
		return s
	}
	truncated := s[:characterLimit-200]
	return truncated + fmt.Sprintf(
		"\n\n---\n**Response truncated** (%d items). Use filters to narrow results.", itemCount)
}

func todoMarker(n models.Note) string {
	if !n.Todo() {
		return ""
	}
	if n.Completed() {
		return "✅ "
	}
	return "⬜ "
}

// renderNotebookTree renders notebooks as an indented tree by parent links.
// Orphaned parents (possible mid-sync) fall back to top level.
func renderNotebookTree(notebooks []models.Notebook) string {
	if len(notebooks) == 0 {
		return "No notebooks found."
	}

	ids := make(map[string]bool, len(notebooks))
	for _, nb := range notebooks {
		ids[nb.ID] = true
	}

	children := make(map[string][]models.Notebook)
	for _, nb := range notebooks {
		parent := nb.ParentID
		if parent != "" && !ids[parent] {
			parent = ""
		}
		children[parent] = append(children[parent], nb)
	}

	var lines []string
	var walk func(parentID string, level int)
	walk = func(parentID string, level int) {
		indent := strings.Repeat("  ", level)
		for _, nb := range children[parentID] {
			lines = append(lines, fmt.Sprintf("%s- **%s**", indent, nb.Title))
			lines = append(lines, fmt.Sprintf("%s  ID: `%s`", indent, nb.ID))
			walk(nb.ID, level+1)
		}
	}

	lines = append(lines, "# Notebooks", "")
	walk("", 0)
	return strings.Join(lines, "\n")
}

// renderNoteList renders note metadata under a heading, one block per note.
func renderNoteList(heading, subtitle string, notes []models.Note) string {
	lines := []string{"# " + heading}
	if subtitle != "" {
		lines = append(lines, "*"+subtitle+"*")
	}
	lines = append(lines, "")

	for _, n := range notes {
		lines = append(lines, fmt.Sprintf("### %s%s", todoMarker(n), n.Title))
		lines = append(lines, fmt.Sprintf("- **ID**: `%s`", n.ID))
		lines = append(lines, fmt.Sprintf("- **Updated**: %s", formatTimestamp(n.UpdatedTime)))
		lines = append(lines, "")
	}
	return truncateRendered(strings.Join(lines, "\n"), len(notes))
}

// renderNote renders one full note: metadata header, then the body after a
// rule when it was fetched.
func renderNote(n models.Note, includeBody bool) string {
	lines := []string{"# " + n.Title, ""}

	if n.Todo() {
		status := "Pending ⬜"
		if n.Completed() {
			status = "Completed ✅"
		}
		lines = append(lines, "**Status**: "+status)
	}

	lines = append(lines,
		fmt.Sprintf("- **ID**: `%s`", n.ID),
		fmt.Sprintf("- **Notebook**: `%s`", orUnknown(n.ParentID)),
		fmt.Sprintf("- **Created**: %s", formatTimestamp(n.CreatedTime)),
		fmt.Sprintf("- **Updated**: %s", formatTimestamp(n.UpdatedTime)),
	)
	if n.SourceURL != "" {
		lines = append(lines, "- **Source**: "+n.SourceURL)
	}
	if includeBody && n.Body != "" {
		lines = append(lines, "", "---", "", n.Body)
	}
	return strings.Join(lines, "\n")
}

// renderTags renders tags alphabetically, case-insensitively.
func renderTags(tags []models.Tag) string {
	if len(tags) == 0 {
		return "No tags found."
	}
	sorted := append([]models.Tag{}, tags...)
	sort.Slice(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Title) < strings.ToLower(sorted[j].Title)
	})

	lines := []string{"# Tags", ""}
	for _, tag := range sorted {
		lines = append(lines, fmt.Sprintf("- **%s** (ID: `%s`)", tag.Title, tag.ID))
	}
	return strings.Join(lines, "\n")
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
