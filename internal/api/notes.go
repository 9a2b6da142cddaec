package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/kutbudev/joplin-mcp/internal/models"
)

var (
	// noteListFields is the listing selection: metadata only, never the
	// body. Bodies can be large and listings can span many pages.
	noteListFields = []string{
		"id", "title", "parent_id",
		"created_time", "updated_time",
		"is_todo", "todo_completed",
	}
	noteMetaFields = append([]string{"source_url"}, noteListFields...)
)

// NoteQuery narrows and orders a note listing.
type NoteQuery struct {
	NotebookID string
	OrderBy    string // updated_time, created_time, title, order
	OrderDesc  bool
	Limit      int // 0 = no bound
}

var noteOrderFields = map[string]bool{
	"updated_time": true,
	"created_time": true,
	"title":        true,
	"order":        true,
}

// ListNotes lists notes, most-recent-first by default, optionally scoped to
// one notebook via the folders/:id/notes endpoint.
func (c *Client) ListNotes(ctx context.Context, nq NoteQuery) ([]models.Note, error) {
	orderBy := nq.OrderBy
	if orderBy == "" {
		orderBy = "updated_time"
	}
	if !noteOrderFields[orderBy] {
		return nil, newError(KindValidation, 0, "cannot order notes by %q", orderBy)
	}

	query := url.Values{"order_by": {orderBy}}
	if nq.OrderDesc {
		query.Set("order_dir", "DESC")
	} else {
		query.Set("order_dir", "ASC")
	}

	path := "notes"
	if nq.NotebookID != "" {
		path = "folders/" + nq.NotebookID + "/notes"
	}
	return fetchAll[models.Note](ctx, c, path, "notes", query, noteListFields, nq.Limit)
}

// GetNote fetches one note by id. The body is part of the field selection
// only when asked for, so metadata-only reads stay cheap.
func (c *Client) GetNote(ctx context.Context, id string, includeBody bool) (*models.Note, error) {
	fields := noteMetaFields
	if includeBody {
		fields = append(append([]string{}, noteMetaFields...), "body")
	}
	return get[models.Note](ctx, c, "notes/"+id, "notes", fields)
}

// NewNote is the creation payload. The service assigns the id and
// timestamps; an empty NotebookID lands the note in the default notebook.
type NewNote struct {
	Title      string
	Body       string
	NotebookID string
	IsTodo     bool
}

// CreateNote creates a note. Not idempotent: Joplin has no dedup semantics
// for notes, so repeated calls create repeated notes.
func (c *Client) CreateNote(ctx context.Context, n NewNote) (*models.Note, error) {
	body := map[string]any{
		"title": n.Title,
		"body":  n.Body,
	}
	if n.NotebookID != "" {
		body["parent_id"] = n.NotebookID
	}
	if n.IsTodo {
		body["is_todo"] = 1
	}
	return mutate[models.Note](ctx, c, http.MethodPost, "notes", body)
}

// NotePatch is a partial update: nil fields are left untouched by the
// service. TodoCompleted is coerced to Joplin's convention of a completion
// timestamp in milliseconds (0 reopens the to-do).
type NotePatch struct {
	Title         *string
	Body          *string
	NotebookID    *string
	IsTodo        *bool
	TodoCompleted *bool
}

func (p NotePatch) payload(now time.Time) map[string]any {
	body := map[string]any{}
	if p.Title != nil {
		body["title"] = *p.Title
	}
	if p.Body != nil {
		body["body"] = *p.Body
	}
	if p.NotebookID != nil {
		body["parent_id"] = *p.NotebookID
	}
	if p.IsTodo != nil {
		if *p.IsTodo {
			body["is_todo"] = 1
		} else {
			body["is_todo"] = 0
		}
	}
	if p.TodoCompleted != nil {
		if *p.TodoCompleted {
			body["todo_completed"] = now.UnixMilli()
		} else {
			body["todo_completed"] = 0
		}
	}
	return body
}

// UpdateNote applies a partial update. An empty patch is rejected locally.
func (c *Client) UpdateNote(ctx context.Context, id string, patch NotePatch) (*models.Note, error) {
	body := patch.payload(time.Now())
	if len(body) == 0 {
		return nil, newError(KindValidation, 0, "no fields to update; provide at least one change")
	}
	return mutate[models.Note](ctx, c, http.MethodPut, "notes/"+id, body)
}

// DeleteNote deletes a note. Deleting an already-absent note reports
// NotFound; whether that counts as success is the caller's call.
func (c *Client) DeleteNote(ctx context.Context, id string) error {
	_, err := mutate[struct{}](ctx, c, http.MethodDelete, "notes/"+id, nil)
	return err
}

// SearchNotes runs a Joplin search with the query passed through verbatim.
// The query syntax (tag:, notebook:, type:, iscompleted:, ...) belongs to
// Joplin; nothing is validated or rewritten here, and malformed queries
// surface as whatever the service answers.
func (c *Client) SearchNotes(ctx context.Context, query string, limit int) ([]models.Note, error) {
	q := url.Values{
		"query": {query},
		"type":  {"note"},
	}
	return fetchAll[models.Note](ctx, c, "search", "notes", q, noteListFields, limit)
}
