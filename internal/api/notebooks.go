package api

import (
	"context"
	"net/http"

	"github.com/kutbudev/joplin-mcp/internal/models"
)

var notebookFields = []string{"id", "title", "parent_id"}

// ListNotebooks returns every notebook, merged across pages.
func (c *Client) ListNotebooks(ctx context.Context) ([]models.Notebook, error) {
	return fetchAll[models.Notebook](ctx, c, "folders", "folders", nil, notebookFields, 0)
}

// CreateNotebook creates a notebook. Joplin happily creates duplicate
// titles; the duplicate check is the resolver's job, not this layer's.
func (c *Client) CreateNotebook(ctx context.Context, title, parentID string) (*models.Notebook, error) {
	body := map[string]any{"title": title}
	if parentID != "" {
		body["parent_id"] = parentID
	}
	return mutate[models.Notebook](ctx, c, http.MethodPost, "folders", body)
}
