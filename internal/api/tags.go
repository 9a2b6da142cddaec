package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/kutbudev/joplin-mcp/internal/models"
)

var tagFields = []string{"id", "title"}

// ListTags returns every tag, merged across pages.
func (c *Client) ListTags(ctx context.Context) ([]models.Tag, error) {
	return fetchAll[models.Tag](ctx, c, "tags", "tags", nil, tagFields, 0)
}

// SearchTags searches tags by name via the search endpoint.
func (c *Client) SearchTags(ctx context.Context, query string) ([]models.Tag, error) {
	q := url.Values{
		"query": {query},
		"type":  {"tag"},
	}
	return fetchAll[models.Tag](ctx, c, "search", "tags", q, tagFields, 0)
}

// CreateTag creates a tag. Case-insensitive reuse of existing tags is the
// resolver's rule, applied before calling this.
func (c *Client) CreateTag(ctx context.Context, title string) (*models.Tag, error) {
	return mutate[models.Tag](ctx, c, http.MethodPost, "tags", map[string]any{"title": title})
}

// AddTagToNote associates a tag with a note. The association is exposed by
// Joplin as its own endpoint family, not as an embedded collection, and
// re-adding an existing association is a no-op on the service side.
func (c *Client) AddTagToNote(ctx context.Context, tagID, noteID string) error {
	_, err := mutate[struct{}](ctx, c, http.MethodPost, "tags/"+tagID+"/notes", map[string]any{"id": noteID})
	return err
}
