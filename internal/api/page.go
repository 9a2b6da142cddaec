package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
)

const (
	// pageSize is the per-request item bound. Joplin caps `limit` at 100.
	pageSize = 100
	// maxPages guards against an upstream cursor that never terminates.
	// Hitting the ceiling is an error, not a silent truncation.
	maxPages = 50
)

// page is one paginated response unit. Pages only exist inside the merge
// loop of a single fetchAll call; they are never retained.
type page[T any] struct {
	Items   []T  `json:"items"`
	HasMore bool `json:"has_more"`
}

// fetchPage issues one paginated, field-selected GET. The field selection is
// checked against the recognized contract before any I/O happens; an
// out-of-contract field is a programming error here, not a transient one.
func fetchPage[T any](ctx context.Context, c *Client, path, resource string, query url.Values, fields []string, pageNo int) (*page[T], error) {
	if err := validateFields(resource, fields); err != nil {
		return nil, err
	}

	q := url.Values{}
	for k, vs := range query {
		q[k] = vs
	}
	q.Set("fields", fieldsParam(fields))
	q.Set("page", strconv.Itoa(pageNo))
	q.Set("limit", strconv.Itoa(pageSize))

	body, err := c.request(ctx, http.MethodGet, path, q, nil)
	if err != nil {
		return nil, err
	}

	var pg page[T]
	if err := json.Unmarshal(body, &pg); err != nil {
		return nil, newError(KindUpstream, 0, "failed to decode %s page: %v", path, err)
	}
	return &pg, nil
}

// fetchAll follows the page cursor and concatenates items in receipt order
// (Joplin's own ordering; nothing is re-sorted here). A positive max stops
// the walk as soon as enough items have arrived, so "first N of a huge
// notebook" never forces full pagination. max <= 0 fetches everything.
func fetchAll[T any](ctx context.Context, c *Client, path, resource string, query url.Values, fields []string, max int) ([]T, error) {
	var items []T
	for pageNo := 1; ; pageNo++ {
		if pageNo > maxPages {
			return nil, newError(KindPaginationLimit, 0,
				"pagination of %s did not terminate within %d pages", path, maxPages)
		}

		pg, err := fetchPage[T](ctx, c, path, resource, query, fields, pageNo)
		if err != nil {
			return nil, err
		}
		items = append(items, pg.Items...)

		if max > 0 && len(items) >= max {
			return items[:max], nil
		}
		if !pg.HasMore {
			return items, nil
		}
	}
}
