package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/kutbudev/joplin-mcp/internal/models"
)

// pagedServer serves `total` notebooks split into pages of `perPage`.
func pagedServer(t *testing.T, total, perPage int, requests *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*requests++
		pageNo, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if pageNo < 1 {
			pageNo = 1
		}

		start := (pageNo - 1) * perPage
		end := start + perPage
		if end > total {
			end = total
		}
		items := []models.Notebook{}
		for i := start; i < end; i++ {
			items = append(items, models.Notebook{
				ID:    fmt.Sprintf("nb-%03d", i),
				Title: fmt.Sprintf("Notebook %d", i),
			})
		}
		json.NewEncoder(w).Encode(map[string]any{
			"items":    items,
			"has_more": end < total,
		})
	}))
}

func TestFetchAllMergesPagesInReceiptOrder(t *testing.T) {
	requests := 0
	srv := pagedServer(t, 250, 100, &requests)
	defer srv.Close()

	items, err := fetchAll[models.Notebook](context.Background(), testClient(srv), "folders", "folders", nil, notebookFields, 0)
	if err != nil {
		t.Fatalf("fetchAll: %v", err)
	}
	if len(items) != 250 {
		t.Fatalf("merged length = %d, want 250 (sum of per-page counts)", len(items))
	}
	if requests != 3 {
		t.Errorf("requests = %d, want 3", requests)
	}
	for i, item := range items {
		if want := fmt.Sprintf("nb-%03d", i); item.ID != want {
			t.Fatalf("items[%d].ID = %q, want %q (receipt order violated)", i, item.ID, want)
		}
	}
}

func TestFetchAllStopsEarlyAtMax(t *testing.T) {
	requests := 0
	srv := pagedServer(t, 1000, 100, &requests)
	defer srv.Close()

	items, err := fetchAll[models.Notebook](context.Background(), testClient(srv), "folders", "folders", nil, notebookFields, 150)
	if err != nil {
		t.Fatalf("fetchAll: %v", err)
	}
	if len(items) != 150 {
		t.Fatalf("len = %d, want 150", len(items))
	}
	if requests != 2 {
		t.Errorf("early stop should not force full pagination: %d requests, want 2", requests)
	}
}

func TestFetchAllRaisesPaginationLimit(t *testing.T) {
	// has_more never goes false: a cyclic/malformed upstream cursor.
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		json.NewEncoder(w).Encode(map[string]any{
			"items":    []models.Notebook{{ID: "loop", Title: "Loop"}},
			"has_more": true,
		})
	}))
	defer srv.Close()

	_, err := fetchAll[models.Notebook](context.Background(), testClient(srv), "folders", "folders", nil, notebookFields, 0)
	if !IsPaginationLimit(err) {
		t.Fatalf("expected pagination-limit error, got %v", err)
	}
	if requests != maxPages {
		t.Errorf("requests = %d, want exactly the page ceiling %d", requests, maxPages)
	}
}

func TestFetchPageRejectsUnrecognizedFieldLocally(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	_, err := fetchPage[models.Notebook](context.Background(), testClient(srv), "folders", "folders", nil,
		[]string{"id", "title", "bogus_field"}, 1)
	if !IsValidation(err) {
		t.Fatalf("expected local validation error, got %v", err)
	}
	if requests != 0 {
		t.Errorf("out-of-contract field must fail before any HTTP call, saw %d requests", requests)
	}
}

func TestValidateFields(t *testing.T) {
	tests := []struct {
		name     string
		resource string
		fields   []string
		wantErr  bool
	}{
		{"note fields in contract", "notes", []string{"id", "title", "body", "is_todo"}, false},
		{"folder fields in contract", "folders", []string{"id", "title", "parent_id"}, false},
		{"tag fields in contract", "tags", []string{"id", "title"}, false},
		{"body is not a folder field", "folders", []string{"id", "body"}, true},
		{"typo field", "notes", []string{"id", "titel"}, true},
		{"unknown resource", "widgets", []string{"id"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFields(tt.resource, tt.fields)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateFields(%q, %v) error = %v, wantErr %v", tt.resource, tt.fields, err, tt.wantErr)
			}
			if err != nil && !IsValidation(err) {
				t.Errorf("field contract violations must classify as validation, got %q", ErrKind(err))
			}
		})
	}
}
