package mcp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/kutbudev/joplin-mcp/internal/api"
	"github.com/kutbudev/joplin-mcp/internal/models"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// fakeJoplin is an in-memory stand-in for the Joplin Data API, covering the
// endpoints the tool handlers touch. It paginates like the real service and
// records enough about incoming requests for tests to assert on.
type fakeJoplin struct {
	mu        sync.Mutex
	notebooks []models.Notebook
	notes     []models.Note
	tags      []models.Tag
	noteTags  map[string][]string // tag id -> note ids
	nextID    int

	tagCreates    int
	searchQueries []string

	srv *httptest.Server
}

func newFakeJoplin(t *testing.T) *fakeJoplin {
	t.Helper()
	f := &fakeJoplin{noteTags: make(map[string][]string)}
	f.srv = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.srv.Close)

	// Handlers read the package-level client; point it at the fake for the
	// duration of the test.
	prev := apiClient
	apiClient = &api.Client{
		BaseURL:    f.srv.URL,
		Token:      "test-token",
		HTTPClient: f.srv.Client(),
	}
	t.Cleanup(func() { apiClient = prev })
	return f
}

func (f *fakeJoplin) newID(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s%04d", prefix, f.nextID)
}

func (f *fakeJoplin) addNotebook(title, parentID string) models.Notebook {
	f.mu.Lock()
	defer f.mu.Unlock()
	nb := models.Notebook{ID: f.newID("nb"), Title: title, ParentID: parentID}
	f.notebooks = append(f.notebooks, nb)
	return nb
}

func (f *fakeJoplin) addNote(n models.Note) models.Note {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n.ID == "" {
		n.ID = f.newID("note")
	}
	f.notes = append(f.notes, n)
	return n
}

func (f *fakeJoplin) addTag(title string) models.Tag {
	f.mu.Lock()
	defer f.mu.Unlock()
	tag := models.Tag{ID: f.newID("tag"), Title: title}
	f.tags = append(f.tags, tag)
	return tag
}

func (f *fakeJoplin) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.Trim(r.URL.Path, "/")
	parts := strings.Split(path, "/")

	switch {
	case path == "ping":
		fmt.Fprint(w, "JoplinClipperServer")

	case path == "folders" && r.Method == http.MethodGet:
		writePage(w, r, f.notebooks)
	case path == "folders" && r.Method == http.MethodPost:
		var body struct {
			Title    string `json:"title"`
			ParentID string `json:"parent_id"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		nb := models.Notebook{ID: f.newID("nb"), Title: body.Title, ParentID: body.ParentID}
		f.notebooks = append(f.notebooks, nb)
		writeJSON(w, nb)

	case len(parts) == 3 && parts[0] == "folders" && parts[2] == "notes":
		var scoped []models.Note
		for _, n := range f.notes {
			if n.ParentID == parts[1] {
				scoped = append(scoped, n)
			}
		}
		writePage(w, r, scoped)

	case path == "notes" && r.Method == http.MethodGet:
		writePage(w, r, f.notes)
	case path == "notes" && r.Method == http.MethodPost:
		var body struct {
			Title    string `json:"title"`
			Body     string `json:"body"`
			ParentID string `json:"parent_id"`
			IsTodo   int    `json:"is_todo"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		n := models.Note{
			ID:       f.newID("note"),
			Title:    body.Title,
			Body:     body.Body,
			ParentID: body.ParentID,
			IsTodo:   body.IsTodo,
		}
		f.notes = append(f.notes, n)
		writeJSON(w, n)

	case len(parts) == 2 && parts[0] == "notes":
		id := parts[1]
		idx := -1
		for i, n := range f.notes {
			if n.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			http.NotFound(w, r)
			return
		}
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, f.notes[idx])
		case http.MethodPut:
			var patch map[string]any
			json.NewDecoder(r.Body).Decode(&patch)
			if title, ok := patch["title"].(string); ok {
				f.notes[idx].Title = title
			}
			if body, ok := patch["body"].(string); ok {
				f.notes[idx].Body = body
			}
			writeJSON(w, f.notes[idx])
		case http.MethodDelete:
			f.notes = append(f.notes[:idx], f.notes[idx+1:]...)
		}

	case path == "search":
		f.searchQueries = append(f.searchQueries, r.URL.Query().Get("query"))
		query := strings.ToLower(r.URL.Query().Get("query"))
		if r.URL.Query().Get("type") == "tag" {
			var hits []models.Tag
			for _, tag := range f.tags {
				if strings.Contains(strings.ToLower(tag.Title), query) {
					hits = append(hits, tag)
				}
			}
			writePage(w, r, hits)
			return
		}
		var hits []models.Note
		for _, n := range f.notes {
			if strings.Contains(strings.ToLower(n.Title), query) ||
				strings.Contains(strings.ToLower(n.Body), query) {
				hits = append(hits, n)
			}
		}
		writePage(w, r, hits)

	case path == "tags" && r.Method == http.MethodGet:
		writePage(w, r, f.tags)
	case path == "tags" && r.Method == http.MethodPost:
		f.tagCreates++
		var body struct {
			Title string `json:"title"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		tag := models.Tag{ID: f.newID("tag"), Title: body.Title}
		f.tags = append(f.tags, tag)
		writeJSON(w, tag)

	case len(parts) == 3 && parts[0] == "tags" && parts[2] == "notes" && r.Method == http.MethodPost:
		var body struct {
			ID string `json:"id"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		f.noteTags[parts[1]] = append(f.noteTags[parts[1]], body.ID)
		w.Write([]byte("{}"))

	default:
		http.NotFound(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// writePage applies Joplin's page/limit windowing to a full item slice.
func writePage[T any](w http.ResponseWriter, r *http.Request, items []T) {
	pageNo, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if pageNo < 1 {
		pageNo = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 100
	}

	start := (pageNo - 1) * limit
	if start > len(items) {
		start = len(items)
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}

	writeJSON(w, map[string]any{
		"items":    items[start:end],
		"has_more": end < len(items),
	})
}

// resultText extracts the rendered text of a tool result.
func resultText(t *testing.T, res *sdk.CallToolResult) string {
	t.Helper()
	if res == nil || len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	text, ok := res.Content[0].(*sdk.TextContent)
	if !ok {
		t.Fatalf("content is %T, want text", res.Content[0])
	}
	return text.Text
}
