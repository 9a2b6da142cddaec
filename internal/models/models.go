package models

// Transit representations of Joplin Data API entities. Joplin owns all
// persistence; these structs only carry data between the API and the tools.
// Field names match the Data API wire format exactly. Timestamps are Unix
// milliseconds.

// Note is a Joplin note. A note with IsTodo set is a to-do item and
// additionally carries a completion timestamp in TodoCompleted (0 = open).
type Note struct {
	ID            string `json:"id"`
	ParentID      string `json:"parent_id"`
	Title         string `json:"title"`
	Body          string `json:"body,omitempty"`
	IsTodo        int    `json:"is_todo"`
	TodoCompleted int64  `json:"todo_completed"`
	CreatedTime   int64  `json:"created_time"`
	UpdatedTime   int64  `json:"updated_time"`
	SourceURL     string `json:"source_url,omitempty"`
}

// Todo reports whether the note is a to-do item.
func (n Note) Todo() bool { return n.IsTodo != 0 }

// Completed reports whether a to-do note has been completed.
func (n Note) Completed() bool { return n.TodoCompleted != 0 }

// Notebook is a Joplin folder. ParentID is empty for top-level notebooks.
type Notebook struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	ParentID string `json:"parent_id"`
}

// Tag is a Joplin tag. Tags relate to notes many-to-many through the
// /tags/:id/notes endpoints, never as an embedded collection.
type Tag struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}
