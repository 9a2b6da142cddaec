package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/kutbudev/joplin-mcp/internal/models"
)

func TestTagNoteCreatesThenReuses(t *testing.T) {
	f := newFakeJoplin(t)
	note := f.addNote(models.Note{Title: "Inbox"})
	other := f.addNote(models.Note{Title: "Later"})

	res, _, err := handleTagNote(context.Background(), nil, TagNoteInput{NoteID: note.ID, Tag: "urgent"})
	if err != nil {
		t.Fatalf("first tag: %v", err)
	}
	if text := resultText(t, res); !strings.Contains(text, "✅ Added tag **urgent**") {
		t.Errorf("text = %q", text)
	}
	if f.tagCreates != 1 {
		t.Fatalf("tag creates after first call = %d, want 1", f.tagCreates)
	}

	// Second call with a different casing lands on the same tag.
	if _, _, err := handleTagNote(context.Background(), nil, TagNoteInput{NoteID: other.ID, Tag: "URGENT"}); err != nil {
		t.Fatalf("second tag: %v", err)
	}
	if f.tagCreates != 1 {
		t.Errorf("tag creates after second call = %d, want 1 (reuse)", f.tagCreates)
	}
	if len(f.tags) != 1 {
		t.Errorf("tag count = %d, want 1", len(f.tags))
	}
	if got := len(f.noteTags[f.tags[0].ID]); got != 2 {
		t.Errorf("associations = %d, want both notes on one tag", got)
	}
}

func TestTagNoteRequiresBothArguments(t *testing.T) {
	newFakeJoplin(t)
	if _, _, err := handleTagNote(context.Background(), nil, TagNoteInput{NoteID: "n1"}); err == nil {
		t.Error("missing tag name should error")
	}
	if _, _, err := handleTagNote(context.Background(), nil, TagNoteInput{Tag: "urgent"}); err == nil {
		t.Error("missing note id should error")
	}
}

func TestListTagsSortsAlphabetically(t *testing.T) {
	f := newFakeJoplin(t)
	f.addTag("zebra")
	f.addTag("Apple")
	f.addTag("mango")

	res, _, err := handleListTags(context.Background(), nil, ListTagsInput{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	text := resultText(t, res)
	apple := strings.Index(text, "Apple")
	mango := strings.Index(text, "mango")
	zebra := strings.Index(text, "zebra")
	if apple < 0 || mango < 0 || zebra < 0 {
		t.Fatalf("missing tags in output:\n%s", text)
	}
	if !(apple < mango && mango < zebra) {
		t.Errorf("tags out of order (case-insensitive alphabetical wanted):\n%s", text)
	}
}

func TestListTagsEmpty(t *testing.T) {
	newFakeJoplin(t)
	res, _, err := handleListTags(context.Background(), nil, ListTagsInput{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if text := resultText(t, res); text != "No tags found." {
		t.Errorf("text = %q", text)
	}
}
