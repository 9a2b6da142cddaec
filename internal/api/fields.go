package api

import (
	"sort"
	"strings"
)

// recognizedFields is the fixed set of attribute names Joplin's storage
// schema defines per resource. Asking for anything outside this list does
// not degrade gracefully: Joplin answers with a hard 500 ("no such column"),
// not a partial result. Treat this as a versioned contract with the Data
// API, never as something to infer from documentation.
var recognizedFields = map[string]map[string]bool{
	"notes": fieldSet(
		"id", "parent_id", "title", "body",
		"created_time", "updated_time",
		"is_todo", "todo_completed", "todo_due",
		"source_url", "source", "source_application",
		"markup_language", "is_conflict", "order",
		"user_created_time", "user_updated_time",
	),
	"folders": fieldSet(
		"id", "title", "parent_id",
		"created_time", "updated_time",
		"user_created_time", "user_updated_time",
	),
	"tags": fieldSet(
		"id", "title",
		"created_time", "updated_time",
	),
}

func fieldSet(names ...string) map[string]bool {
	s := make(map[string]bool, len(names))
	for _, n := range names {
		s[n] = true
	}
	return s
}

// validateFields rejects a field selection that strays outside the
// recognized contract for the resource. This runs before any HTTP I/O so a
// bad selection can never reach the live service.
func validateFields(resource string, fields []string) error {
	known, ok := recognizedFields[resource]
	if !ok {
		return newError(KindValidation, 0, "unknown resource %q", resource)
	}
	for _, f := range fields {
		if !known[f] {
			return newError(KindValidation, 0,
				"field %q is not part of the recognized field contract for %s (known: %s)",
				f, resource, strings.Join(knownFields(resource), ","))
		}
	}
	return nil
}

func knownFields(resource string) []string {
	known := recognizedFields[resource]
	out := make([]string, 0, len(known))
	for f := range known {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

func fieldsParam(fields []string) string {
	return strings.Join(fields, ",")
}
