// Package impex converts the vault to and from its snapshot form: a
// pretty-printed JSON array of resources. Import normalizes arbitrary
// uploaded JSON back into valid resources through an explicit coercion pass.
package impex

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/user/mindvault/internal/vault"
)

// ErrEmptyVault is returned by Export when there is nothing to export.
var ErrEmptyVault = errors.New("vault is empty, nothing to export")

// ParseError means the input is not valid JSON at all.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("import failed: cannot parse JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// FormatError means the input parsed but is not a top-level array.
type FormatError struct{}

func (e *FormatError) Error() string {
	return "import failed: top-level JSON value must be an array of resources"
}

// Export serializes the full sequence as indented, human-inspectable JSON.
func Export(resources []vault.Resource) ([]byte, error) {
	if len(resources) == 0 {
		return nil, ErrEmptyVault
	}
	return json.MarshalIndent(resources, "", "  ")
}

// Filename returns the default export filename for the given day, e.g.
// mindvault-backup-2026-08-29.json.
func Filename(now time.Time) string {
	return fmt.Sprintf("mindvault-backup-%s.json", now.Format("2006-01-02"))
}

// Import parses an uploaded snapshot and normalizes each element into a
// complete resource. An existing id and createdAt are preserved when present
// and well-typed, so re-importing a prior export causes no identity churn.
// The caller applies the result with a full ReplaceAll; nothing here mutates
// any store.
func Import(data []byte) ([]vault.Resource, error) {
	var top any
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, &ParseError{Err: err}
	}
	elems, ok := top.([]any)
	if !ok {
		return nil, &FormatError{}
	}

	resources := make([]vault.Resource, 0, len(elems))
	for _, e := range elems {
		resources = append(resources, coerce(e))
	}
	return resources, nil
}

// coerce builds a resource from one arbitrary JSON value, treating
// mistyped or missing fields as absent. Non-object elements normalize to an
// all-defaults resource.
func coerce(e any) vault.Resource {
	obj, _ := e.(map[string]any)

	r := vault.Resource{
		ID:         str(obj, "id"),
		Title:      str(obj, "title"),
		URL:        str(obj, "url"),
		Type:       vault.Type(str(obj, "type")),
		Platform:   str(obj, "platform"),
		ContentRaw: str(obj, "contentRaw"),
		Summary:    str(obj, "summary"),
		UserNotes:  str(obj, "userNotes"),
		Tags:       strSlice(obj, "tags"),
	}
	if ms, ok := obj["createdAt"].(float64); ok {
		r.CreatedAt = int64(ms)
	}
	return vault.Normalize(r)
}

func str(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

func strSlice(obj map[string]any, key string) []string {
	raw, ok := obj[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
