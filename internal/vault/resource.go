package vault

import (
	"time"

	"github.com/google/uuid"
)

// Type classifies a saved resource. Unknown values normalize to TypeArticle.
type Type string

const (
	TypeArticle Type = "ARTICLE"
	TypeVideo   Type = "VIDEO"
	TypeAudio   Type = "AUDIO"
	TypeTweet   Type = "TWEET" // short-form content (X, Weibo, ...)
)

// Types lists the closed set of resource types in display order.
var Types = []Type{TypeArticle, TypeVideo, TypeAudio, TypeTweet}

// Valid reports whether t is one of the closed set.
func (t Type) Valid() bool {
	switch t {
	case TypeArticle, TypeVideo, TypeAudio, TypeTweet:
		return true
	}
	return false
}

// Default field values applied during normalization.
const (
	DefaultTitle    = "Untitled"
	DefaultURL      = "#"
	DefaultPlatform = "unknown"
)

// Resource is the sole persisted entity: a saved reference to external
// content plus the user's annotations on it. JSON field names match the
// snapshot format, so exports and the storage slot stay interchangeable.
type Resource struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	URL        string   `json:"url"`
	Type       Type     `json:"type"`
	Platform   string   `json:"platform"` // e.g. Zhihu, Bilibili, X
	ContentRaw string   `json:"contentRaw,omitempty"`
	Summary    string   `json:"summary"`
	UserNotes  string   `json:"userNotes"`
	Tags       []string `json:"tags"`
	CreatedAt  int64    `json:"createdAt"` // milliseconds since epoch
}

// Normalize fills every missing field of a partially-specified resource with
// its default, generating a fresh ID and CreatedAt when absent. A normalized
// resource is always complete and valid.
func Normalize(r Resource) Resource {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt == 0 {
		r.CreatedAt = time.Now().UnixMilli()
	}
	if r.Title == "" {
		r.Title = DefaultTitle
	}
	if r.URL == "" {
		r.URL = DefaultURL
	}
	if !r.Type.Valid() {
		r.Type = TypeArticle
	}
	if r.Platform == "" {
		r.Platform = DefaultPlatform
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
	return r
}
