package vault

import (
	"sort"
	"strings"
)

// SortKey selects the ordering of query results. CreatedAt is the only sort
// field; ties keep their prior relative order (stable sort).
type SortKey string

const (
	SortCreatedDesc SortKey = "createdAt_desc"
	SortCreatedAsc  SortKey = "createdAt_asc"
)

// FilterAll is the wildcard value for the type and tag selectors.
const FilterAll = "ALL"

// Filters narrows and orders the resource sequence. Zero value matches
// everything, newest first.
type Filters struct {
	Type  string  // FilterAll or one Type value
	Query string  // free text, case-insensitive substring
	Tag   string  // FilterAll or one exact tag
	Sort  SortKey // defaults to SortCreatedDesc
}

// Search derives a filtered, sorted view of resources. It is a pure function:
// the input slice is never modified. Filtering is conjunctive across the
// type, text, and tag predicates.
func Search(resources []Resource, f Filters) []Resource {
	q := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]Resource, 0, len(resources))
	for _, r := range resources {
		if !matchesType(r, f.Type) {
			continue
		}
		if q != "" && !matchesText(r, q) {
			continue
		}
		if !matchesTag(r, f.Tag) {
			continue
		}
		out = append(out, r)
	}

	asc := f.Sort == SortCreatedAsc
	sort.SliceStable(out, func(i, j int) bool {
		if asc {
			return out[i].CreatedAt < out[j].CreatedAt
		}
		return out[i].CreatedAt > out[j].CreatedAt
	})
	return out
}

func matchesType(r Resource, t string) bool {
	return t == "" || t == FilterAll || string(r.Type) == t
}

// matchesText reports whether the lowercased query appears in the title,
// summary, notes, platform, or any tag.
func matchesText(r Resource, q string) bool {
	if strings.Contains(strings.ToLower(r.Title), q) ||
		strings.Contains(strings.ToLower(r.Summary), q) ||
		strings.Contains(strings.ToLower(r.UserNotes), q) ||
		strings.Contains(strings.ToLower(r.Platform), q) {
		return true
	}
	for _, tag := range r.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func matchesTag(r Resource, tag string) bool {
	if tag == "" || tag == FilterAll {
		return true
	}
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// AllTags returns the distinct tags in use across the full sequence, in
// first-seen order, for presentation as filter options.
func AllTags(resources []Resource) []string {
	seen := make(map[string]bool)
	var tags []string
	for _, r := range resources {
		for _, t := range r.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	return tags
}
