package catalog

import "strings"

// DefaultFilterLimit caps dropdown candidate lists. This is display
// pagination in original order, not relevance ranking.
const DefaultFilterLimit = 10

// FilterByCategoryAndQuery narrows a collection for the line-item picker.
//
// Category narrowing matches the entry's category NAME with case-sensitive
// equality; a trailing space or case difference yields an empty result and
// that is accepted behavior, inherited from the upstream data model. Keep
// the name match confined to this function: switching to id matching later
// must not touch the call sites.
//
// The query, trimmed and lower-cased, must appear as a substring of the
// lower-cased display name. An empty categoryName or query skips its step.
func FilterByCategoryAndQuery(entries []Entry, categoryName, query string, limit int) []Entry {
	if limit <= 0 {
		limit = DefaultFilterLimit
	}

	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]Entry, 0, limit)
	for _, e := range entries {
		if categoryName != "" && e.Category != categoryName {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(e.Name), query) {
			continue
		}
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	return out
}
