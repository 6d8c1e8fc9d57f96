package catalog

import (
	"strconv"
	"strings"
)

// Row: a raw catalog record as it arrives from the API or an import payload.
// Upstream field naming is inconsistent (model / model_name / name), so raw
// rows are normalized exactly once, here, at the collection boundary.
type Row map[string]any

// Accepted field spellings per concern. Order matters: first non-empty wins.
var (
	IDFields           = []string{"id", "_id"}
	CategoryNameFields = []string{"category", "category_name", "categoryName", "name"}
	ModelNameFields    = []string{"model", "model_name", "name"}
	BrandNameFields    = []string{"brand", "brand_name", "name"}
	TypeNameFields     = []string{"type", "type_name", "name"}
	ItemNameFields     = []string{"item_name", "itemName", "name"}
)

// BuildIndex maps each row's id (coerced to string) to its display name.
// Rows without a resolvable id are skipped; rows without a resolvable name
// get a "#<id>" placeholder. Pure: the input rows are never mutated.
func BuildIndex(rows []Row, idFields, nameFields []string) map[string]string {
	index := make(map[string]string, len(rows))
	for _, row := range rows {
		id, ok := firstField(row, idFields)
		if !ok {
			continue
		}
		name, ok := firstField(row, nameFields)
		if !ok {
			name = "#" + id
		}
		index[id] = name
	}
	return index
}

// Entry: the canonical catalog row shape consumed everywhere downstream.
type Entry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"` // category name, not id
}

// NormalizeRows converts raw rows into canonical entries, applying the same
// field-fallback rules as BuildIndex. Rows without an id are dropped.
func NormalizeRows(rows []Row, idFields, nameFields []string) []Entry {
	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		id, ok := firstField(row, idFields)
		if !ok {
			continue
		}
		name, ok := firstField(row, nameFields)
		if !ok {
			name = "#" + id
		}
		category, _ := firstField(row, []string{"category", "category_name"})
		entries = append(entries, Entry{ID: id, Name: name, Category: category})
	}
	return entries
}

// firstField returns the first candidate field present on the row with a
// non-empty value, coerced to string.
func firstField(row Row, candidates []string) (string, bool) {
	for _, field := range candidates {
		v, ok := row[field]
		if !ok || v == nil {
			continue
		}
		s := coerceString(v)
		if s != "" {
			return s, true
		}
	}
	return "", false
}

func coerceString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		// JSON numbers decode as float64; ids are integral
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint:
		return strconv.FormatUint(uint64(t), 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
