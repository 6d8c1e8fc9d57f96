package catalog

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestFilterByCategoryAndQuery(t *testing.T) {
	models := []Entry{
		{ID: "10", Name: "X1", Category: "Electrical"},
		{ID: "11", Name: "Y2", Category: "Plumbing"},
		{ID: "12", Name: "X1 Pro", Category: "Electrical"},
	}

	tests := []struct {
		name         string
		entries      []Entry
		categoryName string
		query        string
		limit        int
		want         []Entry
	}{
		{
			name:         "categoryNarrowing",
			entries:      models,
			categoryName: "Electrical",
			query:        "",
			limit:        10,
			want:         []Entry{models[0], models[2]},
		},
		{
			name:         "emptyCategoryRetainsAll",
			entries:      models,
			categoryName: "",
			query:        "",
			limit:        10,
			want:         models,
		},
		{
			name:         "querySubstringCaseInsensitive",
			entries:      models,
			categoryName: "",
			query:        "  x1 ",
			limit:        10,
			want:         []Entry{models[0], models[2]},
		},
		{
			name:         "categoryAndQueryCombined",
			entries:      models,
			categoryName: "Electrical",
			query:        "pro",
			limit:        10,
			want:         []Entry{models[2]},
		},
		{
			name:         "categoryMatchIsCaseSensitive",
			entries:      models,
			categoryName: "electrical",
			query:        "",
			limit:        10,
			want:         []Entry{},
		},
		{
			name:         "trailingWhitespaceMismatchYieldsEmpty",
			entries:      models,
			categoryName: "Electrical ",
			query:        "",
			limit:        10,
			want:         []Entry{},
		},
		{
			name:         "emptyInput",
			entries:      nil,
			categoryName: "Electrical",
			query:        "x",
			limit:        10,
			want:         []Entry{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterByCategoryAndQuery(tt.entries, tt.categoryName, tt.query, tt.limit)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FilterByCategoryAndQuery() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterCap(t *testing.T) {
	entries := make([]Entry, 50)
	for i := range entries {
		entries[i] = Entry{ID: fmt.Sprint(i), Name: fmt.Sprintf("Item %d", i)}
	}

	got := FilterByCategoryAndQuery(entries, "", "item", 10)
	if len(got) != 10 {
		t.Fatalf("expected cap at 10, got %d", len(got))
	}
	// original order, no ranking
	for i, e := range got {
		if e.ID != fmt.Sprint(i) {
			t.Errorf("result reordered at %d: %v", i, e)
		}
	}

	// zero limit falls back to the default
	got = FilterByCategoryAndQuery(entries, "", "", 0)
	if len(got) != DefaultFilterLimit {
		t.Errorf("expected default limit %d, got %d", DefaultFilterLimit, len(got))
	}
}

func TestFilterSubstringLaw(t *testing.T) {
	entries := []Entry{
		{ID: "1", Name: "Copper Wire", Category: "Electrical"},
		{ID: "2", Name: "PVC Pipe", Category: "Plumbing"},
		{ID: "3", Name: "Wire Mesh", Category: "Civil"},
		{ID: "4", Name: "Switch", Category: "Electrical"},
	}

	query := "wire"
	got := FilterByCategoryAndQuery(entries, "", query, 10)

	included := make(map[string]bool)
	for _, e := range got {
		included[e.ID] = true
		if !strings.Contains(strings.ToLower(e.Name), query) {
			t.Errorf("included entry %q does not contain %q", e.Name, query)
		}
	}
	for _, e := range entries {
		if !included[e.ID] && strings.Contains(strings.ToLower(e.Name), query) {
			t.Errorf("entry %q contains %q but was excluded", e.Name, query)
		}
	}
}

func TestFilterCategoryCascadingScenario(t *testing.T) {
	// after selecting the Electrical category, only the Electrical model
	// remains a candidate
	models := []Entry{
		{ID: "10", Name: "X1", Category: "Electrical"},
		{ID: "11", Name: "Y2", Category: "Plumbing"},
	}

	got := FilterByCategoryAndQuery(models, "Electrical", "", 10)
	want := []Entry{{ID: "10", Name: "X1", Category: "Electrical"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FilterByCategoryAndQuery() = %v, want %v", got, want)
	}
}
