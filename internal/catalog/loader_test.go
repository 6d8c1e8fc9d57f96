package catalog

import (
	"context"
	"errors"
	"testing"
)

type fakeFetcher struct {
	entries map[Collection][]Entry
	errs    map[Collection]error
}

func (f *fakeFetcher) Fetch(ctx context.Context, col Collection) ([]Entry, error) {
	if err, ok := f.errs[col]; ok {
		return nil, err
	}
	return f.entries[col], nil
}

func TestLoadAllSuccess(t *testing.T) {
	fetcher := &fakeFetcher{
		entries: map[Collection][]Entry{
			CollectionCategory: {{ID: "1", Name: "Electrical"}},
			CollectionModel:    {{ID: "10", Name: "X1", Category: "Electrical"}},
			CollectionBrand:    {{ID: "20", Name: "Havells"}},
			CollectionType:     {{ID: "30", Name: "Copper"}},
			CollectionItem:     {{ID: "40", Name: "Wire 2.5mm"}},
		},
	}

	bundle := NewLoader(fetcher).LoadAll(context.Background())

	if len(bundle.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", bundle.Errors)
	}
	if len(bundle.Categories) != 1 || bundle.Categories[0].Name != "Electrical" {
		t.Errorf("categories = %v", bundle.Categories)
	}
	if len(bundle.Items) != 1 || bundle.Items[0].ID != "40" {
		t.Errorf("items = %v", bundle.Items)
	}

	if e, ok := bundle.Find(CollectionModel, "10"); !ok || e.Name != "X1" {
		t.Errorf("Find(model, 10) = %v, %v", e, ok)
	}
	if _, ok := bundle.Find(CollectionModel, "999"); ok {
		t.Error("Find should miss on unknown id")
	}
}

func TestLoadAllPartialFailure(t *testing.T) {
	// categories fetch succeeds with 3 rows, models fetch fails: the bundle
	// keeps the categories, degrades models to empty and retains the error
	fetchErr := errors.New("connection refused")
	fetcher := &fakeFetcher{
		entries: map[Collection][]Entry{
			CollectionCategory: {
				{ID: "1", Name: "Electrical"},
				{ID: "2", Name: "Plumbing"},
				{ID: "3", Name: "Civil"},
			},
		},
		errs: map[Collection]error{
			CollectionModel: fetchErr,
		},
	}

	bundle := NewLoader(fetcher).LoadAll(context.Background())

	if len(bundle.Categories) != 3 {
		t.Errorf("categories length = %d, want 3", len(bundle.Categories))
	}
	if bundle.Models == nil || len(bundle.Models) != 0 {
		t.Errorf("models should degrade to an empty slice, got %v", bundle.Models)
	}
	if !errors.Is(bundle.Errors[CollectionModel], fetchErr) {
		t.Errorf("models error not retained: %v", bundle.Errors)
	}
	if _, ok := bundle.Errors[CollectionCategory]; ok {
		t.Error("categories should have no error")
	}

	// filtering the failed collection must return empty, not panic
	got := FilterByCategoryAndQuery(bundle.Models, "Electrical", "x", 10)
	if len(got) != 0 {
		t.Errorf("filter over failed collection = %v, want empty", got)
	}
}

func TestLoadAllAllCollectionsFail(t *testing.T) {
	fetcher := &fakeFetcher{
		errs: map[Collection]error{
			CollectionCategory: errors.New("down"),
			CollectionModel:    errors.New("down"),
			CollectionBrand:    errors.New("down"),
			CollectionType:     errors.New("down"),
			CollectionItem:     errors.New("down"),
		},
	}

	bundle := NewLoader(fetcher).LoadAll(context.Background())

	if len(bundle.Errors) != len(AllCollections) {
		t.Errorf("expected %d errors, got %d", len(AllCollections), len(bundle.Errors))
	}
	for _, col := range AllCollections {
		if entries := bundle.Get(col); entries == nil || len(entries) != 0 {
			t.Errorf("%s should be an empty slice, got %v", col, entries)
		}
	}
}
