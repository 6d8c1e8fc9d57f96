package catalog

import (
	"context"
	"sync"
)

type Collection string

const (
	CollectionCategory Collection = "po_category"
	CollectionModel    Collection = "po_model"
	CollectionBrand    Collection = "po_brand"
	CollectionType     Collection = "po_type"
	CollectionItem     Collection = "po_itemNames"
)

var AllCollections = []Collection{
	CollectionCategory,
	CollectionModel,
	CollectionBrand,
	CollectionType,
	CollectionItem,
}

// Fetcher retrieves one collection's rows.
type Fetcher interface {
	Fetch(ctx context.Context, col Collection) ([]Entry, error)
}

// Bundle holds the five fetched collections plus per-collection fetch
// errors. A failed collection degrades to an empty slice so the picker
// stays usable with partial data; Errors keeps the failure for display.
type Bundle struct {
	Categories []Entry
	Models     []Entry
	Brands     []Entry
	Types      []Entry
	Items      []Entry
	Errors     map[Collection]error
}

// Get returns the entries for a collection.
func (b *Bundle) Get(col Collection) []Entry {
	switch col {
	case CollectionCategory:
		return b.Categories
	case CollectionModel:
		return b.Models
	case CollectionBrand:
		return b.Brands
	case CollectionType:
		return b.Types
	case CollectionItem:
		return b.Items
	}
	return nil
}

// Find resolves an entry by id within a collection.
func (b *Bundle) Find(col Collection, id string) (Entry, bool) {
	for _, e := range b.Get(col) {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

type Loader struct {
	fetcher Fetcher
}

func NewLoader(fetcher Fetcher) *Loader {
	return &Loader{fetcher: fetcher}
}

// LoadAll fetches all five collections concurrently and joins the results.
// Failures are tracked per collection, never aborting the batch; there is
// no automatic retry, the caller re-triggers loading if needed.
func (l *Loader) LoadAll(ctx context.Context) *Bundle {
	results := make([][]Entry, len(AllCollections))
	errs := make([]error, len(AllCollections))

	var wg sync.WaitGroup
	for i, col := range AllCollections {
		wg.Add(1)
		go func(i int, col Collection) {
			defer wg.Done()
			entries, err := l.fetcher.Fetch(ctx, col)
			if err != nil {
				errs[i] = err
				return
			}
			results[i] = entries
		}(i, col)
	}
	wg.Wait()

	bundle := &Bundle{Errors: make(map[Collection]error)}
	for i, col := range AllCollections {
		entries := results[i]
		if entries == nil {
			entries = []Entry{}
		}
		switch col {
		case CollectionCategory:
			bundle.Categories = entries
		case CollectionModel:
			bundle.Models = entries
		case CollectionBrand:
			bundle.Brands = entries
		case CollectionType:
			bundle.Types = entries
		case CollectionItem:
			bundle.Items = entries
		}
		if errs[i] != nil {
			bundle.Errors[col] = errs[i]
		}
	}
	return bundle
}
