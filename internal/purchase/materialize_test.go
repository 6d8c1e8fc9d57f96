package purchase

import (
	"errors"
	"testing"

	"procurement-backend/internal/catalog"
)

func testBundle() *catalog.Bundle {
	return &catalog.Bundle{
		Categories: testCategories,
		Models:     testModels,
		Brands:     testBrands,
		Types:      testTypes,
		Items:      testItems,
		Errors:     map[catalog.Collection]error{},
	}
}

func TestMaterializeRequiresItem(t *testing.T) {
	bundle := testBundle()

	tests := []struct {
		name  string
		draft *Draft
	}{
		{name: "emptyDraft", draft: NewDraft()},
		{
			name: "everythingButItem",
			draft: func() *Draft {
				d := NewDraft()
				d.SetCategory("1", bundle.Categories)
				d.SetModel("10", bundle.Models)
				d.SetBrand("20", bundle.Brands)
				d.SetType("30", bundle.Types)
				d.SetQuantity("4")
				return d
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Materialize(tt.draft, bundle); !errors.Is(err, ErrNoItemSelected) {
				t.Errorf("Materialize() error = %v, want ErrNoItemSelected", err)
			}
		})
	}
}

func TestMaterializeFullDraft(t *testing.T) {
	bundle := testBundle()
	d := fullDraft()

	line, err := Materialize(d, bundle)
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}

	if line.ItemID != 40 || line.Item != "Wire 2.5mm" {
		t.Errorf("item = %d/%q", line.ItemID, line.Item)
	}
	if line.CategoryID == nil || *line.CategoryID != 1 || line.Category != "Electrical" {
		t.Errorf("category = %v/%q", line.CategoryID, line.Category)
	}
	if line.ModelID == nil || *line.ModelID != 10 || line.Model != "X1" {
		t.Errorf("model = %v/%q", line.ModelID, line.Model)
	}
	if line.Quantity != 5 {
		t.Errorf("quantity = %d, want 5", line.Quantity)
	}
}

func TestMaterializeIgnoresStaleDraftNames(t *testing.T) {
	// the draft's cached names lie; the fetched collections are
	// authoritative
	bundle := testBundle()
	d := NewDraft()
	d.ItemID = "40"
	d.ItemName = "Stale Name"
	d.CategoryID = "1"
	d.CategoryName = "Old Category"
	d.Quantity = 1

	line, err := Materialize(d, bundle)
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	if line.Item != "Wire 2.5mm" {
		t.Errorf("item = %q, want the resolved name", line.Item)
	}
	if line.Category != "Electrical" {
		t.Errorf("category = %q, want the resolved name", line.Category)
	}
}

func TestMaterializeNonNumericOptionalIDsBecomeNil(t *testing.T) {
	bundle := testBundle()
	d := NewDraft()
	d.ItemID = "40"
	d.ModelID = "not-a-number"
	d.BrandID = ""

	line, err := Materialize(d, bundle)
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	if line.ModelID != nil {
		t.Errorf("non-numeric model id should become nil, got %v", line.ModelID)
	}
	if line.BrandID != nil {
		t.Errorf("empty brand id should become nil, got %v", line.BrandID)
	}
}

func TestMaterializeNonNumericItemIDFails(t *testing.T) {
	bundle := testBundle()
	d := NewDraft()
	d.ItemID = "NaN"

	if _, err := Materialize(d, bundle); err == nil {
		t.Error("a non-numeric item id must not materialize")
	}
}

func TestMaterializeMissingLookupGetsPlaceholder(t *testing.T) {
	// item id exists but the items fetch failed: materialization still
	// works, with a placeholder name
	bundle := testBundle()
	bundle.Items = []catalog.Entry{}

	d := NewDraft()
	d.ItemID = "40"

	line, err := Materialize(d, bundle)
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	if line.Item != "#40" {
		t.Errorf("item = %q, want placeholder #40", line.Item)
	}
}

func TestMaterializeQuantityFloor(t *testing.T) {
	bundle := testBundle()
	d := NewDraft()
	d.ItemID = "40"
	d.Quantity = 0

	line, err := Materialize(d, bundle)
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	if line.Quantity != 1 {
		t.Errorf("quantity = %d, want 1", line.Quantity)
	}
}
