package purchase

import (
	"strconv"
	"strings"

	"procurement-backend/internal/catalog"
)

// Draft: the in-progress line-item selection. Ids are held as strings, the
// way the form fields hold them; empty string means "not selected". Model,
// brand, type and item selections are independent and order-free, but ALL
// of them are invalidated when the category changes.
type Draft struct {
	CategoryID   string
	CategoryName string
	ModelID      string
	ModelName    string
	BrandID      string
	BrandName    string
	TypeID       string
	TypeName     string
	ItemID       string
	ItemName     string
	Quantity     int
}

func NewDraft() *Draft {
	return &Draft{Quantity: 1}
}

// SetCategory selects a category and resets every dependent field. A stale
// model/brand/type/item belonging to the previous category must never
// survive a category change.
func (d *Draft) SetCategory(id string, categories []catalog.Entry) {
	d.CategoryID = id
	d.CategoryName = ""
	if e, ok := findEntry(categories, id); ok {
		d.CategoryName = e.Name
	}

	d.ModelID, d.ModelName = "", ""
	d.BrandID, d.BrandName = "", ""
	d.TypeID, d.TypeName = "", ""
	d.ItemID, d.ItemName = "", ""
	d.Quantity = 1
}

// SetModel and friends resolve the row from the already-filtered candidate
// list and store both id and display name.
func (d *Draft) SetModel(id string, candidates []catalog.Entry) {
	d.ModelID, d.ModelName = resolve(id, candidates)
}

func (d *Draft) SetBrand(id string, candidates []catalog.Entry) {
	d.BrandID, d.BrandName = resolve(id, candidates)
}

func (d *Draft) SetType(id string, candidates []catalog.Entry) {
	d.TypeID, d.TypeName = resolve(id, candidates)
}

func (d *Draft) SetItem(id string, candidates []catalog.Entry) {
	d.ItemID, d.ItemName = resolve(id, candidates)
}

// SetQuantity coerces free-form input to a positive integer. Non-numeric or
// non-positive input becomes 1.
func (d *Draft) SetQuantity(raw string) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		n = 1
	}
	d.Quantity = n
}

// Commit snapshots the draft and resets it for the next line. Without a
// selected item this is a silent no-op: the snapshot is not produced and
// the draft keeps its state, matching the picker's behavior.
func (d *Draft) Commit() (Draft, bool) {
	if d.ItemID == "" {
		return Draft{}, false
	}
	snapshot := *d
	*d = *NewDraft()
	return snapshot, true
}

func resolve(id string, candidates []catalog.Entry) (string, string) {
	if e, ok := findEntry(candidates, id); ok {
		return e.ID, e.Name
	}
	return id, ""
}

func findEntry(entries []catalog.Entry, id string) (catalog.Entry, bool) {
	for _, e := range entries {
		if e.ID == id {
			return e, true
		}
	}
	return catalog.Entry{}, false
}
