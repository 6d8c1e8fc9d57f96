package purchase

import (
	"errors"
	"fmt"
	"strconv"

	"procurement-backend/internal/catalog"
	"procurement-backend/internal/models"
)

// ErrNoItemSelected: the order-save API rejects lines without an item id,
// so materialization refuses to produce one.
var ErrNoItemSelected = errors.New("no item selected")

// Materialize converts a committed draft into a persistable line item.
// Display names are resolved against the freshly fetched collections, never
// taken from the draft's cached name fields, which may be stale after a
// catalog reload. Foreign keys are parsed base-10; a non-numeric optional id
// becomes NULL rather than garbage on the wire.
func Materialize(d *Draft, b *catalog.Bundle) (models.PurchaseOrderItem, error) {
	if d.ItemID == "" {
		return models.PurchaseOrderItem{}, ErrNoItemSelected
	}

	itemID, err := parseID(d.ItemID)
	if err != nil {
		return models.PurchaseOrderItem{}, fmt.Errorf("invalid item id %q: %w", d.ItemID, err)
	}

	quantity := d.Quantity
	if quantity < 1 {
		quantity = 1
	}

	line := models.PurchaseOrderItem{
		ItemID:     itemID,
		Item:       resolveName(b, catalog.CollectionItem, d.ItemID),
		CategoryID: optionalID(d.CategoryID),
		ModelID:    optionalID(d.ModelID),
		BrandID:    optionalID(d.BrandID),
		TypeID:     optionalID(d.TypeID),
		Quantity:   quantity,
	}
	if line.CategoryID != nil {
		line.Category = resolveName(b, catalog.CollectionCategory, d.CategoryID)
	}
	if line.ModelID != nil {
		line.Model = resolveName(b, catalog.CollectionModel, d.ModelID)
	}
	if line.BrandID != nil {
		line.Brand = resolveName(b, catalog.CollectionBrand, d.BrandID)
	}
	if line.TypeID != nil {
		line.Type = resolveName(b, catalog.CollectionType, d.TypeID)
	}
	return line, nil
}

func parseID(s string) (uint, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(n), nil
}

// optionalID parses a nullable foreign key; empty or non-numeric -> nil.
func optionalID(s string) *uint {
	if s == "" {
		return nil
	}
	n, err := parseID(s)
	if err != nil {
		return nil
	}
	return &n
}

func resolveName(b *catalog.Bundle, col catalog.Collection, id string) string {
	if e, ok := b.Find(col, id); ok {
		return e.Name
	}
	return "#" + id
}
