package catalog

import (
	"context"
	"fmt"
	"strconv"

	"procurement-backend/internal/models"

	"gorm.io/gorm"
)

// Resource describes one collection's HTTP surface: the route segment and
// the JSON field the upstream clients use for the display name.
type Resource struct {
	Collection   Collection
	PrimaryField string // e.g. "model" for po_model
	HasCategory  bool   // dependent collections carry a category name
}

var Resources = []Resource{
	{Collection: CollectionCategory, PrimaryField: "name", HasCategory: false},
	{Collection: CollectionModel, PrimaryField: "model", HasCategory: true},
	{Collection: CollectionBrand, PrimaryField: "brand", HasCategory: true},
	{Collection: CollectionType, PrimaryField: "type", HasCategory: true},
	{Collection: CollectionItem, PrimaryField: "item_name", HasCategory: true},
}

// Wire serializes an entry with the collection's own field names, matching
// what the upstream API produced.
func (r Resource) Wire(e Entry) map[string]any {
	id, _ := strconv.ParseUint(e.ID, 10, 64)
	m := map[string]any{
		"id":           id,
		r.PrimaryField: e.Name,
	}
	if r.HasCategory {
		m["category"] = e.Category
	}
	return m
}

// Repository: explicit CRUD over one catalog collection. No shared mutable
// state; every caller goes through this interface.
type Repository interface {
	List(ctx context.Context) ([]Entry, error)
	Create(ctx context.Context, name, category string) (Entry, error)
	Update(ctx context.Context, id uint, name, category *string) (Entry, error)
	Delete(ctx context.Context, id uint) error
}

type sqlRepository struct {
	db  *gorm.DB
	col Collection
}

func NewSQLRepository(db *gorm.DB, col Collection) Repository {
	return &sqlRepository{db: db, col: col}
}

func (r *sqlRepository) List(ctx context.Context) ([]Entry, error) {
	switch r.col {
	case CollectionCategory:
		var rows []models.Category
		if err := r.db.WithContext(ctx).Order("id asc").Find(&rows).Error; err != nil {
			return nil, err
		}
		entries := make([]Entry, 0, len(rows))
		for _, row := range rows {
			entries = append(entries, Entry{ID: formatID(row.ID), Name: row.Name})
		}
		return entries, nil
	case CollectionModel:
		var rows []models.CatalogModel
		if err := r.db.WithContext(ctx).Order("id asc").Find(&rows).Error; err != nil {
			return nil, err
		}
		entries := make([]Entry, 0, len(rows))
		for _, row := range rows {
			entries = append(entries, Entry{ID: formatID(row.ID), Name: row.Model, Category: row.Category})
		}
		return entries, nil
	case CollectionBrand:
		var rows []models.CatalogBrand
		if err := r.db.WithContext(ctx).Order("id asc").Find(&rows).Error; err != nil {
			return nil, err
		}
		entries := make([]Entry, 0, len(rows))
		for _, row := range rows {
			entries = append(entries, Entry{ID: formatID(row.ID), Name: row.Brand, Category: row.Category})
		}
		return entries, nil
	case CollectionType:
		var rows []models.CatalogType
		if err := r.db.WithContext(ctx).Order("id asc").Find(&rows).Error; err != nil {
			return nil, err
		}
		entries := make([]Entry, 0, len(rows))
		for _, row := range rows {
			entries = append(entries, Entry{ID: formatID(row.ID), Name: row.Type, Category: row.Category})
		}
		return entries, nil
	case CollectionItem:
		var rows []models.CatalogItemName
		if err := r.db.WithContext(ctx).Order("id asc").Find(&rows).Error; err != nil {
			return nil, err
		}
		entries := make([]Entry, 0, len(rows))
		for _, row := range rows {
			entries = append(entries, Entry{ID: formatID(row.ID), Name: row.ItemName, Category: row.Category})
		}
		return entries, nil
	}
	return nil, fmt.Errorf("unknown collection: %s", r.col)
}

func (r *sqlRepository) Create(ctx context.Context, name, category string) (Entry, error) {
	db := r.db.WithContext(ctx)
	switch r.col {
	case CollectionCategory:
		row := models.Category{Name: name}
		if err := db.Create(&row).Error; err != nil {
			return Entry{}, err
		}
		return Entry{ID: formatID(row.ID), Name: row.Name}, nil
	case CollectionModel:
		row := models.CatalogModel{Model: name, Category: category}
		if err := db.Create(&row).Error; err != nil {
			return Entry{}, err
		}
		return Entry{ID: formatID(row.ID), Name: row.Model, Category: row.Category}, nil
	case CollectionBrand:
		row := models.CatalogBrand{Brand: name, Category: category}
		if err := db.Create(&row).Error; err != nil {
			return Entry{}, err
		}
		return Entry{ID: formatID(row.ID), Name: row.Brand, Category: row.Category}, nil
	case CollectionType:
		row := models.CatalogType{Type: name, Category: category}
		if err := db.Create(&row).Error; err != nil {
			return Entry{}, err
		}
		return Entry{ID: formatID(row.ID), Name: row.Type, Category: row.Category}, nil
	case CollectionItem:
		row := models.CatalogItemName{ItemName: name, Category: category}
		if err := db.Create(&row).Error; err != nil {
			return Entry{}, err
		}
		return Entry{ID: formatID(row.ID), Name: row.ItemName, Category: row.Category}, nil
	}
	return Entry{}, fmt.Errorf("unknown collection: %s", r.col)
}

func (r *sqlRepository) Update(ctx context.Context, id uint, name, category *string) (Entry, error) {
	db := r.db.WithContext(ctx)
	switch r.col {
	case CollectionCategory:
		var row models.Category
		if err := db.First(&row, "id = ?", id).Error; err != nil {
			return Entry{}, err
		}
		if name != nil {
			row.Name = *name
		}
		if err := db.Save(&row).Error; err != nil {
			return Entry{}, err
		}
		return Entry{ID: formatID(row.ID), Name: row.Name}, nil
	case CollectionModel:
		var row models.CatalogModel
		if err := db.First(&row, "id = ?", id).Error; err != nil {
			return Entry{}, err
		}
		if name != nil {
			row.Model = *name
		}
		if category != nil {
			row.Category = *category
		}
		if err := db.Save(&row).Error; err != nil {
			return Entry{}, err
		}
		return Entry{ID: formatID(row.ID), Name: row.Model, Category: row.Category}, nil
	case CollectionBrand:
		var row models.CatalogBrand
		if err := db.First(&row, "id = ?", id).Error; err != nil {
			return Entry{}, err
		}
		if name != nil {
			row.Brand = *name
		}
		if category != nil {
			row.Category = *category
		}
		if err := db.Save(&row).Error; err != nil {
			return Entry{}, err
		}
		return Entry{ID: formatID(row.ID), Name: row.Brand, Category: row.Category}, nil
	case CollectionType:
		var row models.CatalogType
		if err := db.First(&row, "id = ?", id).Error; err != nil {
			return Entry{}, err
		}
		if name != nil {
			row.Type = *name
		}
		if category != nil {
			row.Category = *category
		}
		if err := db.Save(&row).Error; err != nil {
			return Entry{}, err
		}
		return Entry{ID: formatID(row.ID), Name: row.Type, Category: row.Category}, nil
	case CollectionItem:
		var row models.CatalogItemName
		if err := db.First(&row, "id = ?", id).Error; err != nil {
			return Entry{}, err
		}
		if name != nil {
			row.ItemName = *name
		}
		if category != nil {
			row.Category = *category
		}
		if err := db.Save(&row).Error; err != nil {
			return Entry{}, err
		}
		return Entry{ID: formatID(row.ID), Name: row.ItemName, Category: row.Category}, nil
	}
	return Entry{}, fmt.Errorf("unknown collection: %s", r.col)
}

func (r *sqlRepository) Delete(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	switch r.col {
	case CollectionCategory:
		return db.Delete(&models.Category{}, "id = ?", id).Error
	case CollectionModel:
		return db.Delete(&models.CatalogModel{}, "id = ?", id).Error
	case CollectionBrand:
		return db.Delete(&models.CatalogBrand{}, "id = ?", id).Error
	case CollectionType:
		return db.Delete(&models.CatalogType{}, "id = ?", id).Error
	case CollectionItem:
		return db.Delete(&models.CatalogItemName{}, "id = ?", id).Error
	}
	return fmt.Errorf("unknown collection: %s", r.col)
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// RepositoryFetcher adapts a set of repositories to the Loader's Fetcher,
// going through the cache when one is configured.
type RepositoryFetcher struct {
	repos map[Collection]Repository
	cache *Cache // nil disables caching
}

func NewRepositoryFetcher(repos map[Collection]Repository, cache *Cache) *RepositoryFetcher {
	return &RepositoryFetcher{repos: repos, cache: cache}
}

func (f *RepositoryFetcher) Fetch(ctx context.Context, col Collection) ([]Entry, error) {
	if f.cache != nil {
		if entries, ok := f.cache.Get(ctx, col); ok {
			return entries, nil
		}
	}

	repo, ok := f.repos[col]
	if !ok {
		return nil, fmt.Errorf("no repository for collection %s", col)
	}
	entries, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if f.cache != nil {
		f.cache.Set(ctx, col, entries)
	}
	return entries, nil
}
