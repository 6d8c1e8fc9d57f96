package catalog

import (
	"strconv"
	"strings"

	"procurement-backend/internal/audit"
	"procurement-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Handlers covers one collection's HTTP surface. All five collections share
// the same payload shape { <primaryNameField>: string, category?: string },
// so the handlers are built once per Resource instead of copy-pasted per
// collection.
type Handlers struct {
	res     Resource
	repo    Repository
	fetcher *RepositoryFetcher
	cache   *Cache // nil when Redis is not configured
}

func NewHandlers(res Resource, repo Repository, fetcher *RepositoryFetcher, cache *Cache) *Handlers {
	return &Handlers{res: res, repo: repo, fetcher: fetcher, cache: cache}
}

// GET /api/{resource}/getAll
func (h *Handlers) List() fiber.Handler {
	return func(c *fiber.Ctx) error {
		entries, err := h.fetcher.Fetch(c.Context(), h.res.Collection)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list "+string(h.res.Collection))
		}

		out := make([]map[string]any, 0, len(entries))
		for _, e := range entries {
			out = append(out, h.res.Wire(e))
		}
		return c.JSON(out)
	}
}

// GET /api/{resource}/search?category=Electrical&q=wire&limit=10
// Serves the line-item picker's candidate list: category narrowing (skipped
// for the category collection itself), substring query, capped result.
func (h *Handlers) Search() fiber.Handler {
	return func(c *fiber.Ctx) error {
		entries, err := h.fetcher.Fetch(c.Context(), h.res.Collection)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load "+string(h.res.Collection))
		}

		categoryName := ""
		if h.res.HasCategory {
			categoryName = c.Query("category")
		}
		limit := c.QueryInt("limit", DefaultFilterLimit)

		filtered := FilterByCategoryAndQuery(entries, categoryName, c.Query("q"), limit)

		out := make([]map[string]any, 0, len(filtered))
		for _, e := range filtered {
			out = append(out, h.res.Wire(e))
		}
		return c.JSON(out)
	}
}

// POST /api/{resource}/create
func (h *Handlers) Create() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body map[string]any
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		name := strings.TrimSpace(stringField(body, h.res.PrimaryField))
		if name == "" {
			return fiber.NewError(fiber.StatusBadRequest, h.res.PrimaryField+" is required")
		}

		category := ""
		if h.res.HasCategory {
			category = strings.TrimSpace(stringField(body, "category"))
		}

		entry, err := h.repo.Create(c.Context(), name, category)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create "+string(h.res.Collection))
		}
		h.invalidate(c)
		h.audit(c, models.AuditActionCreate, entry, nil, &entry)

		return c.Status(fiber.StatusCreated).JSON(h.res.Wire(entry))
	}
}

// PUT /api/{resource}/update/:id
func (h *Handlers) Update() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid id")
		}

		var body map[string]any
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		var name, category *string
		if v, ok := body[h.res.PrimaryField]; ok {
			s := strings.TrimSpace(coerceString(v))
			if s == "" {
				return fiber.NewError(fiber.StatusBadRequest, h.res.PrimaryField+" cannot be empty")
			}
			name = &s
		}
		if h.res.HasCategory {
			if v, ok := body["category"]; ok {
				s := strings.TrimSpace(coerceString(v))
				category = &s
			}
		}

		entry, err := h.repo.Update(c.Context(), uint(id), name, category)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, string(h.res.Collection)+" not found")
		}
		h.invalidate(c)
		h.audit(c, models.AuditActionUpdate, entry, nil, &entry)

		return c.JSON(h.res.Wire(entry))
	}
}

// DELETE /api/{resource}/delete/:id
func (h *Handlers) Delete() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid id")
		}

		if err := h.repo.Delete(c.Context(), uint(id)); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete "+string(h.res.Collection))
		}
		h.invalidate(c)
		h.audit(c, models.AuditActionDelete, Entry{ID: strconv.FormatUint(id, 10)}, nil, nil)

		return c.SendStatus(fiber.StatusNoContent)
	}
}

func (h *Handlers) invalidate(c *fiber.Ctx) {
	if h.cache != nil {
		h.cache.Invalidate(c.Context(), h.res.Collection)
	}
}

func (h *Handlers) audit(c *fiber.Ctx, action models.AuditAction, entry Entry, before, after *Entry) {
	id, _ := strconv.ParseUint(entry.ID, 10, 64)
	audit.WriteFromCtx(c, audit.LogOptions{
		EntityType:  string(h.res.Collection),
		EntityID:    uint(id),
		Action:      action,
		Description: entry.Name,
		Before:      asAny(before),
		After:       asAny(after),
	})
}

func asAny(e *Entry) any {
	if e == nil {
		return nil
	}
	return *e
}

func stringField(body map[string]any, field string) string {
	v, ok := body[field]
	if !ok {
		return ""
	}
	return coerceString(v)
}
