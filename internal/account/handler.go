package account

import (
	"strconv"
	"strings"

	"procurement-backend/internal/audit"
	"procurement-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AccountResponse struct {
	ID          uint               `json:"id"`
	Type        models.AccountType `json:"type"`
	Name        string             `json:"name"`
	ContactName string             `json:"contact_name"`
	Phone       string             `json:"phone"`
	Email       string             `json:"email"`
	Address     string             `json:"address"`
	GSTNumber   string             `json:"gst_number"`
	IsActive    bool               `json:"is_active"`
}

type CreateAccountRequest struct {
	Type        models.AccountType `json:"type"`
	Name        string             `json:"name"`
	ContactName string             `json:"contact_name"`
	Phone       string             `json:"phone"`
	Email       string             `json:"email"`
	Address     string             `json:"address"`
	GSTNumber   string             `json:"gst_number"`
}

type UpdateAccountRequest struct {
	Type        *models.AccountType `json:"type"`
	Name        *string             `json:"name"`
	ContactName *string             `json:"contact_name"`
	Phone       *string             `json:"phone"`
	Email       *string             `json:"email"`
	Address     *string             `json:"address"`
	GSTNumber   *string             `json:"gst_number"`
	IsActive    *bool               `json:"is_active"`
}

type Handlers struct {
	repo Repository
}

func NewHandlers(repo Repository) *Handlers {
	return &Handlers{repo: repo}
}

// GET /api/accounts?type=vendor
func (h *Handlers) List() fiber.Handler {
	return func(c *fiber.Ctx) error {
		accountType := models.AccountType(c.Query("type"))
		if accountType != "" && accountType != models.AccountTypeVendor && accountType != models.AccountTypeClient {
			return fiber.NewError(fiber.StatusBadRequest, "type must be vendor or client")
		}

		accounts, err := h.repo.List(c.Context(), accountType)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list accounts")
		}

		res := make([]AccountResponse, 0, len(accounts))
		for _, a := range accounts {
			res = append(res, toResponse(a))
		}
		return c.JSON(res)
	}
}

// GET /api/accounts/:id
func (h *Handlers) Get() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid id")
		}

		acc, err := h.repo.Get(c.Context(), uint(id))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Account not found")
		}
		return c.JSON(toResponse(acc))
	}
}

// POST /api/accounts
func (h *Handlers) Create() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateAccountRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name is required")
		}
		if body.Type != models.AccountTypeVendor && body.Type != models.AccountTypeClient {
			return fiber.NewError(fiber.StatusBadRequest, "type must be vendor or client")
		}

		acc, err := h.repo.Create(c.Context(), models.Account{
			Type:        body.Type,
			Name:        body.Name,
			ContactName: strings.TrimSpace(body.ContactName),
			Phone:       strings.TrimSpace(body.Phone),
			Email:       strings.TrimSpace(body.Email),
			Address:     strings.TrimSpace(body.Address),
			GSTNumber:   strings.TrimSpace(body.GSTNumber),
			IsActive:    true,
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create account")
		}

		audit.WriteFromCtx(c, audit.LogOptions{
			EntityType:  "account",
			EntityID:    acc.ID,
			Action:      models.AuditActionCreate,
			Description: acc.Name,
			After:       acc,
		})

		return c.Status(fiber.StatusCreated).JSON(toResponse(acc))
	}
}

// PUT /api/accounts/:id
func (h *Handlers) Update() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid id")
		}

		var body UpdateAccountRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Name cannot be empty")
			}
			body.Name = &name
		}
		if body.Type != nil && *body.Type != models.AccountTypeVendor && *body.Type != models.AccountTypeClient {
			return fiber.NewError(fiber.StatusBadRequest, "type must be vendor or client")
		}

		acc, err := h.repo.Update(c.Context(), uint(id), UpdateFields{
			Name:        body.Name,
			Type:        body.Type,
			ContactName: body.ContactName,
			Phone:       body.Phone,
			Email:       body.Email,
			Address:     body.Address,
			GSTNumber:   body.GSTNumber,
			IsActive:    body.IsActive,
		})
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Account not found")
		}

		audit.WriteFromCtx(c, audit.LogOptions{
			EntityType:  "account",
			EntityID:    acc.ID,
			Action:      models.AuditActionUpdate,
			Description: acc.Name,
			After:       acc,
		})

		return c.JSON(toResponse(acc))
	}
}

// DELETE /api/accounts/:id
func (h *Handlers) Delete() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid id")
		}

		if err := h.repo.Delete(c.Context(), uint(id)); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete account")
		}

		audit.WriteFromCtx(c, audit.LogOptions{
			EntityType: "account",
			EntityID:   uint(id),
			Action:     models.AuditActionDelete,
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}

func toResponse(a models.Account) AccountResponse {
	return AccountResponse{
		ID:          a.ID,
		Type:        a.Type,
		Name:        a.Name,
		ContactName: a.ContactName,
		Phone:       a.Phone,
		Email:       a.Email,
		Address:     a.Address,
		GSTNumber:   a.GSTNumber,
		IsActive:    a.IsActive,
	}
}
