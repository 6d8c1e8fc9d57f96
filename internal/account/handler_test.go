package account

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"procurement-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type fakeRepository struct {
	accounts []models.Account
	nextID   uint
	failList bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{nextID: 1}
}

func (r *fakeRepository) List(ctx context.Context, accountType models.AccountType) ([]models.Account, error) {
	if r.failList {
		return nil, errors.New("list failed")
	}
	out := make([]models.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		if accountType == "" || a.Type == accountType {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeRepository) Get(ctx context.Context, id uint) (models.Account, error) {
	for _, a := range r.accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return models.Account{}, errors.New("not found")
}

func (r *fakeRepository) Create(ctx context.Context, acc models.Account) (models.Account, error) {
	acc.ID = r.nextID
	r.nextID++
	r.accounts = append(r.accounts, acc)
	return acc, nil
}

func (r *fakeRepository) Update(ctx context.Context, id uint, fields UpdateFields) (models.Account, error) {
	for i := range r.accounts {
		if r.accounts[i].ID == id {
			if fields.Name != nil {
				r.accounts[i].Name = *fields.Name
			}
			if fields.IsActive != nil {
				r.accounts[i].IsActive = *fields.IsActive
			}
			return r.accounts[i], nil
		}
	}
	return models.Account{}, errors.New("not found")
}

func (r *fakeRepository) Delete(ctx context.Context, id uint) error {
	for i := range r.accounts {
		if r.accounts[i].ID == id {
			r.accounts = append(r.accounts[:i], r.accounts[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func testApp(repo Repository) *fiber.App {
	h := NewHandlers(repo)
	app := fiber.New()
	app.Get("/accounts", h.List())
	app.Get("/accounts/:id", h.Get())
	app.Post("/accounts", h.Create())
	app.Put("/accounts/:id", h.Update())
	app.Delete("/accounts/:id", h.Delete())
	return app
}

func TestCreateAccountValidation(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{
			name:           "valid",
			body:           `{"type":"vendor","name":"ACME Electricals"}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missingName",
			body:           `{"type":"vendor"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalidType",
			body:           `{"type":"partner","name":"ACME"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformedJSON",
			body:           `{`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := testApp(newFakeRepository())
			req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != tt.expectedStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.expectedStatus)
			}
		})
	}
}

func TestListAccountsFiltersByType(t *testing.T) {
	repo := newFakeRepository()
	repo.Create(context.Background(), models.Account{Type: models.AccountTypeVendor, Name: "Vendor A"})
	repo.Create(context.Background(), models.Account{Type: models.AccountTypeClient, Name: "Client B"})
	app := testApp(repo)

	req := httptest.NewRequest(http.MethodGet, "/accounts?type=vendor", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var got []AccountResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Vendor A" {
		t.Errorf("got = %v", got)
	}
}

func TestListAccountsRejectsUnknownType(t *testing.T) {
	app := testApp(newFakeRepository())
	req := httptest.NewRequest(http.MethodGet, "/accounts?type=warehouse", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestUpdateAccount(t *testing.T) {
	repo := newFakeRepository()
	repo.Create(context.Background(), models.Account{Type: models.AccountTypeVendor, Name: "Old Name", IsActive: true})
	app := testApp(repo)

	req := httptest.NewRequest(http.MethodPut, "/accounts/1", bytes.NewBufferString(`{"name":"New Name","is_active":false}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	acc, _ := repo.Get(context.Background(), 1)
	if acc.Name != "New Name" || acc.IsActive {
		t.Errorf("account after update = %+v", acc)
	}
}

func TestDeleteAccount(t *testing.T) {
	repo := newFakeRepository()
	repo.Create(context.Background(), models.Account{Type: models.AccountTypeVendor, Name: "Doomed"})
	app := testApp(repo)

	req := httptest.NewRequest(http.MethodDelete, "/accounts/1", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want 204", resp.StatusCode)
	}
	if len(repo.accounts) != 0 {
		t.Errorf("account not deleted: %v", repo.accounts)
	}
}
