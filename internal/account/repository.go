package account

import (
	"context"

	"procurement-backend/internal/models"

	"gorm.io/gorm"
)

// UpdateFields: nil pointer means "leave unchanged".
type UpdateFields struct {
	Name        *string
	Type        *models.AccountType
	ContactName *string
	Phone       *string
	Email       *string
	Address     *string
	GSTNumber   *string
	IsActive    *bool
}

// Repository: explicit account CRUD. Callers never reach around it to a
// shared collection.
type Repository interface {
	List(ctx context.Context, accountType models.AccountType) ([]models.Account, error)
	Get(ctx context.Context, id uint) (models.Account, error)
	Create(ctx context.Context, acc models.Account) (models.Account, error)
	Update(ctx context.Context, id uint, fields UpdateFields) (models.Account, error)
	Delete(ctx context.Context, id uint) error
}

type sqlRepository struct {
	db *gorm.DB
}

func NewSQLRepository(db *gorm.DB) Repository {
	return &sqlRepository{db: db}
}

func (r *sqlRepository) List(ctx context.Context, accountType models.AccountType) ([]models.Account, error) {
	dbq := r.db.WithContext(ctx).Model(&models.Account{})
	if accountType != "" {
		dbq = dbq.Where("type = ?", accountType)
	}
	var accounts []models.Account
	if err := dbq.Order("name asc").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *sqlRepository) Get(ctx context.Context, id uint) (models.Account, error) {
	var acc models.Account
	err := r.db.WithContext(ctx).First(&acc, "id = ?", id).Error
	return acc, err
}

func (r *sqlRepository) Create(ctx context.Context, acc models.Account) (models.Account, error) {
	err := r.db.WithContext(ctx).Create(&acc).Error
	return acc, err
}

func (r *sqlRepository) Update(ctx context.Context, id uint, fields UpdateFields) (models.Account, error) {
	var acc models.Account
	if err := r.db.WithContext(ctx).First(&acc, "id = ?", id).Error; err != nil {
		return acc, err
	}

	if fields.Name != nil {
		acc.Name = *fields.Name
	}
	if fields.Type != nil {
		acc.Type = *fields.Type
	}
	if fields.ContactName != nil {
		acc.ContactName = *fields.ContactName
	}
	if fields.Phone != nil {
		acc.Phone = *fields.Phone
	}
	if fields.Email != nil {
		acc.Email = *fields.Email
	}
	if fields.Address != nil {
		acc.Address = *fields.Address
	}
	if fields.GSTNumber != nil {
		acc.GSTNumber = *fields.GSTNumber
	}
	if fields.IsActive != nil {
		acc.IsActive = *fields.IsActive
	}

	err := r.db.WithContext(ctx).Save(&acc).Error
	return acc, err
}

func (r *sqlRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Account{}, "id = ?", id).Error
}
