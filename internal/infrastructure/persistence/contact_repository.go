package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retail/backend/internal/domain/identity"
	"github.com/retail/backend/internal/domain/shared"
)

// GormContactRepository implements ContactRepository using GORM
type GormContactRepository struct {
	db *gorm.DB
}

// NewGormContactRepository creates a new GormContactRepository
func NewGormContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

var _ identity.ContactRepository = (*GormContactRepository)(nil)

// FindByID finds a contact by its ID
func (r *GormContactRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Contact, error) {
	var contact identity.Contact
	if err := r.db.WithContext(ctx).First(&contact, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &contact, nil
}

// FindByUser finds all contacts belonging to a user
func (r *GormContactRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]identity.Contact, error) {
	var contacts []identity.Contact
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

// Save creates or updates a contact
func (r *GormContactRepository) Save(ctx context.Context, contact *identity.Contact) error {
	return r.db.WithContext(ctx).Save(contact).Error
}

// Delete deletes a contact
func (r *GormContactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&identity.Contact{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByUser deletes the given contacts of a user
func (r *GormContactRepository) DeleteByUser(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Delete(&identity.Contact{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
