package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retail/backend/internal/domain/identity"
	"github.com/retail/backend/internal/domain/shared"
)

// GormConfirmEmailTokenRepository implements ConfirmEmailTokenRepository using GORM
type GormConfirmEmailTokenRepository struct {
	db *gorm.DB
}

// NewGormConfirmEmailTokenRepository creates a new GormConfirmEmailTokenRepository
func NewGormConfirmEmailTokenRepository(db *gorm.DB) *GormConfirmEmailTokenRepository {
	return &GormConfirmEmailTokenRepository{db: db}
}

var _ identity.ConfirmEmailTokenRepository = (*GormConfirmEmailTokenRepository)(nil)

// FindByKey finds a token by its key and purpose
func (r *GormConfirmEmailTokenRepository) FindByKey(ctx context.Context, key string, purpose identity.TokenPurpose) (*identity.ConfirmEmailToken, error) {
	var token identity.ConfirmEmailToken
	if err := r.db.WithContext(ctx).
		Where("key = ? AND purpose = ?", key, purpose).
		First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &token, nil
}

// Save creates a token
func (r *GormConfirmEmailTokenRepository) Save(ctx context.Context, token *identity.ConfirmEmailToken) error {
	return r.db.WithContext(ctx).Save(token).Error
}

// Delete deletes a token
func (r *GormConfirmEmailTokenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&identity.ConfirmEmailToken{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByUser deletes all tokens of a user for a purpose
func (r *GormConfirmEmailTokenRepository) DeleteByUser(ctx context.Context, userID uuid.UUID, purpose identity.TokenPurpose) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND purpose = ?", userID, purpose).
		Delete(&identity.ConfirmEmailToken{}).Error
}
