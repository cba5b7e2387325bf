package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/retail/backend/internal/domain/identity"
	"github.com/retail/backend/internal/domain/shared"
)

// GormUserRepository implements UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

var _ identity.UserRepository = (*GormUserRepository)(nil)

// FindByID finds a user by its ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).
		Preload("Contacts").
		First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).
		Preload("Contacts").
		First(&user, "email = ?", strings.ToLower(email)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindAll finds users with filtering
func (r *GormUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	var users []identity.User
	query := applyFilter(
		r.applySearch(r.db.WithContext(ctx).Model(&identity.User{}), filter),
		filter,
		"email", "first_name", "last_name", "created_at",
	)
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FindByShop finds users who placed orders containing the shop's offers
func (r *GormUserRepository) FindByShop(ctx context.Context, shopID uuid.UUID, filter shared.Filter) ([]identity.User, error) {
	var users []identity.User
	query := applyFilter(
		r.shopQuery(ctx, shopID),
		filter,
		"users.email", "users.created_at",
	)
	if err := query.Distinct("users.*").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CountByShop counts users who placed orders containing the shop's offers
func (r *GormUserRepository) CountByShop(ctx context.Context, shopID uuid.UUID) (int64, error) {
	var count int64
	if err := r.shopQuery(ctx, shopID).
		Distinct("users.id").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormUserRepository) shopQuery(ctx context.Context, shopID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).Model(&identity.User{}).
		Joins("JOIN orders ON orders.user_id = users.id").
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Joins("JOIN offers ON offers.id = order_items.offer_id").
		Where("offers.shop_id = ?", shopID).
		Where("orders.status <> ?", "basket")
}

// ExistsByEmail checks whether an email is already registered
func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&identity.User{}).
		Where("email = ?", strings.ToLower(email)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a user; contacts are managed separately
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormUserRepository) SaveWithLock(ctx context.Context, user *identity.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		currentVersion := user.Version
		user.Version++
		user.UpdatedAt = time.Now()

		result := tx.Model(&identity.User{}).
			Where("id = ? AND version = ?", user.ID, currentVersion).
			Updates(map[string]interface{}{
				"email":         user.Email,
				"password_hash": user.PasswordHash,
				"first_name":    user.FirstName,
				"last_name":     user.LastName,
				"company":       user.Company,
				"position":      user.Position,
				"type":          user.Type,
				"is_active":     user.IsActive,
				"is_staff":      user.IsStaff,
				"is_superuser":  user.IsSuperuser,
				"last_login_at": user.LastLoginAt,
				"version":       user.Version,
				"updated_at":    user.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}
		return nil
	})
}

// Count counts users matching the filter
func (r *GormUserRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applySearch(r.db.WithContext(ctx).Model(&identity.User{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormUserRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(email) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(company) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	if userType, ok := filter.Fields["type"]; ok {
		query = query.Where("type = ?", userType)
	}
	return query
}
