package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/retail/backend/internal/domain/authz"
	"github.com/retail/backend/internal/domain/catalog"
	"github.com/retail/backend/internal/domain/identity"
	"github.com/retail/backend/internal/domain/shared"
)

// AdminService serves the staff-facing user listings
type AdminService struct {
	userRepo identity.UserRepository
	shopRepo catalog.ShopRepository
	logger   *zap.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(
	userRepo identity.UserRepository,
	shopRepo catalog.ShopRepository,
	logger *zap.Logger,
) *AdminService {
	return &AdminService{
		userRepo: userRepo,
		shopRepo: shopRepo,
		logger:   logger,
	}
}

// ListUsers returns the accounts visible to the acting user. Superusers
// see everyone; shop staff see only buyers whose orders contain their
// shop's offers.
func (s *AdminService) ListUsers(ctx context.Context, actorID uuid.UUID, filter shared.Filter) (*shared.Paginated[UserInfo], error) {
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	role := authz.RoleOf(actor)

	var users []identity.User
	var total int64
	switch {
	case authz.CanListAll(role, authz.ResourceUser):
		users, err = s.userRepo.FindAll(ctx, filter)
		if err != nil {
			return nil, err
		}
		total, err = s.userRepo.Count(ctx, filter)
		if err != nil {
			return nil, err
		}
	case authz.Decide(role, authz.ResourceUser, authz.RelationSupplier):
		shop, err := s.shopRepo.FindByUser(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
		users, err = s.userRepo.FindByShop(ctx, shop.ID, filter)
		if err != nil {
			return nil, err
		}
		total, err = s.userRepo.CountByShop(ctx, shop.ID)
		if err != nil {
			return nil, err
		}
	default:
		return nil, shared.ErrForbidden
	}

	infos := make([]UserInfo, 0, len(users))
	for i := range users {
		infos = append(infos, NewUserInfo(&users[i]))
	}
	page := shared.NewPaginated(infos, total, filter)
	return &page, nil
}
