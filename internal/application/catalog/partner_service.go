package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/retail/backend/internal/domain/authz"
	"github.com/retail/backend/internal/domain/catalog"
	"github.com/retail/backend/internal/domain/identity"
	"github.com/retail/backend/internal/domain/shared"
	"github.com/retail/backend/internal/infrastructure/pricelist"
)

// PriceListFetcher downloads a price-list document from a supplier URL
type PriceListFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// PartnerService serves the supplier-side catalog operations
type PartnerService struct {
	shopRepo      catalog.ShopRepository
	priceListRepo catalog.PriceListRepository
	userRepo      identity.UserRepository
	fetcher       PriceListFetcher
	logger        *zap.Logger
}

// NewPartnerService creates a new partner service
func NewPartnerService(
	shopRepo catalog.ShopRepository,
	priceListRepo catalog.PriceListRepository,
	userRepo identity.UserRepository,
	fetcher PriceListFetcher,
	logger *zap.Logger,
) *PartnerService {
	return &PartnerService{
		shopRepo:      shopRepo,
		priceListRepo: priceListRepo,
		userRepo:      userRepo,
		fetcher:       fetcher,
		logger:        logger,
	}
}

// ImportFromURL downloads, validates and imports a supplier price list,
// wholesale-replacing the caller's shop offers
func (s *PartnerService) ImportFromURL(ctx context.Context, actorID uuid.UUID, url string) (*ImportResult, error) {
	actor, err := s.requireShopUser(ctx, actorID)
	if err != nil {
		return nil, err
	}

	data, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		s.logger.Warn("Price list fetch failed",
			zap.String("url", url),
			zap.Error(err))
		return nil, err
	}

	doc, err := pricelist.Decode(data)
	if err != nil {
		return nil, err
	}

	shop, err := s.shopRepo.FindByUser(ctx, actor.ID)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		shop, err = catalog.NewShop(actor.ID, doc.Shop, url)
		if err != nil {
			return nil, err
		}
		if err := s.shopRepo.Save(ctx, shop); err != nil {
			s.logger.Error("Failed to create shop", zap.Error(err))
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		if shop.URL != url {
			if err := shop.Rename(shop.Name, url); err != nil {
				return nil, err
			}
			if err := s.shopRepo.Save(ctx, shop); err != nil {
				s.logger.Error("Failed to update shop source", zap.Error(err))
				return nil, err
			}
		}
	}

	if err := s.priceListRepo.Import(ctx, shop, doc); err != nil {
		s.logger.Error("Price list import failed",
			zap.String("shop_id", shop.ID.String()),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Price list imported",
		zap.String("shop_id", shop.ID.String()),
		zap.String("shop", doc.Shop),
		zap.Int("goods", len(doc.Goods)))

	return &ImportResult{
		Shop:       doc.Shop,
		Categories: len(doc.Categories),
		Goods:      len(doc.Goods),
	}, nil
}

// Export builds the caller's current catalog as a price-list document
func (s *PartnerService) Export(ctx context.Context, actorID uuid.UUID) (*catalog.PriceList, error) {
	shop, err := s.requireShop(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return s.priceListRepo.Export(ctx, shop)
}

// GetState returns the caller's shop, including its accepting-orders state
func (s *PartnerService) GetState(ctx context.Context, actorID uuid.UUID) (*ShopInfo, error) {
	shop, err := s.requireShop(ctx, actorID)
	if err != nil {
		return nil, err
	}
	info := NewShopInfo(shop)
	return &info, nil
}

// SetState toggles whether the caller's shop is accepting orders
func (s *PartnerService) SetState(ctx context.Context, actorID uuid.UUID, accepting bool) (*ShopInfo, error) {
	shop, err := s.requireShop(ctx, actorID)
	if err != nil {
		return nil, err
	}

	shop.SetState(accepting)
	if err := s.shopRepo.SaveWithLock(ctx, shop); err != nil {
		s.logger.Error("Failed to save shop state", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Shop state changed",
		zap.String("shop_id", shop.ID.String()),
		zap.Bool("state", accepting))

	info := NewShopInfo(shop)
	return &info, nil
}

// ListShopsForAdmin returns shops visible to the actor in the admin view
func (s *PartnerService) ListShopsForAdmin(ctx context.Context, actorID uuid.UUID, filter shared.Filter) (*shared.Paginated[ShopInfo], error) {
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	role := authz.RoleOf(actor)

	var shops []catalog.Shop
	var total int64
	switch {
	case authz.CanListAll(role, authz.ResourceShop):
		shops, err = s.shopRepo.FindAll(ctx, filter)
		if err != nil {
			return nil, err
		}
		total, err = s.shopRepo.Count(ctx, filter)
		if err != nil {
			return nil, err
		}
	case authz.Decide(role, authz.ResourceShop, authz.RelationOwner):
		shop, err := s.shopRepo.FindByUser(ctx, actor.ID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if shop != nil {
			shops = []catalog.Shop{*shop}
			total = 1
		}
	default:
		return nil, shared.ErrForbidden
	}

	infos := make([]ShopInfo, 0, len(shops))
	for i := range shops {
		infos = append(infos, NewShopInfo(&shops[i]))
	}
	page := shared.NewPaginated(infos, total, filter)
	return &page, nil
}

// requireShopUser loads the actor and rejects non-supplier accounts
func (s *PartnerService) requireShopUser(ctx context.Context, actorID uuid.UUID) (*identity.User, error) {
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !authz.Decide(authz.RoleOf(actor), authz.ResourcePriceList, authz.RelationOwner) {
		return nil, shared.NewDomainError("FORBIDDEN", "Only shop accounts can manage a price list")
	}
	return actor, nil
}

// requireShop loads the actor's shop, rejecting non-supplier accounts
func (s *PartnerService) requireShop(ctx context.Context, actorID uuid.UUID) (*catalog.Shop, error) {
	actor, err := s.requireShopUser(ctx, actorID)
	if err != nil {
		return nil, err
	}
	shop, err := s.shopRepo.FindByUser(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("SHOP_NOT_FOUND", "No shop is linked to this account yet, import a price list first")
		}
		return nil, err
	}
	return shop, nil
}
