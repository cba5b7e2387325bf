package persistence

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/retail/backend/internal/domain/catalog"
)

// GormPriceListRepository implements PriceListRepository using GORM
type GormPriceListRepository struct {
	db *gorm.DB
}

// NewGormPriceListRepository creates a new GormPriceListRepository
func NewGormPriceListRepository(db *gorm.DB) *GormPriceListRepository {
	return &GormPriceListRepository{db: db}
}

var _ catalog.PriceListRepository = (*GormPriceListRepository)(nil)

// Import wholesale-replaces the shop's offers from the document.
// Categories and products are shared across shops and upserted by
// their supplier-facing identifiers; the shop's prior offers are
// deleted before the new ones are written.
func (r *GormPriceListRepository) Import(ctx context.Context, shop *catalog.Shop, doc *catalog.PriceList) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if doc.Shop != shop.Name {
			shop.Name = doc.Shop
			shop.UpdatedAt = time.Now()
			if err := tx.Model(&catalog.Shop{}).
				Where("id = ?", shop.ID).
				Updates(map[string]interface{}{"name": shop.Name, "updated_at": shop.UpdatedAt}).Error; err != nil {
				return err
			}
		}

		categories, err := upsertCategories(tx, shop, doc.Categories)
		if err != nil {
			return err
		}

		if err := deleteShopOffers(tx, shop.ID); err != nil {
			return err
		}

		parameters := make(map[string]uuid.UUID)
		for i := range doc.Goods {
			good := &doc.Goods[i]

			productID, err := upsertProduct(tx, good.Name, categories[good.Category])
			if err != nil {
				return err
			}

			offer, err := catalog.NewOffer(shop.ID, productID, good.ID, good.Model, good.Price, good.PriceRRC, good.Quantity)
			if err != nil {
				return err
			}
			for _, name := range sortedKeys(good.Parameters) {
				parameterID, ok := parameters[name]
				if !ok {
					parameterID, err = upsertParameter(tx, name)
					if err != nil {
						return err
					}
					parameters[name] = parameterID
				}
				if err := offer.AddParameter(parameterID, good.Parameters[name]); err != nil {
					return err
				}
			}

			if err := tx.Create(offer).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Export builds the inverse projection of the shop's current offers
func (r *GormPriceListRepository) Export(ctx context.Context, shop *catalog.Shop) (*catalog.PriceList, error) {
	var offers []catalog.Offer
	if err := r.db.WithContext(ctx).
		Preload("Product.Category").
		Preload("Parameters.Parameter").
		Where("shop_id = ?", shop.ID).
		Order("external_id ASC").
		Find(&offers).Error; err != nil {
		return nil, err
	}

	doc := &catalog.PriceList{Shop: shop.Name}
	seen := make(map[int]bool)
	for i := range offers {
		offer := &offers[i]
		if offer.Product == nil || offer.Product.Category == nil {
			continue
		}

		category := offer.Product.Category
		if !seen[category.ExternalID] {
			seen[category.ExternalID] = true
			doc.Categories = append(doc.Categories, catalog.PriceListCategory{
				ID:   category.ExternalID,
				Name: category.Name,
			})
		}

		item := catalog.PriceListItem{
			ID:         offer.ExternalID,
			Category:   category.ExternalID,
			Model:      offer.Model,
			Name:       offer.Product.Name,
			Price:      offer.Price,
			PriceRRC:   offer.PriceRRC,
			Quantity:   offer.Quantity,
			Parameters: make(map[string]string, len(offer.Parameters)),
		}
		for _, p := range offer.Parameters {
			if p.Parameter != nil {
				item.Parameters[p.Parameter.Name] = p.Value
			}
		}
		doc.Goods = append(doc.Goods, item)
	}

	sort.Slice(doc.Categories, func(i, j int) bool {
		return doc.Categories[i].ID < doc.Categories[j].ID
	})
	return doc, nil
}

// upsertCategories gets or creates the document categories by their
// supplier-facing id and links them to the shop, returning an
// external id to category id mapping
func upsertCategories(tx *gorm.DB, shop *catalog.Shop, entries []catalog.PriceListCategory) (map[int]uuid.UUID, error) {
	ids := make(map[int]uuid.UUID, len(entries))
	for _, entry := range entries {
		var category catalog.Category
		err := tx.Where("external_id = ?", entry.ID).First(&category).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			created, err := catalog.NewCategory(entry.ID, entry.Name)
			if err != nil {
				return nil, err
			}
			if err := tx.Omit(clause.Associations).Create(created).Error; err != nil {
				return nil, err
			}
			category = *created
		case err != nil:
			return nil, err
		default:
			if category.Name != entry.Name {
				if err := category.Rename(entry.Name); err != nil {
					return nil, err
				}
				if err := tx.Model(&catalog.Category{}).
					Where("id = ?", category.ID).
					Updates(map[string]interface{}{"name": category.Name, "updated_at": category.UpdatedAt}).Error; err != nil {
					return nil, err
				}
			}
		}

		if err := tx.Table("shop_categories").
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(map[string]interface{}{"shop_id": shop.ID, "category_id": category.ID}).Error; err != nil {
			return nil, err
		}
		ids[entry.ID] = category.ID
	}
	return ids, nil
}

// upsertProduct gets or creates a product by name within a category
func upsertProduct(tx *gorm.DB, name string, categoryID uuid.UUID) (uuid.UUID, error) {
	var product catalog.Product
	err := tx.Where("name = ? AND category_id = ?", name, categoryID).First(&product).Error
	if err == nil {
		return product.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, err
	}

	created, err := catalog.NewProduct(name, categoryID)
	if err != nil {
		return uuid.Nil, err
	}
	if err := tx.Create(created).Error; err != nil {
		return uuid.Nil, err
	}
	return created.ID, nil
}

// upsertParameter gets or creates a named parameter
func upsertParameter(tx *gorm.DB, name string) (uuid.UUID, error) {
	var parameter catalog.Parameter
	err := tx.Where("name = ?", name).First(&parameter).Error
	if err == nil {
		return parameter.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, err
	}

	created, err := catalog.NewParameter(name)
	if err != nil {
		return uuid.Nil, err
	}
	if err := tx.Create(created).Error; err != nil {
		return uuid.Nil, err
	}
	return created.ID, nil
}

// deleteShopOffers removes the shop's offers together with their
// parameter values
func deleteShopOffers(tx *gorm.DB, shopID uuid.UUID) error {
	var offerIDs []uuid.UUID
	if err := tx.Model(&catalog.Offer{}).
		Where("shop_id = ?", shopID).
		Pluck("id", &offerIDs).Error; err != nil {
		return err
	}
	if len(offerIDs) == 0 {
		return nil
	}
	if err := tx.Where("offer_id IN ?", offerIDs).Delete(&catalog.OfferParameter{}).Error; err != nil {
		return err
	}
	return tx.Where("shop_id = ?", shopID).Delete(&catalog.Offer{}).Error
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
