package repo

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/coverply/warranty-admin/internal/models"
)

// UpsertProducts refreshes the local product mirror from a catalog lookup.
func (r *GormRepo) UpsertProducts(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "shopify_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "image_url", "updated_at"}),
	}).Create(&products).Error
}

func (r *GormRepo) UpsertCollections(ctx context.Context, collections []models.Collection) error {
	if len(collections) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "shopify_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "image_url", "updated_at"}),
	}).Create(&collections).Error
}

// ProductShopifyIDs returns the mirrored product universe used as the
// snapshot's product set.
func (r *GormRepo) ProductShopifyIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Order("id ASC").
		Pluck("shopify_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
