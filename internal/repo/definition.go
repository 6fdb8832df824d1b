package repo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/coverply/warranty-admin/internal/models"
)

// CreateDefinition persists the definition row together with its association
// rows. Both commit or neither does.
func (r *GormRepo) CreateDefinition(ctx context.Context, def *models.WarrantyDefinition) (*models.WarrantyDefinition, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Associations").Create(def).Error; err != nil {
			return err
		}
		return insertAssociations(tx, def)
	})
	if err != nil {
		return nil, err
	}
	return def, nil
}

// UpdateDefinition replaces the stored definition and rebuilds its
// association rows in one transaction. Returns gorm.ErrRecordNotFound if the
// id does not exist.
func (r *GormRepo) UpdateDefinition(ctx context.Context, id uint, updated models.WarrantyDefinition) (*models.WarrantyDefinition, error) {
	var def models.WarrantyDefinition
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&def, id).Error; err != nil {
			return err
		}

		def.Name = updated.Name
		def.DurationMonths = updated.DurationMonths
		def.Price = updated.Price
		def.PriceType = updated.PriceType
		def.Description = updated.Description
		def.AssociationType = updated.AssociationType
		def.AssociatedProductIDs = updated.AssociatedProductIDs
		def.AssociatedCollectionIDs = updated.AssociatedCollectionIDs

		if err := tx.Omit("Associations").Save(&def).Error; err != nil {
			return err
		}

		if err := tx.Where("warranty_definition_id = ?", def.ID).
			Delete(&models.ProductAssociation{}).Error; err != nil {
			return err
		}
		return insertAssociations(tx, &def)
	})
	if err != nil {
		return nil, err
	}
	return &def, nil
}

// DeleteDefinition hard-deletes the definition and cascades to its
// association rows. Returns gorm.ErrRecordNotFound if the id does not exist.
func (r *GormRepo) DeleteDefinition(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("warranty_definition_id = ?", id).
			Delete(&models.ProductAssociation{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.WarrantyDefinition{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *GormRepo) FindDefinition(ctx context.Context, id uint) (*models.WarrantyDefinition, error) {
	var def models.WarrantyDefinition
	if err := r.DB.WithContext(ctx).First(&def, id).Error; err != nil {
		return nil, err
	}
	return &def, nil
}

// ListDefinitions returns all definitions newest first, ties on created_at
// broken by id descending.
func (r *GormRepo) ListDefinitions(ctx context.Context) ([]models.WarrantyDefinition, error) {
	var defs []models.WarrantyDefinition
	if err := r.DB.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&defs).Error; err != nil {
		return nil, err
	}
	return defs, nil
}

// AllDefinitions reads every definition in a single query so the resolver's
// sibling scan observes one consistent state.
func (r *GormRepo) AllDefinitions(ctx context.Context) ([]models.WarrantyDefinition, error) {
	var defs []models.WarrantyDefinition
	if err := r.DB.WithContext(ctx).Find(&defs).Error; err != nil {
		return nil, err
	}
	return defs, nil
}

func (r *GormRepo) FindAssociations(ctx context.Context, definitionID uint) ([]models.ProductAssociation, error) {
	var rows []models.ProductAssociation
	if err := r.DB.WithContext(ctx).
		Where("warranty_definition_id = ?", definitionID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func insertAssociations(tx *gorm.DB, def *models.WarrantyDefinition) error {
	for _, row := range associationRows(def) {
		var count int64
		if err := tx.Model(&models.ProductAssociation{}).
			Where("warranty_definition_id = ? AND shopify_resource_id = ?", row.WarrantyDefinitionID, row.ShopifyResourceID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: %s", ErrDuplicateAssociation, row.ShopifyResourceID)
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

func associationRows(def *models.WarrantyDefinition) []models.ProductAssociation {
	var rows []models.ProductAssociation
	switch def.AssociationType {
	case models.AssociationSpecificProducts:
		for _, id := range def.AssociatedProductIDs {
			rows = append(rows, models.ProductAssociation{
				WarrantyDefinitionID: def.ID,
				ShopifyResourceID:    id,
				ResourceType:         models.ResourceTypeProduct,
				IsActive:             true,
			})
		}
	case models.AssociationSpecificCollections:
		for _, id := range def.AssociatedCollectionIDs {
			rows = append(rows, models.ProductAssociation{
				WarrantyDefinitionID: def.ID,
				ShopifyResourceID:    id,
				ResourceType:         models.ResourceTypeCollection,
				IsActive:             true,
			})
		}
	}
	return rows
}
