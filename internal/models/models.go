package models

import (
	"time"
)

type PriceType string

const (
	PriceTypeFixedAmount PriceType = "FIXED_AMOUNT"
	PriceTypePercentage  PriceType = "PERCENTAGE"
)

func (p PriceType) Valid() bool {
	return p == PriceTypeFixedAmount || p == PriceTypePercentage
}

type AssociationType string

const (
	AssociationAllProducts         AssociationType = "ALL_PRODUCTS"
	AssociationUnassignedProducts  AssociationType = "UNASSIGNED_PRODUCTS"
	AssociationSpecificProducts    AssociationType = "SPECIFIC_PRODUCTS"
	AssociationSpecificCollections AssociationType = "SPECIFIC_COLLECTIONS"
)

func (a AssociationType) Valid() bool {
	switch a {
	case AssociationAllProducts, AssociationUnassignedProducts,
		AssociationSpecificProducts, AssociationSpecificCollections:
		return true
	}
	return false
}

type ResourceType string

const (
	ResourceTypeProduct    ResourceType = "PRODUCT"
	ResourceTypeCollection ResourceType = "COLLECTION"
)

// WarrantyDefinition is the admin-authored warranty template. Price is stored
// as an integer: minor currency units for FIXED_AMOUNT, whole percentage
// points for PERCENTAGE. The id list columns are a denormalized display cache;
// the ProductAssociation rows are the authoritative representation.
type WarrantyDefinition struct {
	ID                      uint            `gorm:"primaryKey;autoIncrement"            json:"id"`
	Name                    string          `gorm:"not null"                            json:"name"`
	DurationMonths          int             `gorm:"not null;check:duration_months > 0"  json:"duration_months"`
	Price                   int64           `gorm:"not null"                            json:"price"`
	PriceType               PriceType       `gorm:"not null"                            json:"price_type"`
	Description             string          `json:"description"`
	AssociationType         AssociationType `gorm:"not null"                            json:"association_type"`
	AssociatedProductIDs    []string        `gorm:"serializer:json;type:text"           json:"associated_product_ids"`
	AssociatedCollectionIDs []string        `gorm:"serializer:json;type:text"           json:"associated_collection_ids"`
	CreatedAt               time.Time       `json:"created_at"`
	UpdatedAt               time.Time       `json:"updated_at"`

	Associations []ProductAssociation `gorm:"foreignKey:WarrantyDefinitionID;constraint:OnDelete:CASCADE" json:"-"`
}

type ProductAssociation struct {
	ID                   uint         `gorm:"primaryKey;autoIncrement"                      json:"id"`
	WarrantyDefinitionID uint         `gorm:"not null;uniqueIndex:idx_definition_resource"  json:"warranty_definition_id"`
	ShopifyResourceID    string       `gorm:"not null;uniqueIndex:idx_definition_resource"  json:"shopify_resource_id"`
	ResourceType         ResourceType `gorm:"not null"                                      json:"resource_type"`
	IsActive             bool         `gorm:"default:true"                                  json:"is_active"`
	CreatedAt            time.Time    `json:"created_at"`
	UpdatedAt            time.Time    `json:"updated_at"`
}

// Product and Collection mirror external catalog entities so the admin picker
// can browse without a live catalog call every time. They are a local cache,
// not the source of truth for catalog membership.
type Product struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ShopifyID string    `gorm:"unique;not null"          json:"shopify_id"`
	Title     string    `gorm:"not null"                 json:"title"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Collection struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ShopifyID string    `gorm:"unique;not null"          json:"shopify_id"`
	Title     string    `gorm:"not null"                 json:"title"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
