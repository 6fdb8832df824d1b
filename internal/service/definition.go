package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/coverply/warranty-admin/internal/events"
	"github.com/coverply/warranty-admin/internal/models"
	"github.com/coverply/warranty-admin/internal/pricing"
	"github.com/coverply/warranty-admin/internal/repo"
	"github.com/coverply/warranty-admin/internal/resolver"
	"github.com/coverply/warranty-admin/internal/search"
	"github.com/coverply/warranty-admin/internal/transport"
	"github.com/coverply/warranty-admin/internal/validation"
	"github.com/coverply/warranty-admin/pkg/logging"
)

// DefinitionService is the only entry point other layers call for warranty
// definition operations. Events and Search may be nil; mutations then skip
// publishing and indexing.
type DefinitionService struct {
	Repo    *repo.GormRepo
	Catalog *CatalogService
	Events  *events.Producer
	Search  *search.Indexer
}

func (s *DefinitionService) Create(ctx context.Context, raw transport.RawDefinitionInput) (*models.WarrantyDefinition, error) {
	in, ferrs := validation.Validate(raw)
	if len(ferrs) > 0 {
		return nil, &ValidationError{Fields: ferrs}
	}

	def := definitionFromInput(in)
	created, err := s.Repo.CreateDefinition(ctx, def)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateAssociation) {
			return nil, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return nil, fmt.Errorf("create definition: %w", err)
	}

	s.publish(ctx, "warranty_definition_created", created)
	s.reindex(ctx, created)
	return created, nil
}

func (s *DefinitionService) Update(ctx context.Context, id uint, raw transport.RawDefinitionInput) (*models.WarrantyDefinition, error) {
	in, ferrs := validation.Validate(raw)
	if len(ferrs) > 0 {
		return nil, &ValidationError{Fields: ferrs}
	}

	updated, err := s.Repo.UpdateDefinition(ctx, id, *definitionFromInput(in))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: definition %d", ErrNotFound, id)
		}
		if errors.Is(err, repo.ErrDuplicateAssociation) {
			return nil, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return nil, fmt.Errorf("update definition: %w", err)
	}

	s.publish(ctx, "warranty_definition_updated", updated)
	s.reindex(ctx, updated)
	return updated, nil
}

func (s *DefinitionService) Delete(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteDefinition(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: definition %d", ErrNotFound, id)
		}
		return fmt.Errorf("delete definition: %w", err)
	}

	s.publish(ctx, "warranty_definition_deleted", &models.WarrantyDefinition{ID: id})
	if err := s.Search.DeleteDefinition(ctx, id); err != nil {
		logging.FromContext(ctx).Error("search_delete_failed", "definition_id", id, "error", err)
	}
	return nil
}

func (s *DefinitionService) Get(ctx context.Context, id uint) (*models.WarrantyDefinition, error) {
	def, err := s.Repo.FindDefinition(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: definition %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("find definition: %w", err)
	}
	return def, nil
}

// List returns every definition newest first, prices converted to their
// display values.
func (s *DefinitionService) List(ctx context.Context) ([]transport.DefinitionResponse, error) {
	defs, err := s.Repo.ListDefinitions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list definitions: %w", err)
	}

	out := make([]transport.DefinitionResponse, len(defs))
	for i, def := range defs {
		out[i] = toResponse(def)
	}
	return out, nil
}

// AppliesTo resolves the product ids a definition currently covers. All
// definitions are read in one query so the sibling scan sees a consistent
// state.
func (s *DefinitionService) AppliesTo(ctx context.Context, id uint) ([]string, error) {
	defs, err := s.Repo.AllDefinitions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load definitions: %w", err)
	}

	target, found := lo.Find(defs, func(d models.WarrantyDefinition) bool { return d.ID == id })
	if !found {
		return nil, fmt.Errorf("%w: definition %d", ErrNotFound, id)
	}

	var collectionIDs []string
	for _, d := range defs {
		collectionIDs = append(collectionIDs, d.AssociatedCollectionIDs...)
	}

	snap, err := s.Catalog.BuildSnapshot(ctx, lo.Uniq(collectionIDs))
	if err != nil {
		return nil, fmt.Errorf("build snapshot: %w", err)
	}

	return resolver.AppliesTo(target, defs, snap), nil
}

func definitionFromInput(in validation.Input) *models.WarrantyDefinition {
	return &models.WarrantyDefinition{
		Name:                    in.Name,
		DurationMonths:          in.DurationMonths,
		Price:                   pricing.ToStorage(in.Price, in.PriceType),
		PriceType:               in.PriceType,
		Description:             in.Description,
		AssociationType:         in.AssociationType,
		AssociatedProductIDs:    in.ProductIDs,
		AssociatedCollectionIDs: in.CollectionIDs,
	}
}

func toResponse(def models.WarrantyDefinition) transport.DefinitionResponse {
	return transport.DefinitionResponse{
		ID:                      def.ID,
		Name:                    def.Name,
		DurationMonths:          def.DurationMonths,
		Price:                   pricing.ToDisplay(def.Price, def.PriceType),
		PriceType:               string(def.PriceType),
		Description:             def.Description,
		AssociationType:         string(def.AssociationType),
		AssociatedProductIDs:    def.AssociatedProductIDs,
		AssociatedCollectionIDs: def.AssociatedCollectionIDs,
		CreatedAt:               def.CreatedAt.Unix(),
		UpdatedAt:               def.UpdatedAt.Unix(),
	}
}

// publish sends an admin audit event. Failures are logged, never surfaced:
// the mutation already committed.
func (s *DefinitionService) publish(ctx context.Context, eventType string, def *models.WarrantyDefinition) {
	event := map[string]interface{}{
		"event_id":      uuid.NewString(),
		"type":          eventType,
		"definition_id": def.ID,
		"name":          def.Name,
	}
	if err := s.Events.PublishEvent(ctx, fmt.Sprint(def.ID), event); err != nil {
		logging.FromContext(ctx).Error("event_publish_failed", "type", eventType, "error", err)
	}
}

func (s *DefinitionService) reindex(ctx context.Context, def *models.WarrantyDefinition) {
	if err := s.Search.IndexDefinition(ctx, def); err != nil {
		logging.FromContext(ctx).Error("search_index_failed", "definition_id", def.ID, "error", err)
	}
}
