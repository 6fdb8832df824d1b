package service

import (
	"context"
	"fmt"

	"github.com/coverply/warranty-admin/internal/catalog"
	"github.com/coverply/warranty-admin/internal/models"
	"github.com/coverply/warranty-admin/internal/repo"
	"github.com/coverply/warranty-admin/internal/resolver"
)

// CatalogLookup is the narrow interface onto the host platform's catalog API.
type CatalogLookup interface {
	Search(ctx context.Context, query string, kind models.ResourceType) ([]catalog.Resource, error)
	CollectionProducts(ctx context.Context, collectionID string) ([]string, error)
}

type CatalogService struct {
	Repo   *repo.GormRepo
	Client CatalogLookup
}

// SearchResources proxies a picker search to the catalog API and refreshes
// the local mirror so later browsing works without a live call.
func (s *CatalogService) SearchResources(ctx context.Context, query string, kind models.ResourceType) ([]catalog.Resource, error) {
	if s.Client == nil {
		return nil, fmt.Errorf("catalog lookup is not configured")
	}

	resources, err := s.Client.Search(ctx, query, kind)
	if err != nil {
		return nil, err
	}

	if kind == models.ResourceTypeCollection {
		collections := make([]models.Collection, 0, len(resources))
		for _, res := range resources {
			collections = append(collections, models.Collection{
				ShopifyID: res.ID,
				Title:     res.Title,
				ImageURL:  res.ImageURL,
			})
		}
		if err := s.Repo.UpsertCollections(ctx, collections); err != nil {
			return nil, err
		}
		return resources, nil
	}

	products := make([]models.Product, 0, len(resources))
	for _, res := range resources {
		products = append(products, models.Product{
			ShopifyID: res.ID,
			Title:     res.Title,
			ImageURL:  res.ImageURL,
		})
	}
	if err := s.Repo.UpsertProducts(ctx, products); err != nil {
		return nil, err
	}
	return resources, nil
}

// BuildSnapshot assembles the catalog view the resolver works against: the
// mirrored product universe plus live collection membership for the
// collections the definitions reference.
func (s *CatalogService) BuildSnapshot(ctx context.Context, collectionIDs []string) (resolver.Snapshot, error) {
	productIDs, err := s.Repo.ProductShopifyIDs(ctx)
	if err != nil {
		return resolver.Snapshot{}, err
	}

	membership := make(map[string][]string, len(collectionIDs))
	for _, cid := range collectionIDs {
		if s.Client == nil {
			break
		}
		ids, err := s.Client.CollectionProducts(ctx, cid)
		if err != nil {
			return resolver.Snapshot{}, err
		}
		membership[cid] = ids
	}

	return resolver.Snapshot{
		ProductIDs:         productIDs,
		CollectionProducts: membership,
	}, nil
}
