package resolver

import (
	"github.com/samber/lo"

	"github.com/coverply/warranty-admin/internal/models"
)

// Snapshot is a point-in-time view of the catalog used to resolve which
// products a definition applies to. CollectionProducts maps a collection id
// to the product ids it contains.
type Snapshot struct {
	ProductIDs         []string
	CollectionProducts map[string][]string
}

func (s Snapshot) hasProduct(id string) bool {
	return lo.Contains(s.ProductIDs, id)
}

// AppliesTo resolves the set of catalog product ids a definition currently
// covers. Stale ids referencing catalog items missing from the snapshot are
// dropped silently. When several SPECIFIC_* definitions claim the same
// product, each of them resolves to it: precedence between overlapping
// definitions is left to the storefront layer.
func AppliesTo(def models.WarrantyDefinition, siblings []models.WarrantyDefinition, snap Snapshot) []string {
	switch def.AssociationType {
	case models.AssociationAllProducts:
		return lo.Uniq(snap.ProductIDs)

	case models.AssociationSpecificProducts:
		return lo.Filter(lo.Uniq(def.AssociatedProductIDs), func(id string, _ int) bool {
			return snap.hasProduct(id)
		})

	case models.AssociationSpecificCollections:
		var ids []string
		for _, cid := range def.AssociatedCollectionIDs {
			ids = append(ids, snap.CollectionProducts[cid]...)
		}
		return lo.Filter(lo.Uniq(ids), func(id string, _ int) bool {
			return snap.hasProduct(id)
		})

	case models.AssociationUnassignedProducts:
		claimed := claimedProducts(def.ID, siblings, snap)
		return lo.Filter(lo.Uniq(snap.ProductIDs), func(id string, _ int) bool {
			_, taken := claimed[id]
			return !taken
		})
	}

	return nil
}

// claimedProducts collects every product id claimed by a SPECIFIC_* sibling
// definition. The definition being resolved is excluded from the scan.
func claimedProducts(selfID uint, siblings []models.WarrantyDefinition, snap Snapshot) map[string]struct{} {
	claimed := make(map[string]struct{})
	for _, sib := range siblings {
		if sib.ID == selfID {
			continue
		}
		switch sib.AssociationType {
		case models.AssociationSpecificProducts:
			for _, id := range sib.AssociatedProductIDs {
				claimed[id] = struct{}{}
			}
		case models.AssociationSpecificCollections:
			for _, cid := range sib.AssociatedCollectionIDs {
				for _, id := range snap.CollectionProducts[cid] {
					claimed[id] = struct{}{}
				}
			}
		}
	}
	return claimed
}
