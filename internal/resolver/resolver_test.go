package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coverply/warranty-admin/internal/models"
)

func testSnapshot() Snapshot {
	return Snapshot{
		ProductIDs: []string{"p1", "p2", "p3", "p4"},
		CollectionProducts: map[string][]string{
			"c1": {"p1", "p2"},
			"c2": {"p2", "p3"},
		},
	}
}

func TestAppliesTo_AllProducts(t *testing.T) {
	t.Parallel()

	def := models.WarrantyDefinition{ID: 1, AssociationType: models.AssociationAllProducts}
	got := AppliesTo(def, nil, testSnapshot())
	assert.ElementsMatch(t, []string{"p1", "p2", "p3", "p4"}, got)
}

func TestAppliesTo_SpecificProducts(t *testing.T) {
	t.Parallel()

	def := models.WarrantyDefinition{
		ID:                   1,
		AssociationType:      models.AssociationSpecificProducts,
		AssociatedProductIDs: []string{"p2", "p4"},
	}
	got := AppliesTo(def, nil, testSnapshot())
	assert.ElementsMatch(t, []string{"p2", "p4"}, got)
}

func TestAppliesTo_SpecificProducts_DropsStaleIDs(t *testing.T) {
	t.Parallel()

	def := models.WarrantyDefinition{
		ID:                   1,
		AssociationType:      models.AssociationSpecificProducts,
		AssociatedProductIDs: []string{"p1", "deleted-product"},
	}
	got := AppliesTo(def, nil, testSnapshot())
	assert.Equal(t, []string{"p1"}, got)
}

func TestAppliesTo_SpecificCollections_UnionDeduplicated(t *testing.T) {
	t.Parallel()

	def := models.WarrantyDefinition{
		ID:                      1,
		AssociationType:         models.AssociationSpecificCollections,
		AssociatedCollectionIDs: []string{"c1", "c2"},
	}
	got := AppliesTo(def, nil, testSnapshot())
	// p2 belongs to both collections and must appear once.
	assert.ElementsMatch(t, []string{"p1", "p2", "p3"}, got)
}

func TestAppliesTo_UnassignedProducts(t *testing.T) {
	t.Parallel()

	siblings := []models.WarrantyDefinition{
		{
			ID:                   2,
			AssociationType:      models.AssociationSpecificProducts,
			AssociatedProductIDs: []string{"p1"},
		},
		{
			ID:                      3,
			AssociationType:         models.AssociationSpecificCollections,
			AssociatedCollectionIDs: []string{"c2"},
		},
		// ALL_PRODUCTS siblings claim nothing.
		{ID: 4, AssociationType: models.AssociationAllProducts},
	}

	def := models.WarrantyDefinition{ID: 1, AssociationType: models.AssociationUnassignedProducts}
	got := AppliesTo(def, siblings, testSnapshot())

	// p1 claimed directly, p2 and p3 via collection c2.
	assert.ElementsMatch(t, []string{"p4"}, got)
}

func TestAppliesTo_UnassignedProducts_ExcludesSelf(t *testing.T) {
	t.Parallel()

	def := models.WarrantyDefinition{ID: 1, AssociationType: models.AssociationUnassignedProducts}
	siblings := []models.WarrantyDefinition{
		def,
		{
			ID:                   1,
			AssociationType:      models.AssociationSpecificProducts,
			AssociatedProductIDs: []string{"p1"},
		},
	}

	got := AppliesTo(def, siblings, testSnapshot())
	assert.ElementsMatch(t, []string{"p1", "p2", "p3", "p4"}, got)
}

func TestAppliesTo_OverlappingDefinitionsBothApply(t *testing.T) {
	t.Parallel()

	a := models.WarrantyDefinition{
		ID:                   1,
		AssociationType:      models.AssociationSpecificProducts,
		AssociatedProductIDs: []string{"p1"},
	}
	b := models.WarrantyDefinition{
		ID:                   2,
		AssociationType:      models.AssociationSpecificProducts,
		AssociatedProductIDs: []string{"p1"},
	}

	snap := testSnapshot()
	require.Contains(t, AppliesTo(a, []models.WarrantyDefinition{a, b}, snap), "p1")
	require.Contains(t, AppliesTo(b, []models.WarrantyDefinition{a, b}, snap), "p1")
}

func TestAppliesTo_EmptySnapshot(t *testing.T) {
	t.Parallel()

	def := models.WarrantyDefinition{ID: 1, AssociationType: models.AssociationAllProducts}
	assert.Empty(t, AppliesTo(def, nil, Snapshot{}))
}
