package validation

import (
	"strconv"
	"strings"

	"github.com/coverply/warranty-admin/internal/models"
	"github.com/coverply/warranty-admin/internal/transport"
)

// FieldErrors maps a submitted field name to a human-readable message. Every
// invalid field is reported in one pass so the admin form can show all
// problems at once.
type FieldErrors map[string]string

// Input is the well-typed result of a successful validation. Price still
// carries the display value; the pricing package converts it for storage.
type Input struct {
	Name            string
	DurationMonths  int
	Price           float64
	PriceType       models.PriceType
	Description     string
	AssociationType models.AssociationType
	ProductIDs      []string
	CollectionIDs   []string
}

// Validate checks a raw form payload and accumulates field errors instead of
// short-circuiting on the first one. On success the returned FieldErrors is
// empty and Input holds parsed values.
func Validate(raw transport.RawDefinitionInput) (Input, FieldErrors) {
	errs := FieldErrors{}
	in := Input{Description: strings.TrimSpace(raw.Description)}

	in.Name = strings.TrimSpace(raw.Name)
	if in.Name == "" {
		errs["name"] = "name is required"
	}

	months, err := strconv.Atoi(strings.TrimSpace(raw.DurationMonths))
	switch {
	case err != nil:
		errs["duration_months"] = "duration must be an integer"
	case months <= 0:
		errs["duration_months"] = "duration must be greater than zero"
	default:
		in.DurationMonths = months
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(raw.Price), 64)
	switch {
	case err != nil:
		errs["price"] = "price must be a number"
	case price < 0:
		errs["price"] = "price cannot be negative"
	default:
		in.Price = price
	}

	in.PriceType = models.PriceType(raw.PriceType)
	if !in.PriceType.Valid() {
		errs["price_type"] = "price type must be FIXED_AMOUNT or PERCENTAGE"
	}

	in.AssociationType = models.AssociationType(raw.AssociationType)
	if !in.AssociationType.Valid() {
		errs["association_type"] = "unknown association type"
	}

	// Submitted id lists are discarded, not merely ignored, unless the
	// association type actually interprets them.
	switch in.AssociationType {
	case models.AssociationSpecificProducts:
		ids, ok := cleanIDs(raw.AssociatedProductIDs)
		if !ok {
			errs["associated_product_ids"] = "product ids must be non-empty strings"
		} else {
			in.ProductIDs = ids
		}
	case models.AssociationSpecificCollections:
		ids, ok := cleanIDs(raw.AssociatedCollectionIDs)
		if !ok {
			errs["associated_collection_ids"] = "collection ids must be non-empty strings"
		} else {
			in.CollectionIDs = ids
		}
	}

	return in, errs
}

func cleanIDs(raw []string) ([]string, bool) {
	ids := make([]string, 0, len(raw))
	for _, id := range raw {
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}
