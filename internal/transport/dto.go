package transport

// RawDefinitionInput is the single typed boundary for the admin form payload.
// Numeric fields arrive as strings because the embedded admin page submits
// form-encoded values; validation parses them once.
type RawDefinitionInput struct {
	Name                    string   `json:"name"                      form:"name"`
	DurationMonths          string   `json:"duration_months"           form:"duration_months"`
	Price                   string   `json:"price"                     form:"price"`
	PriceType               string   `json:"price_type"                form:"price_type"`
	Description             string   `json:"description"               form:"description"`
	AssociationType         string   `json:"association_type"          form:"association_type"`
	AssociatedProductIDs    []string `json:"associated_product_ids"    form:"associated_product_ids"`
	AssociatedCollectionIDs []string `json:"associated_collection_ids" form:"associated_collection_ids"`
}

// DefinitionResponse is the presentation shape of a warranty definition:
// price converted back to its display value (dollars or percentage points).
type DefinitionResponse struct {
	ID                      uint     `json:"id"`
	Name                    string   `json:"name"`
	DurationMonths          int      `json:"duration_months"`
	Price                   float64  `json:"price"`
	PriceType               string   `json:"price_type"`
	Description             string   `json:"description"`
	AssociationType         string   `json:"association_type"`
	AssociatedProductIDs    []string `json:"associated_product_ids"`
	AssociatedCollectionIDs []string `json:"associated_collection_ids"`
	CreatedAt               int64    `json:"created_at"`
	UpdatedAt               int64    `json:"updated_at"`
}

type CatalogResource struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
}

type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}
