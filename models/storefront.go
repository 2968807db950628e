// ════════════════════════════════════════════════════════════
// STOREFRONT MODELS
// File: models/storefront.go
// ════════════════════════════════════════════════════════════

package models

// StorefrontProductResponse is the thin card shown in the catalogue grid.
type StorefrontProductResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Image    string `json:"image"`
}

// NewStorefrontProductResponse builds a card from a product.
func NewStorefrontProductResponse(p Product) StorefrontProductResponse {
	return StorefrontProductResponse{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category,
		Image:    p.Photo,
	}
}

// ProductFilters lists the facets available for the loaded catalogue.
type ProductFilters struct {
	Categories []FilterOption `json:"categories"`
	Total      int            `json:"total"`
}

// FilterOption represents a single filter option
type FilterOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Count int    `json:"count"`
}
