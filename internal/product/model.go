package product

import "catalog-admin/internal/variant"

type Product struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	SKU     string `json:"sku"`
	BrandID *int64 `json:"brandId,omitempty"`
}

// GenerateInput is the selection state sent by the admin console. BrandID
// overrides the brand stored on the product when set.
type GenerateInput struct {
	BrandID      *int64              `json:"brandId,omitempty"`
	Colors       []string            `json:"colors"`
	Selection    map[string][]string `json:"selection"`
	DefaultPrice *float64            `json:"defaultPrice,omitempty"`
	DefaultStock *int                `json:"defaultStock,omitempty"`
}

// GenerateResult carries either the persisted new rows together with the
// merged collection, or the required dimensions that block generation.
type GenerateResult struct {
	OK              bool          `json:"ok"`
	NewRows         []variant.Row `json:"newRows"`
	Variants        []variant.Row `json:"variants,omitempty"`
	MissingRequired []string      `json:"missingRequired,omitempty"`
}

type UpdateVariantInput struct {
	Name   *string  `json:"name,omitempty"`
	SKU    *string  `json:"sku,omitempty"`
	Price  *float64 `json:"price,omitempty"`
	Stock  *int     `json:"stock,omitempty"`
	Active *bool    `json:"active,omitempty"`
}

func (in UpdateVariantInput) HasAnyField() bool {
	return in.Name != nil ||
		in.SKU != nil ||
		in.Price != nil ||
		in.Stock != nil ||
		in.Active != nil
}
