package catalog

import "catalog-admin/internal/variant"

type Brand struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Catalog is the attribute and colour state generation runs against.
type Catalog struct {
	Dimensions []variant.Dimension `json:"dimensions"`
	Colors     []variant.Color     `json:"colors"`
}
