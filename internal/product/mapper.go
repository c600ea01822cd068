package product

import (
	"encoding/json"
	"errors"
	"fmt"

	"catalog-admin/internal/variant"

	"github.com/lib/pq"
)

type rowScanner interface {
	Scan(dest ...any) error
}

const variantColumns = `id, product_id, name, sku, price, stock, active, attributes`

func scanVariant(s rowScanner) (variant.Row, error) {
	var (
		v     variant.Row
		attrs []byte
	)

	if err := s.Scan(
		&v.ID, &v.ProductID,
		&v.Name, &v.SKU,
		&v.Price, &v.Stock, &v.Active,
		&attrs,
	); err != nil {
		return variant.Row{}, err
	}

	decoded, err := decodeAttributes(attrs)
	if err != nil {
		return variant.Row{}, fmt.Errorf("variant %d: %w", v.ID, err)
	}
	v.Attributes = decoded

	return v, nil
}

func decodeAttributes(raw []byte) (variant.Attributes, error) {
	if len(raw) == 0 {
		return variant.Attributes{}, nil
	}

	var attrs variant.Attributes
	if err := json.Unmarshal(raw, &attrs); err != nil {
		return nil, fmt.Errorf("decode attributes: %w", err)
	}
	if attrs == nil {
		attrs = variant.Attributes{}
	}
	return attrs, nil
}

func encodeAttributes(attrs variant.Attributes) ([]byte, error) {
	if attrs == nil {
		attrs = variant.Attributes{}
	}
	return json.Marshal(attrs)
}

// mapWriteError turns Postgres unique violations into domain errors.
func mapWriteError(err error, fallback error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == PgUniqueViolation {
		if pqErr.Constraint == SKUConstraint {
			return ErrDuplicateSKU
		}
		return ErrVariantConflict
	}
	return fmt.Errorf("%w: %v", fallback, err)
}
