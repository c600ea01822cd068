package product

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidInput     = errors.New("invalid input")
	ErrNoFieldsToUpdate = errors.New("no fields to update")

	// -- Resource State --
	ErrProductNotFound = errors.New("product not found")
	ErrVariantNotFound = errors.New("variant not found")
	ErrDuplicateSKU    = errors.New("sku already exists for this product")
	ErrVariantConflict = errors.New("variant was modified concurrently")

	// -- Database & Operation Failures --
	ErrFailedGetProduct     = errors.New("failed to get product")
	ErrFailedListVariants   = errors.New("failed to list variants")
	ErrFailedInsertVariants = errors.New("failed to insert variants")
	ErrFailedUpdateVariant  = errors.New("failed to update variant")
	ErrFailedDeleteVariant  = errors.New("failed to delete variant")
	ErrFailedClearVariants  = errors.New("failed to clear variants")

	// -- Constants (External Systems) --
	PgUniqueViolation = "23505"
	SKUConstraint     = "product_variants_product_id_sku_key"
)
