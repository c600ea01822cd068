package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"catalog-admin/internal/logger"
	"catalog-admin/internal/variant"

	"go.uber.org/zap"
)

type Repository interface {
	GetProduct(ctx context.Context, id int64) (*Product, error)
	ListVariants(ctx context.Context, productID int64) ([]variant.Row, error)
	InsertVariants(ctx context.Context, rows []variant.Row) error
	UpdateVariant(ctx context.Context, productID, variantID int64, input UpdateVariantInput) (*variant.Row, error)
	DeleteVariant(ctx context.Context, productID, variantID int64) error
	ClearVariants(ctx context.Context, productID int64) (int64, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetProduct(ctx context.Context, id int64) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Product"),
		zap.String("method", "GetProduct"),
		zap.Int64("product_id", id),
	)

	const q = `SELECT id, name, sku, brand_id FROM products WHERE id = $1`

	var (
		p       Product
		brandID sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(&p.ID, &p.Name, &p.SKU, &brandID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedGetProduct, err)
	}

	if brandID.Valid {
		p.BrandID = &brandID.Int64
	}
	return &p, nil
}

func (r *repository) ListVariants(ctx context.Context, productID int64) ([]variant.Row, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Product"),
		zap.String("method", "ListVariants"),
		zap.Int64("product_id", productID),
	)

	q := `SELECT ` + variantColumns + `
		FROM product_variants
		WHERE product_id = $1
		ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, q, productID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedListVariants, err)
	}
	defer rows.Close()

	variants := []variant.Row{}
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, fmt.Errorf("%w: %v", ErrFailedListVariants, err)
		}
		variants = append(variants, v)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedListVariants, err)
	}

	return variants, nil
}

// InsertVariants stores rows with their engine-assigned ids in one
// transaction. Either every row lands or none does.
func (r *repository) InsertVariants(ctx context.Context, rows []variant.Row) error {
	if len(rows) == 0 {
		return nil
	}

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Product"),
		zap.String("method", "InsertVariants"),
		zap.Int("count", len(rows)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("begin tx failed", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrFailedInsertVariants, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO product_variants (`+variantColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`)
	if err != nil {
		log.Error("prepare failed", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrFailedInsertVariants, err)
	}
	defer stmt.Close()

	for _, v := range rows {
		attrs, err := encodeAttributes(v.Attributes)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFailedInsertVariants, err)
		}

		if _, err := stmt.ExecContext(ctx,
			v.ID, v.ProductID,
			v.Name, v.SKU,
			v.Price, v.Stock, v.Active,
			attrs,
		); err != nil {
			log.Error("insert failed", zap.Int64("variant_id", v.ID), zap.Error(err))
			return mapWriteError(err, ErrFailedInsertVariants)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("commit failed", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrFailedInsertVariants, err)
	}

	return nil
}

func (r *repository) UpdateVariant(
	ctx context.Context,
	productID, variantID int64,
	input UpdateVariantInput,
) (*variant.Row, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Product"),
		zap.String("method", "UpdateVariant"),
		zap.Int64("product_id", productID),
		zap.Int64("variant_id", variantID),
	)

	set := []string{}
	args := []any{}

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if input.Name != nil {
		add("name", *input.Name)
	}
	if input.SKU != nil {
		add("sku", *input.SKU)
	}
	if input.Price != nil {
		add("price", *input.Price)
	}
	if input.Stock != nil {
		add("stock", *input.Stock)
	}
	if input.Active != nil {
		add("active", *input.Active)
	}

	if len(set) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	set = append(set, "updated_at = NOW()")
	args = append(args, variantID, productID)

	q := fmt.Sprintf(`
		UPDATE product_variants
		SET %s
		WHERE id = $%d AND product_id = $%d
		RETURNING `+variantColumns,
		strings.Join(set, ", "), len(args)-1, len(args),
	)

	log.Debug("executing query", zap.String("query", q), zap.Any("args", args))

	v, err := scanVariant(r.db.QueryRowContext(ctx, q, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVariantNotFound
	}
	if err != nil {
		log.Error("update failed", zap.Error(err))
		return nil, mapWriteError(err, ErrFailedUpdateVariant)
	}

	return &v, nil
}

func (r *repository) DeleteVariant(ctx context.Context, productID, variantID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM product_variants WHERE id = $1 AND product_id = $2`,
		variantID, productID,
	)
	if err != nil {
		logger.FromCtx(ctx).Error("delete variant failed",
			zap.Int64("variant_id", variantID),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", ErrFailedDeleteVariant, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedDeleteVariant, err)
	}
	if n == 0 {
		return ErrVariantNotFound
	}
	return nil
}

func (r *repository) ClearVariants(ctx context.Context, productID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM product_variants WHERE product_id = $1`,
		productID,
	)
	if err != nil {
		logger.FromCtx(ctx).Error("clear variants failed",
			zap.Int64("product_id", productID),
			zap.Error(err),
		)
		return 0, fmt.Errorf("%w: %v", ErrFailedClearVariants, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrFailedClearVariants, err)
	}
	return n, nil
}
