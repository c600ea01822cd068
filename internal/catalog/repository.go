package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"catalog-admin/internal/logger"
	"catalog-admin/internal/variant"

	"go.uber.org/zap"
)

type Repository interface {
	ListAttributes(ctx context.Context) ([]variant.Dimension, error)
	ListColors(ctx context.Context) ([]variant.Color, error)
	GetBrand(ctx context.Context, id int64) (*Brand, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListAttributes(ctx context.Context) ([]variant.Dimension, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Catalog"),
		zap.String("method", "ListAttributes"),
	)

	const q = `
		SELECT
			a.id, a.name, a.required, a.active,
			v.value
		FROM attributes a
		LEFT JOIN attribute_values v ON v.attribute_id = a.id
		ORDER BY a.sort_order ASC, a.id ASC, v.sort_order ASC, v.id ASC
	`

	log.Debug("executing query", zap.String("query", q))

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedListAttributes, err)
	}
	defer rows.Close()

	var (
		dims  []variant.Dimension
		index = map[int64]int{}
	)

	for rows.Next() {
		var (
			id       int64
			name     string
			required bool
			active   bool
			value    sql.NullString
		)
		if err := rows.Scan(&id, &name, &required, &active, &value); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, fmt.Errorf("%w: %v", ErrFailedListAttributes, err)
		}

		pos, ok := index[id]
		if !ok {
			dims = append(dims, variant.Dimension{
				ID:       strconv.FormatInt(id, 10),
				Name:     name,
				Required: required,
				Active:   active,
				Values:   []string{},
			})
			pos = len(dims) - 1
			index[id] = pos
		}

		if value.Valid {
			dims[pos].Values = append(dims[pos].Values, value.String)
		}
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedListAttributes, err)
	}

	log.Debug("attributes loaded", zap.Int("count", len(dims)))
	return dims, nil
}

func (r *repository) ListColors(ctx context.Context) ([]variant.Color, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Catalog"),
		zap.String("method", "ListColors"),
	)

	const q = `
		SELECT id, name, hex, active
		FROM colors
		ORDER BY sort_order ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedListColors, err)
	}
	defer rows.Close()

	var colors []variant.Color
	for rows.Next() {
		var (
			id int64
			c  variant.Color
		)
		if err := rows.Scan(&id, &c.Name, &c.Hex, &c.Active); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, fmt.Errorf("%w: %v", ErrFailedListColors, err)
		}
		c.ID = strconv.FormatInt(id, 10)
		colors = append(colors, c)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedListColors, err)
	}

	return colors, nil
}

func (r *repository) GetBrand(ctx context.Context, id int64) (*Brand, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Catalog"),
		zap.String("method", "GetBrand"),
		zap.Int64("brand_id", id),
	)

	const q = `SELECT id, name FROM brands WHERE id = $1`

	var b Brand
	err := r.db.QueryRowContext(ctx, q, id).Scan(&b.ID, &b.Name)
	if errors.Is(err, sql.ErrNoRows) {
		log.Warn("brand not found")
		return nil, ErrBrandNotFound
	}
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedGetBrand, err)
	}

	return &b, nil
}
