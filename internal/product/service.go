package product

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"catalog-admin/internal/catalog"
	"catalog-admin/internal/logger"
	"catalog-admin/internal/utils"
	"catalog-admin/internal/variant"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type Service interface {
	GenerateVariants(ctx context.Context, productID int64, input GenerateInput) (*GenerateResult, error)
	AddDefaultVariant(ctx context.Context, productID int64) (*variant.Row, error)
	ListVariants(ctx context.Context, productID int64) ([]variant.Row, error)
	UpdateVariant(ctx context.Context, productID, variantID int64, input UpdateVariantInput) (*variant.Row, error)
	DeleteVariant(ctx context.Context, productID, variantID int64) error
	ClearVariants(ctx context.Context, productID int64) (int64, error)
}

type service struct {
	repo    Repository
	catalog catalog.Service

	// locks serializes read-generate-insert cycles per product. An entry
	// lives only while some call holds or waits for it.
	locksMu sync.Mutex
	locks   map[int64]*productLock
}

type productLock struct {
	mu   sync.Mutex
	refs int
}

func NewService(repo Repository, catalogSvc catalog.Service) Service {
	return &service{
		repo:    repo,
		catalog: catalogSvc,
		locks:   make(map[int64]*productLock),
	}
}

func (s *service) lock(productID int64) func() {
	s.locksMu.Lock()
	l, ok := s.locks[productID]
	if !ok {
		l = &productLock{}
		s.locks[productID] = l
	}
	l.refs++
	s.locksMu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		s.locksMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, productID)
		}
		s.locksMu.Unlock()
	}
}

func (s *service) GenerateVariants(
	ctx context.Context,
	productID int64,
	input GenerateInput,
) (*GenerateResult, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GenerateVariants"),
		zap.Int64("product_id", productID),
	)

	start := time.Now()

	/* ---------- INPUT VALIDATION ---------- */

	if err := validateGenerateInput(input); err != nil {
		log.Warn("invalid generate input", zap.Error(err))
		return nil, err
	}

	unlock := s.lock(productID)
	defer unlock()

	/* ---------- LOAD SNAPSHOT ---------- */

	p, err := s.repo.GetProduct(ctx, productID)
	if err != nil {
		log.Error("failed to get product", zap.Error(err))
		return nil, err
	}

	brandName, err := s.brandName(ctx, p, input.BrandID)
	if err != nil {
		return nil, err
	}

	cat, err := s.catalog.Catalog(ctx)
	if err != nil {
		log.Error("failed to load catalog", zap.Error(err))
		return nil, err
	}

	existing, err := s.repo.ListVariants(ctx, productID)
	if err != nil {
		log.Error("failed to list variants", zap.Error(err))
		return nil, err
	}

	snap := variant.Snapshot{
		ProductID:  p.ID,
		BaseSKU:    p.SKU,
		BrandName:  brandName,
		Dimensions: cat.Dimensions,
		Colors:     cat.Colors,
		Selection: variant.Selection{
			Colors: input.Colors,
			Values: input.Selection,
		},
		Existing: existing,
	}
	if input.DefaultPrice != nil {
		snap.Defaults.Price = *input.DefaultPrice
	}
	if input.DefaultStock != nil {
		snap.Defaults.Stock = *input.DefaultStock
	}

	/* ---------- GENERATE ---------- */

	res := variant.Generate(snap)
	if !res.OK {
		log.Info("generation refused: required dimensions missing",
			zap.Strings("missing", res.MissingRequired),
		)
		return &GenerateResult{
			OK:              false,
			NewRows:         []variant.Row{},
			MissingRequired: res.MissingRequired,
		}, nil
	}

	/* ---------- PERSIST ---------- */

	if len(res.NewRows) > 0 {
		if err := s.repo.InsertVariants(ctx, res.NewRows); err != nil {
			log.Error("failed to persist generated variants", zap.Error(err))
			return nil, err
		}
	}

	log.Info("generate variants success",
		zap.Int("new_rows", len(res.NewRows)),
		zap.Int("existing_rows", len(existing)),
		zap.Duration("duration", time.Since(start)),
	)

	return &GenerateResult{
		OK:       true,
		NewRows:  res.NewRows,
		Variants: variant.Merge(res.NewRows, existing),
	}, nil
}

func (s *service) brandName(ctx context.Context, p *Product, override *int64) (string, error) {
	brandID := p.BrandID
	if override != nil {
		brandID = override
	}
	if brandID == nil {
		return "", nil
	}

	b, err := s.catalog.Brand(ctx, *brandID)
	if err != nil {
		return "", err
	}
	return b.Name, nil
}

func (s *service) AddDefaultVariant(ctx context.Context, productID int64) (*variant.Row, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddDefaultVariant"),
		zap.Int64("product_id", productID),
	)

	unlock := s.lock(productID)
	defer unlock()

	p, err := s.repo.GetProduct(ctx, productID)
	if err != nil {
		log.Error("failed to get product", zap.Error(err))
		return nil, err
	}

	existing, err := s.repo.ListVariants(ctx, productID)
	if err != nil {
		log.Error("failed to list variants", zap.Error(err))
		return nil, err
	}

	id := variant.Synthesize(p.SKU, nil)
	for _, v := range existing {
		if v.SKU == id.SKU {
			log.Warn("default variant already exists", zap.String("sku", id.SKU))
			return nil, ErrDuplicateSKU
		}
	}

	row := variant.Row{
		ID:         variant.NextID(existing),
		ProductID:  p.ID,
		Name:       id.Label,
		SKU:        id.SKU,
		Active:     true,
		Attributes: variant.Attributes{},
	}

	if err := s.repo.InsertVariants(ctx, []variant.Row{row}); err != nil {
		log.Error("failed to insert default variant", zap.Error(err))
		return nil, err
	}

	log.Info("default variant added", zap.Int64("variant_id", row.ID))
	return &row, nil
}

func (s *service) ListVariants(ctx context.Context, productID int64) ([]variant.Row, error) {
	if _, err := s.repo.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	return s.repo.ListVariants(ctx, productID)
}

func (s *service) UpdateVariant(
	ctx context.Context,
	productID, variantID int64,
	input UpdateVariantInput,
) (*variant.Row, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateVariant"),
		zap.Int64("product_id", productID),
		zap.Int64("variant_id", variantID),
	)

	if !input.HasAnyField() {
		return nil, ErrNoFieldsToUpdate
	}

	if err := validateUpdateInput(input); err != nil {
		log.Warn("invalid update input", zap.Error(err))
		return nil, err
	}

	unlock := s.lock(productID)
	defer unlock()

	if input.SKU != nil {
		existing, err := s.repo.ListVariants(ctx, productID)
		if err != nil {
			return nil, err
		}
		for _, v := range existing {
			if v.ID != variantID && v.SKU == *input.SKU {
				log.Warn("sku collision", zap.String("sku", *input.SKU))
				return nil, ErrDuplicateSKU
			}
		}
	}

	v, err := s.repo.UpdateVariant(ctx, productID, variantID, input)
	if err != nil {
		log.Error("failed to update variant", zap.Error(err))
		return nil, err
	}

	log.Info("variant updated", zap.String("sku", utils.PtrString(input.SKU)))
	return v, nil
}

func (s *service) DeleteVariant(ctx context.Context, productID, variantID int64) error {
	unlock := s.lock(productID)
	defer unlock()

	if err := s.repo.DeleteVariant(ctx, productID, variantID); err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("variant deleted",
		zap.Int64("product_id", productID),
		zap.Int64("variant_id", variantID),
	)
	return nil
}

func (s *service) ClearVariants(ctx context.Context, productID int64) (int64, error) {
	unlock := s.lock(productID)
	defer unlock()

	n, err := s.repo.ClearVariants(ctx, productID)
	if err != nil {
		return 0, err
	}

	logger.FromCtx(ctx).Info("variants cleared",
		zap.Int64("product_id", productID),
		zap.Int64("deleted", n),
	)
	return n, nil
}

func validateGenerateInput(in GenerateInput) error {
	var err error

	if in.DefaultPrice != nil && *in.DefaultPrice < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: defaultPrice cannot be negative", ErrInvalidInput))
	}
	if in.DefaultStock != nil && *in.DefaultStock < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: defaultStock cannot be negative", ErrInvalidInput))
	}

	return err
}

func validateUpdateInput(in UpdateVariantInput) error {
	var err error

	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		err = multierr.Append(err, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput))
	}
	if in.SKU != nil && strings.TrimSpace(*in.SKU) == "" {
		err = multierr.Append(err, fmt.Errorf("%w: sku cannot be empty", ErrInvalidInput))
	}
	if in.Price != nil && *in.Price < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: price cannot be negative", ErrInvalidInput))
	}
	if in.Stock != nil && *in.Stock < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: stock cannot be negative", ErrInvalidInput))
	}

	return err
}
