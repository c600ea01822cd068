package catalog

import (
	"context"
	"time"

	"catalog-admin/internal/logger"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

const (
	catalogKey     = "catalog"
	brandCacheSize = 256
)

// Service serves catalog reads through a short-lived cache. Administration
// edits made elsewhere become visible once the ttl elapses. Invalidate drops
// both caches at once; no write path in this service calls it yet, it is the
// hook for an attribute or colour admin endpoint.
type Service interface {
	Catalog(ctx context.Context) (*Catalog, error)
	Brand(ctx context.Context, id int64) (*Brand, error)
	Invalidate()
}

type service struct {
	repo    Repository
	catalog *expirable.LRU[string, *Catalog]
	brands  *expirable.LRU[int64, *Brand]
}

func NewService(repo Repository, ttl time.Duration) Service {
	return &service{
		repo:    repo,
		catalog: expirable.NewLRU[string, *Catalog](1, nil, ttl),
		brands:  expirable.NewLRU[int64, *Brand](brandCacheSize, nil, ttl),
	}
}

func (s *service) Catalog(ctx context.Context) (*Catalog, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Catalog"),
	)

	if c, ok := s.catalog.Get(catalogKey); ok {
		log.Debug("catalog cache hit")
		return c, nil
	}

	dims, err := s.repo.ListAttributes(ctx)
	if err != nil {
		log.Error("failed to list attributes", zap.Error(err))
		return nil, err
	}

	colors, err := s.repo.ListColors(ctx)
	if err != nil {
		log.Error("failed to list colors", zap.Error(err))
		return nil, err
	}

	c := &Catalog{Dimensions: dims, Colors: colors}
	s.catalog.Add(catalogKey, c)

	log.Info("catalog loaded",
		zap.Int("dimensions", len(dims)),
		zap.Int("colors", len(colors)),
	)
	return c, nil
}

func (s *service) Brand(ctx context.Context, id int64) (*Brand, error) {
	if b, ok := s.brands.Get(id); ok {
		return b, nil
	}

	b, err := s.repo.GetBrand(ctx, id)
	if err != nil {
		logger.FromCtx(ctx).Warn("failed to get brand",
			zap.Int64("brand_id", id),
			zap.Error(err),
		)
		return nil, err
	}

	s.brands.Add(id, b)
	return b, nil
}

func (s *service) Invalidate() {
	s.catalog.Purge()
	s.brands.Purge()
}
