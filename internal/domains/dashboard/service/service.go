package service

import (
	"context"
	"fmt"
	"stayledger/config"
	"stayledger/infras/otel"
	"stayledger/internal/domains/dashboard/model"
	"stayledger/internal/domains/dashboard/model/dto"
	"stayledger/internal/domains/dashboard/repository"
	"stayledger/shared/authz"
	"stayledger/shared/cache"
	"stayledger/shared/constant"

	"github.com/rs/zerolog/log"
)

const (
	cacheStats = "dashboard:stats"

	topProducts = 5
)

type Dashboard interface {
	Stats(ctx context.Context) (dto.StatsResponse, error)
}

type serviceImpl struct {
	repo  repository.Dashboard
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Dashboard, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Dashboard {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// Stats is cached for the configured TTL and never invalidated, so figures may lag writes.
func (s *serviceImpl) Stats(ctx context.Context) (res dto.StatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Stats")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = authz.Require(ctx, constant.RoleAdmin); err != nil {
		return res, err //nolint:wrapcheck
	}

	err = s.cache.Get(ctx, cacheStats, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheStats).Msg("cache hit for dashboard stats")

		return res, nil
	}

	var stats model.Stats

	stats.Totals, err = s.repo.Totals(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to get totals: %w", err)
	}

	stats.RevenueByType, err = s.repo.RevenueByType(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to get revenue by type: %w", err)
	}

	stats.TopProducts, err = s.repo.TopProducts(ctx, topProducts)
	if err != nil {
		return res, fmt.Errorf("failed to get top products: %w", err)
	}

	res.FromModel(stats)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheStats, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save dashboard stats to cache")
		}
	}()

	return res, nil
}
