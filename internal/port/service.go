package port

import (
	"context"
	"log/slog"

	"fareast-server/internal/market"
	"fareast-server/internal/shared/database"
	"fareast-server/internal/shared/errors"
)

type Service struct {
	db      *database.DB
	repo    *Repository
	sampler *Sampler
	logger  *slog.Logger
}

func NewService(db *database.DB, repo *Repository, sampler *Sampler, logger *slog.Logger) *Service {
	return &Service{
		db:      db,
		repo:    repo,
		sampler: sampler,
		logger:  logger,
	}
}

// GetAllPorts returns the port catalog.
func (s *Service) GetAllPorts(ctx context.Context) ([]Port, error) {
	return s.repo.GetAllPorts(ctx)
}

// GetPortDetail returns a port with its market priced at current stock
// levels. Viewing a market is the sampling point for price history: each
// listed good gets at most one sample per window.
func (s *Service) GetPortDetail(ctx context.Context, portID int) (*Detail, error) {
	logger := s.logger.With("component", "port_service", "operation", "get_detail", "port_id", portID)
	logger.Debug("Assembling port detail")

	p, err := s.repo.GetPortByID(ctx, s.db, portID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.NotFoundf("port %d not found", portID)
	}

	entries, err := s.repo.GetMarket(ctx, portID)
	if err != nil {
		return nil, err
	}

	for i := range entries {
		entry := &entries[i]
		entry.CurrentPrice = market.Price(entry.Stock, entry.StockCapacity, entry.BasePrice)

		if !s.sampler.Allow(ctx, portID, entry.GoodID) {
			continue
		}
		if err := s.repo.InsertPriceSample(ctx, portID, entry.GoodID, entry.CurrentPrice, entry.Stock); err != nil {
			// Sampling is best-effort; the market view must not fail on it.
			logger.Warn("Failed to record price sample", "good_id", entry.GoodID, "error", err)
		}
	}

	return &Detail{Port: *p, Market: entries}, nil
}
