package quartermaster

import (
	"context"
	"log/slog"

	"fareast-server/internal/player"
	"fareast-server/internal/shared/config"
	"fareast-server/internal/shared/errors"
)

type Service struct {
	repo       *Repository
	playerRepo *player.Repository
	logger     *slog.Logger
}

func NewService(repo *Repository, playerRepo *player.Repository, logger *slog.Logger) *Service {
	logger.Debug("Initializing quartermaster service")
	return &Service{repo: repo, playerRepo: playerRepo, logger: logger}
}

// clampPage normalizes limit and offset against the configured page bounds.
func clampPage(limit, offset, defaultLimit, maxLimit int) (int, int) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (s *Service) requirePlayer(ctx context.Context, playerID int) error {
	p, err := s.playerRepo.GetPlayerByID(ctx, playerID)
	if err != nil {
		return err
	}
	if p == nil {
		return errors.NotFoundf("player %d not found", playerID)
	}
	return nil
}

// GetTradeJournal returns a page of the player's trades plus aggregate stats.
func (s *Service) GetTradeJournal(ctx context.Context, playerID int, filter JournalFilter) (*JournalReport, error) {
	if err := s.requirePlayer(ctx, playerID); err != nil {
		return nil, err
	}
	if filter.TransactionType != "" && filter.TransactionType != "buy" && filter.TransactionType != "sell" {
		return nil, errors.Validationf("unknown transaction type %q", filter.TransactionType)
	}

	cfg := config.GlobalConfig.Game
	filter.Limit, filter.Offset = clampPage(filter.Limit, filter.Offset, cfg.JournalDefaultLimit, cfg.JournalMaxLimit)

	trades, err := s.repo.GetTradeJournal(ctx, playerID, filter)
	if err != nil {
		return nil, err
	}
	stats, err := s.repo.GetTradeStats(ctx, playerID)
	if err != nil {
		return nil, err
	}

	return &JournalReport{Trades: trades, Stats: *stats}, nil
}

// GetVoyageLogs returns a page of the player's voyages plus aggregate stats.
func (s *Service) GetVoyageLogs(ctx context.Context, playerID int, filter VoyageFilter) (*VoyageReport, error) {
	if err := s.requirePlayer(ctx, playerID); err != nil {
		return nil, err
	}
	if filter.EventType != "" {
		switch filter.EventType {
		case "storm", "pirates", "merchant", "patrol":
		default:
			return nil, errors.Validationf("unknown event type %q", filter.EventType)
		}
	}

	cfg := config.GlobalConfig.Game
	filter.Limit, filter.Offset = clampPage(filter.Limit, filter.Offset, cfg.JournalDefaultLimit, cfg.JournalMaxLimit)

	voyages, err := s.repo.GetVoyageLogs(ctx, playerID, filter)
	if err != nil {
		return nil, err
	}
	stats, err := s.repo.GetVoyageStats(ctx, playerID)
	if err != nil {
		return nil, err
	}

	return &VoyageReport{Voyages: voyages, Stats: *stats}, nil
}

// GetPriceHistory returns a page of recorded price samples.
func (s *Service) GetPriceHistory(ctx context.Context, filter PriceFilter) ([]PriceSample, error) {
	cfg := config.GlobalConfig.Game
	filter.Limit, filter.Offset = clampPage(filter.Limit, filter.Offset, cfg.JournalDefaultLimit, cfg.JournalMaxLimit)

	return s.repo.GetPriceHistory(ctx, filter)
}
