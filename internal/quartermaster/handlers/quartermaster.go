package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"fareast-server/internal/middleware"
	"fareast-server/internal/quartermaster"
	"fareast-server/internal/shared/errors"
	"fareast-server/internal/shared/response"
)

type QuartermasterHandler struct {
	service *quartermaster.Service
}

func NewQuartermasterHandler(service *quartermaster.Service) *QuartermasterHandler {
	return &QuartermasterHandler{service: service}
}

// GetTradeJournal handles GET /api/quartermaster/trade-journal/{playerId}.
func (h *QuartermasterHandler) GetTradeJournal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "trade_journal")

	playerID, err := pathPlayerID(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	if err := middleware.RequirePlayer(r, playerID); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	filter := quartermaster.JournalFilter{
		GoodID:          queryInt(r, "good_id"),
		PortID:          queryInt(r, "port_id"),
		TransactionType: r.URL.Query().Get("type"),
		Limit:           queryInt(r, "limit"),
		Offset:          queryInt(r, "offset"),
	}

	report, err := h.service.GetTradeJournal(ctx, playerID, filter)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, report)
}

// GetVoyageLogs handles GET /api/quartermaster/voyage-logs/{playerId}.
func (h *QuartermasterHandler) GetVoyageLogs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "voyage_logs")

	playerID, err := pathPlayerID(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	if err := middleware.RequirePlayer(r, playerID); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	filter := quartermaster.VoyageFilter{
		EventType: r.URL.Query().Get("type"),
		Limit:     queryInt(r, "limit"),
		Offset:    queryInt(r, "offset"),
	}

	report, err := h.service.GetVoyageLogs(ctx, playerID, filter)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, report)
}

// GetPriceHistory handles GET /api/quartermaster/price-history.
func (h *QuartermasterHandler) GetPriceHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "price_history")

	filter := quartermaster.PriceFilter{
		PortID: queryInt(r, "port_id"),
		GoodID: queryInt(r, "good_id"),
		Limit:  queryInt(r, "limit"),
		Offset: queryInt(r, "offset"),
	}

	samples, err := h.service.GetPriceHistory(ctx, filter)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, map[string]interface{}{"samples": samples})
}

func pathPlayerID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(r.PathValue("playerId"))
	if err != nil || id <= 0 {
		return 0, errors.Validation("invalid player id in path")
	}
	return id, nil
}

func queryInt(r *http.Request, key string) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
