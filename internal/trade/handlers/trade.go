package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"fareast-server/internal/middleware"
	"fareast-server/internal/shared/errors"
	"fareast-server/internal/shared/response"
	"fareast-server/internal/trade"
)

type TradeHandler struct {
	engine *trade.Engine
}

func NewTradeHandler(engine *trade.Engine) *TradeHandler {
	return &TradeHandler{engine: engine}
}

type tradeRequest struct {
	PlayerID int `json:"player_id"`
	GoodID   int `json:"good_id"`
	Quantity int `json:"quantity"`
}

type tradeResponse struct {
	Success     bool              `json:"success"`
	Transaction trade.Transaction `json:"transaction"`
}

func (h *TradeHandler) Buy(w http.ResponseWriter, r *http.Request) {
	h.execute(w, r, "buy", h.engine.Buy)
}

func (h *TradeHandler) Sell(w http.ResponseWriter, r *http.Request) {
	h.execute(w, r, "sell", h.engine.Sell)
}

func (h *TradeHandler) execute(
	w http.ResponseWriter,
	r *http.Request,
	name string,
	op func(ctx context.Context, playerID, goodID, quantity int) (*trade.Transaction, error),
) {
	ctx := r.Context()
	logger := slog.With("handler", "trade_"+name)

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB
	var req tradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid JSON in request body", err))
		return
	}

	if req.PlayerID <= 0 || req.GoodID <= 0 {
		response.Error(w, r, logger, errors.Validation("player_id and good_id are required"))
		return
	}
	if req.Quantity <= 0 {
		response.Error(w, r, logger, errors.Validation("quantity must be positive"))
		return
	}

	if err := middleware.RequirePlayer(r, req.PlayerID); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	tn, err := op(ctx, req.PlayerID, req.GoodID, req.Quantity)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, tradeResponse{Success: true, Transaction: *tn})
}
