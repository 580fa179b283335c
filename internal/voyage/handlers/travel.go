package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"fareast-server/internal/middleware"
	"fareast-server/internal/shared/errors"
	"fareast-server/internal/shared/response"
	"fareast-server/internal/voyage"
)

type TravelHandler struct {
	engine *voyage.Engine
}

func NewTravelHandler(engine *voyage.Engine) *TravelHandler {
	return &TravelHandler{engine: engine}
}

type travelRequest struct {
	PlayerID          int `json:"player_id"`
	DestinationPortID int `json:"destination_port_id"`
}

// Travel handles POST /api/travel.
func (h *TravelHandler) Travel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "travel")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB
	var req travelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid JSON in request body", err))
		return
	}

	if req.PlayerID <= 0 || req.DestinationPortID <= 0 {
		response.Error(w, r, logger, errors.Validation("player_id and destination_port_id are required"))
		return
	}

	if err := middleware.RequirePlayer(r, req.PlayerID); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	result, err := h.engine.Travel(ctx, req.PlayerID, req.DestinationPortID)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, result)
}
