package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"fareast-server/internal/auth"
	"fareast-server/internal/player"
	"fareast-server/internal/shared/cookies"
	"fareast-server/internal/shared/errors"
	"fareast-server/internal/shared/response"
)

type PlayerHandler struct {
	service *player.Service
}

func NewPlayerHandler(service *player.Service) *PlayerHandler {
	return &PlayerHandler{service: service}
}

type createPlayerRequest struct {
	Name string `json:"name"`
}

func (h *PlayerHandler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "create_player")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB
	var req createPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid JSON in request body", err))
		return
	}

	state, err := h.service.CreatePlayer(ctx, req.Name)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	token, err := auth.GenerateSessionToken(state.Player.ID, state.Player.Name)
	if err != nil {
		response.Error(w, r, logger, errors.WrapInternal("failed to issue session token", err))
		return
	}
	cookies.SetSessionCookie(w, token)

	response.Success(w, http.StatusCreated, state)
}

func (h *PlayerHandler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "get_player")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	playerID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid player ID format", err))
		return
	}

	state, err := h.service.GetPlayerState(ctx, playerID)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, state)
}
