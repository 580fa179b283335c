package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"fareast-server/internal/port"
	"fareast-server/internal/shared/errors"
	"fareast-server/internal/shared/response"
)

type PortHandler struct {
	service *port.Service
}

func NewPortHandler(service *port.Service) *PortHandler {
	return &PortHandler{service: service}
}

func (h *PortHandler) GetPorts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "get_ports")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	ports, err := h.service.GetAllPorts(ctx)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	if ports == nil {
		ports = []port.Port{}
	}

	response.Success(w, http.StatusOK, ports)
}

func (h *PortHandler) GetPort(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "get_port")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	portID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid port ID format", err))
		return
	}

	detail, err := h.service.GetPortDetail(ctx, portID)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, detail)
}
