package server

import (
	"log/slog"
	"net/http"

	"fareast-server/internal/middleware"
	"fareast-server/internal/player"
	playerHandlers "fareast-server/internal/player/handlers"
	"fareast-server/internal/port"
	portHandlers "fareast-server/internal/port/handlers"
	"fareast-server/internal/quartermaster"
	quartermasterHandlers "fareast-server/internal/quartermaster/handlers"
	serverHandlers "fareast-server/internal/server/handlers"
	"fareast-server/internal/shared/database"
	"fareast-server/internal/trade"
	tradeHandlers "fareast-server/internal/trade/handlers"
	"fareast-server/internal/voyage"
	voyageHandlers "fareast-server/internal/voyage/handlers"
)

type Routes struct {
	db                   *database.DB
	playerService        *player.Service
	portService          *port.Service
	tradeEngine          *trade.Engine
	voyageEngine         *voyage.Engine
	quartermasterService *quartermaster.Service
	logger               *slog.Logger
}

func NewRoutes(
	db *database.DB,
	playerService *player.Service,
	portService *port.Service,
	tradeEngine *trade.Engine,
	voyageEngine *voyage.Engine,
	quartermasterService *quartermaster.Service,
	logger *slog.Logger,
) *Routes {
	return &Routes{
		db:                   db,
		playerService:        playerService,
		portService:          portService,
		tradeEngine:          tradeEngine,
		voyageEngine:         voyageEngine,
		quartermasterService: quartermasterService,
		logger:               logger,
	}
}

func (r *Routes) Setup() *http.ServeMux {
	logger := slog.With("component", "routes", "operation", "setup")
	logger.Debug("Setting up application routes")

	mux := http.NewServeMux()

	healthHandler := serverHandlers.NewHealthHandler(r.db)
	playerHandler := playerHandlers.NewPlayerHandler(r.playerService)
	portHandler := portHandlers.NewPortHandler(r.portService)
	tradeHandler := tradeHandlers.NewTradeHandler(r.tradeEngine)
	travelHandler := voyageHandlers.NewTravelHandler(r.voyageEngine)
	quartermasterHandler := quartermasterHandlers.NewQuartermasterHandler(r.quartermasterService)

	// Public endpoints
	mux.Handle("GET /api/server/health", healthHandler)
	mux.HandleFunc("POST /api/players", playerHandler.CreatePlayer)
	mux.HandleFunc("GET /api/players/{id}", playerHandler.GetPlayer)
	mux.HandleFunc("GET /api/ports", portHandler.GetPorts)
	mux.HandleFunc("GET /api/ports/{id}", portHandler.GetPort)
	mux.HandleFunc("GET /api/quartermaster/price-history", quartermasterHandler.GetPriceHistory)

	// Session-bound endpoints (acting player must match the session)
	mux.Handle("POST /api/trade/buy", middleware.PlayerSession(http.HandlerFunc(tradeHandler.Buy)))
	mux.Handle("POST /api/trade/sell", middleware.PlayerSession(http.HandlerFunc(tradeHandler.Sell)))
	mux.Handle("POST /api/travel", middleware.PlayerSession(http.HandlerFunc(travelHandler.Travel)))
	mux.Handle("GET /api/quartermaster/trade-journal/{playerId}", middleware.PlayerSession(http.HandlerFunc(quartermasterHandler.GetTradeJournal)))
	mux.Handle("GET /api/quartermaster/voyage-logs/{playerId}", middleware.PlayerSession(http.HandlerFunc(quartermasterHandler.GetVoyageLogs)))

	logger.Info("Routes configured successfully",
		"public_endpoints", []string{"/api/server/health", "/api/players", "/api/ports", "/api/quartermaster/price-history"},
		"session_endpoints", []string{"/api/trade/buy", "/api/trade/sell", "/api/travel", "/api/quartermaster/trade-journal", "/api/quartermaster/voyage-logs"},
	)

	return mux
}
