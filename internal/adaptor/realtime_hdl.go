package adaptor

import (
	"context"
	"net/http"
	"time"

	"court-booking/pkg/database"
	"court-booking/pkg/realtime"
	"court-booking/pkg/utils"

	"go.uber.org/zap"
)

type RealtimeHandler struct {
	hub *realtime.Hub
	log *zap.Logger
}

func NewRealtimeHandler(hub *realtime.Hub, log *zap.Logger) *RealtimeHandler {
	return &RealtimeHandler{
		hub: hub,
		log: log.With(zap.String("handler", "realtime")),
	}
}

// ServeWS handles GET /ws?token=<jwt>
func (h *RealtimeHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	// the upgrader has already answered the client on failure
	if err := h.hub.ServeWS(w, r, actor.UserID); err != nil {
		h.log.Warn("WebSocket upgrade failed", zap.Error(err), zap.String("user_id", actor.UserID.String()))
	}
}

type HealthHandler struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewHealthHandler(db database.PgxIface, log *zap.Logger) *HealthHandler {
	return &HealthHandler{db: db, log: log}
}

// Check handles GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.log.Error("Health check: database unreachable", zap.Error(err))
		utils.ResponseJSON(w, http.StatusServiceUnavailable, false, "database unreachable", nil, nil)
		return
	}

	utils.ResponseSuccess(w, "OK", map[string]string{"database": "up"})
}
