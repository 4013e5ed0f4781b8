package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger is satisfied by schema.Manager.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct{ db Pinger }

func NewHandler(db Pinger) *Handler { return &Handler{db: db} }

// Health is a liveness check: it stays 200 while the database is down and
// reports the database state alongside.
func (h *Handler) Health(c echo.Context) error {
	body := map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	}
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		body["database"] = "up"
		if err := h.db.Ping(ctx); err != nil {
			body["database"] = "down"
		}
	}
	return c.JSON(http.StatusOK, body)
}
