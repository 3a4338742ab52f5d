package db

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

const pingTimeout = 5 * time.Second

// ConnUsage is the pool utilisation snapshot the health endpoint reports.
// The session store issues short single-row queries, so the interesting
// signal is whether connections are piling up, not raw throughput.
type ConnUsage struct {
	InUse int32 `json:"in_use"`
	Idle  int32 `json:"idle"`
	Max   int32 `json:"max"`
}

type healthResponse struct {
	Status string    `json:"status"`
	Error  string    `json:"error,omitempty"`
	Conns  ConnUsage `json:"conns"`
}

func usageOf(pool *pgxpool.Pool) ConnUsage {
	stat := pool.Stat()
	return ConnUsage{
		InUse: stat.AcquiredConns(),
		Idle:  stat.IdleConns(),
		Max:   stat.MaxConns(),
	}
}

// Health returns the GET /health/db handler. It pings the database under
// a short timeout and reports pool utilisation either way. A nil pool
// means the server runs on the in-memory store.
func Health(pool *pgxpool.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		if pool == nil {
			return c.JSON(http.StatusServiceUnavailable, healthResponse{Status: "not configured"})
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), pingTimeout)
		defer cancel()

		resp := healthResponse{Status: "ok", Conns: usageOf(pool)}
		if err := pool.Ping(ctx); err != nil {
			resp.Status = "unreachable"
			resp.Error = err.Error()
			return c.JSON(http.StatusServiceUnavailable, resp)
		}
		return c.JSON(http.StatusOK, resp)
	}
}
