package db

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

const healthPingTimeout = 5 * time.Second

// PoolHealth is the pool snapshot reported by the database health endpoint.
type PoolHealth struct {
	Status        string `json:"status"`
	TotalConns    int32  `json:"total_conns"`
	IdleConns     int32  `json:"idle_conns"`
	AcquiredConns int32  `json:"acquired_conns"`
	MaxConns      int32  `json:"max_conns"`
}

func snapshotPool(pool *pgxpool.Pool) PoolHealth {
	stat := pool.Stat()
	return PoolHealth{
		TotalConns:    stat.TotalConns(),
		IdleConns:     stat.IdleConns(),
		AcquiredConns: stat.AcquiredConns(),
		MaxConns:      stat.MaxConns(),
	}
}

// healthResponse decides the status code and body for a health check given
// the pool snapshot and the ping outcome.
func healthResponse(h PoolHealth, pingErr error) (int, echo.Map) {
	if pingErr != nil {
		h.Status = "unhealthy"
		return http.StatusServiceUnavailable, echo.Map{
			"pool":  h,
			"error": pingErr.Error(),
		}
	}
	h.Status = "healthy"
	return http.StatusOK, echo.Map{"pool": h}
}

// HealthHandler serves the database health endpoint. It pings the vocabulary
// database with a short timeout and reports connection pool statistics.
func HealthHandler(pool *pgxpool.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), healthPingTimeout)
		defer cancel()

		status, body := healthResponse(snapshotPool(pool), pool.Ping(ctx))
		return c.JSON(status, body)
	}
}
