package db

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// PoolStats reports connection pool statistics for one database.
type PoolStats struct {
	TotalConns    int32 `json:"total_conns"`
	IdleConns     int32 `json:"idle_conns"`
	AcquiredConns int32 `json:"acquired_conns"`
	MaxConns      int32 `json:"max_conns"`
	Healthy       bool  `json:"healthy"`
}

func Stats(pool *pgxpool.Pool) *PoolStats {
	stat := pool.Stat()
	return &PoolStats{
		TotalConns:    stat.TotalConns(),
		IdleConns:     stat.IdleConns(),
		AcquiredConns: stat.AcquiredConns(),
		MaxConns:      stat.MaxConns(),
		Healthy:       stat.TotalConns() > 0,
	}
}

// HealthHandler pings the clinic and Dolphin databases and reports pool
// statistics for both. Either pool failing yields 503.
func HealthHandler(clinic, dolphin *pgxpool.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()

		pools := map[string]*pgxpool.Pool{"clinic": clinic, "dolphin": dolphin}
		stats := map[string]*PoolStats{}
		healthy := true
		var firstErr string

		for name, pool := range pools {
			s := Stats(pool)
			if err := pool.Ping(ctx); err != nil {
				s.Healthy = false
				healthy = false
				if firstErr == "" {
					firstErr = err.Error()
				}
			}
			stats[name] = s
		}

		if !healthy {
			return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
				"status": "unhealthy",
				"error":  firstErr,
				"pools":  stats,
			})
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status": "healthy",
			"pools":  stats,
		})
	}
}
