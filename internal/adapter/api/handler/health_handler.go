package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"marketplace/internal/domain/repository"
	"marketplace/internal/usecase"
)

const healthProbeKey = "health_probe"

type HealthHandler struct {
	storage  repository.Storage
	sessions *usecase.SessionManager
}

func NewHealthHandler(storage repository.Storage, sessions *usecase.SessionManager) *HealthHandler {
	return &HealthHandler{
		storage:  storage,
		sessions: sessions,
	}
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":   "Server is running",
		"time":     time.Now().Format(time.RFC3339),
		"sessions": h.sessions.Count(),
	})
}

// CheckStorageHealth round-trips a probe key through the storage backend.
func (h *HealthHandler) CheckStorageHealth(c echo.Context) error {
	ctx := c.Request().Context()
	stamp := time.Now().UTC().Format(time.RFC3339Nano)

	err := h.storage.Set(ctx, healthProbeKey, stamp)
	if err == nil {
		_, _, err = h.storage.Get(ctx, healthProbeKey)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"status": "Storage connection failed",
			"error":  err.Error(),
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "Storage connected successfully",
	})
}
