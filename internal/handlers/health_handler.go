package handlers

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

type HealthHandler struct {
	dbPing func(ctx context.Context) error
	redis  *redis.Client
}

// NewHealthHandler takes the database ping and an optional redis client.
func NewHealthHandler(dbPing func(ctx context.Context) error, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{dbPing: dbPing, redis: rdb}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := "ok"
	dbStatus := "ok"
	if err := h.dbPing(ctx); err != nil {
		dbStatus = "unhealthy: " + err.Error()
		status = "degraded"
	}

	resp := dto.HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
	}
	if h.redis != nil {
		resp.Redis = "ok"
		if err := h.redis.Ping(ctx).Err(); err != nil {
			resp.Redis = "unhealthy: " + err.Error()
		}
	}

	if status != "ok" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}
