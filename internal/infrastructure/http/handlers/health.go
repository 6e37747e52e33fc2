package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthHandler handles GET /health: liveness probe.
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Liveness
//
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Pinger is a dependency that can report reachability, such as the REST API
// client.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthDependenciesHandler handles GET /health/ready: readiness probe.
// Only the backends the portal was started with are checked; a nil mongo or
// redis handle is simply left out of the report.
type HealthDependenciesHandler struct {
	mongo *mongo.Database
	redis *redis.Client
	api   Pinger
}

func NewHealthDependenciesHandler(db *mongo.Database, rdb *redis.Client, api Pinger) *HealthDependenciesHandler {
	return &HealthDependenciesHandler{
		mongo: db,
		redis: rdb,
		api:   api,
	}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// Readiness
//
// @Summary      Readiness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  readinessResponse
// @Failure      503  {object}  readinessResponse
// @Router       /health/ready [get]
func (h *HealthDependenciesHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	deps := make(map[string]dependencyStatus)
	healthy := true
	check := func(name string, err error) {
		if err != nil {
			deps[name] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
			return
		}
		deps[name] = dependencyStatus{Status: "ok"}
	}

	if h.mongo != nil {
		err := h.mongo.Client().Ping(ctx, nil)
		if err == nil {
			err = h.mongo.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
		}
		check("mongodb", err)
	}

	if h.redis != nil {
		_, err := h.redis.Ping(ctx).Result()
		check("redis", err)
	}

	if h.api != nil {
		check("api", h.api.Ping(ctx))
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
