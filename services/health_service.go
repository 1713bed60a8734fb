// Package services contains application services that sit between the HTTP
// handlers and the storage/provider layers.
package services

import (
	"context"
	"time"

	"github.com/FeedbackLens/feedback-lens-backend/logger"
	"github.com/FeedbackLens/feedback-lens-backend/types"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Pinger is anything with a connectivity check, such as *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// DegradationReporter reports whether a component runs in a degraded mode.
// The analysis service satisfies this once it has fallen back offline.
type DegradationReporter interface {
	Degraded() bool
}

// HealthService aggregates dependency checks into a single health report.
type HealthService struct {
	db       Pinger
	redis    redis.UniversalClient // nil when the redis cache backend is not in use
	analyzer DegradationReporter
	version  string
	log      *zap.SugaredLogger
}

func NewHealthService(db Pinger, redisClient redis.UniversalClient, analyzer DegradationReporter, version string) *HealthService {
	return &HealthService{
		db:       db,
		redis:    redisClient,
		analyzer: analyzer,
		version:  version,
		log:      logger.GetLogger(),
	}
}

func (h *HealthService) CheckHealth(ctx context.Context) types.HealthCheck {
	components := make(map[string]types.HealthComponent)
	overallStatus := types.HealthStatusUp

	dbStatus := h.checkDatabase(ctx)
	components["database"] = dbStatus
	if dbStatus.Status == types.HealthStatusDown {
		overallStatus = types.HealthStatusDown
	}

	if h.redis != nil {
		redisStatus := h.checkRedis(ctx)
		components["redis"] = redisStatus
		if redisStatus.Status == types.HealthStatusDown && overallStatus != types.HealthStatusDown {
			// A lost analysis cache degrades the service but does not take it down.
			overallStatus = types.HealthStatusDegraded
		}
	}

	analysisStatus := h.checkAnalysis()
	components["analysis"] = analysisStatus
	if analysisStatus.Status == types.HealthStatusDegraded && overallStatus == types.HealthStatusUp {
		overallStatus = types.HealthStatusDegraded
	}

	return types.HealthCheck{
		Status:     overallStatus,
		Components: components,
		Version:    h.version,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
}

func (h *HealthService) checkDatabase(ctx context.Context) types.HealthComponent {
	if err := h.db.Ping(ctx); err != nil {
		h.log.Errorw("Database health check failed", "error", err)
		return types.HealthComponent{
			Status:  types.HealthStatusDown,
			Details: "Database connection failed",
		}
	}
	return types.HealthComponent{Status: types.HealthStatusUp}
}

func (h *HealthService) checkRedis(ctx context.Context) types.HealthComponent {
	if err := h.redis.Ping(ctx).Err(); err != nil {
		h.log.Errorw("Redis health check failed", "error", err)
		return types.HealthComponent{
			Status:  types.HealthStatusDown,
			Details: "Redis connection failed",
		}
	}
	return types.HealthComponent{Status: types.HealthStatusUp}
}

func (h *HealthService) checkAnalysis() types.HealthComponent {
	if h.analyzer != nil && h.analyzer.Degraded() {
		return types.HealthComponent{
			Status:  types.HealthStatusDegraded,
			Details: "Analysis running in offline mode",
		}
	}
	return types.HealthComponent{Status: types.HealthStatusUp}
}
