package database

import (
	"context"
	"time"
)

// Health status values
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// HealthStatus describes the current state of the database connection
type HealthStatus struct {
	Status       string        `json:"status"`
	Latency      time.Duration `json:"latency"`
	OpenConns    int           `json:"open_connections"`
	InUseConns   int           `json:"in_use_connections"`
	IdleConns    int           `json:"idle_connections"`
	WaitCount    int64         `json:"wait_count"`
	WaitDuration time.Duration `json:"wait_duration"`
	Errors       []string      `json:"errors,omitempty"`
	CheckedAt    time.Time     `json:"checked_at"`
}

// Health pings the database and reports pool statistics
func (m *Manager) Health(ctx context.Context) *HealthStatus {
	status := &HealthStatus{
		Status:    StatusHealthy,
		CheckedAt: time.Now(),
	}

	start := time.Now()
	if err := m.db.PingContext(ctx); err != nil {
		status.Status = StatusUnhealthy
		status.Errors = append(status.Errors, err.Error())
		return status
	}
	status.Latency = time.Since(start)

	stats := m.db.Stats()
	status.OpenConns = stats.OpenConnections
	status.InUseConns = stats.InUse
	status.IdleConns = stats.Idle
	status.WaitCount = stats.WaitCount
	status.WaitDuration = stats.WaitDuration

	// Saturated pool is degraded, not dead.
	if stats.OpenConnections >= m.config.MaxOpenConns && stats.WaitCount > 0 {
		status.Status = StatusDegraded
		status.Errors = append(status.Errors, "connection pool saturated")
	}

	return status
}
