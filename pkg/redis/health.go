package redis

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

// RedisHealthCheck represents the health check response for Redis
type RedisHealthCheck struct {
	Status  HealthStatus      `json:"status"`
	Details map[string]string `json:"details"`
}

// HealthChecker provides Redis health checking functionality
type HealthChecker struct {
	client    *Client
	lastCheck time.Time
	isHealthy int32
	lastError string
	mu        sync.Mutex
}

// NewHealthChecker creates a new Redis health checker
func NewHealthChecker(client *Client) *HealthChecker {
	return &HealthChecker{client: client}
}

// HealthCheck pings Redis and runs a set/get/delete round trip on a scratch key.
func (h *HealthChecker) HealthCheck(ctx context.Context) RedisHealthCheck {
	h.mu.Lock()
	defer h.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pingResult := h.testPing(ctx)
	operationResult := pingResult && h.testBasicOperations(ctx)

	var status HealthStatus
	if pingResult && operationResult {
		status = StatusUp
		atomic.StoreInt32(&h.isHealthy, 1)
		h.lastError = ""
	} else {
		status = StatusDown
		atomic.StoreInt32(&h.isHealthy, 0)
	}

	h.lastCheck = time.Now()
	config := h.client.GetConfig()
	stats := h.client.Stats()

	details := map[string]string{
		"host":                  config.Host,
		"port":                  strconv.Itoa(config.Port),
		"database":              strconv.Itoa(config.Database),
		"ping_successful":       strconv.FormatBool(pingResult),
		"operations_successful": strconv.FormatBool(operationResult),
		"total_conns":           strconv.FormatUint(uint64(stats.TotalConns), 10),
		"idle_conns":            strconv.FormatUint(uint64(stats.IdleConns), 10),
		"last_check":            h.lastCheck.Format(time.RFC3339),
		"last_error":            h.lastError,
	}

	return RedisHealthCheck{
		Status:  status,
		Details: details,
	}
}

func (h *HealthChecker) testPing(ctx context.Context) bool {
	if err := h.client.Ping(ctx); err != nil {
		h.lastError = fmt.Sprintf("ping failed: %v", err)
		return false
	}
	return true
}

func (h *HealthChecker) testBasicOperations(ctx context.Context) bool {
	testKey := "health_check_test"
	testValue := "test_value"

	if err := h.client.Set(ctx, testKey, testValue, time.Minute); err != nil {
		h.lastError = fmt.Sprintf("set operation failed: %v", err)
		return false
	}

	value, err := h.client.Get(ctx, testKey)
	if err != nil {
		h.lastError = fmt.Sprintf("get operation failed: %v", err)
		return false
	}
	if value != testValue {
		h.lastError = fmt.Sprintf("value mismatch: expected %s, got %s", testValue, value)
		return false
	}

	if err := h.client.Delete(ctx, testKey); err != nil {
		h.lastError = fmt.Sprintf("delete operation failed: %v", err)
		return false
	}

	return true
}

// IsHealthy returns the result of the last health check
func (h *HealthChecker) IsHealthy() bool {
	return atomic.LoadInt32(&h.isHealthy) == 1
}
