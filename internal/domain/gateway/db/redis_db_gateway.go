package db

import (
	"context"

	"skynow-api/internal/domain/model"
	"skynow-api/pkg/redis"
)

type RedisHealthDBGateway struct {
	checker *redis.HealthChecker
}

var _ HealthDBGateway = (*RedisHealthDBGateway)(nil)

func NewRedisHealthDBGateway(client *redis.Client) *RedisHealthDBGateway {
	return &RedisHealthDBGateway{checker: redis.NewHealthChecker(client)}
}

func (gateway *RedisHealthDBGateway) Health(ctx context.Context) model.ComponentHealthStatus {
	check := gateway.checker.HealthCheck(ctx)

	details := make(map[string]string, len(check.Details)+1)
	for key, value := range check.Details {
		details[key] = value
	}
	details["backend"] = "redis"

	return model.ComponentHealthStatus{
		Status:  model.HealthStatus(check.Status),
		Details: details,
	}
}

// StaticHealthDBGateway reports UP for in-process backends
type StaticHealthDBGateway struct {
	backend string
}

var _ HealthDBGateway = (*StaticHealthDBGateway)(nil)

func NewStaticHealthDBGateway(backend string) *StaticHealthDBGateway {
	return &StaticHealthDBGateway{backend: backend}
}

func (gateway *StaticHealthDBGateway) Health(context.Context) model.ComponentHealthStatus {
	return model.ComponentHealthStatus{
		Status: model.StatusUp,
		Details: map[string]string{
			"backend": gateway.backend,
			"message": string(model.StatusUp),
		},
	}
}
