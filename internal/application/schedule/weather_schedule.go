package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"skynow-api/internal/domain/usecase/weather"
	"skynow-api/pkg/log"
	"skynow-api/pkg/msg"
	"skynow-api/pkg/redis"
)

const (
	lockKey       = "weather_refresh_scheduler"
	lockNamespace = "skynow_schedules"
)

// WeatherSchedulerConfig holds configuration for the weather scheduler
type WeatherSchedulerConfig struct {
	CronExpression string
	// LockTTL is how long a run keeps other instances out; it should be shorter than the cron period
	LockTTL time.Duration
}

// WeatherScheduler enqueues weather refreshes on a cron, once per period across every instance
type WeatherScheduler struct {
	cron        *cron.Cron
	useCase     weather.UseCase
	redisClient *redis.Client
	config      WeatherSchedulerConfig
}

func NewWeatherScheduler(useCase weather.UseCase, redisClient *redis.Client, config WeatherSchedulerConfig) *WeatherScheduler {
	return &WeatherScheduler{
		cron:        cron.New(),
		useCase:     useCase,
		redisClient: redisClient,
		config:      config,
	}
}

// InitWeatherScheduleTasks registers the refresh job and starts the cron
func (s *WeatherScheduler) InitWeatherScheduleTasks(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.config.CronExpression, func() {
		s.ExecuteScheduledTask(ctx)
	})
	if err != nil {
		return fmt.Errorf("invalid refresh cron %q: %w", s.config.CronExpression, err)
	}

	s.cron.Start()
	log.Info("Weather refresh scheduler started", zap.String("cron", s.config.CronExpression))
	return nil
}

// ExecuteScheduledTask runs one refresh if no other instance ran it within the lock TTL.
// The lock is left to expire instead of being released.
func (s *WeatherScheduler) ExecuteScheduledTask(ctx context.Context) {
	requestID := uuid.New().String()

	lock := redis.NewLock(s.redisClient, lockKey, redis.NewLockOptions().
		WithTTL(s.getLockTTL()).
		WithMaxRetries(0).
		WithLockNamespace(lockNamespace))

	if err := lock.Lock(ctx); err != nil {
		if errors.Is(err, redis.ErrLockNotAcquired) {
			log.Info(msg.GetMessage("refresh.cron.skipped", requestID))
			return
		}
		log.Error("Failed to acquire the weather refresh lock", zap.String("request_id", requestID), zap.Error(err))
		return
	}

	log.Info(msg.GetMessage("refresh.cron.start", requestID), zap.String("request_id", requestID))

	enqueued, err := s.useCase.ScheduleRefresh(ctx, requestID)
	if err != nil {
		log.Error(msg.GetMessage("refresh.error.enqueue-failed", requestID, err), zap.String("request_id", requestID))
		return
	}

	log.Info(msg.GetMessage("refresh.cron.end", requestID, enqueued), zap.String("request_id", requestID))
}

// Stop gracefully stops the scheduler
func (s *WeatherScheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
}

func (s *WeatherScheduler) getLockTTL() time.Duration {
	if s.config.LockTTL > 0 {
		return s.config.LockTTL
	}
	return 5 * time.Minute
}
