package schedule

import (
	"context"
	"errors"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skynow-api/internal/domain/usecase/weather"
	"skynow-api/pkg/redis"
)

type fakeWeatherUseCase struct {
	weather.UseCase
	runs atomic.Int32
	err  error
}

func (f *fakeWeatherUseCase) ScheduleRefresh(context.Context, string) (int, error) {
	f.runs.Add(1)
	return 3, f.err
}

func newRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	port, err := strconv.Atoi(server.Port())
	require.NoError(t, err)

	client := redis.NewClient(redis.NewRedisConfig().WithHost(server.Host()).WithPort(port))
	t.Cleanup(func() { _ = client.Close() })
	return client, server
}

func TestExecuteScheduledTaskRunsOncePerLockWindow(t *testing.T) {
	client, server := newRedis(t)
	useCase := &fakeWeatherUseCase{}
	first := NewWeatherScheduler(useCase, client, WeatherSchedulerConfig{CronExpression: "*/30 * * * *", LockTTL: time.Minute})
	second := NewWeatherScheduler(useCase, client, WeatherSchedulerConfig{CronExpression: "*/30 * * * *", LockTTL: time.Minute})

	first.ExecuteScheduledTask(context.Background())
	second.ExecuteScheduledTask(context.Background())
	assert.Equal(t, int32(1), useCase.runs.Load())

	server.FastForward(2 * time.Minute)
	second.ExecuteScheduledTask(context.Background())
	assert.Equal(t, int32(2), useCase.runs.Load())
}

func TestExecuteScheduledTaskSurvivesFailures(t *testing.T) {
	client, server := newRedis(t)
	useCase := &fakeWeatherUseCase{err: errors.New("queue down")}
	scheduler := NewWeatherScheduler(useCase, client, WeatherSchedulerConfig{})

	scheduler.ExecuteScheduledTask(context.Background())
	assert.Equal(t, int32(1), useCase.runs.Load())

	server.Close()
	scheduler.ExecuteScheduledTask(context.Background())
	assert.Equal(t, int32(1), useCase.runs.Load())
}

func TestInitWeatherScheduleTasks(t *testing.T) {
	client, _ := newRedis(t)

	invalid := NewWeatherScheduler(&fakeWeatherUseCase{}, client, WeatherSchedulerConfig{CronExpression: "every day"})
	assert.Error(t, invalid.InitWeatherScheduleTasks(context.Background()))

	valid := NewWeatherScheduler(&fakeWeatherUseCase{}, client, WeatherSchedulerConfig{CronExpression: "*/30 * * * *"})
	require.NoError(t, valid.InitWeatherScheduleTasks(context.Background()))
	valid.Stop()
}
