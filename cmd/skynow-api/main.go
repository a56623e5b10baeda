package main

import (
	"context"
	"errors"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sony/gobreaker"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"skynow-api/configs"
	_ "skynow-api/docs"
	"skynow-api/internal/application/controller"
	"skynow-api/internal/application/middleware"
	"skynow-api/internal/application/processor"
	"skynow-api/internal/application/schedule"
	"skynow-api/internal/domain/entity"
	apigateway "skynow-api/internal/domain/gateway/api"
	"skynow-api/internal/domain/gateway/cache"
	"skynow-api/internal/domain/gateway/db"
	"skynow-api/internal/domain/gateway/queue"
	"skynow-api/internal/domain/normalizer"
	"skynow-api/internal/domain/usecase/city"
	"skynow-api/internal/domain/usecase/health"
	"skynow-api/internal/domain/usecase/weather"
	"skynow-api/internal/infra/aws"
	infracache "skynow-api/internal/infra/cache"
	"skynow-api/internal/infra/database/gorm"
	"skynow-api/pkg/http"
	"skynow-api/pkg/log"
	"skynow-api/pkg/msg"
	"skynow-api/pkg/redis"
	"skynow-api/pkg/resource"
	"skynow-api/pkg/sqs"
)

// @title SkyNow API
// @version 1.0
// @description Normalized weather, city search and recent city history for the SkyNow dashboard.
// @BasePath /skynow
func main() {
	defer log.Sync()
	log.Info(msg.GetMessage("app.start", configs.Env.ApplicationName))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Init infra
	redisClient, err := infracache.NewRedisClient(ctx)
	if err != nil {
		log.Fatal("Failed to connect redis", zap.Error(err))
	}
	defer func() { _ = redisClient.Close() }()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	middleware.SetupRequestLogger(e)
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	api := e.Group(resource.GetStringOrDefault("app.server.context-path", configs.Env.ContextPath), middleware.ClientIdentifier())

	// Init Gateways
	weatherGateway := apigateway.NewWeatherGateway(
		resource.GetString("app.weather.openweather.base-url"),
		resource.GetString("app.weather.api-key"),
		providerClientOptions("openweather"),
	)
	openMeteoGateway := apigateway.NewOpenMeteoGateway(
		resource.GetString("app.weather.openmeteo.base-url"),
		providerClientOptions("openmeteo"),
	)
	weatherCacheGateway := cache.NewRedisWeatherCacheGateway(redisClient)
	loadTracker := cache.NewRedisLoadTracker(redisClient)
	historyGateway, historyHealthGateway := newHistoryStore(redisClient)
	queueHealthGateway := queue.NewQueueHealthGateway()

	var queueSender queue.Sender
	var queueReceiver sqs.ReceiverClient
	if resource.GetBool("app.refresh.enabled") {
		awsConfig, err := aws.NewConfig(ctx)
		if err != nil {
			log.Fatal("Failed to load AWS config", zap.Error(err))
		}
		sqsClient := aws.NewSqsClient(awsConfig)
		queueSender = aws.NewSQSSenderAdapter(sqsClient)
		queueReceiver = sqsClient
	}

	// Init UseCase
	weatherUseCase, err := weather.NewWeatherUseCase(weather.Config{
		Sources:         weatherSources(),
		DefaultLocation: defaultLocation(),
		RefreshQueue:    resource.GetString("app.queue.refresh"),
		RefreshClientID: resource.GetStringOrDefault("app.refresh.client-id", middleware.DefaultClientID),
	}, weatherGateway, openMeteoGateway, weatherCacheGateway, loadTracker, historyGateway, queueSender)
	if err != nil {
		log.Fatal("Invalid weather configuration", zap.Error(err))
	}
	cityUseCase := city.NewCityUseCase(weatherGateway, historyGateway, weatherUseCase)
	healthUseCase := health.NewHealthUseCase(db.NewRedisHealthDBGateway(redisClient), historyHealthGateway, queueHealthGateway)

	// Init Controller
	weatherController := controller.NewWeatherController(api, weatherUseCase)
	cityController := controller.NewCityController(api, cityUseCase)
	healthController := controller.NewHealthController(api, healthUseCase)

	// Init Routes
	weatherController.InitWeatherRoutes()
	cityController.InitCityRoutes()
	healthController.InitHealthRoutes()

	// Init Schedule and Processor
	if queueSender != nil {
		weatherScheduler := schedule.NewWeatherScheduler(weatherUseCase, redisClient, schedule.WeatherSchedulerConfig{
			CronExpression: resource.GetString("app.refresh.cron"),
			LockTTL:        resource.GetDuration("app.refresh.lock-ttl"),
		})
		if err := weatherScheduler.InitWeatherScheduleTasks(ctx); err != nil {
			log.Fatal("Failed to init weather scheduler", zap.Error(err))
		}
		defer weatherScheduler.Stop()

		startRefreshWorker(ctx, queueReceiver, processor.NewWeatherProcessor(weatherUseCase), queueHealthGateway)
	}

	// Start Routes
	port := resource.GetString("app.server.port")
	go func() {
		log.Info(msg.GetMessage("app.started", configs.Env.ApplicationName, port))
		if err := e.Start(":" + port); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			log.Fatal("Server stopped unexpectedly", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to shut down the server", zap.Error(err))
	}
	log.Info(msg.GetMessage("app.stopped", configs.Env.ApplicationName))
}

// providerClientOptions applies the shared timeout, retry, breaker and rate limit settings to one provider
func providerClientOptions(name string) http.ClientOptions {
	return http.ClientOptions{
		ReadTimeout:       resource.GetDurationOrDefault("app.weather.timeout", 10*time.Second),
		ConnectionTimeout: resource.GetDurationOrDefault("app.weather.timeout", 10*time.Second),
		DefaultHeaders:    map[string]string{"Accept": "application/json", "User-Agent": configs.Env.ApplicationName},
		Backoff: &http.BackoffConfig{
			MaxRetries:      resource.GetIntOrDefault("app.weather.max-retries", 2),
			InitialInterval: 200 * time.Millisecond,
			MaxInterval:     2 * time.Second,
		},
		Breaker: &http.BreakerConfig{
			Name:                name,
			Timeout:             resource.GetDurationOrDefault("app.weather.breaker.timeout", 30*time.Second),
			ConsecutiveFailures: uint32(resource.GetIntOrDefault("app.weather.breaker.failures", 5)),
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Warn("Circuit breaker changed state",
					zap.String("breaker", name),
					zap.String("from", from.String()),
					zap.String("to", to.String()))
			},
		},
		RateLimit: http.RateLimitConfig{
			RPS:   resource.GetFloat64("app.weather.rate-limit.rps"),
			Burst: resource.GetInt("app.weather.rate-limit.burst"),
		},
		Logger: http.NewZapHTTPLogger(name),
	}
}

func weatherSources() []normalizer.Kind {
	var sources []normalizer.Kind
	for _, source := range resource.GetStringSlice("app.weather.sources") {
		sources = append(sources, normalizer.Kind(source))
	}
	if len(sources) == 0 {
		sources = []normalizer.Kind{normalizer.KindOneCall, normalizer.KindStandard, normalizer.KindOpenMeteo}
	}
	return sources
}

func defaultLocation() entity.Coordinates {
	return entity.Coordinates{
		Lat: resource.GetFloat64OrDefault("app.weather.default-location.lat", 51.5074),
		Lon: resource.GetFloat64OrDefault("app.weather.default-location.lon", -0.1278),
	}
}

// newHistoryStore selects the history backend named by app.history.store
func newHistoryStore(redisClient *redis.Client) (db.HistoryGateway, db.HealthDBGateway) {
	store := resource.GetStringOrDefault("app.history.store", "redis")
	switch store {
	case "postgres":
		database, err := gorm.Open()
		if err != nil {
			log.Fatal("Failed to connect the history database", zap.Error(err))
		}
		historyGateway := db.NewGormHistoryGateway(database)
		if err := historyGateway.Migrate(); err != nil {
			log.Fatal("Failed to migrate the history database", zap.Error(err))
		}
		return historyGateway, db.NewGormHealthDBGateway(database)
	case "memory":
		return db.NewMemoryHistoryGateway(), db.NewStaticHealthDBGateway(store)
	case "redis":
		return db.NewRedisHistoryGateway(redisClient), db.NewRedisHealthDBGateway(redisClient)
	default:
		log.Fatal("Unknown history store", zap.String("store", store))
		return nil, nil
	}
}

func startRefreshWorker(ctx context.Context, receiver sqs.ReceiverClient, handler sqs.Handler, healthGateway queue.HealthGateway) {
	queueName := resource.GetString("app.queue.refresh")
	worker, err := sqs.NewWorker(ctx, receiver, queueName, handler, &sqs.WorkerConfig{
		PoolSize: resource.GetIntOrDefault("app.refresh.worker-pool-size", 2),
		LogLevel: sqs.ErrorLevel,
	})
	if err != nil {
		log.Fatal("Failed to init refresh worker", zap.String("queue", queueName), zap.Error(err))
	}

	healthGateway.RegisterWorker(queueName, worker)
	go func() {
		defer healthGateway.UnregisterWorker(queueName)
		worker.Start(ctx)
	}()
}
