package weather

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"skynow-api/internal/domain/entity"
	"skynow-api/internal/domain/failure"
	"skynow-api/internal/domain/gateway/api"
	"skynow-api/internal/domain/gateway/cache"
	"skynow-api/internal/domain/gateway/db"
	"skynow-api/internal/domain/gateway/queue"
	"skynow-api/internal/domain/model"
	"skynow-api/internal/domain/normalizer"
	"skynow-api/pkg/log"
	"skynow-api/pkg/msg"
)

const defaultLocationName = "default"

// Config selects the provider order and the refresh targets of the use case
type Config struct {
	// Sources are tried in order, a later one only when the previous refused or sent garbage
	Sources         []normalizer.Kind
	DefaultLocation entity.Coordinates
	RefreshQueue    string
	RefreshClientID string
}

type fetchFunc func(ctx context.Context, coordinates entity.Coordinates, units entity.UnitSystem) (normalizer.Source, error)

type weatherSource struct {
	kind  normalizer.Kind
	fetch fetchFunc
}

type weatherUseCase struct {
	config           Config
	sources          []weatherSource
	apiGateway       api.WeatherGateway
	openMeteoGateway api.OpenMeteoGateway
	cacheGateway     cache.WeatherCacheGateway
	loadTracker      cache.LoadTracker
	historyGateway   db.HistoryGateway
	queueSender      queue.Sender
}

// NewWeatherUseCase builds the use case. cacheGateway and queueSender may be nil, which disables
// caching and scheduled refresh.
func NewWeatherUseCase(config Config, apiGateway api.WeatherGateway, openMeteoGateway api.OpenMeteoGateway, cacheGateway cache.WeatherCacheGateway, loadTracker cache.LoadTracker, historyGateway db.HistoryGateway, queueSender queue.Sender) (UseCase, error) {
	if len(config.Sources) == 0 {
		return nil, errors.New("at least one weather source is required")
	}
	if !config.DefaultLocation.Valid() {
		return nil, fmt.Errorf("invalid default location %v", config.DefaultLocation)
	}
	if config.RefreshClientID == "" {
		config.RefreshClientID = defaultLocationName
	}

	uc := &weatherUseCase{
		config:           config,
		apiGateway:       apiGateway,
		openMeteoGateway: openMeteoGateway,
		cacheGateway:     cacheGateway,
		loadTracker:      loadTracker,
		historyGateway:   historyGateway,
		queueSender:      queueSender,
	}

	for _, kind := range config.Sources {
		fetch, err := uc.fetcherFor(kind)
		if err != nil {
			return nil, err
		}
		uc.sources = append(uc.sources, weatherSource{kind: kind, fetch: fetch})
	}
	return uc, nil
}

func (uc *weatherUseCase) fetcherFor(kind normalizer.Kind) (fetchFunc, error) {
	switch kind {
	case normalizer.KindOneCall:
		if uc.apiGateway == nil {
			return nil, errors.New("onecall source requires the openweather gateway")
		}
		return uc.fetchOneCall, nil
	case normalizer.KindStandard:
		if uc.apiGateway == nil {
			return nil, errors.New("standard source requires the openweather gateway")
		}
		return uc.fetchStandard, nil
	case normalizer.KindOpenMeteo:
		if uc.openMeteoGateway == nil {
			return nil, errors.New("openmeteo source requires the open-meteo gateway")
		}
		return uc.fetchOpenMeteo, nil
	default:
		return nil, fmt.Errorf("unknown weather source %q", kind)
	}
}

func (uc *weatherUseCase) DefaultLocation() entity.Coordinates {
	return uc.config.DefaultLocation
}

// LoadWeather resolves the coordinate, takes a load sequence for the client and answers from the
// cache or the providers. A load overtaken by a newer one from the same client fails with
// failure.ErrStaleLoad.
func (uc *weatherUseCase) LoadWeather(ctx context.Context, request LoadRequest) (*model.WeatherResponse, error) {
	coordinates := uc.config.DefaultLocation
	if request.Coordinates != nil && request.Coordinates.Valid() {
		coordinates = *request.Coordinates
	} else {
		log.Info(msg.GetMessage("weather.location-default", coordinates.String()),
			zap.String("client_id", request.ClientID),
			zap.Error(failure.ErrLocationUnavailable))
	}

	if request.Units == "" {
		request.Units = entity.Metric
	}

	var sequence int64
	if !request.Anonymous {
		sequence = uc.nextSequence(ctx, request.ClientID)
	}

	response, err := uc.cachedWeather(ctx, coordinates, request.Units)
	if response == nil && err == nil {
		response, err = uc.freshWeather(ctx, coordinates, request.Units)
	}
	if err != nil {
		return nil, err
	}
	response.Sequence = sequence

	if uc.isStale(ctx, request.ClientID, sequence) {
		log.Warn(msg.GetMessage("weather.error.stale", sequence, request.ClientID))
		return nil, fmt.Errorf("load %d for client %s: %w", sequence, request.ClientID, failure.ErrStaleLoad)
	}
	return response, nil
}

// RefreshWeather skips the cache read so the entry is always rewritten
func (uc *weatherUseCase) RefreshWeather(ctx context.Context, coordinates entity.Coordinates, units entity.UnitSystem) (*model.WeatherResponse, error) {
	if !coordinates.Valid() {
		return nil, fmt.Errorf("refresh %v: %w", coordinates, failure.ErrInvalidRequest)
	}
	if units == "" {
		units = entity.Metric
	}
	return uc.freshWeather(ctx, coordinates, units)
}

// ScheduleRefresh enqueues the default location and the refresh client's history in every unit system
func (uc *weatherUseCase) ScheduleRefresh(ctx context.Context, requestID string) (int, error) {
	if uc.queueSender == nil {
		return 0, fmt.Errorf("refresh %s: %w", requestID, failure.ErrRefreshUnavailable)
	}

	targets := []entity.CitySearchResult{{
		Name: defaultLocationName,
		Lat:  uc.config.DefaultLocation.Lat,
		Lon:  uc.config.DefaultLocation.Lon,
	}}
	if uc.historyGateway != nil {
		history, err := uc.historyGateway.Load(ctx, uc.config.RefreshClientID)
		if err != nil {
			return 0, fmt.Errorf("failed to load refresh targets: %w", err)
		}
		targets = append(targets, history...)
	}

	seen := make(map[string]bool, len(targets))
	messages := make([]queue.BatchMessage, 0, len(targets)*2)
	for _, target := range targets {
		coordinates := entity.Coordinates{Lat: target.Lat, Lon: target.Lon}
		for _, units := range []entity.UnitSystem{entity.Metric, entity.Imperial} {
			key := cache.SnapshotKey(coordinates, units)
			if seen[key] {
				continue
			}
			seen[key] = true
			messages = append(messages, queue.BatchMessage{
				MessageID: uuid.New().String(),
				Body: model.RefreshMessage{
					RequestID: requestID,
					Name:      target.Name,
					Lat:       target.Lat,
					Lon:       target.Lon,
					Units:     units.String(),
				},
			})
		}
	}

	result, err := uc.queueSender.SendMessageBatch(ctx, uc.config.RefreshQueue, messages)
	if err != nil {
		return 0, fmt.Errorf("failed to enqueue refresh messages: %w", err)
	}
	for _, failed := range result.Failed {
		log.Error(msg.GetMessage("refresh.error.enqueue-failed", failed, requestID))
	}
	return len(result.Successful), nil
}

func (uc *weatherUseCase) cachedWeather(ctx context.Context, coordinates entity.Coordinates, units entity.UnitSystem) (*model.WeatherResponse, error) {
	if uc.cacheGateway == nil {
		return nil, nil
	}
	cached, err := uc.cacheGateway.Get(ctx, coordinates, units)
	if err != nil {
		log.Warn(msg.GetMessage("weather.cache.error", coordinates.String(), err))
		return nil, nil
	}
	if cached == nil {
		return nil, nil
	}
	return &model.WeatherResponse{
		Location: cached.Location,
		Source:   cached.Source,
		Cached:   true,
		Snapshot: cached.Snapshot,
	}, nil
}

// freshWeather fetches the snapshot and the place name in parallel and stores the result
func (uc *weatherUseCase) freshWeather(ctx context.Context, coordinates entity.Coordinates, units entity.UnitSystem) (*model.WeatherResponse, error) {
	var wg sync.WaitGroup
	var snapshot *entity.WeatherSnapshot
	var kind normalizer.Kind
	var location string
	var fetchErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		snapshot, kind, fetchErr = uc.fetchSnapshot(ctx, coordinates, units)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		location = uc.locationName(ctx, coordinates)
	}()

	wg.Wait()

	if fetchErr != nil {
		return nil, fetchErr
	}

	if uc.cacheGateway != nil {
		entry := &model.CachedWeather{Location: location, Source: string(kind), Snapshot: snapshot}
		if err := uc.cacheGateway.Put(ctx, coordinates, units, entry); err != nil {
			log.Warn(msg.GetMessage("weather.cache.error", coordinates.String(), err))
		}
	}

	return &model.WeatherResponse{
		Location: location,
		Source:   string(kind),
		Snapshot: snapshot,
	}, nil
}

// fetchSnapshot walks the sources in order. Only an authorization failure or an unusable payload
// moves on to the next source; the last source's error is returned when every one failed.
func (uc *weatherUseCase) fetchSnapshot(ctx context.Context, coordinates entity.Coordinates, units entity.UnitSystem) (*entity.WeatherSnapshot, normalizer.Kind, error) {
	var lastErr error
	for i, source := range uc.sources {
		snapshot, err := uc.loadFrom(ctx, source, coordinates, units)
		if err == nil {
			return snapshot, source.kind, nil
		}
		lastErr = err

		log.Warn(msg.GetMessage("weather.error.source-failed", string(source.kind), coordinates.String(), err))
		if !fallsBack(err) {
			return nil, source.kind, err
		}
		if i+1 < len(uc.sources) {
			log.Info(msg.GetMessage("weather.fallback", string(source.kind), string(uc.sources[i+1].kind)))
		}
	}

	log.Error(msg.GetMessage("weather.error.all-sources-failed", coordinates.String()), zap.Error(lastErr))
	return nil, "", lastErr
}

func (uc *weatherUseCase) loadFrom(ctx context.Context, source weatherSource, coordinates entity.Coordinates, units entity.UnitSystem) (*entity.WeatherSnapshot, error) {
	raw, err := source.fetch(ctx, coordinates, units)
	if err != nil {
		return nil, err
	}
	return normalizer.Normalize(raw, units)
}

func fallsBack(err error) bool {
	return errors.Is(err, failure.ErrUnauthorized) || errors.Is(err, failure.ErrMalformedSource)
}

func (uc *weatherUseCase) fetchOneCall(ctx context.Context, coordinates entity.Coordinates, units entity.UnitSystem) (normalizer.Source, error) {
	payload, err := uc.apiGateway.FetchOneCall(ctx, coordinates, units)
	if err != nil {
		return nil, err
	}
	return normalizer.OneCallSource{Payload: payload}, nil
}

// fetchStandard issues the current and forecast calls in parallel; both must succeed
func (uc *weatherUseCase) fetchStandard(ctx context.Context, coordinates entity.Coordinates, units entity.UnitSystem) (normalizer.Source, error) {
	var wg sync.WaitGroup
	var source normalizer.StandardSource
	var currentErr, forecastErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		source.Current, currentErr = uc.apiGateway.FetchCurrentWeather(ctx, coordinates, units)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		source.Forecast, forecastErr = uc.apiGateway.FetchForecast(ctx, coordinates, units)
	}()

	wg.Wait()

	if currentErr != nil {
		return nil, currentErr
	}
	if forecastErr != nil {
		return nil, forecastErr
	}
	return source, nil
}

func (uc *weatherUseCase) fetchOpenMeteo(ctx context.Context, coordinates entity.Coordinates, units entity.UnitSystem) (normalizer.Source, error) {
	payload, err := uc.openMeteoGateway.FetchForecast(ctx, coordinates, units)
	if err != nil {
		return nil, err
	}
	return normalizer.OpenMeteoSource{Payload: payload}, nil
}

// locationName never fails: any geocoding problem degrades to the formatted coordinate
func (uc *weatherUseCase) locationName(ctx context.Context, coordinates entity.Coordinates) string {
	if uc.apiGateway == nil {
		return coordinates.String()
	}
	place, err := uc.apiGateway.ReverseGeocode(ctx, coordinates)
	if err != nil {
		log.Warn(msg.GetMessage("weather.geocode-failed", coordinates.String(), err))
		return coordinates.String()
	}
	if place == nil || place.Name == "" {
		return coordinates.String()
	}
	if place.Country == "" {
		return place.Name
	}
	return place.Name + ", " + place.Country
}

func (uc *weatherUseCase) nextSequence(ctx context.Context, clientID string) int64 {
	if uc.loadTracker == nil {
		return 0
	}
	sequence, err := uc.loadTracker.Next(ctx, clientID)
	if err != nil {
		log.Warn("Failed to take a load sequence", zap.String("client_id", clientID), zap.Error(err))
		return 0
	}
	return sequence
}

func (uc *weatherUseCase) isStale(ctx context.Context, clientID string, sequence int64) bool {
	if uc.loadTracker == nil || sequence == 0 {
		return false
	}
	stale, err := uc.loadTracker.IsStale(ctx, clientID, sequence)
	if err != nil {
		log.Warn("Failed to check the load sequence", zap.String("client_id", clientID), zap.Error(err))
		return false
	}
	return stale
}
