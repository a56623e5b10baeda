package city

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"skynow-api/internal/domain/entity"
	"skynow-api/internal/domain/failure"
	"skynow-api/internal/domain/gateway/api"
	"skynow-api/internal/domain/gateway/db"
	"skynow-api/internal/domain/model"
	"skynow-api/internal/domain/usecase/weather"
	"skynow-api/pkg/log"
	"skynow-api/pkg/msg"
)

const (
	// MinQueryLength is the longest query that is answered without a provider call
	MinQueryLength = 2
	MaxResults     = 5
)

type cityUseCase struct {
	apiGateway     api.WeatherGateway
	historyGateway db.HistoryGateway
	weatherUseCase weather.UseCase
}

func NewCityUseCase(apiGateway api.WeatherGateway, historyGateway db.HistoryGateway, weatherUseCase weather.UseCase) UseCase {
	return &cityUseCase{
		apiGateway:     apiGateway,
		historyGateway: historyGateway,
		weatherUseCase: weatherUseCase,
	}
}

func (uc *cityUseCase) SearchCities(ctx context.Context, query string) []entity.CitySearchResult {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) <= MinQueryLength {
		return []entity.CitySearchResult{}
	}

	locations, err := uc.apiGateway.SearchCities(ctx, query, MaxResults)
	if err != nil {
		log.Warn(msg.GetMessage("city.error.search-failed", query, err), zap.Error(failure.ErrSearchFailure))
		return []entity.CitySearchResult{}
	}

	results := make([]entity.CitySearchResult, 0, MaxResults)
	for _, location := range locations {
		if len(results) == MaxResults {
			break
		}
		results = append(results, entity.CitySearchResult{
			Name:    location.Name,
			Lat:     location.Lat,
			Lon:     location.Lon,
			Country: location.Country,
			State:   location.State,
		})
	}
	return results
}

// SelectCity saves the history before loading the weather, so a failed load still records the choice
func (uc *cityUseCase) SelectCity(ctx context.Context, request SelectRequest) (*model.SelectCityResponse, error) {
	clientID, city := request.ClientID, request.City
	coordinates := entity.Coordinates{Lat: city.Lat, Lon: city.Lon}
	if strings.TrimSpace(city.Name) == "" || !coordinates.Valid() {
		log.Warn(msg.GetMessage("city.error.invalid", city.Name))
		return nil, fmt.Errorf("city %q at %v: %w", city.Name, coordinates, failure.ErrInvalidRequest)
	}

	history, err := uc.historyGateway.Load(ctx, clientID)
	if err != nil {
		log.Error(msg.GetMessage("history.error.load-failed", clientID, err))
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	history = entity.PushRecent(history, city)
	if err := uc.historyGateway.Save(ctx, clientID, history); err != nil {
		log.Error(msg.GetMessage("history.error.save-failed", clientID, err))
		return nil, fmt.Errorf("failed to save history: %w", err)
	}

	weatherResponse, err := uc.weatherUseCase.LoadWeather(ctx, weather.LoadRequest{
		ClientID:    clientID,
		Anonymous:   request.Anonymous,
		Coordinates: &coordinates,
		Units:       request.Units,
	})
	if err != nil {
		return nil, err
	}

	return &model.SelectCityResponse{
		History: history,
		Weather: weatherResponse,
	}, nil
}

func (uc *cityUseCase) History(ctx context.Context, clientID string) ([]entity.CitySearchResult, error) {
	history, err := uc.historyGateway.Load(ctx, clientID)
	if err != nil {
		log.Error(msg.GetMessage("history.error.load-failed", clientID, err))
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	if history == nil {
		history = []entity.CitySearchResult{}
	}
	return history, nil
}
