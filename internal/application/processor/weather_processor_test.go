package processor

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skynow-api/internal/domain/entity"
	"skynow-api/internal/domain/model"
	"skynow-api/internal/domain/usecase/weather"
	"skynow-api/pkg/sqs"
)

var _ sqs.Handler = (*WeatherProcessor)(nil)

type refreshCall struct {
	coordinates entity.Coordinates
	units       entity.UnitSystem
}

type fakeWeatherUseCase struct {
	weather.UseCase
	calls []refreshCall
	err   error
}

func (f *fakeWeatherUseCase) RefreshWeather(_ context.Context, coordinates entity.Coordinates, units entity.UnitSystem) (*model.WeatherResponse, error) {
	f.calls = append(f.calls, refreshCall{coordinates: coordinates, units: units})
	if f.err != nil {
		return nil, f.err
	}
	return &model.WeatherResponse{Location: "Paris, FR", Source: "onecall"}, nil
}

func message(body string) *types.Message {
	return &types.Message{MessageId: aws.String("m-1"), Body: aws.String(body)}
}

func TestHandleMessageRefreshesWeather(t *testing.T) {
	useCase := &fakeWeatherUseCase{}
	processor := NewWeatherProcessor(useCase)

	err := processor.HandleMessage(context.Background(), message(`{"requestId":"r","name":"Paris","lat":48.8566,"lon":2.3522,"units":"imperial"}`))

	require.NoError(t, err)
	assert.Equal(t, []refreshCall{{coordinates: entity.Coordinates{Lat: 48.8566, Lon: 2.3522}, units: entity.Imperial}}, useCase.calls)
}

func TestHandleMessageDropsUnreadableMessages(t *testing.T) {
	useCase := &fakeWeatherUseCase{}
	processor := NewWeatherProcessor(useCase)

	for _, body := range []string{`not json`, `{"lat":95,"lon":0}`, `{"lat":1,"lon":1,"units":"kelvin"}`} {
		assert.NoError(t, processor.HandleMessage(context.Background(), message(body)), body)
	}
	assert.Empty(t, useCase.calls)

	assert.Error(t, processor.HandleMessage(context.Background(), &types.Message{}))
}

func TestHandleMessageReturnsRefreshFailure(t *testing.T) {
	processor := NewWeatherProcessor(&fakeWeatherUseCase{err: errors.New("provider down")})

	err := processor.HandleMessage(context.Background(), message(`{"name":"Paris","lat":48.8566,"lon":2.3522}`))

	assert.Error(t, err)
}
