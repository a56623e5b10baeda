package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"

	"skynow-api/internal/domain/entity"
	"skynow-api/internal/domain/model"
	"skynow-api/internal/domain/usecase/weather"
	"skynow-api/pkg/log"
	"skynow-api/pkg/msg"
)

type WeatherProcessor struct {
	weatherUseCase weather.UseCase
}

func NewWeatherProcessor(weatherUseCase weather.UseCase) *WeatherProcessor {
	return &WeatherProcessor{
		weatherUseCase: weatherUseCase,
	}
}

// HandleMessage implements the sqs.Handler interface. Unreadable messages are acknowledged and
// dropped; a failed refresh is returned so the message is redelivered.
func (p *WeatherProcessor) HandleMessage(ctx context.Context, message *types.Message) error {
	if message == nil || message.Body == nil {
		return errors.New("received nil message or message body")
	}
	messageID := ""
	if message.MessageId != nil {
		messageID = *message.MessageId
	}

	refresh, coordinates, units, err := parseRefreshMessage(*message.Body)
	if err != nil {
		log.Warn(msg.GetMessage("refresh.error.invalid-message", messageID, err))
		return nil
	}

	response, err := p.weatherUseCase.RefreshWeather(ctx, coordinates, units)
	if err != nil {
		return fmt.Errorf("failed to refresh weather for %s: %w", refresh.Name, err)
	}

	log.Info(msg.GetMessage("refresh.processed", response.Location),
		zap.String("request_id", refresh.RequestID),
		zap.String("message_id", messageID),
		zap.String("units", units.String()),
		zap.String("source", response.Source))
	return nil
}

func parseRefreshMessage(body string) (model.RefreshMessage, entity.Coordinates, entity.UnitSystem, error) {
	var refresh model.RefreshMessage
	if err := json.Unmarshal([]byte(body), &refresh); err != nil {
		return refresh, entity.Coordinates{}, "", fmt.Errorf("failed to unmarshal message body: %w", err)
	}

	coordinates := entity.Coordinates{Lat: refresh.Lat, Lon: refresh.Lon}
	if !coordinates.Valid() {
		return refresh, coordinates, "", fmt.Errorf("invalid coordinates %v", coordinates)
	}

	units, err := entity.ParseUnitSystem(refresh.Units)
	if err != nil {
		return refresh, coordinates, "", err
	}
	return refresh, coordinates, units, nil
}
