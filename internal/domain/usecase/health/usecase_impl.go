package health

import (
	"context"
	"sync"

	"skynow-api/internal/domain/gateway/db"
	"skynow-api/internal/domain/gateway/queue"
	"skynow-api/internal/domain/model"
)

type healthUseCase struct {
	cacheGateway   db.HealthDBGateway
	historyGateway db.HealthDBGateway
	queueGateway   queue.HealthGateway
}

func NewHealthUseCase(cacheGateway db.HealthDBGateway, historyGateway db.HealthDBGateway, queueGateway queue.HealthGateway) UseCase {
	return &healthUseCase{
		cacheGateway:   cacheGateway,
		historyGateway: historyGateway,
		queueGateway:   queueGateway,
	}
}

// CheckHealth is DOWN when any component is DOWN. An UNKNOWN queue means no refresh workers run.
func (useCase *healthUseCase) CheckHealth(ctx context.Context) model.HealthResponse {
	var wg sync.WaitGroup
	var cacheHealth, historyHealth model.ComponentHealthStatus

	wg.Add(1)
	go func() {
		defer wg.Done()
		cacheHealth = useCase.cacheGateway.Health(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		historyHealth = useCase.historyGateway.Health(ctx)
	}()

	wg.Wait()
	queueHealth := useCase.queueGateway.Health()

	overallStatus := model.StatusUp
	for _, component := range []model.ComponentHealthStatus{cacheHealth, historyHealth, queueHealth} {
		if component.Status == model.StatusDown {
			overallStatus = model.StatusDown
		}
	}

	return model.HealthResponse{
		Status:  overallStatus,
		Cache:   cacheHealth,
		History: historyHealth,
		Queue:   queueHealth,
	}
}
