package queue

import (
	"sort"
	"strconv"
	"sync"

	"skynow-api/internal/domain/model"
	"skynow-api/pkg/sqs"
)

type QueueHealthGateway struct {
	workers map[string]WorkerHealthChecker
	mutex   sync.RWMutex
}

var _ HealthGateway = (*QueueHealthGateway)(nil)

func NewQueueHealthGateway() *QueueHealthGateway {
	return &QueueHealthGateway{
		workers: make(map[string]WorkerHealthChecker),
	}
}

func (gateway *QueueHealthGateway) RegisterWorker(name string, worker WorkerHealthChecker) {
	gateway.mutex.Lock()
	defer gateway.mutex.Unlock()
	gateway.workers[name] = worker
}

func (gateway *QueueHealthGateway) UnregisterWorker(name string) {
	gateway.mutex.Lock()
	defer gateway.mutex.Unlock()
	delete(gateway.workers, name)
}

// Health is UNKNOWN without workers, which is the case when the refresh queue is disabled
func (gateway *QueueHealthGateway) Health() model.ComponentHealthStatus {
	gateway.mutex.RLock()
	defer gateway.mutex.RUnlock()

	if len(gateway.workers) == 0 {
		return model.ComponentHealthStatus{
			Status: model.StatusUnknown,
			Details: map[string]string{
				"message":       "No workers registered",
				"workers_total": "0",
			},
		}
	}

	names := make([]string, 0, len(gateway.workers))
	for name := range gateway.workers {
		names = append(names, name)
	}
	sort.Strings(names)

	status := model.StatusUp
	details := make(map[string]string)
	workersDown := 0

	for _, name := range names {
		workerHealth := gateway.workers[name].HealthCheck()
		details[name+"_status"] = string(workerHealth.Status)
		if workerHealth.Status != sqs.StatusUp {
			workersDown++
			status = model.StatusDown
		}
		for key, value := range workerHealth.Details {
			details[name+"_"+key] = value
		}
	}

	details["workers_total"] = strconv.Itoa(len(names))
	details["workers_up"] = strconv.Itoa(len(names) - workersDown)
	details["workers_down"] = strconv.Itoa(workersDown)

	return model.ComponentHealthStatus{
		Status:  status,
		Details: details,
	}
}
