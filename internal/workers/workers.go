package workers

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// A background job driven by the orchestrator's cron schedule.
type Worker interface {
	Schedule() string
	Ready(now time.Time) bool
	Execute()
}

// Orchestrator runs workers on their cron schedules. A worker that
// reports not-ready (previous run still going) is skipped for that
// tick.
type Orchestrator struct {
	workers []Worker
	logger  *zap.Logger
}

func NewOrchestrator(logger *zap.Logger, workers ...Worker) *Orchestrator {
	return &Orchestrator{workers: workers, logger: logger}
}

func (o *Orchestrator) Start() (*cron.Cron, error) {
	c := cron.New()

	for _, worker := range o.workers {
		worker := worker
		_, err := c.AddFunc(worker.Schedule(), func() {
			if worker.Ready(time.Now()) {
				go worker.Execute()
			}
		})
		if err != nil {
			o.logger.Error("failed to schedule worker",
				zap.String("schedule", worker.Schedule()),
				zap.Error(err),
			)
			return nil, err
		}
	}

	c.Start()
	return c, nil
}
