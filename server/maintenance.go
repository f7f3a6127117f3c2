package server

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// maintenanceTask is one fixed-interval cache clear. Clear itself is
// synchronous and atomic; the ticker only decides when it runs.
type maintenanceTask struct {
	name     string
	interval time.Duration
	clear    func()
}

// Scheduler runs the periodic cache clears, one independent timer per
// cache. Tasks are fire-and-forget: they never block a request and are not
// cancelled mid-run, only between runs.
type Scheduler struct {
	tasks  []maintenanceTask
	logger *logrus.Logger
}

// NewScheduler constructs an empty scheduler.
func NewScheduler(logger *logrus.Logger) *Scheduler {
	return &Scheduler{logger: logger}
}

// Add registers a cache clear to run at the given interval.
func (s *Scheduler) Add(name string, interval time.Duration, clear func()) {
	s.tasks = append(s.tasks, maintenanceTask{name: name, interval: interval, clear: clear})
}

// Start launches one goroutine per task. The goroutines stop when ctx is
// cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	for _, task := range s.tasks {
		go s.run(ctx, task)
	}
}

func (s *Scheduler) run(ctx context.Context, task maintenanceTask) {
	ticker := time.NewTicker(task.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.logger.Infof("maintenance: clearing %s cache", task.name)
			task.clear()
		}
	}
}
