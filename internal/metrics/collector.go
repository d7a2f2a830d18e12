package metrics

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"taskboard/internal/model"
)

const DefaultCollectSchedule = "@every 1m"

type TaskStatsSource interface {
	Stats(ctx context.Context) (*model.TaskStats, error)
}

type PostCountSource interface {
	Count(ctx context.Context) (int64, error)
}

// BusinessMetricsCollector refreshes the business gauges on a cron schedule.
type BusinessMetricsCollector struct {
	tasks   TaskStatsSource
	posts   PostCountSource
	metrics *Metrics
	logger  *zap.Logger
	cron    *cron.Cron
}

func NewBusinessMetricsCollector(tasks TaskStatsSource, posts PostCountSource, m *Metrics, logger *zap.Logger) *BusinessMetricsCollector {
	return &BusinessMetricsCollector{
		tasks:   tasks,
		posts:   posts,
		metrics: m,
		logger:  logger,
		cron:    cron.New(),
	}
}

// Start collects once immediately and then on every tick of schedule.
func (c *BusinessMetricsCollector) Start(schedule string) error {
	if schedule == "" {
		schedule = DefaultCollectSchedule
	}
	if _, err := c.cron.AddFunc(schedule, c.Collect); err != nil {
		return err
	}
	go c.Collect()
	c.cron.Start()
	return nil
}

// Stop halts the schedule and waits for a running collection to finish.
func (c *BusinessMetricsCollector) Stop() {
	<-c.cron.Stop().Done()
}

func (c *BusinessMetricsCollector) Collect() {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Panic in business metrics collection", zap.Any("panic", r))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if stats, err := c.tasks.Stats(ctx); err != nil {
		c.logger.Error("Failed to collect task stats", zap.Error(err))
	} else {
		c.metrics.SetTaskGauges(stats)
	}

	if count, err := c.posts.Count(ctx); err != nil {
		c.logger.Error("Failed to count board posts", zap.Error(err))
	} else {
		c.metrics.SetPostsTotal(count)
	}
}
