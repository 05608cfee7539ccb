package jobs

import (
	"context"
	"log/slog"
	"time"

	"steakz/internal/core/application/usecases/commands"
	"steakz/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
)

// DefaultRefreshSchedule runs every 10 seconds.
const DefaultRefreshSchedule = "*/10 * * * * *"

type boardRefresher interface {
	Handle(ctx context.Context, cmd commands.RefreshOrderBoardCommand) ([]order.Order, error)
}

// OrderBoardRefreshJob periodically replaces the order board with the server's order list.
type OrderBoardRefreshJob struct {
	handler  boardRefresher
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOrderBoardRefreshJob creates the job. An empty schedule means DefaultRefreshSchedule.
func NewOrderBoardRefreshJob(handler boardRefresher, schedule string, logger *slog.Logger) *OrderBoardRefreshJob {
	if schedule == "" {
		schedule = DefaultRefreshSchedule
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "order_board_refresh_job")

	return &OrderBoardRefreshJob{
		handler:  handler,
		schedule: schedule,
		timeout:  30 * time.Second,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger: logger})),
		),
		logger: logger,
	}
}

func (j *OrderBoardRefreshJob) Name() string {
	return "order board refresh"
}

// Start schedules the job.
func (j *OrderBoardRefreshJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Order board refresh job started", "schedule", j.schedule)
	return nil
}

// Run performs one refresh.
func (j *OrderBoardRefreshJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	orders, err := j.handler.Handle(ctx, commands.NewRefreshOrderBoardCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Order board refresh failed", "error", err)
		return
	}
	j.logger.DebugContext(ctx, "Order board refreshed", "orders", len(orders))
}

// Stop waits for a running refresh to finish.
func (j *OrderBoardRefreshJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Order board refresh job stopped")
}

// cronLogger routes cron's own messages to slog.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
