package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	httpapi "steakz/internal/adapters/in/http"
	"steakz/internal/adapters/out/apiclient"
	"steakz/internal/adapters/out/localstore"
	"steakz/internal/adapters/out/postgres/kvrepo"
	"steakz/internal/adapters/out/rabbitmq"
	"steakz/internal/adapters/out/render"
	"steakz/internal/core/application/board"
	"steakz/internal/core/application/cartstore"
	"steakz/internal/core/application/usecases/commands"
	"steakz/internal/core/application/usecases/queries"
	"steakz/internal/core/domain/services"
	"steakz/internal/core/ports"
	"steakz/internal/jobs"

	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// CompositionRoot owns every long-lived component of one terminal process.
type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger

	gateway   ports.OrderGateway
	storage   ports.CartStorage
	publisher ports.OrderEventPublisher
	closers   []io.Closer

	cart  *cartstore.Store
	board *board.Board

	refreshHandler      *commands.RefreshOrderBoardCommandHandler
	placeOrderHandler   *commands.PlaceOrderCommandHandler
	changeStatusHandler commands.ChangeOrderStatusCommandHandler
}

func NewCompositionRoot(ctx context.Context, cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{cfg: cfg, logger: logger}

	c.gateway = apiclient.New(apiclient.Config{
		BaseURL: cfg.APIBaseURL,
		Token:   cfg.APIToken,
		Timeout: cfg.APITimeout,
	}, logger)

	storage, err := c.openCartStorage(ctx)
	if err != nil {
		return nil, err
	}
	c.storage = storage

	publisher, err := c.openPublisher(ctx)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.publisher = publisher

	c.cart = cartstore.New(ctx, c.storage, logger)
	c.board = board.New()

	var filter ports.OrderFilter
	if cfg.OrderBoardBranchID > 0 {
		branchID := cfg.OrderBoardBranchID
		filter.BranchID = &branchID
	}
	c.refreshHandler = commands.NewRefreshOrderBoardCommandHandler(c.gateway, c.board, filter, logger)
	c.placeOrderHandler = commands.NewPlaceOrderCommandHandler(c.cart, c.gateway, c.publisher, logger,
		commands.PlaceOrderSettings{
			FallbackBranchID: cfg.FallbackBranchID,
			ReceiptAttempts:  cfg.ReceiptRetryAttempts,
			RetryDelay:       cfg.ReceiptRetryDelay,
		})
	c.changeStatusHandler = commands.NewChangeOrderStatusCommandHandler(c.gateway, c.board, c.refreshHandler, logger)

	return c, nil
}

func (c *CompositionRoot) openCartStorage(ctx context.Context) (ports.CartStorage, error) {
	if c.cfg.CartStorage != CartStoragePostgres {
		return localstore.NewFileStorage(c.cfg.CartStorageDir)
	}

	db, err := gorm.Open(postgresdriver.Open(c.cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, sqlDB)

	repo := kvrepo.NewGormKeyValueRepository(db)
	if err := repo.Migrate(ctx); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("migrate cart storage: %w", err)
	}
	c.logger.Info("cart storage ready", "backend", CartStoragePostgres, "host", c.cfg.DBHost)
	return repo, nil
}

func (c *CompositionRoot) openPublisher(ctx context.Context) (ports.OrderEventPublisher, error) {
	if c.cfg.AMQPURL == "" {
		c.logger.Info("AMQP_URL not set, order events are not published")
		return rabbitmq.NopPublisher{}, nil
	}

	p, err := rabbitmq.Dial(ctx, c.cfg.AMQPURL, c.cfg.AMQPExchange, 5, c.logger)
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, p)
	return p, nil
}

func (c *CompositionRoot) refresh(ctx context.Context) error {
	_, err := c.refreshHandler.Handle(ctx, commands.NewRefreshOrderBoardCommand())
	return err
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.board, c.refresh)
}

func (c *CompositionRoot) CreateGetReceiptQueryHandler() queries.GetReceiptQueryHandler {
	loc, err := time.LoadLocation(c.cfg.ReceiptTimezone)
	if err != nil {
		loc = time.UTC
	}
	return queries.NewGetReceiptQueryHandler(c.board, c.refresh, services.NewReceiptDeriver(loc))
}

func (c *CompositionRoot) CreateGetReceiptsQueryHandler() queries.GetReceiptsQueryHandler {
	return queries.NewGetReceiptsQueryHandler(c.board, c.refresh)
}

// CreateServer wires the HTTP surface.
func (c *CompositionRoot) CreateServer() *httpapi.Server {
	return httpapi.NewServer(
		c.cart,
		c.placeOrderHandler,
		c.changeStatusHandler,
		c.CreateGetOrdersQueryHandler(),
		c.CreateGetReceiptQueryHandler(),
		c.CreateGetReceiptsQueryHandler(),
		render.NewTextRenderer(c.cfg.ReceiptTitle, c.cfg.ReceiptWidth),
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.logger,
		jobs.NewOrderBoardRefreshJob(c.refreshHandler, c.cfg.OrderRefreshSchedule, c.logger),
	)
}

// Close releases the database connection and the broker connection, if any.
func (c *CompositionRoot) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i].Close())
	}
	c.closers = nil
	return errors.Join(errs...)
}
