package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	natsclient "github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"

	"github.com/0xsj/overwatch-pkg/log"

	opsgrpc "github.com/0xsj/overwatch-mastermind/internal/adapter/inbound/grpc"
	"github.com/0xsj/overwatch-mastermind/internal/adapter/inbound/httpserver"
	natsadapter "github.com/0xsj/overwatch-mastermind/internal/adapter/outbound/nats"
	"github.com/0xsj/overwatch-mastermind/internal/adapter/outbound/postgres"
	"github.com/0xsj/overwatch-mastermind/internal/adapter/outbound/randomorg"
	redisstore "github.com/0xsj/overwatch-mastermind/internal/adapter/outbound/redis"
	appcommand "github.com/0xsj/overwatch-mastermind/internal/app/command"
	appquery "github.com/0xsj/overwatch-mastermind/internal/app/query"
	"github.com/0xsj/overwatch-mastermind/internal/app/service"
	"github.com/0xsj/overwatch-mastermind/internal/config"
	"github.com/0xsj/overwatch-mastermind/internal/domain/model"
	"github.com/0xsj/overwatch-mastermind/internal/port/inbound/command"
	"github.com/0xsj/overwatch-mastermind/internal/port/inbound/query"
	"github.com/0xsj/overwatch-mastermind/internal/telemetry"
)

const version = "1.0.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// A missing .env file is fine; the environment is authoritative.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := log.NewPretty(log.DefaultConfig())

	logger.Info("starting mastermind service",
		log.String("version", version),
		log.String("http_address", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)),
		log.String("ops_address", fmt.Sprintf("%s:%d", cfg.Ops.Host, cfg.Ops.Port)),
	)

	// Initialize tracing
	tp, err := telemetry.Setup(ctx, telemetry.Config{
		OTLPEndpoint: cfg.Telemetry.OTLPEndpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		SampleRatio:  cfg.Telemetry.SampleRatio,
	})
	if err != nil {
		return fmt.Errorf("failed to set up telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Warn("failed to flush traces", log.String("error", err.Error()))
		}
	}()
	tracer := tp.Tracer("mastermind")

	// Initialize database
	dbPool, err := connectPostgres(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	defer dbPool.Close()

	if err := postgres.Migrate(ctx, dbPool); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize Redis
	redisClient, err := connectRedis(ctx, cfg.Redis, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	defer redisClient.Close()

	// Initialize NATS
	natsConn, err := connectNATS(cfg.NATS, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to nats: %w", err)
	}
	defer natsConn.Close()

	// Initialize adapters
	supplyPool := redisstore.NewSupplyPool(redisClient)
	gameStore := redisstore.NewGameStore(redisClient)
	resultRepo := postgres.NewResultRepository(dbPool)
	publisher := natsadapter.NewEventPublisher(natsConn, cfg.NATS.SubjectPrefix)
	codeGenerator := randomorg.NewClient(randomorg.Config{
		BaseURL: cfg.Generator.BaseURL,
		Timeout: cfg.Generator.Timeout,
	})

	gameConfig := model.GameConfig{
		DigitBase:        cfg.Game.DigitBase,
		MaxCodeLength:    cfg.Game.MaxCodeLength,
		MaxAttemptsLimit: cfg.Game.MaxAttemptsLimit,
		SessionTTL:       cfg.Game.SessionTTL,
	}
	retryConfig := appcommand.RetryConfig{
		MaxTries:        cfg.Retry.MaxTries,
		InitialInterval: cfg.Retry.InitialInterval,
		MaxInterval:     cfg.Retry.MaxInterval,
	}
	if err := retryConfig.Validate(); err != nil {
		return fmt.Errorf("invalid retry config: %w", err)
	}

	// Initialize command handlers
	startGameHandler := appcommand.WithTracing[command.StartGame, command.StartGameResult](
		appcommand.NewStartGameHandler(supplyPool, gameStore, publisher, gameConfig, logger), tracer)
	submitGuessHandler := appcommand.WithTracing[command.SubmitGuess, command.SubmitGuessResult](
		appcommand.NewSubmitGuessHandler(gameStore, resultRepo, publisher, retryConfig, logger), tracer)
	endGameHandler := appcommand.WithTracing[command.EndGame, command.EndGameResult](
		appcommand.NewEndGameHandler(gameStore, resultRepo, publisher, logger), tracer)
	generateDigitsHandler := appcommand.WithTracing[command.GenerateDigits, command.GenerateDigitsResult](
		appcommand.NewGenerateDigitsHandler(supplyPool, codeGenerator, publisher, cfg.Game.DigitBase, logger), tracer)

	// Initialize query handlers
	getStatsHandler := appquery.WithTracing[query.GetStats, query.GetStatsResult](
		appquery.NewGetStatsHandler(gameStore), tracer)
	getPoolStatusHandler := appquery.WithTracing[query.GetPoolStatus, query.GetPoolStatusResult](
		appquery.NewGetPoolStatusHandler(supplyPool, cfg.Pool.LowWatermark, cfg.Pool.AutoRegenWatermark), tracer)
	getQuotaHandler := appquery.WithTracing[query.GetQuota, query.GetQuotaResult](
		appquery.NewGetQuotaHandler(codeGenerator, logger), tracer)
	getSummaryHandler := appquery.WithTracing[query.GetSummary, query.GetSummaryResult](
		appquery.NewGetSummaryHandler(resultRepo), tracer)

	// Initialize ops gRPC server
	opsServer, err := opsgrpc.NewServer(opsgrpc.ServerConfig{
		Host:             cfg.Ops.Host,
		Port:             cfg.Ops.Port,
		EnableReflection: cfg.Ops.EnableReflection,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to create ops server: %w", err)
	}

	// Initialize replenishment scheduler
	replenisher, err := service.NewReplenisher(
		supplyPool,
		codeGenerator,
		publisher,
		opsServer,
		tracer,
		service.ReplenisherConfig{
			Interval:           cfg.Pool.Interval,
			LowWatermark:       cfg.Pool.LowWatermark,
			AutoRegenWatermark: cfg.Pool.AutoRegenWatermark,
			ResupplyQuantity:   cfg.Pool.ResupplyQuantity,
			GenerateTimeout:    cfg.Pool.GenerateTimeout,
			DigitBase:          cfg.Game.DigitBase,
		},
		logger,
	)
	if err != nil {
		return fmt.Errorf("failed to create replenisher: %w", err)
	}

	// Initialize HTTP server
	handler := httpserver.NewHandler(httpserver.HandlerConfig{
		StartGameHandler:      startGameHandler,
		SubmitGuessHandler:    submitGuessHandler,
		EndGameHandler:        endGameHandler,
		GenerateDigitsHandler: generateDigitsHandler,
		GetStatsHandler:       getStatsHandler,
		GetPoolStatusHandler:  getPoolStatusHandler,
		GetQuotaHandler:       getQuotaHandler,
		GetSummaryHandler:     getSummaryHandler,
		RetryAfter:            cfg.Pool.Interval,
		Logger:                logger,
	})

	httpServer, err := httpserver.NewServer(httpserver.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		RequestTimeout: cfg.Server.RequestTimeout,
	}, handler, tracer, logger)
	if err != nil {
		return fmt.Errorf("failed to create http server: %w", err)
	}

	// Start background work and servers
	replenisher.Start(ctx)

	errChan := make(chan error, 2)
	go func() {
		errChan <- opsServer.Run()
	}()
	go func() {
		errChan <- httpServer.Run()
	}()

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("mastermind service started", log.String("address", httpServer.Address()))

	var runErr error
	select {
	case err := <-errChan:
		runErr = fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		logger.Info("received shutdown signal", log.String("signal", sig.String()))
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("failed to stop http server", log.String("error", err.Error()))
	}
	if err := replenisher.Stop(shutdownCtx); err != nil {
		logger.Error("failed to stop replenisher", log.String("error", err.Error()))
	}
	if err := opsServer.Stop(shutdownCtx); err != nil {
		logger.Error("failed to stop ops server", log.String("error", err.Error()))
	}

	if runErr != nil {
		return runErr
	}
	logger.Info("mastermind service stopped gracefully")
	return nil
}

func connectPostgres(ctx context.Context, cfg config.DatabaseConfig, logger log.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	poolCfg.MaxConns = int32(cfg.MaxConns)
	poolCfg.MinConns = int32(cfg.MinConns)
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime
	poolCfg.HealthCheckPeriod = cfg.HealthCheckPeriod

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("connected to postgres",
		log.String("host", cfg.Host),
		log.String("database", cfg.Database),
	)

	return pool, nil
}

func connectRedis(ctx context.Context, cfg config.RedisConfig, logger log.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	logger.Info("connected to redis",
		log.String("address", cfg.Address()),
	)

	return client, nil
}

func connectNATS(cfg config.NATSConfig, logger log.Logger) (*natsclient.Conn, error) {
	opts := []natsclient.Option{
		natsclient.Name("overwatch-mastermind"),
		natsclient.MaxReconnects(cfg.MaxReconnects),
		natsclient.ReconnectWait(cfg.ReconnectWait),
		natsclient.DisconnectErrHandler(func(nc *natsclient.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", log.String("error", err.Error()))
			}
		}),
		natsclient.ReconnectHandler(func(nc *natsclient.Conn) {
			logger.Info("nats reconnected", log.String("url", nc.ConnectedUrl()))
		}),
	}

	conn, err := natsclient.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	logger.Info("connected to nats",
		log.String("url", conn.ConnectedUrl()),
	)

	return conn, nil
}
