package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/0xsj/overwatch-pkg/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/0xsj/overwatch-mastermind/internal/domain/event"
	"github.com/0xsj/overwatch-mastermind/internal/port/outbound/generator"
	"github.com/0xsj/overwatch-mastermind/internal/port/outbound/messaging"
	"github.com/0xsj/overwatch-mastermind/internal/port/outbound/store"
)

// PoolHealthService is the health service name that tracks pool availability.
const PoolHealthService = "mastermind.v1.SupplyPool"

// StatusReporter receives pool availability after every cycle.
type StatusReporter interface {
	SetServingStatus(service string, serving bool)
}

// ReplenisherConfig holds configuration for background pool replenishment.
type ReplenisherConfig struct {
	Interval           time.Duration
	LowWatermark       int64
	AutoRegenWatermark int64
	ResupplyQuantity   int
	GenerateTimeout    time.Duration
	DigitBase          int
}

// DefaultReplenisherConfig returns default replenisher configuration.
func DefaultReplenisherConfig() ReplenisherConfig {
	return ReplenisherConfig{
		Interval:           60 * time.Second,
		LowWatermark:       10,
		AutoRegenWatermark: 5,
		ResupplyQuantity:   15,
		GenerateTimeout:    10 * time.Second,
		DigitBase:          8,
	}
}

// Validate checks the watermark ordering and bounds.
func (c ReplenisherConfig) Validate() error {
	switch {
	case c.Interval <= 0:
		return errors.New("replenish interval must be positive")
	case c.GenerateTimeout <= 0:
		return errors.New("generate timeout must be positive")
	case c.AutoRegenWatermark < 0:
		return errors.New("auto-regen watermark must not be negative")
	case c.AutoRegenWatermark >= c.LowWatermark:
		return fmt.Errorf("auto-regen watermark (%d) must be below low watermark (%d)", c.AutoRegenWatermark, c.LowWatermark)
	case c.ResupplyQuantity < 1 || c.ResupplyQuantity > 1000:
		return fmt.Errorf("resupply quantity %d is outside 1..1000", c.ResupplyQuantity)
	case c.DigitBase < 2:
		return errors.New("digit base must be at least 2")
	}
	return nil
}

// Replenisher watches the supply pool and refills it from the generator
// when it drops below the auto-regen watermark.
type Replenisher struct {
	pool      store.SupplyPool
	generator generator.CodeGenerator
	publisher messaging.EventPublisher
	status    StatusReporter
	tracer    trace.Tracer
	config    ReplenisherConfig
	logger    log.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

// NewReplenisher creates a new Replenisher. status may be nil.
func NewReplenisher(
	pool store.SupplyPool,
	gen generator.CodeGenerator,
	publisher messaging.EventPublisher,
	status StatusReporter,
	tracer trace.Tracer,
	config ReplenisherConfig,
	logger log.Logger,
) (*Replenisher, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid replenisher config: %w", err)
	}
	return &Replenisher{
		pool:      pool,
		generator: gen,
		publisher: publisher,
		status:    status,
		tracer:    tracer,
		config:    config,
		logger:    logger,
	}, nil
}

// Start launches the background loop. The first cycle runs immediately.
func (r *Replenisher) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})
	r.running = true

	go r.loop(ctx, r.done)

	r.logger.Info("replenisher started",
		log.String("interval", r.config.Interval.String()),
		log.Any("low_watermark", r.config.LowWatermark),
		log.Any("auto_regen_watermark", r.config.AutoRegenWatermark),
	)
}

// Stop cancels the loop and waits for the in-flight cycle to finish.
func (r *Replenisher) Stop(ctx context.Context) error {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return nil
	}
	r.cancel()
	done := r.done
	r.running = false
	r.mu.Unlock()

	select {
	case <-done:
		r.logger.Info("replenisher stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Replenisher) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.config.Interval)
	defer ticker.Stop()

	r.RunOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single inspect-and-refill cycle.
// Panics are recovered so one bad cycle never stops the loop.
func (r *Replenisher) RunOnce(ctx context.Context) {
	ctx, span := r.tracer.Start(ctx, "mastermind.replenish")
	defer span.End()

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("replenish cycle panicked", log.Any("panic", rec))
			span.SetStatus(codes.Error, "panic")
		}
	}()

	size, err := r.pool.Size(ctx)
	if err != nil {
		r.logger.Error("failed to read pool size", log.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "pool size unavailable")
		return
	}
	span.SetAttributes(attribute.Int64("mastermind.pool.size", size))

	if size < r.config.LowWatermark {
		r.logger.Warn("supply pool is low",
			log.Any("size", size),
			log.Any("low_watermark", r.config.LowWatermark),
		)
		_ = r.publisher.Publish(ctx, event.NewPoolLow(size, r.config.LowWatermark))
	}

	if size < r.config.AutoRegenWatermark {
		if added, err := r.replenish(ctx, size); err != nil {
			r.logger.Error("pool replenishment failed",
				log.Any("requested", r.config.ResupplyQuantity),
				log.Any("error", err),
			)
			span.RecordError(err)
			span.SetStatus(codes.Error, "replenish failed")
			_ = r.publisher.Publish(ctx, event.NewPoolReplenishFailed(r.config.ResupplyQuantity, err.Error(), event.TriggerScheduler))
		} else {
			r.logger.Info("supply pool replenished",
				log.Any("added", added),
				log.Any("size_before", size),
			)
			span.SetAttributes(attribute.Int("mastermind.pool.added", added))
			_ = r.publisher.Publish(ctx, event.NewPoolReplenished(added, size, event.TriggerScheduler))
			size += int64(added)
		}
	}

	if r.status != nil {
		r.status.SetServingStatus(PoolHealthService, size > 0)
	}
}

func (r *Replenisher) replenish(ctx context.Context, size int64) (int, error) {
	genCtx, cancel := context.WithTimeout(ctx, r.config.GenerateTimeout)
	defer cancel()

	digits, err := r.generator.Generate(genCtx, r.config.ResupplyQuantity, 0, r.config.DigitBase-1)
	if err != nil {
		return 0, fmt.Errorf("failed to generate digits: %w", err)
	}

	if err := r.pool.Replenish(ctx, digits); err != nil {
		return 0, fmt.Errorf("failed to append %d digits at size %d: %w", len(digits), size, err)
	}

	return len(digits), nil
}
