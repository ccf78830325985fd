package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/0xsj/overwatch-mastermind/internal/telemetry"
)

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	provider, err := telemetry.Setup(context.Background(), telemetry.Config{ServiceName: "test"})
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	_, span := provider.Tracer("test").Start(context.Background(), "op")
	if span.SpanContext().IsValid() {
		t.Error("noop provider should produce invalid span contexts")
	}
	span.End()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := provider.Shutdown(ctx); err != nil {
		t.Errorf("noop Shutdown() error = %v", err)
	}
}

func TestSetup_CreatesProviderWhenEndpointSet(t *testing.T) {
	// Non-routable address, so nothing is exported.
	provider, err := telemetry.Setup(context.Background(), telemetry.Config{
		OTLPEndpoint: "http://192.0.2.1:4318",
		ServiceName:  "test",
		SampleRatio:  1,
	})
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	_, span := provider.Tracer("test").Start(context.Background(), "op")
	if !span.SpanContext().IsValid() {
		t.Error("sdk provider should produce valid span contexts")
	}
	span.End()

	// The export may fail against the unreachable collector; Shutdown must still return.
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	_ = provider.Shutdown(ctx)
}

func TestConfig_Enabled(t *testing.T) {
	if (telemetry.Config{}).Enabled() {
		t.Error("empty config should be disabled")
	}
	if !(telemetry.Config{OTLPEndpoint: "http://localhost:4318"}).Enabled() {
		t.Error("config with endpoint should be enabled")
	}
}
