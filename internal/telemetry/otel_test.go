package telemetry

import (
	"context"
	"testing"

	"github.com/shanture-next/internal/config"
)

func TestInitDisabledReturnsNoop(t *testing.T) {
	shutdown, err := Init(context.Background(), config.TelemetryConfig{Enabled: false})
	if err != nil {
		t.Fatalf("init disabled telemetry failed: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("noop shutdown failed: %v", err)
	}
}

func TestExporterNameAndRatio(t *testing.T) {
	if got := exporterName(config.TelemetryConfig{Exporter: " OTLP "}); got != "otlp" {
		t.Fatalf("exporter want otlp got %s", got)
	}
	if got := exporterName(config.TelemetryConfig{Exporter: "jaeger"}); got != "stdout" {
		t.Fatalf("unknown exporter should fall back to stdout, got %s", got)
	}
	if normalizeRatio(0) != 1 || normalizeRatio(1.5) != 1 || normalizeRatio(0.25) != 0.25 {
		t.Fatalf("unexpected ratio normalization")
	}
}
