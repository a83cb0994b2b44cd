package telemetry

import (
	"context"
	"fmt"
	"strings"

	"github.com/shanture-next/internal/config"
	"github.com/shanture-next/internal/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const defaultServiceName = "shanture-api"

// ShutdownFunc 刷新并关闭追踪导出
type ShutdownFunc func(context.Context) error

// Init 初始化全局 TracerProvider，未启用时返回空操作
func Init(ctx context.Context, cfg config.TelemetryConfig) (ShutdownFunc, error) {
	noop := func(context.Context) error { return nil }
	if !cfg.Enabled {
		return noop, nil
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = defaultServiceName
	}
	res, err := resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithTelemetrySDK(),
		resource.WithAttributes(attribute.String("service.name", serviceName)),
	)
	if err != nil {
		return noop, fmt.Errorf("build telemetry resource failed: %w", err)
	}

	exporter, err := newSpanExporter(ctx, cfg)
	if err != nil {
		return noop, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(normalizeRatio(cfg.SampleRatio)))),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	logger.Infow("telemetry_initialized", "exporter", exporterName(cfg), "service_name", serviceName)

	return provider.Shutdown, nil
}

func newSpanExporter(ctx context.Context, cfg config.TelemetryConfig) (sdktrace.SpanExporter, error) {
	if exporterName(cfg) == "otlp" {
		opts := []otlptracehttp.Option{}
		if endpoint := strings.TrimSpace(cfg.Endpoint); endpoint != "" {
			opts = append(opts, otlptracehttp.WithEndpoint(endpoint))
		}
		if cfg.Insecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		exporter, err := otlptracehttp.New(ctx, opts...)
		if err == nil {
			return exporter, nil
		}
		logger.Warnw("telemetry_otlp_exporter_failed", "error", err, "fallback", "stdout")
	}
	return stdouttrace.New(stdouttrace.WithPrettyPrint())
}

func exporterName(cfg config.TelemetryConfig) string {
	if strings.EqualFold(strings.TrimSpace(cfg.Exporter), "otlp") {
		return "otlp"
	}
	return "stdout"
}

func normalizeRatio(ratio float64) float64 {
	if ratio <= 0 || ratio > 1 {
		return 1
	}
	return ratio
}
