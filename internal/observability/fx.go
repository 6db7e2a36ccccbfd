package observability

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/smallbiznis/storefront/internal/config"
	"github.com/smallbiznis/storefront/internal/observability/logger"
	"github.com/smallbiznis/storefront/internal/observability/metrics"
	"github.com/smallbiznis/storefront/internal/observability/tracing"
)

const serviceName = "storefront"

var Module = fx.Module("observability",
	fx.Provide(
		newLogger,
		newTracingConfig,
		tracing.NewProvider,
		newMetricsConfig,
		newMeterProvider,
		metrics.NewHTTPMetrics,
	),
	fx.Invoke(registerGlobalLogger),
	fx.Invoke(func(*sdktrace.TracerProvider) {}),
)

func newLogger(cfg config.Config) (*zap.Logger, error) {
	return logger.New(cfg.Environment)
}

func registerGlobalLogger(log *zap.Logger) {
	zap.ReplaceGlobals(log)
}

func newTracingConfig(cfg config.Config) tracing.Config {
	return tracing.Config{
		Enabled:          cfg.TracingEnabled,
		ServiceName:      serviceName,
		Environment:      cfg.Environment,
		ExporterEndpoint: cfg.TracingExporterEndpoint,
		ExporterProtocol: cfg.TracingExporterProtocol,
		SamplingRatio:    cfg.TracingSamplingRatio,
	}
}

func newMetricsConfig(cfg config.Config) metrics.Config {
	return metrics.Config{
		ServiceName: serviceName,
		Environment: cfg.Environment,
	}
}

func newMeterProvider() metric.MeterProvider {
	return otel.GetMeterProvider()
}
