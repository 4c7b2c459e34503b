// Package telemetry provides OpenTelemetry metrics for keyflush.
// Metrics are exposed for Prometheus scraping.
package telemetry

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Config holds telemetry configuration.
type Config struct {
	Enabled bool   `mapstructure:"enabled"`
	Listen  string `mapstructure:"listen"` // Prometheus scrape address, e.g. "127.0.0.1:9464"
}

// Provider holds the initialized meter provider and its scrape handler.
type Provider struct {
	MeterProvider *sdkmetric.MeterProvider
	Registry      *prometheus.Registry
}

// NewProvider configures a meter provider backed by a Prometheus exporter
// and installs it globally. Returns an empty provider if metrics are disabled.
// The returned shutdown function must be called on application exit.
func NewProvider(ctx context.Context, cfg Config, serviceName, version string) (*Provider, func(context.Context), error) {
	noop := func(context.Context) {}

	if !cfg.Enabled {
		return &Provider{}, noop, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(version),
		),
		resource.WithHost(),
	)
	if err != nil {
		return nil, noop, fmt.Errorf("create resource: %w", err)
	}

	registry := prometheus.NewRegistry()
	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return nil, noop, fmt.Errorf("create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	shutdown := func(ctx context.Context) {
		_ = mp.Shutdown(ctx)
	}

	return &Provider{MeterProvider: mp, Registry: registry}, shutdown, nil
}

// Enabled reports whether a meter provider was configured.
func (p *Provider) Enabled() bool {
	return p != nil && p.MeterProvider != nil
}

// Meters returns the configured meter provider, or nil when disabled.
func (p *Provider) Meters() metric.MeterProvider {
	if !p.Enabled() {
		return nil
	}
	return p.MeterProvider
}

// Handler serves the Prometheus exposition of the registry.
func (p *Provider) Handler() http.Handler {
	if !p.Enabled() {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{})
}
