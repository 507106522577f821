// Package metrics exposes redactor instrumentation through an OpenTelemetry meter
// provider backed by a private Prometheus registry.
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Option customizes a Provider.
type Option func(*providerOptions)

type providerOptions struct {
	version        string
	runtimeMetrics bool
}

// WithVersion sets the version label of the build info gauge.
func WithVersion(version string) Option {
	return func(o *providerOptions) {
		if version != "" {
			o.version = version
		}
	}
}

// WithoutRuntimeMetrics skips the Go runtime and process collectors.
func WithoutRuntimeMetrics() Option {
	return func(o *providerOptions) {
		o.runtimeMetrics = false
	}
}

// Provider owns the meter provider every redactor instrument is created from and the
// registry the /metrics endpoint serves.
type Provider struct {
	meterProvider *metric.MeterProvider
	registry      *prometheus.Registry
	namespace     string
}

// NewProvider builds a provider whose registry carries the OpenTelemetry exporter,
// a <namespace>_build_info gauge and, unless disabled, the Go runtime collectors.
func NewProvider(namespace string, opts ...Option) (*Provider, error) {
	options := providerOptions{version: "dev", runtimeMetrics: true}
	for _, opt := range opts {
		opt(&options)
	}

	registry := prometheus.NewRegistry()

	exporter, err := promexporter.New(promexporter.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	buildInfo := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "build_info",
		Help:      "Build information of the running redactor.",
		ConstLabels: prometheus.Labels{
			"version":   options.version,
			"goversion": runtime.Version(),
		},
	})
	buildInfo.Set(1)

	toRegister := []prometheus.Collector{buildInfo}
	if options.runtimeMetrics {
		toRegister = append(toRegister,
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: namespace}),
		)
	}
	for _, collector := range toRegister {
		if err := registry.Register(collector); err != nil {
			return nil, fmt.Errorf("failed to register collector: %w", err)
		}
	}

	return &Provider{
		meterProvider: metric.NewMeterProvider(metric.WithReader(exporter)),
		registry:      registry,
		namespace:     namespace,
	}, nil
}

// Handler serves the registry in the Prometheus exposition format.
func (p *Provider) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// MeterProvider returns the meter provider instruments are created from.
func (p *Provider) MeterProvider() *metric.MeterProvider {
	return p.meterProvider
}

// Namespace returns the metric name prefix.
func (p *Provider) Namespace() string {
	return p.namespace
}

// Shutdown flushes and stops the meter provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.meterProvider == nil {
		return nil
	}
	return p.meterProvider.Shutdown(ctx)
}
