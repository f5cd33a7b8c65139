package observability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	promexp "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/sdk/instrumentation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"
)

const (
	MetricsStdout     = "stdout"
	MetricsPrometheus = "prometheus"

	// meter names used by the components
	ScopeTxSystem = "txsystem"
	ScopeRESTAPI  = "rest_api"
)

/*
Observability bundles the logger and the meter provider of the process.
*/
type Observability struct {
	log *slog.Logger
	mp  metric.MeterProvider
	pr  *prometheus.Registry

	shutdownFuncs []func(context.Context) error
}

/*
New creates observability with metrics exported by "metrics" exporter,
empty string disables metrics.
*/
func New(metrics string, log *slog.Logger) (*Observability, error) {
	o := &Observability{log: log, mp: noop.NewMeterProvider()}
	if metrics == "" {
		return o, nil
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			semconv.ServiceName("ledgercore"),
			semconv.ServiceVersion("0.1.0"),
		))
	if err != nil {
		return nil, fmt.Errorf("creating OTEL resource: %w", err)
	}

	mp, err := o.initMeterProvider(metrics, res)
	if err != nil {
		return nil, fmt.Errorf("initialize meter provider: %w", err)
	}
	o.mp = mp
	o.shutdownFuncs = append(o.shutdownFuncs, mp.Shutdown)
	return o, nil
}

func (o *Observability) Logger() *slog.Logger {
	return o.log
}

func (o *Observability) Meter(name string, opts ...metric.MeterOption) metric.Meter {
	return o.mp.Meter(name, opts...)
}

// MetricsHandler returns nil when Prometheus exporter is not in use.
func (o *Observability) MetricsHandler() http.Handler {
	if o.pr == nil {
		return nil
	}
	return promhttp.HandlerFor(o.pr, promhttp.HandlerOpts{MaxRequestsInFlight: 1})
}

func (o *Observability) PrometheusRegisterer() prometheus.Registerer {
	if o.pr == nil {
		return nil
	}
	return o.pr
}

func (o *Observability) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var errs []error
	for _, fn := range o.shutdownFuncs {
		if err := fn(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("observability shutdown: %w", errors.Join(errs...))
	}
	return nil
}

func (o *Observability) initMeterProvider(exporter string, res *resource.Resource) (*sdkmetric.MeterProvider, error) {
	var reader sdkmetric.Reader
	switch exporter {
	case MetricsStdout:
		me, err := stdoutmetric.New()
		if err != nil {
			return nil, fmt.Errorf("creating stdout exporter: %w", err)
		}
		reader = sdkmetric.NewPeriodicReader(me)
	case MetricsPrometheus:
		var err error
		o.pr = prometheus.NewRegistry()
		if reader, err = promexp.New(promexp.WithRegisterer(o.pr), promexp.WithNamespace("ledger")); err != nil {
			return nil, fmt.Errorf("creating Prometheus exporter: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported exporter %q", exporter)
	}

	return sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
		sdkmetric.WithView(Views()...),
	), nil
}

// Views returns histogram bucket configuration of the duration metrics.
func Views() []sdkmetric.View {
	μs := time.Microsecond.Seconds()
	return []sdkmetric.View{
		sdkmetric.NewView(
			sdkmetric.Instrument{
				Name:  "tx.duration",
				Scope: instrumentation.Scope{Name: ScopeTxSystem},
			},
			sdkmetric.Stream{
				Aggregation: sdkmetric.AggregationExplicitBucketHistogram{
					Boundaries: []float64{10 * μs, 25 * μs, 50 * μs, 100 * μs, 200 * μs, 400 * μs, 800 * μs, 0.0016, 0.005},
				},
			},
		),
		sdkmetric.NewView(
			sdkmetric.Instrument{
				Name:  "duration",
				Scope: instrumentation.Scope{Name: ScopeRESTAPI},
			},
			sdkmetric.Stream{
				Aggregation: sdkmetric.AggregationExplicitBucketHistogram{
					Boundaries: []float64{100 * μs, 200 * μs, 400 * μs, 800 * μs, 0.0016, 0.01, 0.05, 0.1},
				},
			},
		),
	}
}
