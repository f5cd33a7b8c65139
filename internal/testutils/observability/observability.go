package observability

import (
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	testlogr "github.com/hashgraph/hedera-services-sub009/internal/testutils/logger"
)

/*
NOP creates observability implementation where everything is no-op.
Use it for tests for which it absolutely doesn't make sense to create any logs or metrics.
*/
func NOP() *Observability {
	return &Observability{log: testlogr.NOP(), mp: noop.NewMeterProvider()}
}

/*
Default creates observability which logs into the test log and collects
metrics into memory, use Int64Sum to read them.
*/
func Default(t testing.TB) *Observability {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() {
		if err := mp.Shutdown(context.Background()); err != nil {
			t.Logf("shutting down meter provider: %v", err)
		}
	})
	return &Observability{log: testlogr.New(t), mp: mp, reader: reader}
}

type Observability struct {
	log    *slog.Logger
	mp     metric.MeterProvider
	reader *sdkmetric.ManualReader
}

func (o *Observability) Logger() *slog.Logger { return o.log }

func (o *Observability) Meter(name string, options ...metric.MeterOption) metric.Meter {
	return o.mp.Meter(name, options...)
}

func (o *Observability) MetricsHandler() http.Handler { return nil }

func (o *Observability) PrometheusRegisterer() prometheus.Registerer { return nil }

func (o *Observability) Shutdown() error { return nil }

/*
Int64Sum returns sum of the data points of int64 counter or gauge "name"
whose attributes include all of "attrs".
*/
func (o *Observability) Int64Sum(t testing.TB, name string, attrs ...attribute.KeyValue) int64 {
	t.Helper()
	if o.reader == nil {
		t.Fatal("observability doesn't collect metrics")
	}
	var rm metricdata.ResourceMetrics
	if err := o.reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collecting metrics: %v", err)
	}

	var total int64
	add := func(points []metricdata.DataPoint[int64]) {
		for _, dp := range points {
			if hasAttributes(dp.Attributes, attrs) {
				total += dp.Value
			}
		}
	}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				add(data.DataPoints)
			case metricdata.Gauge[int64]:
				add(data.DataPoints)
			}
		}
	}
	return total
}

func hasAttributes(set attribute.Set, attrs []attribute.KeyValue) bool {
	for _, a := range attrs {
		if v, ok := set.Value(a.Key); !ok || v.Emit() != a.Value.Emit() {
			return false
		}
	}
	return true
}
