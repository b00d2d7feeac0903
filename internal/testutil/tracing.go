package testutil

import (
	"sync"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

var (
	traceOnce     sync.Once
	traceExporter *tracetest.InMemoryExporter
)

// SetupMockTraceProvider installs one process-wide provider that records
// spans in memory. Package tracers delegate to the first provider set, so
// every caller shares the same exporter; Reset it before asserting.
func SetupMockTraceProvider() *tracetest.InMemoryExporter {
	traceOnce.Do(func() {
		traceExporter = tracetest.NewInMemoryExporter()
		provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(traceExporter))
		otel.SetTracerProvider(provider)
	})
	return traceExporter
}
