package telemetry_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/impact/internal/adapters/telemetry"
	"go.trai.ch/impact/internal/core/ports"
)

func TestInterfaceSatisfaction(_ *testing.T) {
	var _ ports.Tracer = (*telemetry.OTelTracer)(nil)
	var _ ports.Span = (*telemetry.OTelSpan)(nil)
	var _ ports.Tracer = (*telemetry.NoOpTracer)(nil)
	var _ ports.Span = (*telemetry.NoOpSpan)(nil)
}

func newRecorder(t *testing.T) (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })
	return sr, tp
}

func TestOTelTracer_Attributes(t *testing.T) {
	sr, tp := newRecorder(t)
	tracer := telemetry.NewOTelTracerWithProvider(tp, "test")

	_, span := tracer.Start(t.Context(), "build")
	span.SetAttribute("files", 12)
	span.SetAttribute("dialect", "python")
	span.SetAttribute("fallback", true)
	span.SetAttribute("ratio", 0.5)
	span.SetAttribute("count", int64(7))
	span.SetAttribute("roots", []string{"/a", "/b"})
	span.SetAttribute("other", struct{ N int }{N: 1})
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "build", spans[0].Name())

	attrs := make(map[attribute.Key]attribute.Value)
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, int64(12), attrs["files"].AsInt64())
	assert.Equal(t, "python", attrs["dialect"].AsString())
	assert.True(t, attrs["fallback"].AsBool())
	assert.InDelta(t, 0.5, attrs["ratio"].AsFloat64(), 0)
	assert.Equal(t, int64(7), attrs["count"].AsInt64())
	assert.Equal(t, []string{"/a", "/b"}, attrs["roots"].AsStringSlice())
	assert.Equal(t, "{1}", attrs["other"].AsString())
}

func TestOTelTracer_RecordError(t *testing.T) {
	sr, tp := newRecorder(t)
	tracer := telemetry.NewOTelTracerWithProvider(tp, "test")

	_, span := tracer.Start(t.Context(), "catalog")
	span.RecordError(nil)
	span.RecordError(errors.New("root missing"))
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "root missing", spans[0].Status().Description)
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "exception", spans[0].Events()[0].Name)
}

func TestOTelTracer_NestedSpans(t *testing.T) {
	sr, tp := newRecorder(t)
	tracer := telemetry.NewOTelTracerWithProvider(tp, "test")

	ctx, parent := tracer.Start(t.Context(), "select")
	_, child := tracer.Start(ctx, "resolve")
	child.End()
	parent.End()

	spans := sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "resolve", spans[0].Name())
	assert.Equal(t, spans[1].SpanContext().SpanID(), spans[0].Parent().SpanID())
}

func TestNoOpTracer_Start(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()
	ctx, span := tracer.Start(t.Context(), "test-span")
	assert.Equal(t, t.Context(), ctx)

	span.SetAttribute("key", "value")
	span.RecordError(errors.New("ignored"))
	span.End()
}

func TestInstallFileExporter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "trace.json")

	shutdown, err := telemetry.InstallFileExporter(path)
	require.NoError(t, err)

	tracer := telemetry.NewOTelTracer(telemetry.InstrumentationName)
	_, span := tracer.Start(t.Context(), "select")
	span.SetAttribute("tests", 3)
	span.End()

	require.NoError(t, shutdown(t.Context()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var record map[string]any
	require.NoError(t, json.NewDecoder(bytes.NewReader(data)).Decode(&record))
	assert.Equal(t, "select", record["Name"])
}

func TestInstallFileExporter_BadPath(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	_, err := telemetry.InstallFileExporter(filepath.Join(blocker, "trace.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create trace directory")
}
