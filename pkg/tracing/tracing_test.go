package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/mocktracer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitTracer_NoHostIsNoop(t *testing.T) {
	tracer, closeFn, err := InitTracer(Config{})
	require.NoError(t, err)
	require.NotNil(t, tracer)
	assert.NotPanics(t, closeFn)
}

func TestStartSpanAndFail(t *testing.T) {
	mt := mocktracer.New()
	prev := opentracing.GlobalTracer()
	opentracing.SetGlobalTracer(mt)
	defer opentracing.SetGlobalTracer(prev)

	span, ctx := StartSpan(context.Background(), "scheduler.scan", map[string]any{"task": "scan"})
	require.NotNil(t, opentracing.SpanFromContext(ctx))
	Fail(span, errors.New("boom"))
	Fail(span, nil)
	span.Finish()

	finished := mt.FinishedSpans()
	require.Len(t, finished, 1)
	assert.Equal(t, "scheduler.scan", finished[0].OperationName)
	assert.Equal(t, "scan", finished[0].Tag("task"))
	assert.Equal(t, true, finished[0].Tag("error"))
}
