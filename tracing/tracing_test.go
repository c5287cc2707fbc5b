package tracing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracingFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "spans.json")
	if !assert.NoError(t, Init("schedsim", "0.0.1", fname)) {
		return
	}

	ctx, run := StartSpan(context.Background(), "run")
	run.WithAttributes(map[string]string{"algorithm": "rr"})
	_, tick := StartSpan(ctx, "tick")
	tick.WithInt("tick", 3).Event("dispatched", 2)
	EndSpan(tick, errors.New("deadlock"))
	EndSpan(run, nil)

	data, err := os.ReadFile(fname)
	assert.NoError(t, err)
	assert.Contains(t, string(data), `"Name":"tick"`)
	assert.Contains(t, string(data), "deadlock")
	assert.Contains(t, string(data), "dispatched")
}

func TestNilSpan(t *testing.T) {
	var span *Span
	assert.Nil(t, span.WithAttributes(map[string]string{"a": "b"}))
	span.Event("x", 1)
	EndSpan(span, nil)
}
