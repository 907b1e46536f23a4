package telemetry

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestEmitDelivers(t *testing.T) {
	var mu sync.Mutex
	var events []string

	e := New(func(_ context.Context, event string, meta map[string]any) error {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, event)
		return nil
	}, zap.NewNop())

	e.Emit(context.Background(), "page_scanned", map[string]any{"fields": 3})
	e.Emit(context.Background(), "plan_built", nil)
	e.Flush()

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []string{"page_scanned", "plan_built"}, events)
}

func TestEmitNilSinkIsNoop(t *testing.T) {
	e := New(nil, zap.NewNop())
	e.Emit(context.Background(), "ignored", nil)
	e.Flush()
}

func TestEmitSwallowsSinkError(t *testing.T) {
	e := New(func(context.Context, string, map[string]any) error {
		return errors.New("sink down")
	}, zap.NewNop())
	e.Emit(context.Background(), "event", nil)
	e.Flush()
}

func TestEmitContainsSinkPanic(t *testing.T) {
	e := New(func(context.Context, string, map[string]any) error {
		panic("sink exploded")
	}, zap.NewNop())
	e.Emit(context.Background(), "event", nil)
	e.Flush()
}
