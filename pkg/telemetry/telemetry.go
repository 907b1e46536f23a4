// Package telemetry fans fill-engine events out to an optional sink. A sink
// failure is logged and dropped; it can never abort a fill run.
package telemetry

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/autoapply/fillengine/pkg/interfaces"
)

// Emitter wraps a TelemetryFunc so emission is fire-and-forget. A nil sink is
// valid and turns Emit into a no-op.
type Emitter struct {
	logger *zap.Logger
	sink   interfaces.TelemetryFunc
	wg     sync.WaitGroup
}

func New(sink interfaces.TelemetryFunc, logger *zap.Logger) *Emitter {
	return &Emitter{logger: logger.Named("telemetry"), sink: sink}
}

// Emit dispatches one event asynchronously. Sink errors and panics are
// contained here.
func (e *Emitter) Emit(ctx context.Context, event string, meta map[string]any) {
	if e.sink == nil {
		return
	}
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				e.logger.Warn("telemetry sink panicked", zap.String("event", event), zap.Any("panic", r))
			}
		}()
		if err := e.sink(ctx, event, meta); err != nil {
			e.logger.Warn("telemetry sink failed", zap.String("event", event), zap.Error(err))
		}
	}()
}

// Flush blocks until all in-flight events have been delivered or dropped.
func (e *Emitter) Flush() {
	e.wg.Wait()
}
