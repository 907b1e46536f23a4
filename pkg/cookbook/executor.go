// Package cookbook replays previously learned action sequences for pages the
// system has seen and scored before, skipping the matching and planning
// stages entirely. Replay is DOM-first with a coordinate-based GUI fallback,
// gated by per-action health and a consecutive-failure circuit breaker.
package cookbook

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/autoapply/fillengine/api/schemas"
	"github.com/autoapply/fillengine/pkg/executor"
	"github.com/autoapply/fillengine/pkg/interfaces"
	"github.com/autoapply/fillengine/pkg/verify"
)

// Config tunes the replay gates.
type Config struct {
	// MinHealth is the per-action health floor; actions below it are skipped
	// without an attempt.
	MinHealth float64
	// MaxConsecutiveFailures aborts the whole replay once reached.
	MaxConsecutiveFailures int
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{MinHealth: 0.3, MaxConsecutiveFailures: 3}
}

// Overall success thresholds: most of the page must actually be attempted,
// something must have worked, and failures must stay marginal. This guards
// against declaring success when most actions were silently skipped.
const (
	minAttemptedFraction = 0.75
	maxFailureRatio      = 0.30
)

// Executor replays one CookbookPageEntry against the live page.
type Executor struct {
	logger   *zap.Logger
	driver   interfaces.Driver
	tier0    *executor.Executor
	verifier *verify.Verifier
	cfg      Config
}

func New(logger *zap.Logger, driver interfaces.Driver, tier0 *executor.Executor, verifier *verify.Verifier, cfg Config) *Executor {
	return &Executor{
		logger:   logger.Named("cookbook"),
		driver:   driver,
		tier0:    tier0,
		verifier: verifier,
		cfg:      cfg,
	}
}

// Execute replays every recorded action in order. The returned error is
// non-nil only when the circuit breaker trips or the browser dies; partial
// failure is data in the ReplayResult.
func (e *Executor) Execute(ctx context.Context, entry *schemas.CookbookPageEntry, userData map[string]string) (*schemas.ReplayResult, error) {
	res := &schemas.ReplayResult{Total: len(entry.Actions), AbortedAt: -1}
	consecutive := 0

	for i, action := range entry.Actions {
		value, ok := ResolveTemplate(action.ValueTemplate, userData)
		if !ok {
			e.logger.Debug("skipping action, unresolvable template",
				zap.Int("index", i), zap.String("template", action.ValueTemplate))
			res.Skipped++
			res.TemplateMiss++
			continue
		}

		health := action.Health
		if health == 0 {
			health = entry.PageHealth
		}
		if health < e.cfg.MinHealth {
			e.logger.Debug("skipping action, health below threshold",
				zap.Int("index", i), zap.Float64("health", health))
			res.Skipped++
			res.HealthSkipped++
			continue
		}

		res.Attempted++
		ok, err := e.replayAction(ctx, res, &action, value)
		if err != nil {
			return res, err
		}
		if ok {
			res.Succeeded++
			consecutive = 0
			continue
		}
		res.Failed++
		consecutive++
		if consecutive >= e.cfg.MaxConsecutiveFailures {
			res.Aborted = true
			res.AbortedAt = i
			e.finalize(res)
			return res, fmt.Errorf("replay aborted at action %d after %d consecutive failures", i, consecutive)
		}
	}

	e.finalize(res)
	e.logger.Info("cookbook replay finished",
		zap.Int("total", res.Total),
		zap.Int("attempted", res.Attempted),
		zap.Int("succeeded", res.Succeeded),
		zap.Int("failed", res.Failed),
		zap.Int("skipped", res.Skipped),
		zap.Bool("success", res.Success))
	return res, nil
}

// finalize applies the joint success conditions.
func (e *Executor) finalize(res *schemas.ReplayResult) {
	if res.Aborted || res.Total == 0 || res.Attempted == 0 {
		res.Success = false
		return
	}
	attemptedFraction := float64(res.Attempted) / float64(res.Total)
	res.Success = attemptedFraction > minAttemptedFraction &&
		res.Succeeded >= 1 &&
		float64(res.Failed) <= maxFailureRatio*float64(res.Succeeded)
}

// replayAction tries the DOM descriptor first, verifying the write, and only
// falls back to the recorded GUI replay when the DOM path fails.
func (e *Executor) replayAction(ctx context.Context, res *schemas.ReplayResult, action *schemas.CookbookAction, value string) (bool, error) {
	if action.DOM != nil {
		ok, err := e.replayDOM(ctx, action, value)
		if err != nil || ok {
			return ok, err
		}
	}
	if action.GUI != nil {
		res.GUIFallbacks++
		return e.replayGUI(ctx, action, value)
	}
	return false, nil
}

func (e *Executor) replayDOM(ctx context.Context, action *schemas.CookbookAction, value string) (bool, error) {
	field := action.Field
	field.Selector = action.DOM.Selector
	item := &schemas.ActionItem{
		Field: field,
		Verb:  action.DOM.Verb,
		Value: value,
		Tier:  schemas.TierDOM,
	}
	out, err := e.tier0.ExecuteTier0(ctx, item)
	if err != nil {
		return false, err
	}
	if !out.OK() {
		return false, nil
	}
	vr, err := e.verifier.Verify(ctx, field, value)
	if err != nil {
		return false, err
	}
	return vr.Passed, nil
}

// replayGUI clicks the recorded coordinates and, for click-then-type actions,
// types the value and verifies the result the same way a DOM replay is
// verified. Click-only replays trust the recorded descriptor.
func (e *Executor) replayGUI(ctx context.Context, action *schemas.CookbookAction, value string) (bool, error) {
	if err := e.driver.ClickXY(ctx, action.GUI.X, action.GUI.Y); err != nil {
		if executor.IsFatalBrowserError(err) || ctx.Err() != nil {
			return false, err
		}
		return false, nil
	}
	if action.GUI.Mode == schemas.GUIClickOnly {
		return true, nil
	}
	if err := e.driver.TypeKeys(ctx, value); err != nil {
		if executor.IsFatalBrowserError(err) || ctx.Err() != nil {
			return false, err
		}
		return false, nil
	}
	vr, err := e.verifier.Verify(ctx, action.Field, value)
	if err != nil {
		return false, err
	}
	return vr.Passed, nil
}
