// Package executor runs single tiered actions against the live page: a
// dispatch table of per-field-type DOM routines for tier 0, with an LLM act
// fallback for tier 3. Tier-0 routines report typed element-state outcomes
// rather than errors; only a dead browser surfaces as an error from here.
package executor

import (
	"context"
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/autoapply/fillengine/api/schemas"
	"github.com/autoapply/fillengine/pkg/interfaces"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Config tunes executor behavior.
type Config struct {
	// SettleDelay is the wait after interactions that trigger async UI
	// (dropdown popups, typeahead suggestion lists).
	SettleDelay time.Duration
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{SettleDelay: 300 * time.Millisecond}
}

type fillFunc func(ctx context.Context, item *schemas.ActionItem) (schemas.FillOutcome, error)

// Executor dispatches actions to DOM routines keyed on the field type.
type Executor struct {
	logger   *zap.Logger
	driver   interfaces.Driver
	actor    interfaces.Actor
	cfg      Config
	handlers map[schemas.FieldType]fillFunc
}

// New builds an Executor. The handler table is fixed at construction; field
// types absent from it (file, upload_button, password, unknown) report
// no_handler and are owned by tier 3.
func New(logger *zap.Logger, driver interfaces.Driver, actor interfaces.Actor, cfg Config) *Executor {
	e := &Executor{
		logger: logger.Named("executor"),
		driver: driver,
		actor:  actor,
		cfg:    cfg,
	}
	e.handlers = map[schemas.FieldType]fillFunc{
		schemas.FieldTypeText:            e.fillText,
		schemas.FieldTypeEmail:           e.fillText,
		schemas.FieldTypePhone:           e.fillText,
		schemas.FieldTypeNumber:          e.fillText,
		schemas.FieldTypeTextarea:        e.fillText,
		schemas.FieldTypeContentEditable: e.fillContentEditable,
		schemas.FieldTypeSelect:          e.fillSelect,
		schemas.FieldTypeCustomDropdown:  e.fillCustomDropdown,
		schemas.FieldTypeRadio:           e.fillRadio,
		schemas.FieldTypeAriaRadio:       e.fillAriaRadio,
		schemas.FieldTypeCheckbox:        e.checkCheckbox,
		schemas.FieldTypeDate:            e.fillDate,
		schemas.FieldTypeTypeahead:       e.typeAndSelect,
	}
	return e
}

// HasHandler reports whether a tier-0 routine exists for the field type.
func (e *Executor) HasHandler(t schemas.FieldType) bool {
	_, ok := e.handlers[t]
	return ok
}

// Execute runs one action. The returned error is non-nil only for fatal
// browser disconnection or context cancellation; every other failure is data
// in the ExecResult, with the tier-0 outcome preserved even after a tier-3
// attempt so callers can classify the root cause.
func (e *Executor) Execute(ctx context.Context, item *schemas.ActionItem) (schemas.ExecResult, error) {
	item.Attempts++
	log := e.logger.With(
		zap.String("selector", item.Field.Selector),
		zap.String("type", string(item.Field.Type)),
		zap.String("verb", string(item.Verb)))

	if item.Tier == schemas.TierDOM {
		out, err := e.ExecuteTier0(ctx, item)
		if err != nil {
			return schemas.ExecResult{}, err
		}
		if out.OK() {
			log.Debug("tier-0 fill succeeded", zap.String("outcome", string(out.Code)))
			return schemas.ExecResult{Success: true, Outcome: out}, nil
		}
		if out.Escalatable() && !e.actor.IsStub() {
			log.Debug("tier-0 failed, escalating", zap.String("outcome", string(out.Code)))
			return e.escalate(ctx, item, out)
		}
		// Stub actor: return the original tier-0 diagnostic as-is. A stub's
		// generic failure would mask it.
		return schemas.ExecResult{Success: false, Outcome: out, Err: outcomeError(out)}, nil
	}

	// Planner-assigned tier 3: there is no tier-0 attempt to make.
	planned := schemas.FillOutcome{
		Code:   schemas.OutcomeNoHandler,
		Detail: fmt.Sprintf("field type %q planned for tier 3", item.Field.Type),
	}
	if e.actor.IsStub() {
		return schemas.ExecResult{Success: false, Outcome: planned, Err: outcomeError(planned)}, nil
	}
	return e.escalate(ctx, item, planned)
}

// ExecuteTier0 runs only the DOM routine for the action, never escalating.
// The cookbook replayer calls this directly.
func (e *Executor) ExecuteTier0(ctx context.Context, item *schemas.ActionItem) (schemas.FillOutcome, error) {
	h, ok := e.handlers[item.Field.Type]
	if !ok {
		return schemas.FillOutcome{
			Code:   schemas.OutcomeNoHandler,
			Detail: fmt.Sprintf("no tier-0 routine for field type %q", item.Field.Type),
		}, nil
	}
	out, err := h(ctx, item)
	if err != nil {
		if IsFatalBrowserError(err) || ctx.Err() != nil {
			return schemas.FillOutcome{}, err
		}
		// Transient interaction errors are reclassified into the outcome
		// space; they behave like a missing element for escalation purposes.
		return schemas.FillOutcome{Code: schemas.OutcomeNotFound, Detail: err.Error()}, nil
	}
	return out, nil
}

// escalate issues a narrowly scoped act instruction for the single target
// field. On failure the original tier-0 diagnostic is what surfaces.
func (e *Executor) escalate(ctx context.Context, item *schemas.ActionItem, orig schemas.FillOutcome) (schemas.ExecResult, error) {
	res, err := e.actor.Act(ctx, e.driver, actInstruction(item))
	if err != nil {
		if IsFatalBrowserError(err) || ctx.Err() != nil {
			return schemas.ExecResult{}, err
		}
		return schemas.ExecResult{Success: false, Outcome: orig, Escalated: true, Err: outcomeError(orig)}, nil
	}
	if res.Success {
		return schemas.ExecResult{Success: true, Outcome: orig, Escalated: true}, nil
	}
	e.logger.Debug("tier-3 act failed",
		zap.String("selector", item.Field.Selector),
		zap.String("agent_message", res.Message))
	return schemas.ExecResult{Success: false, Outcome: orig, Escalated: true, Err: outcomeError(orig)}, nil
}

// actInstruction phrases the tier-3 request so the agent stays on one field.
func actInstruction(item *schemas.ActionItem) string {
	target := item.Field.Label
	if target == "" {
		target = item.Field.Placeholder
	}
	if target == "" {
		target = item.Field.Selector
	}
	var b strings.Builder
	switch item.Verb {
	case schemas.VerbCheck:
		fmt.Fprintf(&b, "Check the checkbox %q (selector %s).", target, item.Field.Selector)
	case schemas.VerbSelect:
		fmt.Fprintf(&b, "Select the option %q in the field %q (selector %s).", item.Value, target, item.Field.Selector)
	case schemas.VerbUpload:
		fmt.Fprintf(&b, "Attach the file %q to the upload field %q (selector %s).", item.Value, target, item.Field.Selector)
	default:
		fmt.Fprintf(&b, "Fill the form field %q (selector %s) with the value %q.", target, item.Field.Selector, item.Value)
	}
	b.WriteString(" Do not modify any other field. Do not scroll. Do not navigate.")
	return b.String()
}

func outcomeError(out schemas.FillOutcome) string {
	if out.Detail != "" {
		return fmt.Sprintf("%s: %s", out.Code, out.Detail)
	}
	return string(out.Code)
}

// evalOutcome runs a fill snippet and decodes its typed result.
func (e *Executor) evalOutcome(ctx context.Context, script string) (schemas.FillOutcome, error) {
	raw, err := e.driver.ExecuteScript(ctx, script)
	if err != nil {
		return schemas.FillOutcome{}, err
	}
	var out jsOutcome
	if err := json.Unmarshal(raw, &out); err != nil {
		return schemas.FillOutcome{}, fmt.Errorf("decode fill outcome: %w", err)
	}
	return schemas.FillOutcome{Code: schemas.OutcomeCode(out.Code), Detail: out.Detail}, nil
}

// settle waits for async UI to render, respecting cancellation.
func (e *Executor) settle(ctx context.Context) error {
	t := time.NewTimer(e.cfg.SettleDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
