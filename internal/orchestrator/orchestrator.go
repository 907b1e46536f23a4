// Package orchestrator manages the high-level lifecycle of one page fill: it
// wires scanner, matcher, planner, executor, verifier, and cookbook into the
// scan / match / plan / execute / verify pipeline. Components arrive as
// interfaces so the pipeline is testable without a browser.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/autoapply/fillengine/api/schemas"
	"github.com/autoapply/fillengine/internal/config"
	"github.com/autoapply/fillengine/pkg/cookbook"
	"github.com/autoapply/fillengine/pkg/interfaces"
	"github.com/autoapply/fillengine/pkg/matcher"
	"github.com/autoapply/fillengine/pkg/matcher/platforms"
	"github.com/autoapply/fillengine/pkg/planner"
	"github.com/autoapply/fillengine/pkg/telemetry"
)

// ActionExecutor is the slice of the executor the pipeline needs.
type ActionExecutor interface {
	Execute(ctx context.Context, item *schemas.ActionItem) (schemas.ExecResult, error)
}

// FieldVerifier is the slice of the verification engine the pipeline needs.
type FieldVerifier interface {
	Verify(ctx context.Context, field schemas.FieldModel, expected string) (*schemas.VerificationResult, error)
}

// CookbookReplayer replays a learned entry against the live page.
type CookbookReplayer interface {
	Execute(ctx context.Context, entry *schemas.CookbookPageEntry, userData map[string]string) (*schemas.ReplayResult, error)
}

// ActionResult pairs one planned action with its execution and verification
// verdicts.
type ActionResult struct {
	Item         schemas.ActionItem          `json:"item"`
	Exec         schemas.ExecResult          `json:"exec"`
	Verification *schemas.VerificationResult `json:"verification,omitempty"`
	Retries      int                         `json:"retries"`
}

// FillResult summarizes one page fill run.
type FillResult struct {
	RunID       string         `json:"runId"`
	URL         string         `json:"url"`
	Platform    string         `json:"platform,omitempty"`
	Planned     int            `json:"planned"`
	Filled      int            `json:"filled"`
	Verified    int            `json:"verified"`
	Failed      int            `json:"failed"`
	Escalations int            `json:"escalations"`
	Actions     []ActionResult `json:"actions"`
	Duration    time.Duration  `json:"duration"`
}

// Orchestrator runs the fill pipeline over one browser session.
type Orchestrator struct {
	cfg      *config.Config
	logger   *zap.Logger
	scanner  interfaces.Scanner
	executor ActionExecutor
	verifier FieldVerifier
	replayer CookbookReplayer
	store    interfaces.CookbookStore
	emitter  *telemetry.Emitter
	userData map[string]string
	qa       map[string]string
}

// New builds an Orchestrator. The cookbook store and replayer may be nil, in
// which case ReplayCookbook always reports a miss.
func New(
	cfg *config.Config,
	logger *zap.Logger,
	scanner interfaces.Scanner,
	exec ActionExecutor,
	verifier FieldVerifier,
	replayer CookbookReplayer,
	store interfaces.CookbookStore,
	emitter *telemetry.Emitter,
	userData, qa map[string]string,
) (*Orchestrator, error) {
	if cfg == nil || logger == nil || scanner == nil || exec == nil || verifier == nil || emitter == nil {
		return nil, fmt.Errorf("cannot initialize orchestrator with nil dependencies")
	}
	return &Orchestrator{
		cfg:      cfg,
		logger:   logger.Named("orchestrator"),
		scanner:  scanner,
		executor: exec,
		verifier: verifier,
		replayer: replayer,
		store:    store,
		emitter:  emitter,
		userData: userData,
		qa:       qa,
	}, nil
}

// FillPage runs the full pipeline against the current page: scan, match,
// plan, then execute and verify each action in order. A fatal browser error
// aborts the run; every other failure is recorded per action.
func (o *Orchestrator) FillPage(ctx context.Context) (*FillResult, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := o.logger.With(zap.String("run_id", runID))

	page, err := o.scanner.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan page: %w", err)
	}
	log.Info("page scanned",
		zap.String("url", page.URL),
		zap.String("platform", page.Platform),
		zap.Int("fields", len(page.Fields)))
	o.emitter.Emit(ctx, "page_scanned", map[string]any{
		"run_id": runID, "url": page.URL, "fields": len(page.Fields),
	})

	m := matcher.New(o.logger, o.userData, o.qa, platforms.Lookup(page.Platform))
	matched := m.Match(page)

	plan := planner.New(o.logger).Plan(matched.Matches, matched.Unmatched)
	o.emitter.Emit(ctx, "plan_built", map[string]any{
		"run_id": runID, "tier0": plan.Tier0, "tier3": plan.Tier3,
	})

	result := &FillResult{
		RunID:    runID,
		URL:      page.URL,
		Platform: page.Platform,
		Planned:  len(plan.Items),
	}
	for i := range plan.Items {
		ar, err := o.runAction(ctx, &plan.Items[i])
		if err != nil {
			// Dead browser or cancellation; nothing more can run.
			result.Duration = time.Since(start)
			return result, err
		}
		result.Actions = append(result.Actions, ar)
		if ar.Exec.Success {
			result.Filled++
		}
		if ar.Exec.Escalated {
			result.Escalations++
		}
		switch {
		case ar.Verification != nil && ar.Verification.Passed:
			result.Verified++
		case !ar.Exec.Success:
			result.Failed++
		case ar.Verification != nil && !ar.Verification.Passed:
			result.Failed++
		}
	}

	result.Duration = time.Since(start)
	log.Info("page fill complete",
		zap.Int("planned", result.Planned),
		zap.Int("filled", result.Filled),
		zap.Int("verified", result.Verified),
		zap.Int("failed", result.Failed),
		zap.Duration("duration", result.Duration))
	o.emitter.Emit(ctx, "page_filled", map[string]any{
		"run_id": runID, "planned": result.Planned,
		"filled": result.Filled, "verified": result.Verified, "failed": result.Failed,
	})
	return result, nil
}

// runAction executes one action with verification and bounded retries. An
// agent-tier item with no value skips verification; there is no expected
// value to compare against.
func (o *Orchestrator) runAction(ctx context.Context, item *schemas.ActionItem) (ActionResult, error) {
	ar := ActionResult{Item: *item}
	maxAttempts := 1 + o.cfg.Executor.MaxRetries

	for attempt := 0; attempt < maxAttempts; attempt++ {
		ar.Retries = attempt
		exec, err := o.executor.Execute(ctx, item)
		if err != nil {
			return ar, err
		}
		ar.Exec = exec
		if !exec.Success {
			continue
		}
		if item.Value == "" && item.Tier == schemas.TierAgent {
			return ar, nil
		}
		ver, err := o.verifier.Verify(ctx, item.Field, item.Value)
		if err != nil {
			return ar, err
		}
		ar.Verification = ver
		if ver.Passed {
			return ar, nil
		}
		o.logger.Debug("verification failed, retrying",
			zap.String("selector", item.Field.Selector),
			zap.Int("attempt", attempt+1),
			zap.String("reason", ver.Reason))
	}
	return ar, nil
}

// ReplayCookbook tries to satisfy the current page from the learned store.
// It returns (nil, nil) when no entry exists for the page's fingerprint, in
// which case the caller falls back to FillPage.
func (o *Orchestrator) ReplayCookbook(ctx context.Context) (*schemas.ReplayResult, error) {
	if o.store == nil || o.replayer == nil {
		return nil, nil
	}
	page, err := o.scanner.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan page: %w", err)
	}
	fp := cookbook.Fingerprint(page)
	entry, err := o.store.Get(ctx, fp)
	if err != nil {
		return nil, fmt.Errorf("load cookbook entry: %w", err)
	}
	if entry == nil {
		o.logger.Debug("no cookbook entry for page", zap.String("fingerprint", fp))
		return nil, nil
	}

	o.logger.Info("replaying cookbook entry",
		zap.String("fingerprint", fp),
		zap.Int("actions", len(entry.Actions)),
		zap.Float64("page_health", entry.PageHealth))
	res, err := o.replayer.Execute(ctx, entry, o.userData)
	if res != nil {
		o.rescoreEntry(ctx, entry, res)
		o.emitter.Emit(ctx, "cookbook_replayed", map[string]any{
			"fingerprint": fp, "success": res.Success,
			"succeeded": res.Succeeded, "failed": res.Failed, "skipped": res.Skipped,
		})
	}
	return res, err
}

// rescoreEntry folds one replay outcome into the entry's health counters and
// persists it. A failed write only degrades future gating, so it is logged
// and swallowed rather than failing the replay.
func (o *Orchestrator) rescoreEntry(ctx context.Context, entry *schemas.CookbookPageEntry, res *schemas.ReplayResult) {
	if res.Success {
		entry.Successes++
	} else {
		entry.Failures++
	}
	if total := entry.Successes + entry.Failures; total > 0 {
		entry.PageHealth = float64(entry.Successes) / float64(total)
	}
	entry.UpdatedAt = time.Now().UTC()
	if err := o.store.Put(ctx, entry); err != nil {
		o.logger.Warn("failed to persist cookbook rescore",
			zap.String("fingerprint", entry.Fingerprint),
			zap.Error(err))
	}
}
