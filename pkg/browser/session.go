package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/autoapply/fillengine/pkg/interfaces"
)

// controlKeys maps the driver's named keys to CDP key codes.
var controlKeys = map[string]string{
	"Tab":    kb.Tab,
	"Enter":  kb.Enter,
	"Escape": kb.Escape,
}

// Session manages a single isolated browser tab and implements the engine's
// Driver contract. All operations run on the tab's own chromedp context; the
// caller context only gates cancellation, because chromedp actions must
// execute against the session they belong to.
type Session struct {
	id      string
	logger  *zap.Logger
	tabCtx  context.Context
	cancel  context.CancelFunc
	mu      sync.Mutex
	closed  bool
}

var _ interfaces.Driver = (*Session)(nil)

func newSession(allocCtx context.Context, logger *zap.Logger) (*Session, error) {
	tabCtx, cancel := chromedp.NewContext(allocCtx)
	// Run a no-op to force the tab into existence now, not on first use.
	if err := chromedp.Run(tabCtx); err != nil {
		cancel()
		return nil, err
	}
	id := uuid.New().String()
	return &Session{
		id:     id,
		logger: logger.With(zap.String("session_id", id[:8])),
		tabCtx: tabCtx,
		cancel: cancel,
	}, nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Navigate loads a URL and waits for the document body.
func (s *Session) Navigate(ctx context.Context, url string) error {
	if err := s.guard(ctx); err != nil {
		return err
	}
	s.logger.Info("navigating", zap.String("url", url))
	return chromedp.Run(s.tabCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
}

// ExecuteScript evaluates a JavaScript expression and returns its JSON result.
func (s *Session) ExecuteScript(ctx context.Context, script string) (json.RawMessage, error) {
	if err := s.guard(ctx); err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := chromedp.Run(s.tabCtx, chromedp.Evaluate(script, &raw)); err != nil {
		return nil, fmt.Errorf("evaluate script: %w", err)
	}
	return raw, nil
}

// Click clicks the first visible element matching the selector.
func (s *Session) Click(ctx context.Context, selector string) error {
	if err := s.guard(ctx); err != nil {
		return err
	}
	return chromedp.Run(s.tabCtx, chromedp.Click(selector, chromedp.ByQuery, chromedp.NodeVisible))
}

// ClickXY clicks at absolute viewport coordinates; the cookbook GUI fallback
// uses this for recorded coordinate replays. The events are dispatched
// directly over CDP with a hover first, because custom widgets often arm
// their click handlers on mousemove.
func (s *Session) ClickXY(ctx context.Context, x, y float64) error {
	if err := s.guard(ctx); err != nil {
		return err
	}
	return chromedp.Run(s.tabCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		if err := input.DispatchMouseEvent(input.MouseMoved, x, y).
			WithButton(input.None).
			Do(ctx); err != nil {
			return fmt.Errorf("dispatch mousemove: %w", err)
		}
		if err := input.DispatchMouseEvent(input.MousePressed, x, y).
			WithButton(input.Left).
			WithClickCount(1).
			Do(ctx); err != nil {
			return fmt.Errorf("dispatch mousedown: %w", err)
		}
		// Short dwell between down and up; zero-duration clicks are ignored
		// by some drag-aware widgets.
		select {
		case <-time.After(60 * time.Millisecond):
		case <-ctx.Done():
			return ctx.Err()
		}
		if err := input.DispatchMouseEvent(input.MouseReleased, x, y).
			WithButton(input.Left).
			WithClickCount(1).
			Do(ctx); err != nil {
			return fmt.Errorf("dispatch mouseup: %w", err)
		}
		return nil
	}))
}

// TypeKeys sends text as keystrokes to the focused element, which lets
// segmented widgets observe individual key events.
func (s *Session) TypeKeys(ctx context.Context, text string) error {
	if err := s.guard(ctx); err != nil {
		return err
	}
	return chromedp.Run(s.tabCtx, chromedp.SendKeys("document.activeElement", text, chromedp.ByJSPath))
}

// PressKey sends a named control key to the focused element.
func (s *Session) PressKey(ctx context.Context, key string) error {
	if err := s.guard(ctx); err != nil {
		return err
	}
	code, ok := controlKeys[key]
	if !ok {
		return fmt.Errorf("unsupported control key %q", key)
	}
	return chromedp.Run(s.tabCtx, chromedp.SendKeys("document.activeElement", code, chromedp.ByJSPath))
}

// Close releases the tab. Safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.cancel()
	s.logger.Debug("session closed")
}

func (s *Session) guard(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("session closed")
	}
	return nil
}
