// Package browser wraps chromedp to provide the engine's automation driver:
// one Manager owns the browser process, each Session wraps one page and
// implements interfaces.Driver.
package browser

import (
	"context"
	"fmt"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/autoapply/fillengine/internal/config"
)

// Manager owns the browser allocator. Sessions are created from it and share
// the single browser process.
type Manager struct {
	logger   *zap.Logger
	allocCtx context.Context
	cancel   context.CancelFunc
}

// NewManager starts the allocator with the configured options. The browser
// itself launches lazily with the first session.
func NewManager(cfg config.BrowserConfig, logger *zap.Logger) *Manager {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.WindowSize(cfg.WindowWidth, cfg.WindowHeight),
	)
	if cfg.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(cfg.UserAgent))
	}
	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)
	return &Manager{
		logger:   logger.Named("browser"),
		allocCtx: allocCtx,
		cancel:   cancel,
	}
}

// NewSession opens a fresh page.
func (m *Manager) NewSession(ctx context.Context) (*Session, error) {
	s, err := newSession(m.allocCtx, m.logger)
	if err != nil {
		return nil, fmt.Errorf("initialize browser session: %w", err)
	}
	return s, nil
}

// Close tears down the browser process.
func (m *Manager) Close() {
	m.cancel()
}
