// Collaborator contracts live in their own package so that the engine
// packages (matcher, planner, executor, verify, cookbook) never import each
// other's concrete types, only these interfaces and the schemas.
package interfaces

import (
	"context"
	"encoding/json"

	"github.com/autoapply/fillengine/api/schemas"
)

// Driver exposes the browser automation primitives the engine needs. One
// Driver wraps exactly one live page; all calls are strictly sequential.
type Driver interface {
	// ExecuteScript evaluates a JavaScript expression in the page and returns
	// the JSON-encoded result.
	ExecuteScript(ctx context.Context, script string) (json.RawMessage, error)
	// Click clicks the first element matching the CSS selector.
	Click(ctx context.Context, selector string) error
	// ClickXY clicks at absolute viewport coordinates.
	ClickXY(ctx context.Context, x, y float64) error
	// TypeKeys sends text as individual keystrokes to the focused element.
	TypeKeys(ctx context.Context, text string) error
	// PressKey sends a named control key ("Tab", "Enter", "Escape").
	PressKey(ctx context.Context, key string) error
}

// ActResult is the actor's own report on an act instruction.
type ActResult struct {
	Success bool
	Message string
}

// Actor performs a natural-language "act" instruction against the live page.
// The stub variant always reports failure; the executor skips tier-3
// escalation entirely when IsStub is true, because a stub's generic failure
// would mask the real tier-0 diagnostic.
type Actor interface {
	Act(ctx context.Context, drv Driver, instruction string) (ActResult, error)
	IsStub() bool
}

// PlatformHandler supplies platform-specific matching hints for one named ATS
// platform. Registry lookups return nil for unrecognized platforms, in which
// case the matcher falls back to generic strategies only.
type PlatformHandler interface {
	Name() string
	// AutomationIDMap maps platform-stable automation ids to canonical data keys.
	AutomationIDMap() map[string]string
	// LabelMap maps normalized field labels to canonical data keys.
	LabelMap() map[string]string
	// DetectFieldType lets a platform override the scanner's type inference.
	DetectFieldType(f schemas.FieldModel) (schemas.FieldType, bool)
}

// Scanner produces a PageModel per observation. The engine never scans pages
// itself.
type Scanner interface {
	Scan(ctx context.Context) (*schemas.PageModel, error)
}

// TelemetryFunc receives an event-type string and metadata. Implementations
// may fail; callers must invoke it through a failure-swallowing wrapper so a
// broken sink can never abort execution.
type TelemetryFunc func(ctx context.Context, event string, meta map[string]any) error

// CookbookStore loads and saves learned page entries keyed by fingerprint.
// Get returns (nil, nil) when no entry exists.
type CookbookStore interface {
	Get(ctx context.Context, fingerprint string) (*schemas.CookbookPageEntry, error)
	Put(ctx context.Context, entry *schemas.CookbookPageEntry) error
	Close() error
}
