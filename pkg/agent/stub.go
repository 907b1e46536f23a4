package agent

import (
	"context"

	"github.com/autoapply/fillengine/pkg/interfaces"
)

// StubActor is the actor used when no agent is configured. It reports itself
// as a stub so callers can skip escalation entirely instead of paying a
// round trip for a guaranteed failure.
type StubActor struct{}

var _ interfaces.Actor = StubActor{}

func (StubActor) IsStub() bool { return true }

func (StubActor) Act(_ context.Context, _ interfaces.Driver, _ string) (interfaces.ActResult, error) {
	return interfaces.ActResult{Success: false, Message: "no agent configured"}, nil
}
