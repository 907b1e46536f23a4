// Package agent provides the tier-3 "act" capability: a narrowly scoped
// natural-language instruction is turned into a short sequence of browser
// primitives by an LLM. The engine only reaches for this after free DOM
// manipulation has failed.
package agent

import (
	"context"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/autoapply/fillengine/internal/config"
	"github.com/autoapply/fillengine/pkg/interfaces"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxActSteps caps how many primitives one act instruction may expand into.
// An instruction scoped to a single field never legitimately needs more.
const maxActSteps = 5

const actSystemPrompt = `You operate a web page through a fixed set of primitives.
Given an instruction and a digest of the page's interactive elements, respond
with ONLY a JSON array of steps, at most %d, in execution order. Step shapes:
  {"op":"click","selector":"<css>"}
  {"op":"type","selector":"<css>","text":"<text>"}
  {"op":"press","key":"Tab|Enter|Escape"}
Touch only the element the instruction names. Never scroll, never navigate.
If the instruction cannot be satisfied, respond with [].`

// domDigestJS summarizes the page's interactive elements for the model.
const domDigestJS = `(() => {
	const els = Array.from(document.querySelectorAll('input, select, textarea, button, [role="radio"], [role="option"], [contenteditable="true"]'))
		.filter(el => el.offsetParent !== null)
		.slice(0, 80);
	return els.map((el, i) => {
		let sel = el.tagName.toLowerCase();
		if (el.id) sel += '#' + el.id;
		else if (el.name) sel += '[name="' + el.name + '"]';
		return {
			selector: sel,
			tag: el.tagName.toLowerCase(),
			type: el.getAttribute('type') || '',
			label: (el.getAttribute('aria-label') || el.getAttribute('placeholder') || '').slice(0, 80),
			value: (el.value || '').slice(0, 40),
		};
	});
})()`

// actStep is one primitive the model asked for.
type actStep struct {
	Op       string `json:"op"`
	Selector string `json:"selector,omitempty"`
	Text     string `json:"text,omitempty"`
	Key      string `json:"key,omitempty"`
}

// GeminiActor implements the Actor contract on the Gemini API.
type GeminiActor struct {
	logger *zap.Logger
	client *genai.Client
	model  string
}

var _ interfaces.Actor = (*GeminiActor)(nil)

// NewGemini builds an actor over the configured model.
func NewGemini(ctx context.Context, cfg config.AgentConfig, logger *zap.Logger) (*GeminiActor, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiActor{
		logger: logger.Named("agent"),
		client: client,
		model:  cfg.Model,
	}, nil
}

func (a *GeminiActor) IsStub() bool { return false }

// Act asks the model for a micro-plan and executes it through the driver.
// Success here means the plan executed; whether the field actually holds the
// right value is the verification engine's call, not the agent's.
func (a *GeminiActor) Act(ctx context.Context, drv interfaces.Driver, instruction string) (interfaces.ActResult, error) {
	digest, err := drv.ExecuteScript(ctx, domDigestJS)
	if err != nil {
		return interfaces.ActResult{}, err
	}

	prompt := fmt.Sprintf("%s\n\nInstruction: %s\n\nPage elements:\n%s",
		fmt.Sprintf(actSystemPrompt, maxActSteps), instruction, string(digest))

	resp, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return interfaces.ActResult{Success: false, Message: fmt.Sprintf("model call failed: %v", err)}, nil
	}

	var steps []actStep
	if err := json.Unmarshal([]byte(strings.TrimSpace(resp.Text())), &steps); err != nil {
		return interfaces.ActResult{Success: false, Message: fmt.Sprintf("unparseable plan: %v", err)}, nil
	}
	if len(steps) == 0 {
		return interfaces.ActResult{Success: false, Message: "agent declined the instruction"}, nil
	}
	if len(steps) > maxActSteps {
		steps = steps[:maxActSteps]
	}

	for i, step := range steps {
		if err := a.runStep(ctx, drv, step); err != nil {
			return interfaces.ActResult{
				Success: false,
				Message: fmt.Sprintf("step %d (%s) failed: %v", i, step.Op, err),
			}, err
		}
	}
	a.logger.Debug("act plan executed", zap.Int("steps", len(steps)))
	return interfaces.ActResult{Success: true}, nil
}

func (a *GeminiActor) runStep(ctx context.Context, drv interfaces.Driver, step actStep) error {
	switch step.Op {
	case "click":
		return drv.Click(ctx, step.Selector)
	case "type":
		if step.Selector != "" {
			if err := drv.Click(ctx, step.Selector); err != nil {
				return err
			}
		}
		return drv.TypeKeys(ctx, step.Text)
	case "press":
		return drv.PressKey(ctx, step.Key)
	default:
		return fmt.Errorf("unknown act op %q", step.Op)
	}
}
