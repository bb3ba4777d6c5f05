package router

import (
	"context"
	"fmt"
	"strings"

	"ai-storyteller-be/internal/constant"
	"ai-storyteller-be/internal/pkg/logger"
	"ai-storyteller-be/pkg/ai/gateway"
)

// Intent is the classified purpose of a user message.
type Intent string

const (
	IntentNewStory Intent = "new_story"
	IntentRefine   Intent = "refine"
	IntentChat     Intent = "chat"
)

// Classifier resolves a user message into an intent plus a normalized
// instruction via a strict-temperature model call.
type Classifier struct {
	gw     *gateway.Gateway
	logger logger.ILogger
}

func NewClassifier(gw *gateway.Gateway, log logger.ILogger) *Classifier {
	return &Classifier{
		gw:     gw,
		logger: log,
	}
}

// Classify returns the intent and the extracted core instruction (theme
// text for a new story, the requested change for a refinement). If the
// model's extraction fails, the instruction falls back to the user's full
// message. A 'refine' intent without an active story is coerced to
// 'new_story' since refinement has no target.
func (c *Classifier) Classify(ctx context.Context, text string, hasActiveStory bool) (Intent, string, error) {
	status := constant.SessionStatusNoStory
	if hasActiveStory {
		status = constant.SessionStatusStoryActive
	}

	prompt := fmt.Sprintf(constant.IntentClassifierPrompt, status, text)
	raw, err := c.gw.InvokeStrict(ctx, prompt, "intent_classifier_tool")
	if err != nil {
		return IntentChat, "", fmt.Errorf("intent classification: %w", err)
	}

	decision := ParseDecision(raw)

	intent := Intent(strings.ToLower(strings.TrimSpace(decision.Intent)))
	switch intent {
	case IntentNewStory, IntentRefine, IntentChat:
	default:
		intent = IntentChat
	}

	instruction := strings.TrimSpace(decision.Instruction)
	// Instruction equal to the whole model response means no JSON object
	// was extracted; keep the user's own words in that case.
	if instruction == "" || decision.Instruction == raw {
		instruction = strings.TrimSpace(text)
	}

	if intent == IntentRefine && !hasActiveStory {
		c.logger.Debug("ROUTER", "refine without active story, coercing to new_story", nil)
		intent = IntentNewStory
	}

	c.logger.Info("ROUTER", "intent resolved", map[string]interface{}{
		"intent":           string(intent),
		"has_active_story": hasActiveStory,
	})

	return intent, instruction, nil
}
