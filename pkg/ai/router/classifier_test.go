package router

import (
	"context"
	"strings"
	"testing"

	"ai-storyteller-be/internal/constant"
	"ai-storyteller-be/internal/pkg/logger"
	"ai-storyteller-be/pkg/ai/gateway"
	"ai-storyteller-be/pkg/llm"
)

// scriptedProvider replays canned responses in call order.
type scriptedProvider struct {
	responses []string
	calls     int
	prompts   []string
}

func (p *scriptedProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	p.prompts = append(p.prompts, prompt)
	if p.calls >= len(p.responses) {
		return "", nil
	}
	out := p.responses[p.calls]
	p.calls++
	return out, nil
}

func (p *scriptedProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	if len(history) == 0 {
		return p.Generate(ctx, "", options...)
	}
	return p.Generate(ctx, history[len(history)-1].Content, options...)
}

func newTestClassifier(responses ...string) (*Classifier, *scriptedProvider) {
	provider := &scriptedProvider{responses: responses}
	gw := gateway.NewGateway(provider, logger.NewNopLogger(), false)
	return NewClassifier(gw, logger.NewNopLogger()), provider
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name            string
		response        string
		text            string
		hasActiveStory  bool
		wantIntent      Intent
		wantInstruction string
	}{
		{
			name:            "new story request",
			response:        `{"intent": "new_story", "instruction": "a lonely lighthouse"}`,
			text:            "tell me a story about a lonely lighthouse",
			hasActiveStory:  false,
			wantIntent:      IntentNewStory,
			wantInstruction: "a lonely lighthouse",
		},
		{
			name:            "refine with active story",
			response:        `{"intent": "refine", "instruction": "make it rhyme"}`,
			text:            "can you make it rhyme?",
			hasActiveStory:  true,
			wantIntent:      IntentRefine,
			wantInstruction: "make it rhyme",
		},
		{
			name:            "refine without active story becomes new story",
			response:        `{"intent": "refine", "instruction": "add a dragon"}`,
			text:            "add a dragon",
			hasActiveStory:  false,
			wantIntent:      IntentNewStory,
			wantInstruction: "add a dragon",
		},
		{
			name:            "unknown intent falls back to chat",
			response:        `{"intent": "summarize", "instruction": "whatever"}`,
			text:            "summarize it",
			hasActiveStory:  true,
			wantIntent:      IntentChat,
			wantInstruction: "whatever",
		},
		{
			name:            "garbage output keeps the user's words",
			response:        "I am not sure what you mean.",
			text:            "  hello there  ",
			hasActiveStory:  false,
			wantIntent:      IntentChat,
			wantInstruction: "hello there",
		},
		{
			name:            "uppercase intent is normalized",
			response:        `{"intent": "NEW_STORY", "instruction": "a red balloon"}`,
			text:            "story about a red balloon",
			hasActiveStory:  false,
			wantIntent:      IntentNewStory,
			wantInstruction: "a red balloon",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClassifier(tt.response)

			intent, instruction, err := c.Classify(context.Background(), tt.text, tt.hasActiveStory)
			if err != nil {
				t.Fatalf("Classify returned error: %v", err)
			}
			if intent != tt.wantIntent {
				t.Errorf("intent = %q, want %q", intent, tt.wantIntent)
			}
			if instruction != tt.wantInstruction {
				t.Errorf("instruction = %q, want %q", instruction, tt.wantInstruction)
			}
		})
	}
}

func TestClassifyPromptCarriesSessionStatus(t *testing.T) {
	c, provider := newTestClassifier(`{"intent": "chat", "instruction": "hi"}`)

	if _, _, err := c.Classify(context.Background(), "hi", true); err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}

	if len(provider.prompts) != 1 {
		t.Fatalf("expected 1 model call, got %d", len(provider.prompts))
	}
	prompt := provider.prompts[0]
	if !strings.Contains(prompt, constant.SessionStatusStoryActive) {
		t.Errorf("prompt missing active-story status: %q", prompt)
	}
	if !strings.Contains(prompt, `User Request: "hi"`) {
		t.Errorf("prompt missing user text: %q", prompt)
	}
}
