package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"ai-storyteller-be/internal/constant"
	"ai-storyteller-be/internal/entity"
	"ai-storyteller-be/internal/pkg/logger"
	"ai-storyteller-be/internal/repository/contract"
	"ai-storyteller-be/internal/repository/implementation"
	"ai-storyteller-be/pkg/llm"
)

// scriptedProvider replays canned responses in call order. A response equal
// to "ERROR" fails that call.
type scriptedProvider struct {
	responses []string
	calls     int
}

func (p *scriptedProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	if p.calls >= len(p.responses) {
		return "", nil
	}
	out := p.responses[p.calls]
	p.calls++
	if out == "ERROR" {
		return "", errors.New("model unavailable")
	}
	return out, nil
}

func (p *scriptedProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	if len(history) == 0 {
		return p.Generate(ctx, "", options...)
	}
	return p.Generate(ctx, history[len(history)-1].Content, options...)
}

func newTestService(t *testing.T, responses ...string) (IStoryService, contract.SessionRepository) {
	t.Helper()
	repo, err := implementation.NewJSONSessionRepository(filepath.Join(t.TempDir(), "sessions.json"))
	if err != nil {
		t.Fatalf("NewJSONSessionRepository: %v", err)
	}
	svc := NewStoryService(&scriptedProvider{responses: responses}, repo, logger.NewNopLogger(), false)
	return svc, repo
}

func TestHandleMessageNewStory(t *testing.T) {
	svc, repo := newTestService(t,
		`{"intent": "new_story", "instruction": "a happy turtle"}`,
		"Once there was a happy turtle. Moral: slow and steady.",
		`{"unsafe": false, "hint": ""}`,
	)

	res, err := svc.HandleMessage(context.Background(), "s1", "tell me about a happy turtle")
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if res.Kind != KindStory {
		t.Errorf("kind = %q, want %q", res.Kind, KindStory)
	}
	if res.Revisions == nil || *res.Revisions != 0 {
		t.Errorf("revisions = %v, want 0", res.Revisions)
	}

	history, _ := repo.GetHistory(context.Background(), "s1")
	if len(history) != 2 {
		t.Fatalf("expected human message + story in history, got %d entries", len(history))
	}
	if history[0].Role != entity.RoleHuman {
		t.Errorf("first entry should be the user message, got %+v", history[0])
	}
}

func TestHandleMessageNewStoryRefusal(t *testing.T) {
	svc, _ := newTestService(t,
		`{"intent": "new_story", "instruction": "a scary battle"}`,
		"Draft that came out wrong.",
		`{"unsafe": true, "hint": ""}`,
	)

	res, err := svc.HandleMessage(context.Background(), "s1", "tell me about a scary battle")
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if res.Kind != KindRefusal {
		t.Errorf("kind = %q, want %q", res.Kind, KindRefusal)
	}
	if res.Text != constant.RefusalMessage {
		t.Errorf("text = %q, want the fixed refusal", res.Text)
	}
	if res.Revisions == nil || *res.Revisions != 0 {
		t.Errorf("new-story refusal still reports revisions = 0, got %v", res.Revisions)
	}
}

func TestHandleMessageRefineRefusal(t *testing.T) {
	svc, repo := newTestService(t,
		`{"intent": "refine", "instruction": "make the fox fight"}`,
		"Revision with a fight in it.",
		`{"unsafe": true, "hint": ""}`,
	)
	ctx := context.Background()

	if err := repo.SetHistory(ctx, "s1", []entity.Message{
		{Role: entity.RoleAssistant, Content: "Safe fox story.", FinalStory: true},
	}); err != nil {
		t.Fatal(err)
	}

	res, err := svc.HandleMessage(ctx, "s1", "make the fox fight")
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if res.Kind != KindRefusal {
		t.Errorf("kind = %q, want %q", res.Kind, KindRefusal)
	}
	// Refine-path refusals carry no revision count; the HTTP layer keys
	// the envelope choice off this.
	if res.Revisions != nil {
		t.Errorf("refine refusal must not report revisions, got %v", res.Revisions)
	}

	history, _ := repo.GetHistory(ctx, "s1")
	if got, _ := entity.LastStory(history); got != "Safe fox story." {
		t.Errorf("stored story must survive, got %q", got)
	}
}

func TestHandleMessageChat(t *testing.T) {
	svc, _ := newTestService(t,
		`{"intent": "chat", "instruction": "thanks!"}`,
		"You're very welcome!",
	)

	res, err := svc.HandleMessage(context.Background(), "s1", "thanks!")
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if res.Kind != KindChat {
		t.Errorf("kind = %q, want %q", res.Kind, KindChat)
	}
	if res.Text != "You're very welcome!" {
		t.Errorf("text = %q", res.Text)
	}
	if res.Revisions != nil {
		t.Errorf("chat must not report revisions, got %v", res.Revisions)
	}
}

func TestHandleMessagePersistsUserMessageBeforeDispatch(t *testing.T) {
	svc, repo := newTestService(t,
		`{"intent": "new_story", "instruction": "a turtle"}`,
		"ERROR",
	)
	ctx := context.Background()

	_, err := svc.HandleMessage(ctx, "s1", "tell me about a turtle")
	if err == nil {
		t.Fatal("expected the draft failure to propagate")
	}

	history, _ := repo.GetHistory(ctx, "s1")
	if len(history) != 1 || history[0].Role != entity.RoleHuman {
		t.Fatalf("user message must be persisted before dispatch, history = %+v", history)
	}
	if history[0].Content != "tell me about a turtle" {
		t.Errorf("persisted message mismatch: %q", history[0].Content)
	}
}
