package pipeline

import (
	"context"
	"fmt"
	"strings"

	"ai-storyteller-be/internal/constant"
	"ai-storyteller-be/internal/entity"
	"ai-storyteller-be/internal/pkg/logger"
	"ai-storyteller-be/internal/repository/contract"
	"ai-storyteller-be/pkg/ai/gateway"
	"ai-storyteller-be/pkg/ai/router"
)

// StoryPipeline runs the generate -> judge -> revise flow for new stories
// and the revise -> judge flow for refinements. Every step is one
// synchronous model call; the judge never loops more than once.
type StoryPipeline struct {
	gw       *gateway.Gateway
	sessions contract.SessionRepository
	logger   logger.ILogger
}

func NewStoryPipeline(gw *gateway.Gateway, sessions contract.SessionRepository, log logger.ILogger) *StoryPipeline {
	return &StoryPipeline{
		gw:       gw,
		sessions: sessions,
		logger:   log,
	}
}

// Generate drafts a story for the theme, judges it, applies at most one
// hint-driven rewrite, and persists the result as the session's final
// story. An unsafe judgment yields the fixed refusal with nothing
// persisted. The returned hint slice has length 0 or 1.
func (p *StoryPipeline) Generate(ctx context.Context, sessionID, theme string) (string, []string, error) {
	// 1) First draft
	draft, err := p.gw.InvokeCreative(ctx, fmt.Sprintf(constant.StoryPrompt, theme, theme), "story_draft")
	if err != nil {
		return "", nil, fmt.Errorf("story draft: %w", err)
	}

	// 2) Judge safety
	judge, err := p.judge(ctx, draft, "judge")
	if err != nil {
		return "", nil, err
	}

	if judge.Unsafe {
		p.logger.Warn("PIPELINE", "draft judged unsafe, refusing", map[string]interface{}{
			"session": sessionID,
		})
		return constant.RefusalMessage, []string{}, nil
	}

	// 3) Improve once if the judge offered a hint
	finalStory := draft
	suggestions := []string{}
	if judge.Hint != "" {
		finalStory, err = p.improve(ctx, draft, judge.Hint, "rewrite")
		if err != nil {
			return "", nil, err
		}
		suggestions = append(suggestions, judge.Hint)
	}

	// 4) Persist the final story
	history, err := p.sessions.GetHistory(ctx, sessionID)
	if err != nil {
		return "", nil, err
	}
	history = append(history, entity.Message{
		Role:       entity.RoleAssistant,
		Content:    finalStory,
		FinalStory: true,
	})
	if err := p.sessions.SetHistory(ctx, sessionID, history); err != nil {
		return "", nil, err
	}

	return finalStory, suggestions, nil
}

// Refine rewrites the session's current story per the user's instruction,
// judges the result, and replaces the stored story in place only when the
// revision is safe. An unsafe revision is fully discarded.
func (p *StoryPipeline) Refine(ctx context.Context, sessionID, instruction string) (string, error) {
	history, err := p.sessions.GetHistory(ctx, sessionID)
	if err != nil {
		return "", err
	}

	last, ok := entity.LastStory(history)
	if !ok {
		return constant.NoStoryMessage, nil
	}

	// 1) Revised draft
	refined, err := p.improve(ctx, last, instruction, "rewrite_manual")
	if err != nil {
		return "", fmt.Errorf("story refinement: %w", err)
	}

	// 2) Judge the revision
	judge, err := p.judge(ctx, refined, "refine_judge")
	if err != nil {
		return "", err
	}

	if judge.Unsafe {
		p.logger.Warn("PIPELINE", "revision judged unsafe, keeping stored story", map[string]interface{}{
			"session": sessionID,
		})
		return constant.RefineRejectionMessage, nil
	}

	// 3) Optional second pass if the judge offered a hint
	finalStory := refined
	if judge.Hint != "" {
		finalStory, err = p.improve(ctx, refined, judge.Hint, "rewrite_post_refine")
		if err != nil {
			return "", err
		}
	}

	// 4) Overwrite the existing final story in place; re-read so the
	// user message persisted before dispatch is not lost.
	history, err = p.sessions.GetHistory(ctx, sessionID)
	if err != nil {
		return "", err
	}

	updated := false
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == entity.RoleAssistant && history[i].FinalStory {
			history[i].Content = finalStory
			updated = true
			break
		}
	}
	if !updated {
		history = append(history, entity.Message{
			Role:       entity.RoleAssistant,
			Content:    finalStory,
			FinalStory: true,
		})
	}

	if err := p.sessions.SetHistory(ctx, sessionID, history); err != nil {
		return "", err
	}

	return finalStory, nil
}

func (p *StoryPipeline) judge(ctx context.Context, story, traceLabel string) (router.Decision, error) {
	raw, err := p.gw.InvokeStrict(ctx, fmt.Sprintf(constant.JudgePrompt, story), traceLabel)
	if err != nil {
		return router.Decision{}, fmt.Errorf("safety judgment: %w", err)
	}
	return router.ParseDecision(raw), nil
}

func (p *StoryPipeline) improve(ctx context.Context, story, hint, traceLabel string) (string, error) {
	out, err := p.gw.InvokeCreative(ctx, fmt.Sprintf(constant.ImprovePrompt, hint, story), traceLabel)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
