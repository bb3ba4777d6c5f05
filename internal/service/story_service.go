package service

import (
	"context"
	"fmt"

	"ai-storyteller-be/internal/constant"
	"ai-storyteller-be/internal/entity"
	"ai-storyteller-be/internal/pkg/logger"
	"ai-storyteller-be/internal/repository/contract"
	"ai-storyteller-be/pkg/ai/gateway"
	"ai-storyteller-be/pkg/ai/pipeline"
	"ai-storyteller-be/pkg/ai/router"
	"ai-storyteller-be/pkg/llm"

	"github.com/google/uuid"
)

// ResponseKind labels the outcome of a routed message.
type ResponseKind string

const (
	KindStory      ResponseKind = "story"
	KindRefusal    ResponseKind = "refusal"
	KindRefinement ResponseKind = "refinement"
	KindChat       ResponseKind = "chat"
)

// RouteResult is the typed outcome handed to the HTTP boundary. Revisions
// is set only on the new-story path (0 or 1 applied hints).
type RouteResult struct {
	Text      string
	Kind      ResponseKind
	Revisions *int
}

// IStoryService is the single entry point for inbound user messages.
type IStoryService interface {
	HandleMessage(ctx context.Context, sessionID, userMessage string) (*RouteResult, error)
}

// storyService coordinates the classifier, the story pipeline, and the
// chat responder around one injected session store.
type storyService struct {
	sessions   contract.SessionRepository
	classifier *router.Classifier
	stories    *pipeline.StoryPipeline
	chat       *pipeline.ChatResponder
	logger     logger.ILogger
}

// NewStoryService wires the domain components. The store is an explicit
// dependency so tests can run against isolated files.
func NewStoryService(
	provider llm.LLMProvider,
	sessions contract.SessionRepository,
	sysLogger logger.ILogger,
	traceEnabled bool,
) IStoryService {
	gw := gateway.NewGateway(provider, sysLogger, traceEnabled)

	return &storyService{
		sessions:   sessions,
		classifier: router.NewClassifier(gw, sysLogger),
		stories:    pipeline.NewStoryPipeline(gw, sessions, sysLogger),
		chat:       pipeline.NewChatResponder(gw, sessions, sysLogger),
		logger:     sysLogger,
	}
}

// HandleMessage classifies the message, persists it, and dispatches to the
// matching flow. The user message is saved BEFORE dispatch so history
// reflects the input even if a downstream model call fails.
func (s *storyService) HandleMessage(ctx context.Context, sessionID, userMessage string) (*RouteResult, error) {
	runID := uuid.New().String()

	history, err := s.sessions.GetHistory(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	hasStory := entity.HasStory(history)

	intent, instruction, err := s.classifier.Classify(ctx, userMessage, hasStory)
	if err != nil {
		return nil, err
	}

	s.logger.Info("SERVICE", "message routed", map[string]interface{}{
		"run_id":  runID,
		"session": sessionID,
		"intent":  string(intent),
	})

	history = append(history, entity.Message{
		Role:    entity.RoleHuman,
		Content: userMessage,
	})
	if err := s.sessions.SetHistory(ctx, sessionID, history); err != nil {
		return nil, fmt.Errorf("persist user message: %w", err)
	}

	switch intent {
	case router.IntentNewStory:
		text, hints, err := s.stories.Generate(ctx, sessionID, instruction)
		if err != nil {
			return nil, err
		}
		kind := KindStory
		if text == constant.RefusalMessage {
			kind = KindRefusal
		}
		revisions := len(hints)
		return &RouteResult{Text: text, Kind: kind, Revisions: &revisions}, nil

	case router.IntentRefine:
		text, err := s.stories.Refine(ctx, sessionID, instruction)
		if err != nil {
			return nil, err
		}
		kind := KindRefinement
		if text == constant.RefineRejectionMessage {
			kind = KindRefusal
		}
		return &RouteResult{Text: text, Kind: kind}, nil

	default: // router.IntentChat
		reply, err := s.chat.Reply(ctx, sessionID, instruction)
		if err != nil {
			return nil, err
		}
		return &RouteResult{Text: reply, Kind: KindChat}, nil
	}
}
