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
)

// ChatResponder produces short conversational replies that never contain
// story content, using the active story (if any) as context.
type ChatResponder struct {
	gw       *gateway.Gateway
	sessions contract.SessionRepository
	logger   logger.ILogger
}

func NewChatResponder(gw *gateway.Gateway, sessions contract.SessionRepository, log logger.ILogger) *ChatResponder {
	return &ChatResponder{
		gw:       gw,
		sessions: sessions,
		logger:   log,
	}
}

// Reply generates a 1-2 sentence answer and appends it to the history as a
// plain assistant message (no final-story tag).
func (c *ChatResponder) Reply(ctx context.Context, sessionID, userText string) (string, error) {
	history, err := c.sessions.GetHistory(ctx, sessionID)
	if err != nil {
		return "", err
	}

	storyCtx, _ := entity.LastStory(history)
	if len(storyCtx) > constant.ChatContextLimit {
		storyCtx = storyCtx[:constant.ChatContextLimit]
	}

	raw, err := c.gw.InvokeChat(ctx, fmt.Sprintf(constant.ChatPrompt, storyCtx, userText), "chat_reply")
	if err != nil {
		return "", fmt.Errorf("chat reply: %w", err)
	}
	reply := strings.TrimSpace(raw)

	history, err = c.sessions.GetHistory(ctx, sessionID)
	if err != nil {
		return "", err
	}
	history = append(history, entity.Message{
		Role:    entity.RoleAssistant,
		Content: reply,
	})
	if err := c.sessions.SetHistory(ctx, sessionID, history); err != nil {
		return "", err
	}

	return reply, nil
}
