package bootstrap

import (
	"log"

	"ai-storyteller-be/internal/config"
	"ai-storyteller-be/internal/controller"
	"ai-storyteller-be/internal/pkg/logger"
	"ai-storyteller-be/internal/repository/implementation"
	"ai-storyteller-be/internal/service"
	"ai-storyteller-be/pkg/llm"
)

type Container struct {
	ChatController controller.IChatController
	Logger         logger.ILogger
}

// NewContainer wires the dependency graph. The LLM provider comes in from
// the caller so tests can substitute a scripted one.
func NewContainer(cfg *config.Config, llmProvider llm.LLMProvider) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Persistence (single JSON document, created if missing)
	sessionRepo, err := implementation.NewJSONSessionRepository(cfg.Memory.DBPath)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize session store: %v", err)
	}

	// 3. Services
	storyService := service.NewStoryService(
		llmProvider,
		sessionRepo,
		sysLogger,
		cfg.App.TraceEnabled,
	)

	// 4. Controllers
	return &Container{
		ChatController: controller.NewChatController(storyService),
		Logger:         sysLogger,
	}
}
