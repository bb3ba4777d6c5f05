package main

import (
	"context"
	"log"

	"ai-storyteller-be/internal/bootstrap"
	"ai-storyteller-be/internal/config"
	"ai-storyteller-be/internal/server"
	"ai-storyteller-be/internal/tracer"
	"ai-storyteller-be/pkg/llm/factory"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Tracer
	shutdownTracer := tracer.InitTracer(cfg.App.TraceEnabled)
	defer shutdownTracer(context.Background())

	// 3. Initialize LLM Provider (missing credential is fatal here)
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
		cfg.Keys.HuggingFace,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg, llmProvider)

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
