package factory

import (
	"fmt"

	"ai-storyteller-be/pkg/llm"
	"ai-storyteller-be/pkg/llm/gemini"
	"ai-storyteller-be/pkg/llm/huggingface"
	"ai-storyteller-be/pkg/llm/ollama"
)

func NewLLMProvider(providerType, modelName, baseURL, geminiAPIKey, hfAPIKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "gemini":
		if geminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is not set")
		}
		if modelName == "" {
			modelName = "gemini-2.5-flash" // Default
		}
		return gemini.NewGeminiProvider(geminiAPIKey, modelName), nil
	case "huggingface":
		if hfAPIKey == "" {
			return nil, fmt.Errorf("HF_API_KEY is not set")
		}
		return huggingface.NewHuggingFaceProvider(hfAPIKey, "", modelName), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
