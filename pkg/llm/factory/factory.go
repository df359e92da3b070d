package factory

import (
	"fmt"

	"driven-coach-be/pkg/llm"
	"driven-coach-be/pkg/llm/ollama"
	"driven-coach-be/pkg/llm/openai"
)

func NewCompletionProvider(providerType, modelName, baseURL, apiKey string) (llm.CompletionProvider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "openai":
		if apiKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		return openai.NewOpenAIProvider(baseURL, apiKey, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
