package util

import (
	"fmt"

	"relate/pkg/ai"
	ollamaai "relate/pkg/ai/ollama"
	openaiai "relate/pkg/ai/openai"
)

// NewExtractAIClient builds the extraction AI client selected by the
// AI_ADAPTER environment variable ("openai" or "ollama").
func NewExtractAIClient() (ai.ExtractAIClient, error) {
	adapter := GetEnvString("AI_ADAPTER", "openai")

	switch adapter {
	case "ollama":
		return ollamaai.NewExtractOllamaClient(ollamaai.NewExtractOllamaClientParams{
			ExtractionModel:       GetEnv("AI_EXTRACT_MODEL"),
			BaseURL:               GetEnv("AI_CHAT_URL"),
			ApiKey:                GetEnv("AI_CHAT_KEY"),
			MaxConcurrentRequests: int64(GetEnvNumeric("PARALLEL_LOOKUPS", 8)),
		})
	case "openai":
		chatKey := GetEnv("AI_CHAT_KEY")
		if chatKey == "" {
			return nil, fmt.Errorf("AI_CHAT_KEY must be set for the openai adapter")
		}
		return openaiai.NewExtractOpenAIClient(openaiai.NewExtractOpenAIClientParams{
			ExtractionModel: GetEnv("AI_EXTRACT_MODEL"),
			ChatURL:         GetEnv("AI_CHAT_URL"),
			ChatKey:         chatKey,
		}), nil
	default:
		return nil, fmt.Errorf("unknown AI adapter: %s", adapter)
	}
}
