package openai

import (
	"sync"

	"relate/pkg/ai"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// ExtractOpenAIClient implements ai.ExtractAIClient against any
// OpenAI-compatible chat completion endpoint.
//
// An ExtractOpenAIClient should be created using NewExtractOpenAIClient.
type ExtractOpenAIClient struct {
	extractionModel string

	chatURL string
	chatKey string

	metricsLock sync.Mutex
	metrics     ai.ModelMetrics

	ChatClient *openai.Client
}

// NewExtractOpenAIClientParams defines the configuration for creating a new
// ExtractOpenAIClient.
//
// ExtractionModel specifies the model used for entity extraction.
// ChatURL and ChatKey configure the chat/completion API endpoint; an empty
// ChatURL means the official OpenAI endpoint.
type NewExtractOpenAIClientParams struct {
	ExtractionModel string

	ChatURL string
	ChatKey string
}

// NewExtractOpenAIClient creates and returns an ExtractOpenAIClient configured
// with the provided parameters.
//
// Example:
//
//	params := openai.NewExtractOpenAIClientParams{
//		ExtractionModel: "gpt-4o-mini",
//		ChatURL:         "https://api.openai.com/v1",
//		ChatKey:         os.Getenv("OPENAI_API_KEY"),
//	}
//	client := openai.NewExtractOpenAIClient(params)
func NewExtractOpenAIClient(
	params NewExtractOpenAIClientParams,
) *ExtractOpenAIClient {
	chatClient := newOpenaiClient(params.ChatURL, params.ChatKey)

	return &ExtractOpenAIClient{
		extractionModel: params.ExtractionModel,

		chatURL: params.ChatURL,
		chatKey: params.ChatKey,

		metricsLock: sync.Mutex{},
		metrics: ai.ModelMetrics{
			InputTokens:  0,
			OutputTokens: 0,
			TotalTokens:  0,
			DurationMs:   0,
		},

		ChatClient: chatClient,
	}
}

func newOpenaiClient(
	baseURL string,
	apiKey string,
) *openai.Client {
	if apiKey == "" {
		return nil
	}
	options := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}

	if baseURL != "" {
		options = append(options, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(options...)

	return &client
}
