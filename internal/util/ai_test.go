package util

import "testing"

func TestNewExtractAIClient_OpenAIMissingKey(t *testing.T) {
	t.Setenv("AI_ADAPTER", "openai")
	t.Setenv("AI_CHAT_KEY", "")

	_, err := NewExtractAIClient()
	if err == nil {
		t.Fatal("expected error for missing AI_CHAT_KEY, got nil")
	}
}

func TestNewExtractAIClient_OpenAI(t *testing.T) {
	t.Setenv("AI_ADAPTER", "openai")
	t.Setenv("AI_CHAT_KEY", "test-key")

	client, err := NewExtractAIClient()
	if err != nil {
		t.Fatalf("NewExtractAIClient() error = %v", err)
	}
	if client == nil {
		t.Fatal("expected a client, got nil")
	}
}

func TestNewExtractAIClient_Ollama(t *testing.T) {
	t.Setenv("AI_ADAPTER", "ollama")
	t.Setenv("AI_CHAT_URL", "http://127.0.0.1:11434")

	client, err := NewExtractAIClient()
	if err != nil {
		t.Fatalf("NewExtractAIClient() error = %v", err)
	}
	if client == nil {
		t.Fatal("expected a client, got nil")
	}
}

func TestNewExtractAIClient_UnknownAdapter(t *testing.T) {
	t.Setenv("AI_ADAPTER", "watson")

	_, err := NewExtractAIClient()
	if err == nil {
		t.Fatal("expected error for unknown adapter, got nil")
	}
}
