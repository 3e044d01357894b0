package llm

import (
	"context"
	"testing"
)

func TestNewClient_Ollama(t *testing.T) {
	client, err := NewClient(context.Background(), "ollama", "llama3", "")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	ollamaClient, ok := client.(*OllamaClient)
	if !ok {
		t.Fatalf("expected OllamaClient, got %T", client)
	}
	if ollamaClient.baseURL != defaultOllamaBaseURL {
		t.Errorf("baseURL = %q, want %q", ollamaClient.baseURL, defaultOllamaBaseURL)
	}
}

func TestNewClient_LMStudio(t *testing.T) {
	client, err := NewClient(context.Background(), "lmstudio", "llama3", "")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	lm, ok := client.(*OpenAIClient)
	if !ok {
		t.Fatalf("expected OpenAIClient, got %T", client)
	}
	if lm.baseURL != defaultLMStudioBaseURL || lm.name != ProviderLMStudio {
		t.Errorf("client = %s at %q, want lmstudio at %q", lm.name, lm.baseURL, defaultLMStudioBaseURL)
	}
}

func TestNewClient_UnsupportedProvider(t *testing.T) {
	_, err := NewClient(context.Background(), "unknown", "model", "")
	if err == nil {
		t.Fatal("expected error for unsupported provider")
	}
}

func TestIsLocal(t *testing.T) {
	tests := []struct {
		provider string
		want     bool
	}{
		{"ollama", true},
		{"LMStudio", true},
		{"copilot", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsLocal(tt.provider); got != tt.want {
			t.Errorf("IsLocal(%q) = %v, want %v", tt.provider, got, tt.want)
		}
	}
}
