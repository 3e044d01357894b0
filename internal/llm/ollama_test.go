package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tmc/langchaingo/llms"
)

func TestNewOllamaClient(t *testing.T) {
	tests := []struct {
		name    string
		model   string
		baseURL string
		wantURL string
		wantErr bool
	}{
		{name: "default server", model: "llama3", wantURL: defaultOllamaBaseURL},
		{name: "custom server", model: "qwen2.5", baseURL: "http://gpu-box:11434", wantURL: "http://gpu-box:11434"},
		{name: "missing model", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewOllamaClient(tt.model, tt.baseURL)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if client.baseURL != tt.wantURL || client.model != tt.model {
				t.Errorf("client = %s @ %s, want %s @ %s", client.model, client.baseURL, tt.model, tt.wantURL)
			}
		})
	}
}

func TestToLangChainMessagesRoles(t *testing.T) {
	messages := []Message{
		{Role: RoleSystem, Content: "You are a university timetabling assistant."},
		{Role: RoleUser, Content: "Generate the timetable."},
		{Role: RoleAssistant, Content: `{"slots":[]}`},
		{Role: "tool", Content: "unknown roles are sent as the user"},
	}
	want := []llms.ChatMessageType{
		llms.ChatMessageTypeSystem,
		llms.ChatMessageTypeHuman,
		llms.ChatMessageTypeAI,
		llms.ChatMessageTypeHuman,
	}

	got := toLangChainMessages(messages)
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, mc := range got {
		if mc.Role != want[i] {
			t.Errorf("message %d role = %q, want %q", i, mc.Role, want[i])
		}
		if len(mc.Parts) != 1 {
			t.Fatalf("message %d has %d parts", i, len(mc.Parts))
		}
		text, ok := mc.Parts[0].(llms.TextContent)
		if !ok || text.Text != messages[i].Content {
			t.Errorf("message %d part = %#v, want text %q", i, mc.Parts[0], messages[i].Content)
		}
	}

	if got := toLangChainMessages(nil); len(got) != 0 {
		t.Errorf("nil messages = %v", got)
	}
}

func TestOllamaChatJSON(t *testing.T) {
	var gotFormat, gotFirstRole string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			http.NotFound(w, r)
			return
		}
		var body struct {
			Format   any `json:"format"`
			Messages []struct {
				Role string `json:"role"`
			} `json:"messages"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if s, ok := body.Format.(string); ok {
			gotFormat = s
		}
		if len(body.Messages) > 0 {
			gotFirstRole = body.Messages[0].Role
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"llama3","message":{"role":"assistant","content":"{\"slots\":[{\"courseId\":\"1\",\"dayOfWeek\":2}]}"},"done":true}`))
	}))
	defer srv.Close()

	client, err := NewOllamaClient("llama3", srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	var out struct {
		Slots []struct {
			CourseID  string `json:"courseId"`
			DayOfWeek int    `json:"dayOfWeek"`
		} `json:"slots"`
	}
	err = client.ChatJSON(context.Background(), []Message{
		{Role: RoleSystem, Content: "Return JSON only."},
		{Role: RoleUser, Content: "Generate the timetable."},
	}, &out)
	if err != nil {
		t.Fatalf("ChatJSON() error = %v", err)
	}
	if len(out.Slots) != 1 || out.Slots[0].CourseID != "1" || out.Slots[0].DayOfWeek != 2 {
		t.Errorf("decoded = %+v", out)
	}
	if gotFormat != "json" {
		t.Errorf("request format = %q, want json", gotFormat)
	}
	if gotFirstRole != RoleSystem {
		t.Errorf("first message role = %q, want system", gotFirstRole)
	}
}
