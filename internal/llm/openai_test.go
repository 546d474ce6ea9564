package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/slugline/slugline/internal/model"
)

func correctionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("unexpected Authorization header %q", r.Header.Get("Authorization"))
		}
		resp := openai.ChatCompletionResponse{
			ID:     "chatcmpl-123",
			Object: "chat.completion",
			Model:  "gpt-4o-mini",
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Role: "assistant", Content: content}},
			},
			Usage: openai.Usage{TotalTokens: 42},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func testConfig(baseURL string) model.LLMConfig {
	return model.LLMConfig{
		Provider:          "openai",
		APIKey:            "test-key",
		BaseURL:           baseURL,
		Timeout:           5 * time.Second,
		RequestsPerSecond: 100, // keep the limiter out of the way
	}
}

func TestOpenAICorrect(t *testing.T) {
	server := correctionServer(t, `{"corrected_text": "INT. CAFE - DAY", "confidence": 0.92}`)
	defer server.Close()

	provider, err := NewOpenAIProvider(testConfig(server.URL))
	if err != nil {
		t.Fatalf("NewOpenAIProvider: %v", err)
	}

	resp, err := provider.Correct(context.Background(), CorrectionRequest{
		Text:      "int cafe day",
		StartLine: 1,
	})
	if err != nil {
		t.Fatalf("Correct: %v", err)
	}
	if resp.Text != "INT. CAFE - DAY" {
		t.Errorf("Text = %q", resp.Text)
	}
	if resp.Confidence != 0.92 {
		t.Errorf("Confidence = %v", resp.Confidence)
	}
	if resp.Model != openai.GPT4oMini {
		t.Errorf("Model = %q, want default", resp.Model)
	}
	if resp.TokensUsed != 42 {
		t.Errorf("TokensUsed = %d", resp.TokensUsed)
	}
}

func TestOpenAICorrectMalformedPayload(t *testing.T) {
	server := correctionServer(t, "I fixed it for you!")
	defer server.Close()

	provider, err := NewOpenAIProvider(testConfig(server.URL))
	if err != nil {
		t.Fatalf("NewOpenAIProvider: %v", err)
	}
	if _, err := provider.Correct(context.Background(), CorrectionRequest{Text: "x"}); err == nil {
		t.Fatal("expected error for non-JSON payload")
	}
}

func TestOpenAICorrectConfidenceOutOfRange(t *testing.T) {
	server := correctionServer(t, `{"corrected_text": "x", "confidence": 1.5}`)
	defer server.Close()

	provider, err := NewOpenAIProvider(testConfig(server.URL))
	if err != nil {
		t.Fatalf("NewOpenAIProvider: %v", err)
	}
	if _, err := provider.Correct(context.Background(), CorrectionRequest{Text: "x"}); err == nil {
		t.Fatal("expected error for out-of-range confidence")
	}
}

func TestNewOpenAIProviderRequiresKey(t *testing.T) {
	if _, err := NewOpenAIProvider(model.LLMConfig{}); err == nil {
		t.Fatal("expected error without API key")
	}
}

func TestFactory(t *testing.T) {
	provider, err := NewProvider(model.LLMConfig{})
	if err != nil || provider != nil {
		t.Fatalf("disabled config: provider=%v err=%v", provider, err)
	}

	if _, err := NewProvider(model.LLMConfig{Provider: "bard"}); err == nil {
		t.Fatal("expected error for unknown provider")
	}

	p, err := NewProvider(model.LLMConfig{Provider: "openai", APIKey: "k"})
	if err != nil {
		t.Fatalf("openai config: %v", err)
	}
	if p.Name() != "openai" {
		t.Errorf("Name = %q", p.Name())
	}
}
