package openai

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/yungbote/careerpath-backend/internal/pkg/logger"
)

const okBody = `{"output":[{"type":"message","role":"assistant","content":[{"type":"output_text","text":"{\"Beginner\":[]}"}]}]}`

func newTestClient(t *testing.T, srv *httptest.Server, retries int) Client {
	t.Helper()
	c, err := NewClient(logger.NewNop(), Config{
		APIKey:     "sk-test",
		BaseURL:    srv.URL,
		Model:      "primary-model",
		Timeout:    5 * time.Second,
		MaxRetries: retries,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestGenerateTextSendsModelAndPrompts(t *testing.T) {
	var gotModel, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/responses" {
			t.Errorf("path: want=/v1/responses got=%q", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		var req responsesRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		gotModel = req.Model
		if len(req.Input) != 2 || req.Input[0].Role != "system" || req.Input[1].Content != "user prompt" {
			t.Errorf("input: got=%+v", req.Input)
		}
		_, _ = io.WriteString(w, okBody)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, 0)
	text, err := c.WithModel("secondary-model").GenerateText(context.Background(), "sys", "user prompt")
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if text != `{"Beginner":[]}` {
		t.Fatalf("text: got=%q", text)
	}
	if gotModel != "secondary-model" {
		t.Fatalf("model: want=secondary-model got=%q", gotModel)
	}
	if gotAuth != "Bearer sk-test" {
		t.Fatalf("auth: got=%q", gotAuth)
	}
	if c.Model() != "primary-model" {
		t.Fatalf("WithModel must not mutate the original client")
	}
}

func TestGenerateTextRetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = io.WriteString(w, okBody)
	}))
	defer srv.Close()

	if _, err := newTestClient(t, srv, 2).GenerateText(context.Background(), "s", "u"); err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("calls: want=2 got=%d", calls.Load())
	}
}

func TestGenerateTextDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":{"message":"bad key"}}`)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv, 3).GenerateText(context.Background(), "s", "u")
	if err == nil || !strings.Contains(err.Error(), "401") {
		t.Fatalf("err: want 401 got=%v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("calls: want=1 got=%d", calls.Load())
	}
}

func TestGenerateTextRefusal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"output":[{"type":"message","role":"assistant","content":[{"type":"refusal","refusal":"no"}]}]}`)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv, 0).GenerateText(context.Background(), "s", "u")
	if err == nil || !strings.Contains(err.Error(), "refused") {
		t.Fatalf("err: want refusal got=%v", err)
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient(logger.NewNop(), Config{}); err == nil {
		t.Fatalf("expected error for missing key")
	}
}
