package yandexgpt_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"boo-assistant/pkg/yandexgpt"
)

func TestConfigValidate(t *testing.T) {
	t.Run("Missing API Key", func(t *testing.T) {
		_, err := yandexgpt.New(yandexgpt.Config{FolderID: "b1g"})
		if err == nil || !strings.Contains(err.Error(), "APIKey") {
			t.Fatalf("expected APIKey error, got %v", err)
		}
	})

	t.Run("Missing Folder ID", func(t *testing.T) {
		_, err := yandexgpt.New(yandexgpt.Config{APIKey: "key"})
		if err == nil || !strings.Contains(err.Error(), "FolderID") {
			t.Fatalf("expected FolderID error, got %v", err)
		}
	})

	t.Run("Defaults", func(t *testing.T) {
		client, err := yandexgpt.New(yandexgpt.Config{APIKey: "key", FolderID: "b1g"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if client.Model() != yandexgpt.DefaultModel {
			t.Errorf("expected default model %q, got %q", yandexgpt.DefaultModel, client.Model())
		}
	})
}

func TestChat(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected Authorization header %q", got)
		}
		if got := r.Header.Get("x-folder-id"); got != "b1gfolder" {
			t.Errorf("unexpected x-folder-id header %q", got)
		}

		var req struct {
			Model    string              `json:"model"`
			Messages []yandexgpt.Message `json:"messages"`
		}
		json.NewDecoder(r.Body).Decode(&req)

		if req.Model != "gpt://b1gfolder/yandexgpt-lite" {
			t.Errorf("unexpected model uri %q", req.Model)
		}
		if len(req.Messages) == 0 {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error": "messages required"}`))
			return
		}
		if req.Messages[len(req.Messages)-1].Content == "cause_500" {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error": "internal"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": " Бу! Чем помочь? "}}], "usage": {"total_tokens": 42}}`))
	}))
	defer ts.Close()

	client, err := yandexgpt.New(yandexgpt.Config{
		APIKey:   "test-key",
		FolderID: "b1gfolder",
		BaseURL:  ts.URL,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	t.Run("Success", func(t *testing.T) {
		reply, err := client.Chat(context.Background(), []yandexgpt.Message{
			{Role: yandexgpt.RoleSystem, Content: "Ты ассистент"},
			{Role: yandexgpt.RoleUser, Content: "привет"},
		})
		if err != nil {
			t.Fatalf("Chat failed: %v", err)
		}
		if reply != "Бу! Чем помочь?" {
			t.Errorf("expected trimmed reply, got %q", reply)
		}
	})

	t.Run("API Error", func(t *testing.T) {
		_, err := client.Chat(context.Background(), []yandexgpt.Message{
			{Role: yandexgpt.RoleUser, Content: "cause_500"},
		})
		if err == nil || !strings.Contains(err.Error(), "API error 500") {
			t.Fatalf("expected API error, got %v", err)
		}
	})

	t.Run("Empty Messages", func(t *testing.T) {
		_, err := client.Chat(context.Background(), nil)
		if err == nil {
			t.Fatal("expected error for empty messages")
		}
	})
}
