package yandexgpt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// newYandexImpl creates a new YandexGPT implementation
func newYandexImpl(cfg Config) *yandexImpl {
	return &yandexImpl{
		apiKey:     cfg.APIKey,
		folderID:   cfg.FolderID,
		baseURL:    cfg.BaseURL,
		model:      cfg.Model,
		modelURI:   cfg.modelURI(),
		httpClient: cfg.HTTPClient,
	}
}

// Chat sends a conversation to YandexGPT and returns the assistant's reply
func (y *yandexImpl) Chat(ctx context.Context, messages []Message) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       y.modelURI,
		Messages:    messages,
		Temperature: 0.6,
		MaxTokens:   2000,
	})
	if err != nil {
		return "", fmt.Errorf("yandexgpt: failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		y.baseURL+"/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("yandexgpt: failed to create request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+y.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-folder-id", y.folderID)

	resp, err := y.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("yandexgpt: API call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("yandexgpt: API error %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("yandexgpt: failed to decode response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("yandexgpt: empty response")
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

// Model returns the model being used
func (y *yandexImpl) Model() string {
	return y.model
}
