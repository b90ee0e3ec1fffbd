package yandexgpt

import (
	"fmt"
	"net/http"
	"strings"
)

// Config holds YandexGPT client configuration
type Config struct {
	APIKey     string
	FolderID   string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("yandexgpt: APIKey is required")
	}
	if c.FolderID == "" {
		return fmt.Errorf("yandexgpt: FolderID is required")
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}
	return nil
}

// modelURI returns the fully qualified model reference, e.g.
// "gpt://<folder-id>/yandexgpt-lite".
func (c *Config) modelURI() string {
	if strings.HasPrefix(c.Model, "gpt://") {
		return c.Model
	}
	return fmt.Sprintf("gpt://%s/%s", c.FolderID, c.Model)
}

// Message is a single chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the OpenAI-compatible chat completions payload.
type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

// chatResponse is the OpenAI-compatible chat completions response.
type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// yandexImpl is the internal implementation of IYandexGPT
type yandexImpl struct {
	apiKey     string
	folderID   string
	baseURL    string
	model      string
	modelURI   string
	httpClient *http.Client
}
