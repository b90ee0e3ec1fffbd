package yandexgpt

import "time"

const (
	// DefaultModel is the default YandexGPT model
	DefaultModel = "yandexgpt-lite"

	// DefaultBaseURL is the OpenAI-compatible YandexGPT API endpoint
	DefaultBaseURL = "https://ai.api.cloud.yandex.net/v1"

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 30 * time.Second

	// RoleSystem and RoleUser are the chat message roles used by the API.
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
