package yandexgpt

import "context"

// IYandexGPT defines the interface for the YandexGPT API client.
// Implementations are safe for concurrent use.
type IYandexGPT interface {
	// Chat sends a conversation to YandexGPT and returns the assistant's reply
	Chat(ctx context.Context, messages []Message) (string, error)

	// Model returns the model being used
	Model() string
}

// New creates a new YandexGPT client with the given configuration
func New(cfg Config) (IYandexGPT, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newYandexImpl(cfg), nil
}
