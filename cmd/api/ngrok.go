package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const (
	ngrokTunnelsPath  = "/api/tunnels"
	ngrokPollAttempts = 10
	ngrokPollDelay    = 3 * time.Second
)

var errNoTunnels = errors.New("ngrok reports no active tunnels")

type ngrokTunnel struct {
	PublicURL string `json:"public_url"`
	Proto     string `json:"proto"`
}

// detectNgrokURL polls the local ngrok agent API until it reports a tunnel,
// covering the window where the agent container is still starting. Returns
// the public URL to register the Telegram webhook against.
func detectNgrokURL(ctx context.Context, apiBase string) (string, error) {
	client := &http.Client{Timeout: 5 * time.Second}

	var lastErr error
	for attempt := 0; attempt < ngrokPollAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(ngrokPollDelay):
			}
		}

		url, err := queryNgrokTunnel(ctx, client, apiBase+ngrokTunnelsPath)
		if err == nil {
			return url, nil
		}
		lastErr = err
	}

	return "", fmt.Errorf("ngrok tunnel not found after %d attempts: %w", ngrokPollAttempts, lastErr)
}

// queryNgrokTunnel asks the agent for its tunnel list once, preferring an
// HTTPS tunnel (Telegram only delivers webhooks over HTTPS).
func queryNgrokTunnel(ctx context.Context, client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create ngrok API request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ngrok API not reachable: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Tunnels []ngrokTunnel `json:"tunnels"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode ngrok API response: %w", err)
	}

	for _, t := range payload.Tunnels {
		if t.Proto == "https" {
			return t.PublicURL, nil
		}
	}
	if len(payload.Tunnels) > 0 {
		return payload.Tunnels[0].PublicURL, nil
	}
	return "", errNoTunnels
}
