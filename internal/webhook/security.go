package webhook

import (
	"crypto/hmac"
	"fmt"
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// SecurityConfig holds webhook validation settings.
type SecurityConfig struct {
	SecretToken     string // Expected X-Telegram-Bot-Api-Secret-Token value
	RateLimitPerMin int    // Per-chat message budget
}

// SecurityValidator validates incoming Telegram webhook requests
type SecurityValidator struct {
	config      SecurityConfig
	rateLimiter *rateLimiter
}

func NewSecurityValidator(config SecurityConfig) *SecurityValidator {
	return &SecurityValidator{
		config:      config,
		rateLimiter: newRateLimiter(config.RateLimitPerMin),
	}
}

// ValidateSecretToken verifies the X-Telegram-Bot-Api-Secret-Token header.
// Validation is skipped when no secret is configured.
func (v *SecurityValidator) ValidateSecretToken(token string) error {
	if v.config.SecretToken == "" {
		return nil
	}

	// Constant-time comparison
	if !hmac.Equal([]byte(token), []byte(v.config.SecretToken)) {
		return fmt.Errorf("secret token verification failed")
	}
	return nil
}

// CheckRateLimit enforces the per-chat rate limit
func (v *SecurityValidator) CheckRateLimit(chatID int64) error {
	return v.rateLimiter.Allow(strconv.FormatInt(chatID, 10))
}

// rateLimiter is a per-chat rate limiter with auto-cleanup
type rateLimiter struct {
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

func newRateLimiter(requestsPerMin int) *rateLimiter {
	burst := requestsPerMin / 10
	if burst < 1 {
		burst = 1
	}
	return &rateLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](
			1000,          // Max 1000 unique chats
			nil,           // No eviction callback
			time.Minute*5, // TTL: 5 minutes
		),
		rate:  rate.Limit(float64(requestsPerMin) / 60.0), // Per second
		burst: burst,
	}
}

func (rl *rateLimiter) Allow(key string) error {
	limiter, ok := rl.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters.Add(key, limiter)
	}

	if !limiter.Allow() {
		return fmt.Errorf("rate limit exceeded for chat %s", key)
	}
	return nil
}
