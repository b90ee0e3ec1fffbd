package telegram

import (
	"time"

	"github.com/gin-gonic/gin"

	"boo-assistant/internal/history"
	"boo-assistant/internal/task"
	"boo-assistant/internal/webhook"
	pkgLog "boo-assistant/pkg/log"
	pkgTelegram "boo-assistant/pkg/telegram"
	"boo-assistant/pkg/yandexgpt"
)

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
}

// New creates a new Telegram delivery handler. llm may be nil, which
// disables the small-talk fallback for unrecognized messages.
func New(
	l pkgLog.Logger,
	uc task.UseCase,
	bot *pkgTelegram.Bot,
	llm yandexgpt.IYandexGPT,
	histories *history.Store,
	security *webhook.SecurityValidator,
	loc *time.Location,
) Handler {
	return &handler{
		l:         l,
		uc:        uc,
		bot:       bot,
		llm:       llm,
		histories: histories,
		security:  security,
		loc:       loc,
	}
}
