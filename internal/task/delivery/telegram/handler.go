package telegram

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"boo-assistant/internal/history"
	"boo-assistant/internal/model"
	"boo-assistant/internal/task"
	"boo-assistant/internal/webhook"
	pkgLog "boo-assistant/pkg/log"
	pkgResponse "boo-assistant/pkg/response"
	pkgTelegram "boo-assistant/pkg/telegram"
	"boo-assistant/pkg/yandexgpt"
)

const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

type handler struct {
	l         pkgLog.Logger
	uc        task.UseCase
	bot       *pkgTelegram.Bot
	llm       yandexgpt.IYandexGPT
	histories *history.Store
	security  *webhook.SecurityValidator
	loc       *time.Location
}

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
// It responds with HTTP 200 immediately and processes the update in a
// background goroutine: Telegram expects a response within a few seconds
// and retries the whole update otherwise.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.security.ValidateSecretToken(c.GetHeader(secretTokenHeader)); err != nil {
		h.l.Warnf(ctx, "telegram handler: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid secret token"})
		return
	}

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	// Snapshot before spawning goroutines to avoid races on the gin context.
	switch {
	case update.CallbackQuery != nil:
		cb := update.CallbackQuery
		if cb.Message == nil || cb.Message.Chat == nil {
			pkgResponse.OK(c, map[string]string{"status": "ignored"})
			return
		}
		go func() {
			// Detach from the request context, it is cancelled after the response.
			h.processCallback(context.Background(), cb)
		}()

	case update.Message != nil && update.Message.Chat != nil:
		msg := update.Message
		if err := h.security.CheckRateLimit(msg.Chat.ID); err != nil {
			h.l.Warnf(ctx, "telegram handler: %v", err)
			pkgResponse.OK(c, map[string]string{"status": "throttled"})
			return
		}
		go func() {
			bgCtx := context.Background()
			if err := h.processMessage(bgCtx, msg); err != nil {
				h.l.Errorf(bgCtx, "telegram handler: background processMessage failed: %v", err)
				_ = h.bot.SendMessage(msg.Chat.ID, msgSomethingWrong)
			}
		}()

	default:
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

// processMessage handles a single Telegram message.
func (h *handler) processMessage(ctx context.Context, msg *pkgTelegram.Message) error {
	if msg.Text == "" {
		return nil
	}

	sc := scopeOf(msg)

	switch {
	case msg.Text == "/start":
		return h.bot.SendMessage(msg.Chat.ID, msgStart)
	case msg.Text == "/list":
		return h.handleList(ctx, sc)
	case strings.HasPrefix(msg.Text, "/done"):
		return h.handleDone(ctx, sc, msg.Text)
	}

	return h.handleFreeText(ctx, sc, msg.Text)
}

func (h *handler) handleList(ctx context.Context, sc model.Scope) error {
	tasks, err := h.uc.ListOpen(ctx, sc)
	if err != nil {
		h.l.Errorf(ctx, "telegram handler: ListOpen failed: %v", err)
		return h.bot.SendMessage(sc.ChatID, msgSomethingWrong)
	}
	return h.bot.SendMessage(sc.ChatID, formatTaskList(tasks, h.loc))
}

func (h *handler) handleDone(ctx context.Context, sc model.Scope, text string) error {
	parts := strings.Fields(text)
	if len(parts) < 2 {
		return h.bot.SendMessage(sc.ChatID, msgDoneUsage)
	}
	taskID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return h.bot.SendMessage(sc.ChatID, msgDoneUsage)
	}

	if _, err := h.uc.Complete(ctx, sc, taskID); err != nil {
		if errors.Is(err, task.ErrTaskNotFound) {
			return h.bot.SendMessage(sc.ChatID, msgTaskNotFound)
		}
		h.l.Errorf(ctx, "telegram handler: Complete failed: %v", err)
		return h.bot.SendMessage(sc.ChatID, msgSomethingWrong)
	}
	return h.bot.SendMessage(sc.ChatID, msgTaskCompleted)
}

// handleFreeText first tries the cheap local extractor; anything it cannot
// recognize goes to the LLM fallback.
func (h *handler) handleFreeText(ctx context.Context, sc model.Scope, text string) error {
	out, err := h.uc.Propose(ctx, sc, task.ProposeInput{Text: text, Now: time.Now()})
	if err == nil {
		return h.bot.SendMessageWithKeyboard(
			sc.ChatID,
			formatProposal(out),
			confirmKeyboard(out.ProposalID),
		)
	}
	if !errors.Is(err, task.ErrNoDateFound) && !errors.Is(err, task.ErrEmptyInput) {
		h.l.Errorf(ctx, "telegram handler: Propose failed: %v", err)
		return h.bot.SendMessage(sc.ChatID, msgSomethingWrong)
	}

	return h.chatFallback(ctx, sc, text)
}

func (h *handler) chatFallback(ctx context.Context, sc model.Scope, text string) error {
	if h.llm == nil {
		return h.bot.SendMessage(sc.ChatID, msgNoDateHint)
	}

	messages := []yandexgpt.Message{{Role: yandexgpt.RoleSystem, Content: systemPrompt}}
	messages = append(messages, h.histories.Get(sc.ChatID)...)
	messages = append(messages, yandexgpt.Message{Role: yandexgpt.RoleUser, Content: text})

	reply, err := h.llm.Chat(ctx, messages)
	if err != nil {
		h.l.Errorf(ctx, "telegram handler: LLM fallback failed: %v", err)
		return h.bot.SendMessage(sc.ChatID, msgLLMUnavailable)
	}

	h.histories.Append(sc.ChatID, yandexgpt.RoleUser, text)
	h.histories.Append(sc.ChatID, yandexgpt.RoleAssistant, reply)

	return h.bot.SendMessage(sc.ChatID, reply)
}

// processCallback handles a confirm/cancel button press.
func (h *handler) processCallback(ctx context.Context, cb *pkgTelegram.CallbackQuery) {
	defer func() {
		if err := h.bot.AnswerCallbackQuery(cb.ID, ""); err != nil {
			h.l.Warnf(ctx, "telegram handler: answer callback failed: %v", err)
		}
	}()

	sc := model.Scope{ChatID: cb.Message.Chat.ID}
	if cb.From != nil {
		sc.UserID = cb.From.ID
		sc.Username = cb.From.Username
	}

	action, proposalID, ok := strings.Cut(cb.Data, ":")
	if !ok {
		h.l.Warnf(ctx, "telegram handler: malformed callback data %q", cb.Data)
		return
	}

	var text string
	switch action {
	case "confirm":
		out, err := h.uc.Confirm(ctx, sc, proposalID)
		switch {
		case errors.Is(err, task.ErrProposalNotFound):
			text = msgProposalStale
		case err != nil:
			h.l.Errorf(ctx, "telegram handler: Confirm failed: %v", err)
			text = msgSomethingWrong
		default:
			text = formatConfirmed(out, h.loc)
		}

	case "cancel":
		// Cancel is idempotent, a stale proposal is still acknowledged.
		if err := h.uc.Cancel(ctx, sc, proposalID); err != nil {
			h.l.Errorf(ctx, "telegram handler: Cancel failed: %v", err)
			text = msgSomethingWrong
		} else {
			text = msgCancelled
		}

	default:
		h.l.Warnf(ctx, "telegram handler: unknown callback action %q", action)
		return
	}

	if err := h.bot.EditMessageText(cb.Message.Chat.ID, cb.Message.MessageID, text); err != nil {
		h.l.Errorf(ctx, "telegram handler: edit message failed: %v", err)
	}
}

func scopeOf(msg *pkgTelegram.Message) model.Scope {
	sc := model.Scope{ChatID: msg.Chat.ID}
	if msg.From != nil {
		sc.UserID = msg.From.ID
		sc.Username = msg.From.Username
	}
	return sc
}
