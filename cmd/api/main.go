package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"boo-assistant/config"
	"boo-assistant/config/postgre"
	_ "boo-assistant/docs" // Swagger docs
	"boo-assistant/internal/history"
	"boo-assistant/internal/httpserver"
	"boo-assistant/internal/proposal"
	"boo-assistant/internal/reminder"
	tgDelivery "boo-assistant/internal/task/delivery/telegram"
	taskRepo "boo-assistant/internal/task/repository/postgre"
	"boo-assistant/internal/task/usecase"
	"boo-assistant/internal/webhook"
	"boo-assistant/pkg/gcalendar"
	"boo-assistant/pkg/log"
	"boo-assistant/pkg/nlp"
	"boo-assistant/pkg/telegram"
	"boo-assistant/pkg/yandexgpt"
)

// @title       BOO Assistant API
// @description Telegram reminder assistant with NL date extraction, YandexGPT fallback, and Google Calendar.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting BOO Assistant...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. PostgreSQL
	db, err := postgre.Connect(ctx, cfg.Postgres)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to PostgreSQL: %v", err)
		return
	}
	defer postgre.Disconnect(ctx, db)

	if err := postgre.InitSchema(ctx, db); err != nil {
		logger.Errorf(ctx, "Failed to init schema: %v", err)
		return
	}

	// 4. Natural language date extractor
	parser, err := nlp.NewParser(cfg.Bot.Timezone)
	if err != nil {
		logger.Warnf(ctx, "Invalid timezone %q, falling back to UTC: %v", cfg.Bot.Timezone, err)
		parser, _ = nlp.NewParser("UTC")
	}

	// 5. Telegram Bot client
	telegramBot := telegram.NewBot(cfg.Telegram.BotToken)

	// Register webhook: auto-detect ngrok or fallback to manual config
	webhookURL := cfg.Telegram.WebhookURL
	if webhookURL == "" {
		ngrokURL, ngrokErr := detectNgrokURL(ctx, cfg.Telegram.NgrokAPIURL)
		if ngrokErr != nil {
			logger.Warnf(ctx, "Could not detect ngrok URL: %v", ngrokErr)
		} else {
			webhookURL = ngrokURL + "/webhook/telegram"
			logger.Infof(ctx, "Auto-detected ngrok URL: %s", webhookURL)
		}
	}
	if webhookURL != "" {
		if whErr := telegramBot.SetWebhook(webhookURL, cfg.Telegram.SecretToken); whErr != nil {
			logger.Warnf(ctx, "Failed to set Telegram webhook: %v", whErr)
		} else {
			logger.Infof(ctx, "Telegram webhook registered at %s", webhookURL)
		}
	}

	// 6. YandexGPT fallback (optional)
	var llm yandexgpt.IYandexGPT
	if cfg.YandexGPT.APIKey != "" && cfg.YandexGPT.FolderID != "" {
		llm, err = yandexgpt.New(yandexgpt.Config{
			APIKey:   cfg.YandexGPT.APIKey,
			FolderID: cfg.YandexGPT.FolderID,
			Model:    cfg.YandexGPT.Model,
			BaseURL:  cfg.YandexGPT.BaseURL,
		})
		if err != nil {
			logger.Warnf(ctx, "YandexGPT not available (optional): %v", err)
		} else {
			logger.Infof(ctx, "YandexGPT initialized, model=%s", llm.Model())
		}
	} else {
		logger.Warn(ctx, "YandexGPT skipped: YANDEX_API_KEY or YANDEX_FOLDER_ID is missing")
	}

	// 7. Google Calendar client (optional)
	var calendarClient *gcalendar.Client
	if cfg.GoogleCalendar.CredentialsPath != "" {
		calendarClient, err = gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath)
		if err != nil {
			logger.Warnf(ctx, "Google Calendar not available (optional): %v", err)
		} else {
			logger.Info(ctx, "Google Calendar initialized")
		}
	}

	// 8. Task domain
	proposals := proposal.NewStore()
	histories := history.NewStore(1000, 20, time.Hour)
	repo := taskRepo.New(db, logger)
	taskUC := usecase.New(logger, parser, proposals, repo, calendarClient, cfg.GoogleCalendar.CalendarID, cfg.Bot.ListLimit)

	security := webhook.NewSecurityValidator(webhook.SecurityConfig{
		SecretToken:     cfg.Telegram.SecretToken,
		RateLimitPerMin: cfg.Telegram.RateLimitPerMin,
	})

	telegramHandler := tgDelivery.New(logger, taskUC, telegramBot, llm, histories, security, parser.Location())

	// 9. Reminder loop
	reminderLoop := reminder.New(
		logger,
		repo,
		telegramBot,
		parser.Location(),
		time.Duration(cfg.Bot.ReminderIntervalSec)*time.Second,
		cfg.Bot.DueBatchSize,
	)
	go reminderLoop.Run(ctx)

	// 10. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		TelegramHandler: telegramHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
