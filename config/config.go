package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Infrastructure
	Postgres PostgresConfig

	// Bot behavior
	Bot BotConfig

	// External collaborators
	Telegram       TelegramConfig
	YandexGPT      YandexGPTConfig
	GoogleCalendar GoogleCalendarConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// BotConfig holds assistant behavior settings.
// Timezone is the fixed local zone used to interpret zone-less
// natural-language dates before converting to UTC.
type BotConfig struct {
	Timezone            string
	ReminderIntervalSec int
	DueBatchSize        int
	ListLimit           int
}

// TelegramConfig holds Bot API credentials and webhook settings.
// NgrokAPIURL points at a local ngrok agent used to discover the public
// webhook URL in development when webhook_url is not set explicitly.
type TelegramConfig struct {
	BotToken        string
	WebhookURL      string
	SecretToken     string
	RateLimitPerMin int
	NgrokAPIURL     string
}

type YandexGPTConfig struct {
	APIKey   string
	FolderID string
	Model    string
	BaseURL  string
}

type GoogleCalendarConfig struct {
	CredentialsPath string
	CalendarID      string
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Postgres
	cfg.Postgres.Host = viper.GetString("postgres.host")
	cfg.Postgres.Port = viper.GetInt("postgres.port")
	cfg.Postgres.User = viper.GetString("postgres.user")
	cfg.Postgres.Password = viper.GetString("postgres.password")
	cfg.Postgres.Database = viper.GetString("postgres.database")
	cfg.Postgres.SSLMode = viper.GetString("postgres.sslmode")
	if dbPass := viper.GetString("db_pass"); dbPass != "" {
		cfg.Postgres.Password = dbPass
	}

	// Bot behavior
	cfg.Bot.Timezone = viper.GetString("bot.timezone")
	cfg.Bot.ReminderIntervalSec = viper.GetInt("bot.reminder_interval_sec")
	cfg.Bot.DueBatchSize = viper.GetInt("bot.due_batch_size")
	cfg.Bot.ListLimit = viper.GetInt("bot.list_limit")

	// Telegram
	cfg.Telegram.BotToken = viper.GetString("telegram.bot_token")
	cfg.Telegram.WebhookURL = viper.GetString("telegram.webhook_url")
	cfg.Telegram.SecretToken = viper.GetString("telegram.secret_token")
	cfg.Telegram.RateLimitPerMin = viper.GetInt("telegram.rate_limit_per_min")
	cfg.Telegram.NgrokAPIURL = viper.GetString("telegram.ngrok_api_url")
	if tgToken := viper.GetString("bot_token"); tgToken != "" {
		cfg.Telegram.BotToken = tgToken
	}

	// YandexGPT
	cfg.YandexGPT.APIKey = viper.GetString("yandexgpt.api_key")
	cfg.YandexGPT.FolderID = viper.GetString("yandexgpt.folder_id")
	cfg.YandexGPT.Model = viper.GetString("yandexgpt.model")
	cfg.YandexGPT.BaseURL = viper.GetString("yandexgpt.base_url")
	if yKey := viper.GetString("yandex_api_key"); yKey != "" {
		cfg.YandexGPT.APIKey = yKey
	}
	if yFolder := viper.GetString("yandex_folder_id"); yFolder != "" {
		cfg.YandexGPT.FolderID = yFolder
	}

	// Google Calendar
	cfg.GoogleCalendar.CredentialsPath = viper.GetString("google_calendar.credentials_path")
	cfg.GoogleCalendar.CalendarID = viper.GetString("google_calendar.calendar_id")
	if googleCreds := viper.GetString("google_calendar_credentials"); googleCreds != "" {
		cfg.GoogleCalendar.CredentialsPath = googleCreds
	}

	if cfg.Telegram.BotToken == "" {
		return nil, fmt.Errorf("telegram.bot_token is required (or BOT_TOKEN env)")
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("postgres.host", "localhost")
	viper.SetDefault("postgres.port", 5432)
	viper.SetDefault("postgres.user", "postgres")
	viper.SetDefault("postgres.database", "boo")
	viper.SetDefault("postgres.sslmode", "disable")

	viper.SetDefault("bot.timezone", "Asia/Yakutsk")
	viper.SetDefault("bot.reminder_interval_sec", 60)
	viper.SetDefault("bot.due_batch_size", 50)
	viper.SetDefault("bot.list_limit", 20)

	viper.SetDefault("telegram.rate_limit_per_min", 60)
	viper.SetDefault("telegram.ngrok_api_url", "http://ngrok:4040")

	viper.SetDefault("yandexgpt.base_url", "https://ai.api.cloud.yandex.net/v1")
	viper.SetDefault("yandexgpt.model", "yandexgpt-lite")
}
