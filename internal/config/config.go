package config

import (
	"time"
)

type Config struct {
	AppConfig
	DBConfig
	PushConfig
	TelegramConfig
	GoogleSheetConfig
	ReminderConfig
}

type AppConfig struct {
	HTTPAddr     string `envconfig:"HTTP_ADDR" default:":8080"`
	MetricsAddr  string `envconfig:"METRICS_ADDR" default:":9090"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
	FuzzyHeaders bool   `envconfig:"IMPORT_FUZZY_HEADERS" default:"false"`
}

type DBConfig struct {
	User   string `envconfig:"DBUSER" required:"true" masked:"true"`
	Pass   string `envconfig:"DBPASS" required:"true" masked:"true"`
	Host   string `envconfig:"DBHOST" required:"true" masked:"true"`
	DBName string `envconfig:"DBNAME" required:"true" masked:"true"`

	Port    string `envconfig:"DBPORT" required:"true" masked:"true"`
	SSLMode string `envconfig:"DBSSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"30m"`
}

// PushConfig ключи VAPID. Без ключей Web Push отключен.
type PushConfig struct {
	VAPIDPublicKey  string `envconfig:"VAPID_PUBLIC_KEY" masked:"true"`
	VAPIDPrivateKey string `envconfig:"VAPID_PRIVATE_KEY" masked:"true"`
	Subscriber      string `envconfig:"VAPID_SUBJECT" default:"mailto:example@yourdomain.org"`
	TTL             int    `envconfig:"PUSH_TTL" default:"86400"`
}

// TelegramConfig пустой токен - бот не запускается
type TelegramConfig struct {
	BotToken string `envconfig:"BOT_TOKEN" masked:"true"`
}

// GoogleSheetConfig источник импорта из таблицы, необязателен
type GoogleSheetConfig struct {
	SheetID           string `envconfig:"SHEET_ID" masked:"true"`
	SpreadsheetID     string `envconfig:"SPREADSHEET_ID" masked:"true"`
	CredentialsBase64 string `envconfig:"CREDENTIALS_BASE64" masked:"true"`
	PauseMs           int    `envconfig:"SHEET_PAUSE_MS" default:"1000"`
}

func (c GoogleSheetConfig) Enabled() bool {
	return c.SpreadsheetID != "" && c.CredentialsBase64 != ""
}

type ReminderConfig struct {
	Schedule        string        `envconfig:"REMINDER_SCHEDULE" default:"0 9 * * *"`
	Timezone        string        `envconfig:"REMINDER_TZ"`
	DeliveryTimeout time.Duration `envconfig:"REMINDER_DELIVERY_TIMEOUT" default:"10s"`
	MaxConcurrent   int           `envconfig:"REMINDER_MAX_CONCURRENT" default:"8"`
	Icon            string        `envconfig:"REMINDER_ICON" default:"/icon-192x192.png"`
}

// Location часовой пояс расписания, пустой - локальное время сервера
func (c ReminderConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}
