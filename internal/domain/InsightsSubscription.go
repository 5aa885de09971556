package domain

import (
	"encoding/json"
	"time"
)

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

type InsightsSubscription struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"user_id"`
	GoogleAdsAccountID string     `json:"google_ads_account_id"`
	Frequency          Frequency  `json:"frequency"`
	SendTime           string     `json:"send_time"`
	TimeZone           string     `json:"time_zone"`
	SelectedMetrics    []string   `json:"selected_metrics"`
	IsActive           bool       `json:"is_active"`
	IsPaused           bool       `json:"is_paused"`
	LastSentAt         *time.Time `json:"last_sent_at"`
}

type EmailStatus string

const (
	EmailStatusSent   EmailStatus = "SENT"
	EmailStatusFailed EmailStatus = "FAILED"
)

type InsightsEmailLog struct {
	ID                string          `json:"id"`
	SubscriptionID    string          `json:"subscription_id"`
	UserID            string          `json:"user_id"`
	RecipientEmail    string          `json:"recipient_email"`
	Status            EmailStatus     `json:"status"`
	ErrorMessage      *string         `json:"error_message"`
	MetricsSnapshot   json.RawMessage `json:"metrics_snapshot"`
	ProviderMessageID *string         `json:"provider_message_id"`
	CreatedAt         time.Time       `json:"created_at"`
}

// InsightsRunResult é o resumo de uma execução do lote de e-mails
type InsightsRunResult struct {
	Processed int `json:"processed"`
	Sent      int `json:"sent"`
	Failed    int `json:"failed"`
}
