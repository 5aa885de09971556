package domain

import (
	"encoding/json"
	"time"
)

type CacheEntry struct {
	AccountID string          `json:"account_id"`
	CacheKey  string          `json:"cache_key"`
	Data      json.RawMessage `json:"data"`
	QueryHash string          `json:"query_hash"`
	CreatedAt time.Time       `json:"created_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}

func (e *CacheEntry) IsExpired(now time.Time) bool {
	return !e.ExpiresAt.After(now)
}

type DailyMetric struct {
	AccountID  string          `json:"account_id"`
	Date       string          `json:"date"`
	EntityType EntityType      `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	EntityName string          `json:"entity_name"`
	Metrics    json.RawMessage `json:"metrics"`
}

type DailyMetricsRequest struct {
	AccountID  string     `json:"accountId" validate:"required"`
	StartDate  string     `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate    string     `json:"endDate" validate:"required,datetime=2006-01-02"`
	EntityType EntityType `json:"entityType,omitempty"`
}
