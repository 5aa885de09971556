package insighting

import (
	"context"
	"time"

	"github.com/vfg2006/google-ads-insights-api/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/interfaces.go -package=mocks

// AdsMetricsFetcher executa as consultas na API do Google Ads
type AdsMetricsFetcher interface {
	FetchMetrics(ctx context.Context, account *domain.GoogleAdsAccount, entity domain.EntityType, filters domain.MetricsFilters) (*domain.MetricsResult, error)
	FetchDaily(ctx context.Context, account *domain.GoogleAdsAccount, entity domain.EntityType, startDate, endDate string, metrics []string) ([]*domain.DailyMetricsRow, error)
}

// MetricsCache guarda respostas da API por conta e chave
type MetricsCache interface {
	Get(ctx context.Context, accountID, cacheKey string) (*domain.CacheEntry, error)
	Set(ctx context.Context, accountID, cacheKey string, payload any, queryHash string, ttl time.Duration) error
}

// Insighter é o contrato usado pelos handlers, pelos schedulers e pelo envio de insights
type Insighter interface {
	// FetchKeywords obtém métricas por palavra-chave de uma conta do usuário
	FetchKeywords(ctx context.Context, userID string, req *domain.MetricsRequest) (*domain.MetricsResult, error)

	// FetchCampaigns obtém métricas por campanha de uma conta do usuário
	FetchCampaigns(ctx context.Context, userID string, req *domain.MetricsRequest) (*domain.MetricsResult, error)

	// FetchAdGroups obtém métricas por grupo de anúncios de uma conta do usuário
	FetchAdGroups(ctx context.Context, userID string, req *domain.MetricsRequest) (*domain.MetricsResult, error)

	// GetAccountMetrics agrega as métricas da conta no período
	GetAccountMetrics(ctx context.Context, userID string, req *domain.AccountMetricsRequest) (*domain.AccountMetrics, error)

	// AggregateAccountMetrics agrega sem checagem de dono, para uso interno
	AggregateAccountMetrics(ctx context.Context, account *domain.GoogleAdsAccount, startDate, endDate string) (*domain.AccountMetrics, error)

	// GetDailyMetrics devolve o histórico diário, buscando na API quando ainda não há linhas salvas
	GetDailyMetrics(ctx context.Context, userID string, req *domain.DailyMetricsRequest) ([]*domain.DailyMetric, error)

	// SyncDailyMetrics salva o histórico diário da conta e das campanhas no intervalo
	SyncDailyMetrics(ctx context.Context, account *domain.GoogleAdsAccount, startDate, endDate string) (int, error)

	// ListAccounts lista as contas conectadas do usuário
	ListAccounts(ctx context.Context, userID string) ([]*domain.GoogleAdsAccount, error)
}
