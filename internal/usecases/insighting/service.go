package insighting

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/google-ads-insights-api/infrastructure/integrator/googleads"
	"github.com/vfg2006/google-ads-insights-api/infrastructure/repository"
	"github.com/vfg2006/google-ads-insights-api/internal/domain"
	"github.com/vfg2006/google-ads-insights-api/internal/usecases/caching"
	"github.com/vfg2006/google-ads-insights-api/pkg/apiErrors"
	"github.com/vfg2006/google-ads-insights-api/pkg/log"
	"github.com/vfg2006/google-ads-insights-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// cachedQuery é o conjunto completo de parâmetros usado no hash da consulta
type cachedQuery struct {
	AccountID string                `json:"accountId"`
	Entity    domain.EntityType     `json:"entity"`
	Filters   domain.MetricsFilters `json:"filters"`
}

type Service struct {
	ads      AdsMetricsFetcher
	accounts repository.GoogleAdsAccountRepository
	daily    repository.DailyMetricRepository
	cache    MetricsCache
	useCache bool
	cacheTTL time.Duration
	now      func() time.Time
}

// NewService cria uma nova instância do serviço de insights
func NewService(
	ads AdsMetricsFetcher,
	accounts repository.GoogleAdsAccountRepository,
	daily repository.DailyMetricRepository,
) *Service {
	return &Service{
		ads:      ads,
		accounts: accounts,
		daily:    daily,
		useCache: false, // Inicialmente não usa cache
		now:      time.Now,
	}
}

// WithCache habilita o uso de cache das respostas da API
func (s *Service) WithCache(cache MetricsCache, ttl time.Duration) *Service {
	s.cache = cache
	s.cacheTTL = ttl
	s.useCache = cache != nil
	return s
}

func (s *Service) FetchKeywords(ctx context.Context, userID string, req *domain.MetricsRequest) (*domain.MetricsResult, error) {
	return s.fetchEntity(ctx, userID, req, domain.EntityKeyword)
}

func (s *Service) FetchCampaigns(ctx context.Context, userID string, req *domain.MetricsRequest) (*domain.MetricsResult, error) {
	return s.fetchEntity(ctx, userID, req, domain.EntityCampaign)
}

func (s *Service) FetchAdGroups(ctx context.Context, userID string, req *domain.MetricsRequest) (*domain.MetricsResult, error) {
	return s.fetchEntity(ctx, userID, req, domain.EntityAdGroup)
}

func (s *Service) fetchEntity(ctx context.Context, userID string, req *domain.MetricsRequest, entity domain.EntityType) (*domain.MetricsResult, error) {
	logger := log.ForContext(ctx)

	if req == nil || req.AccountID == "" {
		return nil, domain.NewValidationError("accountId", "obrigatório")
	}

	account, err := s.authorizedAccount(ctx, userID, req.AccountID)
	if err != nil {
		return nil, err
	}

	filters, err := normalizeFilters(req.Filters)
	if err != nil {
		return nil, err
	}

	cacheKey := caching.CacheKey(entity, dateRangeLabel(filters), filters.Metrics)
	queryHash, err := caching.QueryHash(cachedQuery{AccountID: account.ID, Entity: entity, Filters: filters})
	if err != nil {
		return nil, err
	}

	if cached := s.cached(ctx, account.ID, cacheKey, queryHash); cached != nil {
		logger.WithFields(log.Fields{
			"account_id": account.ID,
			"cache_key":  cacheKey,
		}).Debug("insights: serving metrics from cache")
		return cached, nil
	}

	result, err := s.ads.FetchMetrics(ctx, account, entity, filters)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": account.ID,
			"entity":     entity,
			"error":      err.Error(),
		}).Error("insights: failed to fetch metrics from google ads")
		return nil, err
	}

	if s.useCache {
		if err := s.cache.Set(ctx, account.ID, cacheKey, result, queryHash, s.cacheTTL); err != nil {
			logrus.WithError(err).Warn("insights: failed to store metrics in cache")
		}
	}

	return result, nil
}

// cached devolve nil em qualquer falha: o cache nunca impede a consulta à API
func (s *Service) cached(ctx context.Context, accountID, cacheKey, queryHash string) *domain.MetricsResult {
	if !s.useCache {
		return nil
	}

	entry, err := s.cache.Get(ctx, accountID, cacheKey)
	if err != nil {
		logrus.WithError(err).Warn("insights: failed to read metrics cache")
		return nil
	}

	if entry == nil || entry.QueryHash != queryHash {
		return nil
	}

	result := &domain.MetricsResult{}
	if err := json.Unmarshal(entry.Data, result); err != nil {
		logrus.WithError(err).Warn("insights: invalid cached payload")
		return nil
	}

	result.Cached = true
	result.FetchedAt = entry.CreatedAt.UTC().Format(time.RFC3339)

	return result
}

func (s *Service) GetAccountMetrics(ctx context.Context, userID string, req *domain.AccountMetricsRequest) (*domain.AccountMetrics, error) {
	if req == nil || req.AccountID == "" {
		return nil, domain.NewValidationError("accountId", "obrigatório")
	}

	if err := validateDateRange(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	account, err := s.authorizedAccount(ctx, userID, req.AccountID)
	if err != nil {
		return nil, err
	}

	return s.AggregateAccountMetrics(ctx, account, req.StartDate, req.EndDate)
}

// AggregateAccountMetrics soma as linhas diárias da conta e calcula as taxas do período.
// A consulta usa só as métricas base; nomes de exibição como spend ou cpm
// são derivados aqui e não existem no GAQL.
func (s *Service) AggregateAccountMetrics(
	ctx context.Context,
	account *domain.GoogleAdsAccount,
	startDate, endDate string,
) (*domain.AccountMetrics, error) {
	if account.NeedsReconnection {
		return nil, domain.ErrReconnectionRequired
	}

	rows, err := s.ads.FetchDaily(ctx, account, domain.EntityAccount, startDate, endDate, nil)
	if err != nil {
		return nil, err
	}

	aggregated := &domain.AccountMetrics{
		StartDate: startDate,
		EndDate:   endDate,
	}

	var costMicros int64
	for _, row := range rows {
		if row.Metrics == nil {
			continue
		}
		aggregated.Impressions += row.Metrics.Impressions
		aggregated.Clicks += row.Metrics.Clicks
		aggregated.Conversions += row.Metrics.Conversions
		costMicros += row.Metrics.CostMicros
	}

	impressions := float64(aggregated.Impressions)
	clicks := float64(aggregated.Clicks)
	spend := float64(costMicros) / 1_000_000

	aggregated.Spend = utils.RoundWithTwoDecimalPlace(spend)
	aggregated.Conversions = utils.RoundWithTwoDecimalPlace(aggregated.Conversions)
	aggregated.Ctr = utils.RoundWithTwoDecimalPlace(utils.SafeDivide(clicks, impressions) * 100)
	aggregated.Cpm = utils.RoundWithTwoDecimalPlace(utils.SafeDivide(spend, impressions) * 1000)
	aggregated.ConversionRate = utils.RoundWithTwoDecimalPlace(utils.SafeDivide(aggregated.Conversions, clicks) * 100)

	if err := s.daily.SaveOrUpdate(ctx, toDailyMetrics(account.ID, rows)); err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": account.ID,
			"error":      err.Error(),
		}).Warn("insights: failed to persist daily metrics")
	}

	return aggregated, nil
}

func (s *Service) GetDailyMetrics(ctx context.Context, userID string, req *domain.DailyMetricsRequest) ([]*domain.DailyMetric, error) {
	if req == nil || req.AccountID == "" {
		return nil, domain.NewValidationError("accountId", "obrigatório")
	}

	if err := validateDateRange(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	entity := req.EntityType
	if entity != "" && entity != domain.EntityAccount && entity != domain.EntityCampaign {
		return nil, domain.NewValidationError("entityType", fmt.Sprintf("entidade diária não suportada %q", entity))
	}

	account, err := s.authorizedAccount(ctx, userID, req.AccountID)
	if err != nil {
		return nil, err
	}

	stored, err := s.daily.GetByDateRange(ctx, account.ID, req.StartDate, req.EndDate, entity)
	if err != nil {
		return nil, NewInsightError(err, apiErrors.ErrDatabaseOperation, account.ID, "Falha ao consultar métricas diárias")
	}

	if len(stored) > 0 {
		return stored, nil
	}

	if _, err := s.SyncDailyMetrics(ctx, account, req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	return s.daily.GetByDateRange(ctx, account.ID, req.StartDate, req.EndDate, entity)
}

// SyncDailyMetrics busca as linhas diárias da conta e das campanhas e faz o upsert
func (s *Service) SyncDailyMetrics(ctx context.Context, account *domain.GoogleAdsAccount, startDate, endDate string) (int, error) {
	if account.NeedsReconnection {
		return 0, domain.ErrReconnectionRequired
	}

	rows := make([]*domain.DailyMetricsRow, 0)
	for _, entity := range []domain.EntityType{domain.EntityAccount, domain.EntityCampaign} {
		fetched, err := s.ads.FetchDaily(ctx, account, entity, startDate, endDate, nil)
		if err != nil {
			return 0, err
		}
		rows = append(rows, fetched...)
	}

	metrics := toDailyMetrics(account.ID, rows)
	if err := s.daily.SaveOrUpdate(ctx, metrics); err != nil {
		return 0, NewInsightError(err, apiErrors.ErrDatabaseOperation, account.ID, "Falha ao salvar métricas diárias")
	}

	logrus.WithFields(logrus.Fields{
		"account_id": account.ID,
		"start_date": startDate,
		"end_date":   endDate,
		"rows":       len(metrics),
	}).Info("insights: daily metrics synced")

	return len(metrics), nil
}

func (s *Service) ListAccounts(ctx context.Context, userID string) ([]*domain.GoogleAdsAccount, error) {
	if userID == "" {
		return nil, domain.ErrAuthentication
	}

	accounts, err := s.accounts.ListByUser(ctx, userID)
	if err != nil {
		return nil, NewInsightError(err, apiErrors.ErrDatabaseOperation, "", "Falha ao listar contas")
	}

	return accounts, nil
}

// authorizedAccount carrega a conta e garante que ela pertence ao usuário e não exige reconexão
func (s *Service) authorizedAccount(ctx context.Context, userID, accountID string) (*domain.GoogleAdsAccount, error) {
	if userID == "" {
		return nil, domain.ErrAuthentication
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, NewInsightError(err, apiErrors.ErrDatabaseOperation, accountID, "Falha ao consultar conta")
	}

	if account == nil {
		return nil, NewInsightError(domain.ErrNotFound, apiErrors.ErrNotFound, accountID, "Conta não encontrada")
	}

	if account.UserID != userID {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"user_id":    userID,
		}).Warn("insights: account access denied")
		return nil, NewInsightError(domain.ErrAuthorization, apiErrors.ErrAccountAccessDenied, accountID, "")
	}

	if account.NeedsReconnection {
		return nil, NewInsightError(domain.ErrReconnectionRequired, apiErrors.ErrReconnectionRequired, accountID, "")
	}

	return account, nil
}

// normalizeFilters aplica os padrões e ordena métricas e status antes do cálculo da chave e do
// hash, para que filtros equivalentes em qualquer ordem compartilhem a mesma entrada de cache
func normalizeFilters(filters domain.MetricsFilters) (domain.MetricsFilters, error) {
	if filters.DateRange == "" {
		filters.DateRange = domain.DateRangeLast30Days
	}

	if !filters.DateRange.IsValid() {
		return filters, domain.NewValidationError("dateRange", fmt.Sprintf("intervalo não suportado %q", filters.DateRange))
	}

	if filters.DateRange == domain.DateRangeCustom {
		if err := validateDateRange(filters.StartDate, filters.EndDate); err != nil {
			return filters, err
		}
	} else {
		filters.StartDate = ""
		filters.EndDate = ""
	}

	metrics, err := googleads.NormalizeMetrics(filters.Metrics)
	if err != nil {
		return filters, err
	}
	sort.Strings(metrics)
	filters.Metrics = metrics
	filters.Status = normalizeStatuses(filters.Status)

	if filters.Limit <= 0 {
		filters.Limit = googleads.DefaultLimit
	}

	return filters, nil
}

// normalizeStatuses devolve os status em maiúsculas, sem duplicados e ordenados; vazio vira ENABLED
func normalizeStatuses(statuses []string) []string {
	seen := make(map[string]struct{}, len(statuses))
	normalized := make([]string, 0, len(statuses))
	for _, status := range statuses {
		status = strings.ToUpper(strings.TrimSpace(status))
		if status == "" {
			continue
		}
		if _, ok := seen[status]; ok {
			continue
		}
		seen[status] = struct{}{}
		normalized = append(normalized, status)
	}

	if len(normalized) == 0 {
		return []string{googleads.DefaultStatus}
	}

	sort.Strings(normalized)
	return normalized
}

func dateRangeLabel(filters domain.MetricsFilters) string {
	if filters.DateRange == domain.DateRangeCustom {
		return fmt.Sprintf("%s:%s:%s", filters.DateRange, filters.StartDate, filters.EndDate)
	}
	return string(filters.DateRange)
}

func validateDateRange(startDate, endDate string) error {
	if startDate == "" || endDate == "" {
		return domain.NewValidationError("startDate", "startDate e endDate são obrigatórios")
	}

	start, err := time.Parse(utils.DateLayout, startDate)
	if err != nil {
		return domain.NewValidationError("startDate", "formato esperado YYYY-MM-DD")
	}

	end, err := time.Parse(utils.DateLayout, endDate)
	if err != nil {
		return domain.NewValidationError("endDate", "formato esperado YYYY-MM-DD")
	}

	if end.Before(start) {
		return domain.NewValidationError("endDate", "endDate anterior a startDate")
	}

	return nil
}

func toDailyMetrics(accountID string, rows []*domain.DailyMetricsRow) []*domain.DailyMetric {
	metrics := make([]*domain.DailyMetric, 0, len(rows))
	for _, row := range rows {
		payload, err := json.Marshal(row.Metrics)
		if err != nil {
			logrus.WithError(err).Warn("insights: failed to serialize daily metrics row")
			continue
		}

		metrics = append(metrics, &domain.DailyMetric{
			AccountID:  accountID,
			Date:       row.Date,
			EntityType: row.EntityType,
			EntityID:   row.EntityID,
			EntityName: row.EntityName,
			Metrics:    payload,
		})
	}
	return metrics
}
