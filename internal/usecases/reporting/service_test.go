package reporting

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/google-ads-insights-api/infrastructure/integrator/googleads"
	"github.com/vfg2006/google-ads-insights-api/infrastructure/notification"
	notificationmocks "github.com/vfg2006/google-ads-insights-api/infrastructure/notification/mocks"
	repomocks "github.com/vfg2006/google-ads-insights-api/infrastructure/repository/mocks"
	"github.com/vfg2006/google-ads-insights-api/internal/config"
	"github.com/vfg2006/google-ads-insights-api/internal/domain"
	"github.com/vfg2006/google-ads-insights-api/internal/usecases/insighting"
	insightmocks "github.com/vfg2006/google-ads-insights-api/internal/usecases/insighting/mocks"
	"go.uber.org/mock/gomock"
)

var runAt = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

type fixture struct {
	service       *Service
	subscriptions *repomocks.MockInsightsSubscriptionRepository
	logs          *repomocks.MockInsightsEmailLogRepository
	profiles      *repomocks.MockUserProfileRepository
	accounts      *repomocks.MockGoogleAdsAccountRepository
	insights      *insightmocks.MockInsighter
	sender        *notificationmocks.MockSender
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &fixture{
		subscriptions: repomocks.NewMockInsightsSubscriptionRepository(ctrl),
		logs:          repomocks.NewMockInsightsEmailLogRepository(ctrl),
		profiles:      repomocks.NewMockUserProfileRepository(ctrl),
		accounts:      repomocks.NewMockGoogleAdsAccountRepository(ctrl),
		insights:      insightmocks.NewMockInsighter(ctrl),
		sender:        notificationmocks.NewMockSender(ctrl),
	}

	renderer, err := NewRenderer()
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.InsightsEmail.MaxConcurrentJobs = 2

	f.service = NewService(cfg, f.subscriptions, f.logs, f.profiles, f.accounts, f.insights, renderer, f.sender)
	f.service.now = func() time.Time { return runAt }
	return f
}

func dueSubscription(id string) *domain.InsightsSubscription {
	return &domain.InsightsSubscription{
		ID:                 id,
		UserID:             "user-" + id,
		GoogleAdsAccountID: "acc-" + id,
		Frequency:          domain.FrequencyDaily,
		SendTime:           "12:00",
		TimeZone:           "UTC",
		SelectedMetrics:    []string{"clicks", "spend"},
		IsActive:           true,
	}
}

func strPtr(s string) *string {
	return &s
}

func TestService_Run_NothingDue(t *testing.T) {
	f := newFixture(t)

	notDue := dueSubscription("1")
	notDue.SendTime = "08:00"
	paused := dueSubscription("2")
	paused.IsPaused = true

	f.subscriptions.EXPECT().ListActive(gomock.Any()).Return([]*domain.InsightsSubscription{notDue, paused}, nil)

	result, err := f.service.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &domain.InsightsRunResult{}, result)
}

func TestService_Run_ListError(t *testing.T) {
	f := newFixture(t)
	f.subscriptions.EXPECT().ListActive(gomock.Any()).Return(nil, errors.New("connection refused"))

	result, err := f.service.Run(context.Background())
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestService_Run_SendsSummary(t *testing.T) {
	f := newFixture(t)
	sub := dueSubscription("1")

	f.subscriptions.EXPECT().ListActive(gomock.Any()).Return([]*domain.InsightsSubscription{sub}, nil)
	f.profiles.EXPECT().GetByID(gomock.Any(), "user-1").
		Return(&domain.UserProfile{ID: "user-1", Email: "ana@example.com", FullName: strPtr("Ana")}, nil)
	f.accounts.EXPECT().GetByID(gomock.Any(), "acc-1").
		Return(&domain.GoogleAdsAccount{ID: "acc-1", AccountName: "Loja Centro", CurrencyCode: strPtr("BRL")}, nil)
	f.insights.EXPECT().
		AggregateAccountMetrics(gomock.Any(), gomock.Any(), "2024-03-09", "2024-03-09").
		Return(&domain.AccountMetrics{Impressions: 1000, Clicks: 40, Spend: 20}, nil)
	f.sender.EXPECT().Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg *notification.EmailMessage) (string, error) {
			assert.Equal(t, "ana@example.com", msg.To)
			assert.Equal(t, "Resumo diário do Google Ads: Loja Centro", msg.Subject)
			assert.Contains(t, msg.HTML, "Olá, Ana!")
			assert.Contains(t, msg.Text, "- Cliques: 40")
			assert.NotContains(t, msg.Text, "Impressões")
			return "msg-123", nil
		})
	f.logs.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry *domain.InsightsEmailLog) error {
			assert.Equal(t, domain.EmailStatusSent, entry.Status)
			assert.Equal(t, "1", entry.SubscriptionID)
			require.NotNil(t, entry.ProviderMessageID)
			assert.Equal(t, "msg-123", *entry.ProviderMessageID)
			assert.Contains(t, string(entry.MetricsSnapshot), `"clicks":40`)
			return nil
		})
	f.subscriptions.EXPECT().UpdateLastSentAt(gomock.Any(), "1", runAt).Return(nil)

	result, err := f.service.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &domain.InsightsRunResult{Processed: 1, Sent: 1}, result)
}

func TestService_Run_FailuresDoNotStopBatch(t *testing.T) {
	f := newFixture(t)
	missingProfile := dueSubscription("1")
	sendFails := dueSubscription("2")

	f.subscriptions.EXPECT().ListActive(gomock.Any()).
		Return([]*domain.InsightsSubscription{missingProfile, sendFails}, nil)

	f.profiles.EXPECT().GetByID(gomock.Any(), "user-1").Return(nil, nil)
	f.profiles.EXPECT().GetByID(gomock.Any(), "user-2").
		Return(&domain.UserProfile{ID: "user-2", Email: "bia@example.com"}, nil)
	f.accounts.EXPECT().GetByID(gomock.Any(), "acc-2").
		Return(&domain.GoogleAdsAccount{ID: "acc-2", AccountName: "Loja Norte"}, nil)
	f.insights.EXPECT().AggregateAccountMetrics(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&domain.AccountMetrics{}, nil)
	f.sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return("", domain.ErrTimeout)

	var (
		mu       sync.Mutex
		statuses []domain.EmailStatus
		messages []string
	)
	f.logs.EXPECT().Create(gomock.Any(), gomock.Any()).Times(2).
		DoAndReturn(func(_ context.Context, entry *domain.InsightsEmailLog) error {
			mu.Lock()
			defer mu.Unlock()
			statuses = append(statuses, entry.Status)
			if assert.NotNil(t, entry.ErrorMessage) {
				messages = append(messages, *entry.ErrorMessage)
			}
			return nil
		})

	result, err := f.service.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &domain.InsightsRunResult{Processed: 2, Failed: 2}, result)
	assert.Equal(t, []domain.EmailStatus{domain.EmailStatusFailed, domain.EmailStatusFailed}, statuses)

	joined := strings.Join(messages, "|")
	assert.Contains(t, joined, "not found")
	assert.Contains(t, joined, domain.ErrTimeout.Error())
}

func TestService_Run_MetricsFailureRecorded(t *testing.T) {
	f := newFixture(t)
	sub := dueSubscription("1")
	sub.Frequency = domain.FrequencyWeekly
	sub.TimeZone = "America/Sao_Paulo"
	sub.SendTime = "09:00"

	f.subscriptions.EXPECT().ListActive(gomock.Any()).Return([]*domain.InsightsSubscription{sub}, nil)
	f.profiles.EXPECT().GetByID(gomock.Any(), "user-1").
		Return(&domain.UserProfile{ID: "user-1", Email: "ana@example.com"}, nil)
	f.accounts.EXPECT().GetByID(gomock.Any(), "acc-1").
		Return(&domain.GoogleAdsAccount{ID: "acc-1", AccountName: "Loja Centro"}, nil)
	f.insights.EXPECT().
		AggregateAccountMetrics(gomock.Any(), gomock.Any(), "2024-03-03", "2024-03-09").
		Return(nil, domain.ErrReconnectionRequired)
	f.logs.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry *domain.InsightsEmailLog) error {
			assert.Equal(t, domain.EmailStatusFailed, entry.Status)
			assert.Equal(t, "ana@example.com", entry.RecipientEmail)
			return nil
		})

	result, err := f.service.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 0, result.Sent)
}

func TestService_Run_SelectedMetricsStayOutOfQuery(t *testing.T) {
	f := newFixture(t)
	ctrl := gomock.NewController(t)
	ads := insightmocks.NewMockAdsMetricsFetcher(ctrl)
	daily := repomocks.NewMockDailyMetricRepository(ctrl)

	renderer, err := NewRenderer()
	require.NoError(t, err)
	cfg := &config.Config{}
	cfg.InsightsEmail.MaxConcurrentJobs = 1

	insights := insighting.NewService(ads, f.accounts, daily)
	f.service = NewService(cfg, f.subscriptions, f.logs, f.profiles, f.accounts, insights, renderer, f.sender)
	f.service.now = func() time.Time { return runAt }

	sub := dueSubscription("1")
	sub.SelectedMetrics = []string{"clicks", "spend", "conversion_rate", "cpm", "ctr"}

	f.subscriptions.EXPECT().ListActive(gomock.Any()).Return([]*domain.InsightsSubscription{sub}, nil)
	f.profiles.EXPECT().GetByID(gomock.Any(), "user-1").
		Return(&domain.UserProfile{ID: "user-1", Email: "ana@example.com"}, nil)
	f.accounts.EXPECT().GetByID(gomock.Any(), "acc-1").
		Return(&domain.GoogleAdsAccount{ID: "acc-1", AccountName: "Loja Centro"}, nil)
	ads.EXPECT().
		FetchDaily(gomock.Any(), gomock.Any(), domain.EntityAccount, "2024-03-09", "2024-03-09", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *domain.GoogleAdsAccount, entity domain.EntityType, startDate, endDate string, metrics []string) ([]*domain.DailyMetricsRow, error) {
			query, err := googleads.BuildDailyQuery(entity, startDate, endDate, metrics)
			require.NoError(t, err)
			assert.Contains(t, query, "metrics.cost_micros")
			for _, field := range []string{"metrics.spend", "metrics.conversion_rate", "metrics.cpm", "metrics.ctr"} {
				assert.NotContains(t, query, field)
			}
			return []*domain.DailyMetricsRow{{
				Date: "2024-03-09", EntityType: domain.EntityAccount, EntityID: "acc-1",
				Metrics: &domain.MetricsRow{Impressions: 1000, Clicks: 40, CostMicros: 20_000_000},
			}}, nil
		})
	daily.EXPECT().SaveOrUpdate(gomock.Any(), gomock.Len(1)).Return(nil)
	f.sender.EXPECT().Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg *notification.EmailMessage) (string, error) {
			assert.Contains(t, msg.Text, "- Cliques: 40")
			assert.Contains(t, msg.Text, "- CPM:")
			return "msg-1", nil
		})
	f.logs.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	f.subscriptions.EXPECT().UpdateLastSentAt(gomock.Any(), "1", runAt).Return(nil)

	result, err := f.service.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &domain.InsightsRunResult{Processed: 1, Sent: 1}, result)
}
