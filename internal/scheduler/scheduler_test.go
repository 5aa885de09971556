package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/google-ads-insights-api/infrastructure/repository/mocks"
	"github.com/vfg2006/google-ads-insights-api/internal/config"
	"github.com/vfg2006/google-ads-insights-api/internal/domain"
	insightmocks "github.com/vfg2006/google-ads-insights-api/internal/usecases/insighting/mocks"
	reportingmocks "github.com/vfg2006/google-ads-insights-api/internal/usecases/reporting/mocks"
	"go.uber.org/mock/gomock"
)

type cleanerFunc func(ctx context.Context) (int64, error)

func (f cleanerFunc) CleanupExpired(ctx context.Context) (int64, error) {
	return f(ctx)
}

func TestDailyMetricsSyncService_syncAllAccounts(t *testing.T) {
	ctrl := gomock.NewController(t)

	accountRepo := mocks.NewMockGoogleAdsAccountRepository(ctrl)
	insighter := insightmocks.NewMockInsighter(ctrl)

	cfg := &config.Config{}
	cfg.DailyMetricsSync.LookbackDays = 7
	cfg.DailyMetricsSync.MaxConcurrentJobs = 2
	cfg.DailyMetricsSync.RequestDelaySeconds = 2

	service := NewDailyMetricsSyncService(accountRepo, insighter, cfg)
	service.now = func() time.Time { return time.Date(2024, 3, 10, 3, 0, 0, 0, time.UTC) }

	var slept []time.Duration
	sleepCh := make(chan time.Duration, 4)
	service.sleep = func(d time.Duration) { sleepCh <- d }

	accounts := []*domain.GoogleAdsAccount{
		{ID: "acc-1", CustomerID: "1111111111"},
		{ID: "acc-2", CustomerID: "2222222222"},
		{ID: "acc-3", CustomerID: "3333333333", NeedsReconnection: true},
	}

	accountRepo.EXPECT().ListSyncable(gomock.Any()).Return(accounts, nil)
	insighter.EXPECT().SyncDailyMetrics(gomock.Any(), accounts[0], "2024-03-03", "2024-03-09").Return(14, nil)
	insighter.EXPECT().SyncDailyMetrics(gomock.Any(), accounts[1], "2024-03-03", "2024-03-09").
		Return(0, errors.New("quota exceeded"))

	service.syncAllAccounts(context.Background())
	close(sleepCh)
	for d := range sleepCh {
		slept = append(slept, d)
	}

	assert.Len(t, slept, 2)
	assert.Equal(t, 2*time.Second, slept[0])

	status := service.GetStatus()
	assert.Equal(t, 14, status["last_synced_rows"])
	assert.Equal(t, false, status["running"])
}

func TestDailyMetricsSyncService_NoAccounts(t *testing.T) {
	ctrl := gomock.NewController(t)

	accountRepo := mocks.NewMockGoogleAdsAccountRepository(ctrl)
	insighter := insightmocks.NewMockInsighter(ctrl)

	service := NewDailyMetricsSyncService(accountRepo, insighter, &config.Config{})
	accountRepo.EXPECT().ListSyncable(gomock.Any()).Return(nil, nil)

	service.syncAllAccounts(context.Background())

	assert.True(t, service.GetStatus()["last_sync_completed_at"].(time.Time).IsZero())
}

func TestInsightsEmailSyncService_RunNow(t *testing.T) {
	ctrl := gomock.NewController(t)
	reporter := reportingmocks.NewMockReporter(ctrl)

	cfg := &config.Config{}
	cfg.InsightsEmail.BatchTimeout = time.Second

	service := NewInsightsEmailSyncService(reporter, cfg)

	t.Run("devolve o resultado do lote", func(t *testing.T) {
		want := &domain.InsightsRunResult{Processed: 3, Sent: 2, Failed: 1}
		reporter.EXPECT().Run(gomock.Any()).DoAndReturn(func(ctx context.Context) (*domain.InsightsRunResult, error) {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			return want, nil
		})

		result, err := service.RunNow(context.Background())
		require.NoError(t, err)
		assert.Equal(t, want, result)
		assert.Equal(t, want, service.GetStatus()["last_result"])
	})

	t.Run("rejeita execução concorrente", func(t *testing.T) {
		require.True(t, service.acquire())
		defer service.release()

		_, err := service.RunNow(context.Background())
		assert.ErrorIs(t, err, ErrSyncRunning)
	})

	t.Run("propaga erro da listagem", func(t *testing.T) {
		reporter.EXPECT().Run(gomock.Any()).Return(nil, errors.New("db down"))

		_, err := service.RunNow(context.Background())
		assert.Error(t, err)
	})
}

func TestInsightsEmailSyncService_StartDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := NewInsightsEmailSyncService(reportingmocks.NewMockReporter(ctrl), &config.Config{})

	assert.NoError(t, service.Start(context.Background()))
	assert.Equal(t, defaultBatchTimeout.String(), service.GetStatus()["batch_timeout"])
}

func TestCacheCleanupService_cleanup(t *testing.T) {
	calls := 0
	service := NewCacheCleanupService(cleanerFunc(func(ctx context.Context) (int64, error) {
		calls++
		if calls == 2 {
			return 0, errors.New("timeout")
		}
		return 4, nil
	}), &config.Config{})

	service.cleanup(context.Background())
	service.cleanup(context.Background())
	service.cleanup(context.Background())

	status := service.GetStatus()
	assert.Equal(t, 3, calls)
	assert.Equal(t, int64(8), status["total_removed"])
	assert.Equal(t, int64(4), status["last_removed"])
	assert.Equal(t, "", status["last_error"])
}
