package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	repomocks "github.com/vfg2006/google-ads-insights-api/infrastructure/repository/mocks"
	"github.com/vfg2006/google-ads-insights-api/internal/config"
	"github.com/vfg2006/google-ads-insights-api/internal/scheduler"
	"github.com/vfg2006/google-ads-insights-api/internal/usecases/authenticating"
	connectingmocks "github.com/vfg2006/google-ads-insights-api/internal/usecases/connecting/mocks"
	insightmocks "github.com/vfg2006/google-ads-insights-api/internal/usecases/insighting/mocks"
	reportingmocks "github.com/vfg2006/google-ads-insights-api/internal/usecases/reporting/mocks"
	"github.com/vfg2006/google-ads-insights-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

type okPinger struct{}

func (okPinger) Ping(ctx context.Context) error { return nil }

type noopCleaner struct{}

func (noopCleaner) CleanupExpired(ctx context.Context) (int64, error) { return 0, nil }

func newTestServer(t *testing.T) Server {
	t.Helper()
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Auth.Secret = "jwt-secret"
	cfg.Cron.Secret = "cron-secret"
	cfg.Server.RequestTimeout = 30 * time.Second

	authenticator, err := authenticating.NewService(cfg)
	require.NoError(t, err)

	insightService := insightmocks.NewMockInsighter(ctrl)

	srv, err := New(
		cfg,
		okPinger{},
		authenticator,
		connectingmocks.NewMockConnector(ctrl),
		insightService,
		scheduler.NewInsightsEmailSyncService(reportingmocks.NewMockReporter(ctrl), cfg),
		scheduler.NewCacheCleanupService(noopCleaner{}, cfg),
		scheduler.NewDailyMetricsSyncService(repomocks.NewMockGoogleAdsAccountRepository(ctrl), insightService, cfg),
	)
	require.NoError(t, err)
	return *srv
}

func TestServer_Routes(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name       string
		method     string
		path       string
		header     map[string]string
		wantStatus int
	}{
		{"healthcheck é público", http.MethodGet, "/healthcheck", nil, http.StatusOK},
		{"métricas exigem token", http.MethodGet, "/google-ads/keywords", nil, http.StatusUnauthorized},
		{"cron exige segredo", http.MethodGet, "/v1/cron/status", nil, http.StatusUnauthorized},
		{"cron com segredo", http.MethodGet, "/v1/cron/status", map[string]string{"X-Cron-Secret": "cron-secret"}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()

			srv.Handler().ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))
		})
	}
}

func TestServer_WriteTimeoutCoversRequestDeadline(t *testing.T) {
	srv := newTestServer(t)
	assert.Equal(t, 30*time.Second+writeTimeoutMargin, srv.httpServer.WriteTimeout)
}

func TestServer_UnknownRoute(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthcheck/extra", nil)
	req.Header.Set("Authorization", "Bearer invalido")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), apiErrors.ErrInvalidToken)
}
