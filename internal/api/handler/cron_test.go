package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/google-ads-insights-api/internal/api/handler/router"
	"github.com/vfg2006/google-ads-insights-api/internal/domain"
	"github.com/vfg2006/google-ads-insights-api/internal/scheduler"
	"github.com/vfg2006/google-ads-insights-api/pkg/apiErrors"
	"github.com/vfg2006/google-ads-insights-api/pkg/middleware"
)

type fakeSyncer struct {
	triggered int
	status    map[string]any
}

func (f *fakeSyncer) TriggerManualSync() {
	f.triggered++
}

func (f *fakeSyncer) GetStatus() map[string]any {
	return f.status
}

type fakeRunner struct {
	result *domain.InsightsRunResult
	err    error
}

func (f fakeRunner) RunNow(ctx context.Context) (*domain.InsightsRunResult, error) {
	return f.result, f.err
}

const testCronSecret = "s3cr3t"

func newCronRouter(services CronJobServices, runner InsightsRunner) router.Router {
	return router.New(router.WithRoutes(CronJobs(services, runner, testCronSecret)...))
}

func cronRequest(method, path string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set(middleware.CronSecretHeader, testCronSecret)
	return req
}

func TestRunInsights(t *testing.T) {
	t.Run("devolve o resumo do lote", func(t *testing.T) {
		rt := newCronRouter(CronJobServices{}, fakeRunner{result: &domain.InsightsRunResult{Processed: 3, Sent: 2, Failed: 1}})

		rec := httptest.NewRecorder()
		rt.ServeHTTP(rec, cronRequest(http.MethodPost, "/google-ads/insights/run"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"processed":3,"sent":2,"failed":1}`, rec.Body.String())
	})

	t.Run("segredo inválido", func(t *testing.T) {
		rt := newCronRouter(CronJobServices{}, fakeRunner{})

		req := httptest.NewRequest(http.MethodPost, "/google-ads/insights/run", nil)
		req.Header.Set(middleware.CronSecretHeader, "errado")
		rec := httptest.NewRecorder()
		rt.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidCronSecret, decodeBody(t, rec)["code"])
	})

	t.Run("lote já em execução", func(t *testing.T) {
		rt := newCronRouter(CronJobServices{}, fakeRunner{err: scheduler.ErrSyncRunning})

		rec := httptest.NewRecorder()
		rt.ServeHTTP(rec, cronRequest(http.MethodPost, "/google-ads/insights/run"))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestRunCronJob(t *testing.T) {
	email := &fakeSyncer{}
	cleanup := &fakeSyncer{}
	daily := &fakeSyncer{}
	services := CronJobServices{InsightsEmail: email, CacheCleanup: cleanup, DailyMetrics: daily}
	rt := newCronRouter(services, fakeRunner{})

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, cronRequest(http.MethodPost, "/v1/cron/cache-cleanup/run"))
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 1, cleanup.triggered)
	assert.Equal(t, 0, email.triggered)

	rec = httptest.NewRecorder()
	rt.ServeHTTP(rec, cronRequest(http.MethodPost, "/v1/cron/all/run"))
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 2, cleanup.triggered)
	assert.Equal(t, 1, email.triggered)
	assert.Equal(t, 1, daily.triggered)

	rec = httptest.NewRecorder()
	rt.ServeHTTP(rec, cronRequest(http.MethodPost, "/v1/cron/meta/run"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCronStatus(t *testing.T) {
	services := CronJobServices{
		InsightsEmail: &fakeSyncer{status: map[string]any{"sync_enabled": true}},
		CacheCleanup:  &fakeSyncer{status: map[string]any{"sync_enabled": false}},
		DailyMetrics:  &fakeSyncer{status: map[string]any{"sync_enabled": false}},
	}
	rt := newCronRouter(services, fakeRunner{})

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, cronRequest(http.MethodGet, "/v1/cron/status"))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Len(t, body, 3)
	assert.Equal(t, true, body[CronJobTypeInsightsEmail].(map[string]any)["sync_enabled"])
}
