package handler

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/google-ads-insights-api/internal/api/handler/router"
	"github.com/vfg2006/google-ads-insights-api/internal/domain"
	"github.com/vfg2006/google-ads-insights-api/internal/scheduler"
	"github.com/vfg2006/google-ads-insights-api/pkg/apiErrors"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeInsightsEmail = "insights-email"
	CronJobTypeCacheCleanup  = "cache-cleanup"
	CronJobTypeDailyMetrics  = "daily-metrics"
	CronJobTypeAll           = "all"
)

// InsightsRunner executa o lote de e-mails de forma síncrona
type InsightsRunner interface {
	RunNow(ctx context.Context) (*domain.InsightsRunResult, error)
}

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	InsightsEmail scheduler.ManualSyncer
	CacheCleanup  scheduler.ManualSyncer
	DailyMetrics  scheduler.ManualSyncer
}

func (s CronJobServices) byType() map[string]scheduler.ManualSyncer {
	return map[string]scheduler.ManualSyncer{
		CronJobTypeInsightsEmail: s.InsightsEmail,
		CronJobTypeCacheCleanup:  s.CacheCleanup,
		CronJobTypeDailyMetrics:  s.DailyMetrics,
	}
}

// RunInsights executa o lote de e-mails e devolve {processed, sent, failed}
func RunInsights(runner InsightsRunner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunInsights")

		result, err := runner.RunNow(r.Context())
		if err != nil {
			if errors.Is(err, scheduler.ErrSyncRunning) {
				apiErrors.WriteError(w, apiErrors.ErrJobRunning, "Lote de e-mails já em execução", nil)
				return
			}
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		cronType := router.Param(r, "type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		jobs := services.byType()

		if cronType == CronJobTypeAll {
			for _, job := range jobs {
				if job != nil {
					job.TriggerManualSync()
				}
			}
		} else {
			job, ok := jobs[cronType]
			if !ok {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest,
					"Tipo de cron job inválido. Valores aceitos: insights-email, cache-cleanup, daily-metrics, all", nil)
				return
			}
			if job == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de cron não disponível", nil)
				return
			}
			job.TriggerManualSync()
		}

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		for name, job := range services.byType() {
			if job != nil {
				status[name] = job.GetStatus()
			}
		}

		writeJSON(w, http.StatusOK, status)
	}
}
