package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/google-ads-insights-api/internal/config"
	"github.com/vfg2006/google-ads-insights-api/internal/domain"
	"github.com/vfg2006/google-ads-insights-api/internal/usecases/reporting"
)

const defaultBatchTimeout = 50 * time.Second

// InsightsEmailSyncConfig representa a configuração do agendador de e-mails de insights
type InsightsEmailSyncConfig struct {
	CronSchedule string
	BatchTimeout time.Duration
	SyncEnabled  bool
}

// InsightsEmailSyncService dispara periodicamente o lote de resumos por e-mail
type InsightsEmailSyncService struct {
	scheduler           *gocron.Scheduler
	config              InsightsEmailSyncConfig
	reporter            reporting.Reporter
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastResult          *domain.InsightsRunResult
}

func NewInsightsEmailSyncService(reporter reporting.Reporter, appConfig *config.Config) *InsightsEmailSyncService {
	syncConfig := InsightsEmailSyncConfig{
		CronSchedule: appConfig.InsightsEmail.CronSchedule,
		BatchTimeout: appConfig.InsightsEmail.BatchTimeout,
		SyncEnabled:  appConfig.InsightsEmail.Enabled,
	}
	if syncConfig.BatchTimeout <= 0 {
		syncConfig.BatchTimeout = defaultBatchTimeout
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"batch_timeout": syncConfig.BatchTimeout.String(),
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de e-mails de insights carregada")

	return &InsightsEmailSyncService{
		scheduler: gocron.NewScheduler(time.UTC),
		config:    syncConfig,
		reporter:  reporter,
	}
}

// Start inicia o agendador
func (s *InsightsEmailSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Envio de e-mails de insights desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de e-mails de insights")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runBatch(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar envio de e-mails de insights: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de e-mails de insights")
		s.scheduler.Stop()
	}()

	return nil
}

// RunNow executa o lote imediatamente e devolve o resultado. Uma execução concorrente é rejeitada.
func (s *InsightsEmailSyncService) RunNow(ctx context.Context) (*domain.InsightsRunResult, error) {
	if !s.acquire() {
		return nil, ErrSyncRunning
	}
	defer s.release()

	return s.execute(ctx)
}

func (s *InsightsEmailSyncService) runBatch(ctx context.Context) {
	if !s.acquire() {
		logrus.Info("Envio de e-mails de insights já em andamento, ignorando")
		return
	}
	defer s.release()

	if _, err := s.execute(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao executar lote de e-mails de insights")
	}
}

func (s *InsightsEmailSyncService) execute(ctx context.Context) (*domain.InsightsRunResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.BatchTimeout)
	defer cancel()

	s.syncMutex.Lock()
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	result, err := s.reporter.Run(ctx)
	if err != nil {
		return nil, err
	}

	s.syncMutex.Lock()
	s.lastSyncCompletedAt = time.Now()
	s.lastResult = result
	s.syncMutex.Unlock()

	return result, nil
}

func (s *InsightsEmailSyncService) acquire() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		return false
	}
	s.syncRunning = true
	return true
}

func (s *InsightsEmailSyncService) release() {
	s.syncMutex.Lock()
	s.syncRunning = false
	s.syncMutex.Unlock()
}

// TriggerManualSync inicia manualmente um lote de e-mails em segundo plano
func (s *InsightsEmailSyncService) TriggerManualSync() {
	logrus.Info("Iniciando envio manual de e-mails de insights")
	go s.runBatch(context.Background())
}

// GetStatus retorna o status atual do agendador
func (s *InsightsEmailSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"batch_timeout":          s.config.BatchTimeout.String(),
		"running":                s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_result":            s.lastResult,
	}
}
