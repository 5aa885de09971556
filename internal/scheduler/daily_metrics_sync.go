package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/google-ads-insights-api/infrastructure/repository"
	"github.com/vfg2006/google-ads-insights-api/internal/config"
	"github.com/vfg2006/google-ads-insights-api/internal/domain"
	"github.com/vfg2006/google-ads-insights-api/internal/usecases/insighting"
	"github.com/vfg2006/google-ads-insights-api/pkg/utils"
)

// DailyMetricsSyncConfig representa a configuração do agendador de métricas diárias
type DailyMetricsSyncConfig struct {
	CronSchedule        string
	LookbackDays        int
	RequestDelaySeconds int
	MaxConcurrentJobs   int
	SyncEnabled         bool
}

// DailyMetricsSyncService gerencia a sincronização noturna das métricas diárias do Google Ads
type DailyMetricsSyncService struct {
	scheduler           *gocron.Scheduler
	config              DailyMetricsSyncConfig
	accountRepo         repository.GoogleAdsAccountRepository
	insightService      insighting.Insighter
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncedRows      int
	now                 func() time.Time
	sleep               func(time.Duration)
}

func NewDailyMetricsSyncService(
	accountRepo repository.GoogleAdsAccountRepository,
	insightService insighting.Insighter,
	appConfig *config.Config,
) *DailyMetricsSyncService {
	syncConfig := DailyMetricsSyncConfig{
		CronSchedule:        appConfig.DailyMetricsSync.CronSchedule,
		LookbackDays:        appConfig.DailyMetricsSync.LookbackDays,
		RequestDelaySeconds: appConfig.DailyMetricsSync.RequestDelaySeconds,
		MaxConcurrentJobs:   appConfig.DailyMetricsSync.MaxConcurrentJobs,
		SyncEnabled:         appConfig.DailyMetricsSync.Enabled,
	}
	if syncConfig.LookbackDays <= 0 {
		syncConfig.LookbackDays = 7
	}
	if syncConfig.MaxConcurrentJobs <= 0 {
		syncConfig.MaxConcurrentJobs = 1
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":         syncConfig.CronSchedule,
		"lookback_days":         syncConfig.LookbackDays,
		"request_delay_seconds": syncConfig.RequestDelaySeconds,
		"max_concurrent_jobs":   syncConfig.MaxConcurrentJobs,
		"sync_enabled":          syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de métricas diárias carregada")

	return &DailyMetricsSyncService{
		scheduler:      gocron.NewScheduler(time.UTC),
		config:         syncConfig,
		accountRepo:    accountRepo,
		insightService: insightService,
		now:            time.Now,
		sleep:          time.Sleep,
	}
}

// Start inicia o agendador
func (s *DailyMetricsSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de métricas diárias desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização de métricas diárias")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncAllAccounts(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de métricas diárias: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de métricas diárias")
		s.scheduler.Stop()
	}()

	return nil
}

// syncAllAccounts sincroniza a janela de lookback de todas as contas sincronizáveis
func (s *DailyMetricsSyncService) syncAllAccounts(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de métricas diárias já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = s.now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	accounts, err := s.accountRepo.ListSyncable(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar contas para sincronização de métricas diárias")
		return
	}

	if len(accounts) == 0 {
		logrus.Info("Nenhuma conta encontrada para sincronização de métricas diárias")
		return
	}

	startDate, endDate := utils.WindowEndingYesterday(s.now(), time.UTC, s.config.LookbackDays)
	logrus.WithFields(logrus.Fields{
		"accounts":   len(accounts),
		"start_date": startDate,
		"end_date":   endDate,
	}).Info("Período para sincronização de métricas diárias")

	total := s.processAccounts(ctx, accounts, startDate, endDate)

	s.syncMutex.Lock()
	s.lastSyncCompletedAt = s.now()
	s.lastSyncedRows = total
	s.syncMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"accounts": len(accounts),
		"rows":     total,
	}).Info("Sincronização de métricas diárias concluída")
}

// processAccounts limita a concorrência com um semáforo e devolve o total de linhas gravadas
func (s *DailyMetricsSyncService) processAccounts(ctx context.Context, accounts []*domain.GoogleAdsAccount, startDate, endDate string) int {
	semaphore := make(chan struct{}, s.config.MaxConcurrentJobs)
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		total int
	)

	for _, account := range accounts {
		if account.NeedsReconnection {
			logrus.WithField("account_id", account.ID).Warn("Conta precisa de reconexão. Pulando.")
			continue
		}

		wg.Add(1)
		semaphore <- struct{}{}

		go func(acc *domain.GoogleAdsAccount) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			rows, err := s.insightService.SyncDailyMetrics(ctx, acc, startDate, endDate)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"account_id":  acc.ID,
					"customer_id": acc.CustomerID,
					"error":       err.Error(),
				}).Error("Erro ao sincronizar métricas diárias da conta")
			} else {
				mu.Lock()
				total += rows
				mu.Unlock()
			}

			// Aguardar antes da próxima requisição para evitar sobrecarga na API
			s.sleep(time.Duration(s.config.RequestDelaySeconds) * time.Second)
		}(account)
	}

	wg.Wait()
	return total
}

// TriggerManualSync inicia manualmente uma sincronização de métricas diárias
func (s *DailyMetricsSyncService) TriggerManualSync() {
	logrus.Info("Iniciando sincronização manual de métricas diárias")
	go s.syncAllAccounts(context.Background())
}

// GetStatus retorna o status atual do agendador
func (s *DailyMetricsSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_lookback_days":     s.config.LookbackDays,
		"sync_max_concurrent":    s.config.MaxConcurrentJobs,
		"sync_request_delay_s":   s.config.RequestDelaySeconds,
		"running":                s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_synced_rows":       s.lastSyncedRows,
	}
}
