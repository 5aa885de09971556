package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/google-ads-insights-api/internal/config"
)

// ExpiredCacheCleaner remove entradas vencidas do cache de métricas
type ExpiredCacheCleaner interface {
	CleanupExpired(ctx context.Context) (int64, error)
}

type CacheCleanupService struct {
	scheduler      *gocron.Scheduler
	cronSchedule   string
	enabled        bool
	cleaner        ExpiredCacheCleaner
	mutex          sync.Mutex
	running        bool
	lastRunAt      time.Time
	lastRemoved    int64
	totalRemoved   int64
	lastErrMessage string
}

func NewCacheCleanupService(cleaner ExpiredCacheCleaner, appConfig *config.Config) *CacheCleanupService {
	logrus.WithFields(logrus.Fields{
		"cron_schedule": appConfig.CacheCleanup.CronSchedule,
		"enabled":       appConfig.CacheCleanup.Enabled,
	}).Info("Configuração da limpeza de cache carregada")

	return &CacheCleanupService{
		scheduler:    gocron.NewScheduler(time.UTC),
		cronSchedule: appConfig.CacheCleanup.CronSchedule,
		enabled:      appConfig.CacheCleanup.Enabled,
		cleaner:      cleaner,
	}
}

func (s *CacheCleanupService) Start(ctx context.Context) error {
	if !s.enabled {
		logrus.Info("Limpeza de cache desabilitada por configuração")
		return nil
	}

	_, err := s.scheduler.Cron(s.cronSchedule).Do(func() {
		s.cleanup(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar limpeza de cache: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de limpeza de cache")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *CacheCleanupService) cleanup(ctx context.Context) {
	s.mutex.Lock()
	if s.running {
		s.mutex.Unlock()
		return
	}
	s.running = true
	s.mutex.Unlock()

	removed, err := s.cleaner.CleanupExpired(ctx)

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.running = false
	s.lastRunAt = time.Now()

	if err != nil {
		s.lastErrMessage = err.Error()
		logrus.WithError(err).Error("Erro ao limpar cache de métricas")
		return
	}

	s.lastErrMessage = ""
	s.lastRemoved = removed
	s.totalRemoved += removed

	logrus.WithField("removed", removed).Info("Limpeza de cache de métricas concluída")
}

func (s *CacheCleanupService) TriggerManualSync() {
	go s.cleanup(context.Background())
}

func (s *CacheCleanupService) GetStatus() map[string]any {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return map[string]any{
		"sync_enabled":  s.enabled,
		"sync_cron":     s.cronSchedule,
		"running":       s.running,
		"last_run_at":   s.lastRunAt,
		"last_removed":  s.lastRemoved,
		"total_removed": s.totalRemoved,
		"last_error":    s.lastErrMessage,
	}
}
