package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/google-ads-insights-api/infrastructure/cache/rediscache"
	"github.com/vfg2006/google-ads-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/google-ads-insights-api/infrastructure/integrator/googleads"
	"github.com/vfg2006/google-ads-insights-api/infrastructure/integrator/googleads/adsclient"
	"github.com/vfg2006/google-ads-insights-api/infrastructure/notification"
	"github.com/vfg2006/google-ads-insights-api/infrastructure/repository"
	"github.com/vfg2006/google-ads-insights-api/internal/api"
	"github.com/vfg2006/google-ads-insights-api/internal/config"
	"github.com/vfg2006/google-ads-insights-api/internal/scheduler"
	"github.com/vfg2006/google-ads-insights-api/internal/usecases/authenticating"
	"github.com/vfg2006/google-ads-insights-api/internal/usecases/caching"
	"github.com/vfg2006/google-ads-insights-api/internal/usecases/connecting"
	"github.com/vfg2006/google-ads-insights-api/internal/usecases/insighting"
	"github.com/vfg2006/google-ads-insights-api/internal/usecases/reporting"
	"github.com/vfg2006/google-ads-insights-api/pkg/log"
	"github.com/vfg2006/google-ads-insights-api/pkg/tokencrypt"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel := log.Configure(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	accountRepo := repository.NewGoogleAdsAccountRepository(pgConn)
	dailyMetricRepo := repository.NewDailyMetricRepository(pgConn)
	metricsCacheRepo := repository.NewMetricsCacheRepository(pgConn)
	subscriptionRepo := repository.NewInsightsSubscriptionRepository(pgConn)
	emailLogRepo := repository.NewInsightsEmailLogRepository(pgConn)
	userProfileRepo := repository.NewUserProfileRepository(pgConn)

	authenticator, err := authenticating.NewService(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao configurar validação de tokens")
	}

	cipher, err := tokencrypt.New(cfg.Security.EncryptionKey, tokencrypt.KeyDerivation(cfg.Security.KeyDerivation))
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao configurar cifra dos refresh tokens")
	}

	adsClient := adsclient.NewClient(cfg)
	adsIntegrator := googleads.New(adsClient, cipher, accountRepo)

	// Cache de métricas no Postgres, com camada quente opcional no Redis
	cacheStore := caching.NewStore(metricsCacheRepo, cfg.GoogleAds.CacheTTLHours)
	if cfg.Redis.URL != "" {
		hotCache, err := rediscache.New(ctx, cfg.Redis.URL)
		if err != nil {
			logrus.WithError(err).Warn("Redis indisponível, cache de métricas apenas no Postgres")
		} else {
			defer hotCache.Close()
			cacheStore.WithHotCache(hotCache)
			logrus.Info("Camada quente do cache de métricas no Redis habilitada")
		}
	}

	insightService := insighting.NewService(adsIntegrator, accountRepo, dailyMetricRepo).
		WithCache(cacheStore, time.Duration(cfg.GoogleAds.CacheTTLHours)*time.Hour)

	connectService := connecting.NewService(cfg, adsClient, cipher, accountRepo)

	renderer, err := reporting.NewRenderer()
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao compilar templates de e-mail")
	}

	var sender notification.Sender
	sesSender, err := notification.NewSESSender(ctx, cfg.Email)
	if err != nil {
		logrus.WithError(err).Warn("SES não configurado, envio de e-mails de insights desabilitado")
		cfg.InsightsEmail.Enabled = false
		sender = notification.DisabledSender{}
	} else {
		sender = sesSender
	}

	reportService := reporting.NewService(
		cfg,
		subscriptionRepo,
		emailLogRepo,
		userProfileRepo,
		accountRepo,
		insightService,
		renderer,
		sender,
	)

	// Inicializa os agendadores
	insightsEmailSyncService := scheduler.NewInsightsEmailSyncService(reportService, cfg)
	cacheCleanupService := scheduler.NewCacheCleanupService(cacheStore, cfg)
	dailyMetricsSyncService := scheduler.NewDailyMetricsSyncService(accountRepo, insightService, cfg)

	if err := insightsEmailSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de e-mails de insights")
	} else {
		logrus.Info("Agendador de e-mails de insights iniciado com sucesso")
	}

	if err := cacheCleanupService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de limpeza de cache")
	} else {
		logrus.Info("Agendador de limpeza de cache iniciado com sucesso")
	}

	if err := dailyMetricsSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de métricas diárias")
	} else {
		logrus.Info("Agendador de métricas diárias iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		pgConn,
		authenticator,
		connectService,
		insightService,
		insightsEmailSyncService,
		cacheCleanupService,
		dailyMetricsSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
