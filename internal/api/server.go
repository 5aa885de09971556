package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/google-ads-insights-api/internal/api/handler"
	"github.com/vfg2006/google-ads-insights-api/internal/api/handler/router"
	"github.com/vfg2006/google-ads-insights-api/internal/config"
	"github.com/vfg2006/google-ads-insights-api/internal/scheduler"
	"github.com/vfg2006/google-ads-insights-api/internal/usecases/authenticating"
	"github.com/vfg2006/google-ads-insights-api/internal/usecases/connecting"
	"github.com/vfg2006/google-ads-insights-api/internal/usecases/insighting"
	"github.com/vfg2006/google-ads-insights-api/pkg/middleware"
)

const (
	shutdownTimeout    = 15 * time.Second
	writeTimeoutMargin = 5 * time.Second
)

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	db handler.Pinger,
	authenticator authenticating.Authenticator,
	connector connecting.Connector,
	insightService insighting.Insighter,
	insightsEmailSyncService *scheduler.InsightsEmailSyncService,
	cacheCleanupService *scheduler.CacheCleanupService,
	dailyMetricsSyncService *scheduler.DailyMetricsSyncService,
) (*Server, error) {
	cronServices := handler.CronJobServices{
		InsightsEmail: insightsEmailSyncService,
		CacheCleanup:  cacheCleanupService,
		DailyMetrics:  dailyMetricsSyncService,
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck(db)...),
		router.WithRoutes(handler.GoogleAdsConnection(connector)...),
		router.WithRoutes(handler.GoogleAdsInsights(insightService)...),
		router.WithRoutes(handler.CronJobs(cronServices, insightsEmailSyncService, config.Cron.Secret)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Server.AllowedOrigins),
		middleware.RequestDeadline(config.Server.RequestTimeout),
		middleware.AuthMiddleware(authenticator),
	}

	handler := alice.New(middlewares...).Then(rt)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 2 * time.Second,
	}
	// A resposta de erro do prazo ainda precisa ser escrita depois que ele vence
	if config.Server.RequestTimeout > 0 {
		httpServer.WriteTimeout = config.Server.RequestTimeout + writeTimeoutMargin
	}

	srv := &Server{httpServer: httpServer}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	// Aguardar pelo sinal ou pelo cancelamento do contexto
	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	// Define timeout para desligamento
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": shutdownTimeout.String(),
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

// Handler expõe a cadeia completa de middlewares e rotas
func (s Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s Server) Shutdown(ctx context.Context) error {
	logrus.Info("Executando operações de limpeza antes do desligamento")

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
