package handler

import (
	"net/http"

	"github.com/vfg2006/google-ads-insights-api/internal/api/handler/router"
	"github.com/vfg2006/google-ads-insights-api/internal/usecases/connecting"
	"github.com/vfg2006/google-ads-insights-api/internal/usecases/insighting"
	"github.com/vfg2006/google-ads-insights-api/pkg/middleware"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

func GoogleAdsConnection(service connecting.Connector) []router.Route {
	return []router.Route{
		{
			Path:    "/google-ads/connect",
			Method:  http.MethodPost,
			Handler: ConnectGoogleAds(service),
		},
		{
			Path:    "/google-ads/callback",
			Method:  http.MethodGet,
			Handler: GoogleAdsCallback(service),
		},
	}
}

func GoogleAdsInsights(service insighting.Insighter) []router.Route {
	return []router.Route{
		{
			Path:    "/google-ads/keywords",
			Method:  http.MethodPost,
			Handler: GetKeywords(service),
		},
		{
			Path:    "/google-ads/campaigns",
			Method:  http.MethodPost,
			Handler: GetCampaigns(service),
		},
		{
			Path:    "/google-ads/ad-groups",
			Method:  http.MethodPost,
			Handler: GetAdGroups(service),
		},
		{
			Path:    "/google-ads/account-metrics",
			Method:  http.MethodPost,
			Handler: GetAccountMetrics(service),
		},
		{
			Path:    "/google-ads/daily-metrics",
			Method:  http.MethodPost,
			Handler: GetDailyMetrics(service),
		},
		{
			Path:    "/google-ads/accounts",
			Method:  http.MethodGet,
			Handler: ListGoogleAdsAccounts(service),
		},
	}
}

func CronJobs(services CronJobServices, runner InsightsRunner, cronSecret string) []router.Route {
	secretOnly := []func(http.Handler) http.Handler{middleware.CronSecret(cronSecret)}

	return []router.Route{
		{
			Path:        "/google-ads/insights/run",
			Method:      http.MethodPost,
			Handler:     RunInsights(runner),
			Middlewares: secretOnly,
		},
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: secretOnly,
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: secretOnly,
		},
	}
}
