package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/google-ads-insights-api/internal/domain"
	"github.com/vfg2006/google-ads-insights-api/internal/usecases/connecting"
	"github.com/vfg2006/google-ads-insights-api/internal/usecases/insighting"
	"github.com/vfg2006/google-ads-insights-api/pkg/log"
	"github.com/vfg2006/google-ads-insights-api/pkg/middleware"
)

// ConnectGoogleAds devolve a URL de consentimento do Google para o usuário autenticado
func ConnectGoogleAds(service connecting.Connector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.ConnectRequest
		if err := decodeRequest(r, &req); err != nil {
			writeServiceError(w, err)
			return
		}

		resp, err := service.Initiate(r.Context(), middleware.UserID(r.Context()), req.ReturnURL)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// GoogleAdsCallback recebe o retorno do consentimento e sempre redireciona para o frontend
func GoogleAdsCallback(service connecting.Connector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		location, err := service.HandleCallback(r.Context(), domain.CallbackParams{
			Code:          query.Get("code"),
			State:         query.Get("state"),
			ProviderError: query.Get("error"),
		})
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("Callback do Google Ads finalizado com erro")
		}

		http.Redirect(w, r, location, http.StatusFound)
	}
}

// metricsHandler atende keywords, campanhas e grupos de anúncios, que diferem apenas na chave da resposta
func metricsHandler(key string, fetch func(r *http.Request, userID string, req *domain.MetricsRequest) (*domain.MetricsResult, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.MetricsRequest
		if err := decodeRequest(r, &req); err != nil {
			writeServiceError(w, err)
			return
		}

		result, err := fetch(r, middleware.UserID(r.Context()), &req)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		rows := result.Rows
		if rows == nil {
			rows = []*domain.MetricsRow{}
		}

		writeJSON(w, http.StatusOK, map[string]any{
			key:          rows,
			"cached":     result.Cached,
			"fetched_at": result.FetchedAt,
		})
	}
}

func GetKeywords(service insighting.Insighter) http.HandlerFunc {
	return metricsHandler("keywords", func(r *http.Request, userID string, req *domain.MetricsRequest) (*domain.MetricsResult, error) {
		return service.FetchKeywords(r.Context(), userID, req)
	})
}

func GetCampaigns(service insighting.Insighter) http.HandlerFunc {
	return metricsHandler("campaigns", func(r *http.Request, userID string, req *domain.MetricsRequest) (*domain.MetricsResult, error) {
		return service.FetchCampaigns(r.Context(), userID, req)
	})
}

func GetAdGroups(service insighting.Insighter) http.HandlerFunc {
	return metricsHandler("ad_groups", func(r *http.Request, userID string, req *domain.MetricsRequest) (*domain.MetricsResult, error) {
		return service.FetchAdGroups(r.Context(), userID, req)
	})
}

func GetAccountMetrics(service insighting.Insighter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.AccountMetricsRequest
		if err := decodeRequest(r, &req); err != nil {
			writeServiceError(w, err)
			return
		}

		metrics, err := service.GetAccountMetrics(r.Context(), middleware.UserID(r.Context()), &req)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"metrics": metrics})
	}
}

func GetDailyMetrics(service insighting.Insighter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.DailyMetricsRequest
		if err := decodeRequest(r, &req); err != nil {
			writeServiceError(w, err)
			return
		}

		daily, err := service.GetDailyMetrics(r.Context(), middleware.UserID(r.Context()), &req)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		if daily == nil {
			daily = []*domain.DailyMetric{}
		}

		writeJSON(w, http.StatusOK, map[string]any{"daily_metrics": daily})
	}
}

func ListGoogleAdsAccounts(service insighting.Insighter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accounts, err := service.ListAccounts(r.Context(), middleware.UserID(r.Context()))
		if err != nil {
			logrus.WithError(err).Error("Erro ao listar contas do Google Ads")
			writeServiceError(w, err)
			return
		}

		if accounts == nil {
			accounts = []*domain.GoogleAdsAccount{}
		}

		writeJSON(w, http.StatusOK, map[string]any{"accounts": accounts})
	}
}
