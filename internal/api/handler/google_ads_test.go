package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/google-ads-insights-api/internal/api/handler/router"
	"github.com/vfg2006/google-ads-insights-api/internal/domain"
	connectingmocks "github.com/vfg2006/google-ads-insights-api/internal/usecases/connecting/mocks"
	"github.com/vfg2006/google-ads-insights-api/internal/usecases/insighting"
	insightmocks "github.com/vfg2006/google-ads-insights-api/internal/usecases/insighting/mocks"
	"github.com/vfg2006/google-ads-insights-api/pkg/apiErrors"
	"github.com/vfg2006/google-ads-insights-api/pkg/middleware"
	"go.uber.org/mock/gomock"
)

func authenticated(req *http.Request, userID string) *http.Request {
	claims := &domain.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: userID}}
	return req.WithContext(context.WithValue(req.Context(), middleware.ContextKeyUser, claims))
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func newInsightsRouter(service insighting.Insighter) router.Router {
	return router.New(router.WithRoutes(GoogleAdsInsights(service)...))
}

func TestGetKeywords(t *testing.T) {
	t.Run("responde com a chave da entidade", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := insightmocks.NewMockInsighter(ctrl)

		service.EXPECT().
			FetchKeywords(gomock.Any(), "user-1", &domain.MetricsRequest{
				AccountID: "acc-1",
				Filters:   domain.MetricsFilters{DateRange: domain.DateRangeLast7Days},
			}).
			Return(&domain.MetricsResult{
				Rows:      []*domain.MetricsRow{{KeywordText: "óculos de sol", Clicks: 10}},
				Cached:    true,
				FetchedAt: "2024-03-10T12:00:00Z",
			}, nil)

		body := `{"accountId":"acc-1","filters":{"dateRange":"LAST_7_DAYS"}}`
		req := authenticated(httptest.NewRequest(http.MethodPost, "/google-ads/keywords", strings.NewReader(body)), "user-1")
		rec := httptest.NewRecorder()

		newInsightsRouter(service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		resp := decodeBody(t, rec)
		assert.Equal(t, true, resp["cached"])
		assert.Equal(t, "2024-03-10T12:00:00Z", resp["fetched_at"])
		keywords := resp["keywords"].([]any)
		require.Len(t, keywords, 1)
		assert.Equal(t, "óculos de sol", keywords[0].(map[string]any)["keyword_text"])
	})

	t.Run("accountId ausente", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := insightmocks.NewMockInsighter(ctrl)

		req := authenticated(httptest.NewRequest(http.MethodPost, "/google-ads/keywords", strings.NewReader(`{}`)), "user-1")
		rec := httptest.NewRecorder()

		newInsightsRouter(service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeBody(t, rec)
		assert.Equal(t, apiErrors.ErrInvalidRequest, resp["code"])
		assert.Equal(t, "accountId", resp["details"].(map[string]any)["field"])
	})

	t.Run("corpo inválido", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := insightmocks.NewMockInsighter(ctrl)

		req := authenticated(httptest.NewRequest(http.MethodPost, "/google-ads/keywords", strings.NewReader(`{`)), "user-1")
		rec := httptest.NewRecorder()

		newInsightsRouter(service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestMetricsHandlers_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "reconexão necessária",
			err:        domain.ErrReconnectionRequired,
			wantStatus: http.StatusConflict,
			wantCode:   apiErrors.ErrReconnectionRequired,
		},
		{
			name:       "conta de outro usuário",
			err:        domain.ErrAuthorization,
			wantStatus: http.StatusForbidden,
			wantCode:   apiErrors.ErrAccountAccessDenied,
		},
		{
			name:       "erro da API do Google Ads",
			err:        domain.NewUpstreamError(domain.ErrUpstreamAPI, 400, "bad query"),
			wantStatus: http.StatusBadGateway,
			wantCode:   apiErrors.ErrGoogleAdsAPI,
		},
		{
			name:       "erro de banco embrulhado",
			err:        insighting.NewInsightError(domain.ErrNotFound, apiErrors.ErrDatabaseOperation, "acc-1", "falha"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   apiErrors.ErrDatabaseOperation,
		},
		{
			name:       "tempo esgotado",
			err:        domain.ErrTimeout,
			wantStatus: http.StatusGatewayTimeout,
			wantCode:   apiErrors.ErrTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service := insightmocks.NewMockInsighter(ctrl)
			service.EXPECT().FetchCampaigns(gomock.Any(), "user-1", gomock.Any()).Return(nil, tt.err)

			req := authenticated(httptest.NewRequest(http.MethodPost, "/google-ads/campaigns", strings.NewReader(`{"accountId":"acc-1"}`)), "user-1")
			rec := httptest.NewRecorder()

			newInsightsRouter(service).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, decodeBody(t, rec)["code"])
		})
	}
}

func TestGetAdGroups_EmptyRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := insightmocks.NewMockInsighter(ctrl)
	service.EXPECT().FetchAdGroups(gomock.Any(), "user-1", gomock.Any()).Return(&domain.MetricsResult{}, nil)

	req := authenticated(httptest.NewRequest(http.MethodPost, "/google-ads/ad-groups", strings.NewReader(`{"accountId":"acc-1"}`)), "user-1")
	rec := httptest.NewRecorder()

	newInsightsRouter(service).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{}, decodeBody(t, rec)["ad_groups"])
}

func TestGetAccountMetrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := insightmocks.NewMockInsighter(ctrl)

	t.Run("datas obrigatórias", func(t *testing.T) {
		req := authenticated(httptest.NewRequest(http.MethodPost, "/google-ads/account-metrics",
			strings.NewReader(`{"accountId":"acc-1","startDate":"10/03/2024","endDate":"2024-03-10"}`)), "user-1")
		rec := httptest.NewRecorder()

		newInsightsRouter(service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "startDate", decodeBody(t, rec)["details"].(map[string]any)["field"])
	})

	t.Run("devolve o agregado", func(t *testing.T) {
		service.EXPECT().GetAccountMetrics(gomock.Any(), "user-1", gomock.Any()).
			Return(&domain.AccountMetrics{Impressions: 2000, Ctr: 4, StartDate: "2024-03-01", EndDate: "2024-03-10"}, nil)

		req := authenticated(httptest.NewRequest(http.MethodPost, "/google-ads/account-metrics",
			strings.NewReader(`{"accountId":"acc-1","startDate":"2024-03-01","endDate":"2024-03-10"}`)), "user-1")
		rec := httptest.NewRecorder()

		newInsightsRouter(service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		metrics := decodeBody(t, rec)["metrics"].(map[string]any)
		assert.Equal(t, float64(2000), metrics["impressions"])
		assert.Equal(t, float64(4), metrics["ctr"])
	})
}

func TestListGoogleAdsAccounts_HidesRefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := insightmocks.NewMockInsighter(ctrl)
	service.EXPECT().ListAccounts(gomock.Any(), "user-1").Return([]*domain.GoogleAdsAccount{
		{ID: "acc-1", CustomerID: "1234567890", AccountName: "Loja Centro", RefreshToken: "cifrado"},
	}, nil)

	req := authenticated(httptest.NewRequest(http.MethodGet, "/google-ads/accounts", nil), "user-1")
	rec := httptest.NewRecorder()

	newInsightsRouter(service).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "cifrado")
	assert.Len(t, decodeBody(t, rec)["accounts"], 1)
}

func TestConnectGoogleAds(t *testing.T) {
	ctrl := gomock.NewController(t)
	connector := connectingmocks.NewMockConnector(ctrl)
	rt := router.New(router.WithRoutes(GoogleAdsConnection(connector)...))

	t.Run("sem corpo", func(t *testing.T) {
		connector.EXPECT().Initiate(gomock.Any(), "user-1", "").
			Return(&domain.ConnectResponse{AuthURL: "https://accounts.google.com/o/oauth2/auth?x=1", RedirectURI: "http://localhost/cb"}, nil)

		req := authenticated(httptest.NewRequest(http.MethodPost, "/google-ads/connect", nil), "user-1")
		rec := httptest.NewRecorder()
		rt.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		resp := decodeBody(t, rec)
		assert.Equal(t, "https://accounts.google.com/o/oauth2/auth?x=1", resp["authUrl"])
		assert.Equal(t, "http://localhost/cb", resp["redirectUri"])
	})

	t.Run("returnUrl inválida", func(t *testing.T) {
		req := authenticated(httptest.NewRequest(http.MethodPost, "/google-ads/connect", strings.NewReader(`{"returnUrl":"nao e url"}`)), "user-1")
		rec := httptest.NewRecorder()
		rt.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("client id não configurado", func(t *testing.T) {
		connector.EXPECT().Initiate(gomock.Any(), "user-1", "").Return(nil, domain.ErrConfiguration)

		req := authenticated(httptest.NewRequest(http.MethodPost, "/google-ads/connect", strings.NewReader(`{}`)), "user-1")
		rec := httptest.NewRecorder()
		rt.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, apiErrors.ErrConfiguration, decodeBody(t, rec)["code"])
	})
}

func TestGoogleAdsCallback_AlwaysRedirects(t *testing.T) {
	ctrl := gomock.NewController(t)
	connector := connectingmocks.NewMockConnector(ctrl)
	rt := router.New(router.WithRoutes(GoogleAdsConnection(connector)...))

	connector.EXPECT().
		HandleCallback(gomock.Any(), domain.CallbackParams{State: "abc", ProviderError: "access_denied"}).
		Return("http://localhost:5173/integrations?error=negado", domain.ErrAuthorization)

	req := httptest.NewRequest(http.MethodGet, "/google-ads/callback?state=abc&error=access_denied", nil)
	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "http://localhost:5173/integrations?error=negado", rec.Header().Get("Location"))
}
