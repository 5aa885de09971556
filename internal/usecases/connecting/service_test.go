package connecting

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/google-ads-insights-api/infrastructure/integrator/googleads/adsclient"
	adsmocks "github.com/vfg2006/google-ads-insights-api/infrastructure/integrator/googleads/mocks"
	repomocks "github.com/vfg2006/google-ads-insights-api/infrastructure/repository/mocks"
	"github.com/vfg2006/google-ads-insights-api/internal/config"
	"github.com/vfg2006/google-ads-insights-api/internal/domain"
	"github.com/vfg2006/google-ads-insights-api/pkg/tokencrypt"
	"go.uber.org/mock/gomock"
	"golang.org/x/oauth2"
)

func testConfig() *config.Config {
	return &config.Config{
		App:    config.App{FrontendURL: "https://app.example.com"},
		Server: config.Server{AllowedOrigins: []string{"https://staging.example.com"}},
		GoogleAds: config.GoogleAds{
			ClientID:            "client-id",
			ClientSecret:        "client-secret",
			RedirectURI:         "https://api.example.com/google-ads/callback",
			AuthURL:             "https://accounts.google.com/o/oauth2/auth",
			TokenURL:            "https://oauth2.googleapis.com/token",
			AccountDetailsLimit: 5,
		},
	}
}

type fixture struct {
	service  *Service
	client   *adsmocks.MockClient
	accounts *repomocks.MockGoogleAdsAccountRepository
	cipher   *tokencrypt.Cipher
}

func newFixture(t *testing.T, cfg *config.Config) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	cipher, err := tokencrypt.New("chave-de-teste", tokencrypt.KeyDerivationLegacy)
	require.NoError(t, err)

	f := &fixture{
		client:   adsmocks.NewMockClient(ctrl),
		accounts: repomocks.NewMockGoogleAdsAccountRepository(ctrl),
		cipher:   cipher,
	}
	f.service = NewService(cfg, f.client, cipher, f.accounts)
	return f
}

func TestService_Initiate(t *testing.T) {
	cfg := testConfig()
	ctrl := gomock.NewController(t)
	service := NewService(cfg, adsclient.NewClient(cfg), nil, repomocks.NewMockGoogleAdsAccountRepository(ctrl))

	resp, err := service.Initiate(context.Background(), "user-1", "https://app.example.com/settings")
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com/google-ads/callback", resp.RedirectURI)

	authURL, err := url.Parse(resp.AuthURL)
	require.NoError(t, err)

	query := authURL.Query()
	assert.Equal(t, "offline", query.Get("access_type"))
	assert.Equal(t, "consent", query.Get("prompt"))
	assert.Equal(t, "client-id", query.Get("client_id"))
	assert.Equal(t, "code", query.Get("response_type"))

	scopes := strings.Split(query.Get("scope"), " ")
	assert.ElementsMatch(t, adsclient.Scopes, scopes)

	state, err := ParseState(query.Get("state"))
	require.NoError(t, err)
	assert.Equal(t, StructuredState{UserID: "user-1", ReturnURL: "https://app.example.com/settings"}, state)
}

func TestService_Initiate_MissingClientID(t *testing.T) {
	cfg := testConfig()
	cfg.GoogleAds.ClientID = ""
	f := newFixture(t, cfg)

	_, err := f.service.Initiate(context.Background(), "user-1", "")
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestParseState(t *testing.T) {
	encoded, err := EncodeState("user-1", "https://app.example.com")
	require.NoError(t, err)

	tests := []struct {
		name    string
		raw     string
		want    State
		wantErr bool
	}{
		{name: "estruturado", raw: encoded, want: StructuredState{UserID: "user-1", ReturnURL: "https://app.example.com"}},
		{name: "legado", raw: "5f1c2a0e-user", want: LegacyState{UserID: "5f1c2a0e-user"}},
		{name: "vazio", raw: "", wantErr: true},
		{name: "espaços nas bordas", raw: "  5f1c2a0e-user  ", want: LegacyState{UserID: "5f1c2a0e-user"}},
		{name: "só espaços", raw: "   ", wantErr: true},
		{name: "json sem usuário cai para legado", raw: "eyJyZXR1cm5VcmwiOiJ4In0=", want: LegacyState{UserID: "eyJyZXR1cm5VcmwiOiJ4In0="}},
		{name: "valor bruto com chaves e aspas", raw: `{"userId"`, want: LegacyState{UserID: `{"userId"`}},
		{name: "valor bruto com espaço", raw: "user 1", want: LegacyState{UserID: "user 1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseState(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidState)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func encodedState(t *testing.T, returnURL string) string {
	t.Helper()
	state, err := EncodeState("user-1", returnURL)
	require.NoError(t, err)
	return state
}

func TestService_HandleCallback_Success(t *testing.T) {
	f := newFixture(t, testConfig())
	ctx := context.Background()

	currency := "BRL"
	f.client.EXPECT().ExchangeCode(gomock.Any(), "auth-code").Return(&oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh-token",
	}, nil)
	f.client.EXPECT().ListAccessibleCustomers(gomock.Any(), "access").Return([]string{"1234567890", "987-654-3210"}, nil)
	f.client.EXPECT().GetCustomerDetails(gomock.Any(), "access", "1234567890").Return(&domain.AccountDetails{
		CustomerID:   "1234567890",
		Name:         "Loja Centro",
		CurrencyCode: &currency,
	}, nil)
	f.client.EXPECT().GetCustomerDetails(gomock.Any(), "access", "9876543210").
		Return(nil, domain.NewUpstreamError(domain.ErrUpstreamAPI, 403, "denied"))

	f.accounts.EXPECT().
		SaveOrUpdate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, accounts []*domain.GoogleAdsAccount) error {
			require.Len(t, accounts, 2)

			assert.Equal(t, "Loja Centro", accounts[0].AccountName)
			assert.Equal(t, &currency, accounts[0].CurrencyCode)
			assert.True(t, accounts[0].IsActive)

			assert.Equal(t, "9876543210", accounts[1].CustomerID)
			assert.Equal(t, "Google Ads 9876543210", accounts[1].AccountName)
			assert.Nil(t, accounts[1].CurrencyCode)
			assert.Nil(t, accounts[1].TimeZone)

			for _, account := range accounts {
				assert.Equal(t, "user-1", account.UserID)
				assert.NotEqual(t, "refresh-token", account.RefreshToken)

				plain, err := f.cipher.Decrypt(account.RefreshToken)
				require.NoError(t, err)
				assert.Equal(t, "refresh-token", plain)
			}
			return nil
		})

	redirect, err := f.service.HandleCallback(ctx, domain.CallbackParams{
		Code:  "auth-code",
		State: encodedState(t, "https://staging.example.com/app"),
	})

	require.NoError(t, err)
	assert.Equal(t, "https://staging.example.com/app/integrations?accounts=2&success=true", redirect)
}

func TestService_HandleCallback_DetailsLimit(t *testing.T) {
	cfg := testConfig()
	cfg.GoogleAds.AccountDetailsLimit = 1
	f := newFixture(t, cfg)

	f.client.EXPECT().ExchangeCode(gomock.Any(), "code").Return(&oauth2.Token{AccessToken: "a", RefreshToken: "r"}, nil)
	f.client.EXPECT().ListAccessibleCustomers(gomock.Any(), "a").Return([]string{"1", "2", "3"}, nil)
	f.client.EXPECT().GetCustomerDetails(gomock.Any(), "a", "1").Return(&domain.AccountDetails{CustomerID: "1", Name: "Um"}, nil).Times(1)
	f.accounts.EXPECT().
		SaveOrUpdate(gomock.Any(), gomock.Len(3)).
		DoAndReturn(func(_ context.Context, accounts []*domain.GoogleAdsAccount) error {
			assert.Equal(t, "Google Ads 2", accounts[1].AccountName)
			assert.Equal(t, "Google Ads 3", accounts[2].AccountName)
			return nil
		})

	redirect, err := f.service.HandleCallback(context.Background(), domain.CallbackParams{Code: "code", State: "user-1"})
	require.NoError(t, err)
	assert.Contains(t, redirect, "accounts=3")
	assert.True(t, strings.HasPrefix(redirect, "https://app.example.com/integrations?"))
}

func TestService_HandleCallback_ZeroAccountsPlaceholder(t *testing.T) {
	f := newFixture(t, testConfig())

	f.client.EXPECT().ExchangeCode(gomock.Any(), "code").Return(&oauth2.Token{AccessToken: "a", RefreshToken: "r"}, nil)
	f.client.EXPECT().ListAccessibleCustomers(gomock.Any(), "a").Return([]string{}, nil)
	f.accounts.EXPECT().
		SaveOrUpdate(gomock.Any(), gomock.Len(1)).
		DoAndReturn(func(_ context.Context, accounts []*domain.GoogleAdsAccount) error {
			assert.Equal(t, domain.PlaceholderCustomerID, accounts[0].CustomerID)
			assert.False(t, accounts[0].IsActive)
			return nil
		})

	redirect, err := f.service.HandleCallback(context.Background(), domain.CallbackParams{
		Code:  "code",
		State: encodedState(t, ""),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://app.example.com/integrations?accounts=0&success=true", redirect)
}

func TestService_HandleCallback_MissingRefreshToken(t *testing.T) {
	f := newFixture(t, testConfig())

	f.client.EXPECT().ExchangeCode(gomock.Any(), "code").Return(&oauth2.Token{AccessToken: "a"}, nil)
	// Nenhuma linha pode ser gravada
	f.accounts.EXPECT().SaveOrUpdate(gomock.Any(), gomock.Any()).Times(0)

	redirect, err := f.service.HandleCallback(context.Background(), domain.CallbackParams{
		Code:  "code",
		State: encodedState(t, ""),
	})

	assert.ErrorIs(t, err, domain.ErrMissingRefreshToken)
	assertErrorRedirect(t, redirect, "https://app.example.com/integrations")
}

func TestService_HandleCallback_Failures(t *testing.T) {
	tests := []struct {
		name    string
		params  func(t *testing.T) domain.CallbackParams
		setup   func(f *fixture)
		wantErr error
	}{
		{
			name:   "erro do provedor",
			params: func(t *testing.T) domain.CallbackParams { return domain.CallbackParams{ProviderError: "access_denied", State: "user-1"} },
		},
		{
			name:    "sem código",
			params:  func(t *testing.T) domain.CallbackParams { return domain.CallbackParams{State: "user-1"} },
			wantErr: domain.ErrValidation,
		},
		{
			name:    "state inválido",
			params:  func(t *testing.T) domain.CallbackParams { return domain.CallbackParams{Code: "code"} },
			wantErr: ErrInvalidState,
		},
		{
			name:   "falha na troca",
			params: func(t *testing.T) domain.CallbackParams { return domain.CallbackParams{Code: "code", State: "user-1"} },
			setup: func(f *fixture) {
				f.client.EXPECT().ExchangeCode(gomock.Any(), "code").
					Return(nil, domain.NewUpstreamError(domain.ErrTokenExchange, 400, `{"error":"invalid_grant"}`))
			},
			wantErr: domain.ErrTokenExchange,
		},
		{
			name:   "falha ao gravar",
			params: func(t *testing.T) domain.CallbackParams { return domain.CallbackParams{Code: "code", State: "user-1"} },
			setup: func(f *fixture) {
				f.client.EXPECT().ExchangeCode(gomock.Any(), "code").Return(&oauth2.Token{AccessToken: "a", RefreshToken: "r"}, nil)
				f.client.EXPECT().ListAccessibleCustomers(gomock.Any(), "a").Return([]string{"1"}, nil)
				f.client.EXPECT().GetCustomerDetails(gomock.Any(), "a", "1").Return(&domain.AccountDetails{CustomerID: "1", Name: "Um"}, nil)
				f.accounts.EXPECT().SaveOrUpdate(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, testConfig())
			if tt.setup != nil {
				tt.setup(f)
			}

			redirect, err := f.service.HandleCallback(context.Background(), tt.params(t))

			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assertErrorRedirect(t, redirect, "https://app.example.com/integrations")
		})
	}
}

func TestService_RedirectBase_RejectsUnknownOrigin(t *testing.T) {
	f := newFixture(t, testConfig())

	assert.Equal(t, "https://app.example.com", f.service.redirectBase("https://evil.example.net/x"))
	assert.Equal(t, "https://app.example.com", f.service.redirectBase("/relative"))
	assert.Equal(t, "https://app.example.com/settings", f.service.redirectBase("https://app.example.com/settings/"))
}

func assertErrorRedirect(t *testing.T, redirect, prefix string) {
	t.Helper()

	parsed, err := url.Parse(redirect)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(redirect, prefix+"?"), redirect)
	assert.NotEmpty(t, parsed.Query().Get("error"))
	assert.Empty(t, parsed.Query().Get("success"))
}
