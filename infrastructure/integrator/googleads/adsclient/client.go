package adsclient

import (
	"context"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	adsdomain "github.com/vfg2006/google-ads-insights-api/infrastructure/integrator/googleads/domain"
	"github.com/vfg2006/google-ads-insights-api/internal/config"
	"github.com/vfg2006/google-ads-insights-api/internal/domain"
	"github.com/vfg2006/google-ads-insights-api/pkg/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

//go:generate mockgen -source=client.go -destination=../mocks/client.go -package=mocks

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Scopes pedidos no consentimento; fixos
var Scopes = []string{
	"https://www.googleapis.com/auth/adwords",
	"https://www.googleapis.com/auth/userinfo.profile",
	"openid",
}

// AccessToken é o resultado de um refresh
type AccessToken struct {
	Token     string
	ExpiresIn int
	Expiry    time.Time
}

type Client interface {
	AuthCodeURL(state string) string
	RedirectURI() string
	ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (*AccessToken, error)
	ListAccessibleCustomers(ctx context.Context, accessToken string) ([]string, error)
	GetCustomerDetails(ctx context.Context, accessToken, customerID string) (*domain.AccountDetails, error)
	Search(ctx context.Context, accessToken, customerID, query string) ([]adsdomain.GoogleAdsRow, error)
}

type AdsClient struct {
	cfg        config.GoogleAds
	oauth      *oauth2.Config
	httpClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	endpoint := google.Endpoint
	if cfg.GoogleAds.AuthURL != "" {
		endpoint.AuthURL = cfg.GoogleAds.AuthURL
	}
	if cfg.GoogleAds.TokenURL != "" {
		endpoint.TokenURL = cfg.GoogleAds.TokenURL
	}
	endpoint.AuthStyle = oauth2.AuthStyleInParams

	return &AdsClient{
		cfg: cfg.GoogleAds,
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleAds.ClientID,
			ClientSecret: cfg.GoogleAds.ClientSecret,
			RedirectURL:  cfg.GoogleAds.RedirectURI,
			Scopes:       Scopes,
			Endpoint:     endpoint,
		},
		httpClient: utils.NewHTTPClient(cfg.GoogleAds.HTTPTimeout),
	}
}

func (c *AdsClient) RedirectURI() string {
	return c.cfg.RedirectURI
}

// oauthContext faz o pacote oauth2 usar o http.Client com timeout
func (c *AdsClient) oauthContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}
