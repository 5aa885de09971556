package adsclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/google-ads-insights-api/internal/domain"
	"github.com/vfg2006/google-ads-insights-api/pkg/utils"
	"golang.org/x/oauth2"
)

// AuthCodeURL força access_type=offline e prompt=consent para que o refresh token venha sempre
func (c *AdsClient) AuthCodeURL(state string) string {
	return c.oauth.AuthCodeURL(
		state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

// ExchangeCode troca o código de autorização por tokens. A ausência de refresh token é tratada por quem chama.
func (c *AdsClient) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := c.oauth.Exchange(c.oauthContext(ctx), code)
	if err != nil {
		logrus.WithError(err).Error("Erro ao trocar código de autorização")
		return nil, upstreamFromOAuth(domain.ErrTokenExchange, err)
	}

	return token, nil
}

// RefreshAccessToken executa grant_type=refresh_token uma única vez, sem retry
func (c *AdsClient) RefreshAccessToken(ctx context.Context, refreshToken string) (*AccessToken, error) {
	source := c.oauth.TokenSource(c.oauthContext(ctx), &oauth2.Token{RefreshToken: refreshToken})

	token, err := source.Token()
	if err != nil {
		logrus.WithError(err).Warn("Erro ao renovar access token do Google Ads")
		return nil, upstreamFromOAuth(domain.ErrRefresh, err)
	}

	expiresIn := 0
	if !token.Expiry.IsZero() {
		expiresIn = int(time.Until(token.Expiry).Seconds())
	}

	return &AccessToken{
		Token:     token.AccessToken,
		ExpiresIn: expiresIn,
		Expiry:    token.Expiry,
	}, nil
}

func upstreamFromOAuth(kind error, err error) error {
	if utils.IsTimeout(err) {
		return fmt.Errorf("%w: %w", domain.ErrTimeout, err)
	}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		status := http.StatusBadGateway
		if retrieveErr.Response != nil {
			status = retrieveErr.Response.StatusCode
		}
		return domain.NewUpstreamError(kind, status, string(retrieveErr.Body))
	}

	return domain.NewUpstreamError(kind, 0, err.Error())
}
