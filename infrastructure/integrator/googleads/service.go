package googleads

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/google-ads-insights-api/infrastructure/integrator/googleads/adsclient"
	adsdomain "github.com/vfg2006/google-ads-insights-api/infrastructure/integrator/googleads/domain"
	"github.com/vfg2006/google-ads-insights-api/infrastructure/repository"
	"github.com/vfg2006/google-ads-insights-api/internal/domain"
)

type TokenDecrypter interface {
	Decrypt(blob string) (string, error)
}

type GoogleAdsIntegrator struct {
	Client   adsclient.Client
	cipher   TokenDecrypter
	accounts repository.GoogleAdsAccountRepository
	now      func() time.Time
}

func New(client adsclient.Client, cipher TokenDecrypter, accounts repository.GoogleAdsAccountRepository) *GoogleAdsIntegrator {
	return &GoogleAdsIntegrator{
		Client:   client,
		cipher:   cipher,
		accounts: accounts,
		now:      time.Now,
	}
}

// FetchMetrics busca keywords, campanhas ou grupos de anúncios de uma conta.
// O envelope sai sempre com cached=false; o cache é aplicado por quem chama.
func (s *GoogleAdsIntegrator) FetchMetrics(
	ctx context.Context,
	account *domain.GoogleAdsAccount,
	entity domain.EntityType,
	filters domain.MetricsFilters,
) (*domain.MetricsResult, error) {
	query, err := BuildEntityQuery(entity, filters, s.now())
	if err != nil {
		return nil, err
	}

	rows, err := s.search(ctx, account, query)
	if err != nil {
		return nil, err
	}

	result := &domain.MetricsResult{
		Rows:      make([]*domain.MetricsRow, 0, len(rows)),
		Cached:    false,
		FetchedAt: s.now().UTC().Format(time.RFC3339),
	}
	for _, row := range rows {
		result.Rows = append(result.Rows, FactoryMetricsRow(row))
	}

	logrus.WithFields(logrus.Fields{
		"account_id": account.ID,
		"entity":     entity,
		"rows":       len(result.Rows),
	}).Debug("insights: successfully retrieved google ads metrics")

	return result, nil
}

// FetchDaily busca métricas segmentadas por dia no nível da conta ou das campanhas
func (s *GoogleAdsIntegrator) FetchDaily(
	ctx context.Context,
	account *domain.GoogleAdsAccount,
	entity domain.EntityType,
	startDate, endDate string,
	metrics []string,
) ([]*domain.DailyMetricsRow, error) {
	query, err := BuildDailyQuery(entity, startDate, endDate, metrics)
	if err != nil {
		return nil, err
	}

	rows, err := s.search(ctx, account, query)
	if err != nil {
		return nil, err
	}

	daily := make([]*domain.DailyMetricsRow, 0, len(rows))
	for _, row := range rows {
		if row.Segments == nil {
			continue
		}

		item := &domain.DailyMetricsRow{
			Date:    row.Segments.Date,
			Metrics: FactoryMetricsRow(row),
		}

		switch {
		case row.Campaign != nil:
			item.EntityType = domain.EntityCampaign
			item.EntityID = row.Campaign.ID.String()
			item.EntityName = row.Campaign.Name
		default:
			item.EntityType = domain.EntityAccount
			item.EntityID = account.ID
			item.EntityName = account.AccountName
		}

		daily = append(daily, item)
	}

	return daily, nil
}

// search aplica a política de tokens: reconexão pendente bloqueia antes da rede,
// e um 401 provoca exatamente um novo refresh seguido de uma única nova tentativa.
func (s *GoogleAdsIntegrator) search(ctx context.Context, account *domain.GoogleAdsAccount, query string) ([]adsdomain.GoogleAdsRow, error) {
	if account.NeedsReconnection {
		return nil, domain.ErrReconnectionRequired
	}

	refreshToken, err := s.cipher.Decrypt(account.RefreshToken)
	if err != nil {
		s.recordError(ctx, account, err)
		return nil, err
	}

	accessToken, err := s.refresh(ctx, account, refreshToken)
	if err != nil {
		return nil, err
	}

	rows, err := s.Client.Search(ctx, accessToken, account.APICustomerID(), query)
	if err == nil {
		return rows, nil
	}

	if !isUnauthorized(err) {
		s.recordError(ctx, account, err)
		return nil, err
	}

	logrus.WithField("account_id", account.ID).Warn("insights: access token rejected, refreshing once")

	accessToken, err = s.refresh(ctx, account, refreshToken)
	if err != nil {
		return nil, err
	}

	rows, err = s.Client.Search(ctx, accessToken, account.APICustomerID(), query)
	if err != nil {
		s.recordError(ctx, account, err)
		return nil, err
	}

	return rows, nil
}

func (s *GoogleAdsIntegrator) refresh(ctx context.Context, account *domain.GoogleAdsAccount, refreshToken string) (string, error) {
	token, err := s.Client.RefreshAccessToken(ctx, refreshToken)
	if err != nil {
		var upstream *domain.UpstreamError
		if errors.As(err, &upstream) && upstream.IsInvalidGrant() {
			logrus.WithField("account_id", account.ID).Warn("insights: refresh token revoked, marking account for reconnection")
			if markErr := s.accounts.MarkNeedsReconnection(ctx, account.ID, err.Error()); markErr != nil {
				logrus.WithError(markErr).Error("Erro ao marcar conta para reconexão")
			}
			return "", fmt.Errorf("%w: %w", domain.ErrReconnectionRequired, err)
		}

		s.recordError(ctx, account, err)
		return "", err
	}

	if !token.Expiry.IsZero() {
		if err := s.accounts.UpdateTokenExpiry(ctx, account.ID, token.Expiry); err != nil {
			logrus.WithError(err).Warn("Erro ao atualizar expiração do token")
		}
	}

	return token.Token, nil
}

func (s *GoogleAdsIntegrator) recordError(ctx context.Context, account *domain.GoogleAdsAccount, cause error) {
	if errors.Is(cause, context.Canceled) {
		return
	}

	if err := s.accounts.RecordError(ctx, account.ID, cause.Error()); err != nil {
		logrus.WithError(err).Error("Erro ao registrar erro da conta")
	}
}

func isUnauthorized(err error) bool {
	var upstream *domain.UpstreamError
	return errors.As(err, &upstream) && upstream.Status == http.StatusUnauthorized
}
