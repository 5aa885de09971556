package connecting

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/google-ads-insights-api/infrastructure/integrator/googleads/adsclient"
	"github.com/vfg2006/google-ads-insights-api/infrastructure/repository"
	"github.com/vfg2006/google-ads-insights-api/internal/config"
	"github.com/vfg2006/google-ads-insights-api/internal/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks

type TokenEncrypter interface {
	Encrypt(plaintext string) (string, error)
}

// Connector conduz o consentimento OAuth e o cadastro das contas acessíveis
type Connector interface {
	Initiate(ctx context.Context, userID, returnURL string) (*domain.ConnectResponse, error)
	// HandleCallback sempre devolve a URL de redirecionamento; o erro serve apenas para log
	HandleCallback(ctx context.Context, params domain.CallbackParams) (string, error)
}

type Service struct {
	client         adsclient.Client
	cipher         TokenEncrypter
	accounts       repository.GoogleAdsAccountRepository
	clientID       string
	frontendURL    string
	allowedOrigins []string
	detailsLimit   int
}

func NewService(
	cfg *config.Config,
	client adsclient.Client,
	cipher TokenEncrypter,
	accounts repository.GoogleAdsAccountRepository,
) *Service {
	limit := cfg.GoogleAds.AccountDetailsLimit
	if limit <= 0 {
		limit = 5
	}

	return &Service{
		client:         client,
		cipher:         cipher,
		accounts:       accounts,
		clientID:       cfg.GoogleAds.ClientID,
		frontendURL:    strings.TrimRight(cfg.App.FrontendURL, "/"),
		allowedOrigins: cfg.Server.AllowedOrigins,
		detailsLimit:   limit,
	}
}

func (s *Service) Initiate(ctx context.Context, userID, returnURL string) (*domain.ConnectResponse, error) {
	if s.clientID == "" {
		return nil, fmt.Errorf("%w: GOOGLE_ADS_CLIENT_ID", domain.ErrConfiguration)
	}

	if userID == "" {
		return nil, domain.ErrAuthentication
	}

	state, err := EncodeState(userID, returnURL)
	if err != nil {
		return nil, fmt.Errorf("erro ao codificar state: %w", err)
	}

	logrus.WithField("user_id", userID).Info("Iniciando conexão com o Google Ads")

	return &domain.ConnectResponse{
		AuthURL:     s.client.AuthCodeURL(state),
		RedirectURI: s.client.RedirectURI(),
	}, nil
}

func (s *Service) HandleCallback(ctx context.Context, params domain.CallbackParams) (string, error) {
	state, err := ParseState(params.State)
	if err != nil {
		return s.errorRedirect("", "Parâmetro state inválido"), err
	}

	base := s.redirectBase(state.Return())
	logger := logrus.WithField("user_id", state.User())

	if params.ProviderError != "" {
		logger.WithField("provider_error", params.ProviderError).Warn("Consentimento recusado no Google")
		return s.errorRedirect(base, "Autorização negada: "+params.ProviderError), fmt.Errorf("provider error: %s", params.ProviderError)
	}

	if params.Code == "" {
		return s.errorRedirect(base, "Código de autorização ausente"), domain.NewValidationError("code", "obrigatório")
	}

	count, err := s.connect(ctx, state.User(), params.Code)
	if err != nil {
		logger.WithError(err).Error("Erro ao conectar contas do Google Ads")
		return s.errorRedirect(base, callbackMessage(err)), err
	}

	logger.WithField("accounts", count).Info("Contas do Google Ads conectadas")

	query := url.Values{}
	query.Set("success", "true")
	query.Set("accounts", strconv.Itoa(count))

	return base + "/integrations?" + query.Encode(), nil
}

// connect troca o código, descobre as contas e grava tudo. Devolve quantas contas reais foram gravadas.
func (s *Service) connect(ctx context.Context, userID, code string) (int, error) {
	token, err := s.client.ExchangeCode(ctx, code)
	if err != nil {
		return 0, err
	}

	if token.RefreshToken == "" {
		return 0, domain.ErrMissingRefreshToken
	}

	encrypted, err := s.cipher.Encrypt(token.RefreshToken)
	if err != nil {
		return 0, err
	}

	customerIDs, err := s.client.ListAccessibleCustomers(ctx, token.AccessToken)
	if err != nil {
		return 0, err
	}

	if len(customerIDs) == 0 {
		placeholder := &domain.GoogleAdsAccount{
			UserID:       userID,
			CustomerID:   domain.PlaceholderCustomerID,
			AccountName:  "Google Ads",
			AccountType:  domain.AccountTypeProduction,
			RefreshToken: encrypted,
			IsActive:     false,
		}
		if err := s.accounts.SaveOrUpdate(ctx, []*domain.GoogleAdsAccount{placeholder}); err != nil {
			return 0, err
		}
		return 0, nil
	}

	fold := s.fetchDetails(ctx, token.AccessToken, customerIDs)
	for _, failure := range fold.failures {
		logrus.WithFields(logrus.Fields{
			"customer_id": failure.customerID,
			"error":       failure.err.Error(),
		}).Warn("Detalhes da conta indisponíveis, usando nome padrão")
	}

	accounts := make([]*domain.GoogleAdsAccount, 0, len(fold.details))
	for _, details := range fold.details {
		accountType := domain.AccountTypeProduction
		if details.IsTest {
			accountType = domain.AccountTypeTest
		}

		accounts = append(accounts, &domain.GoogleAdsAccount{
			UserID:       userID,
			CustomerID:   details.CustomerID,
			AccountName:  details.Name,
			CurrencyCode: details.CurrencyCode,
			TimeZone:     details.TimeZone,
			IsManager:    details.IsManager,
			AccountType:  accountType,
			RefreshToken: encrypted,
			IsActive:     true,
		})
	}

	if err := s.accounts.SaveOrUpdate(ctx, accounts); err != nil {
		return 0, err
	}

	return len(accounts), nil
}

type detailsFailure struct {
	customerID string
	err        error
}

// detailsFold reúne os detalhes obtidos e as falhas; toda conta sai com detalhes, mesmo que padrão
type detailsFold struct {
	details  []*domain.AccountDetails
	failures []detailsFailure
}

func (s *Service) fetchDetails(ctx context.Context, accessToken string, customerIDs []string) detailsFold {
	fold := detailsFold{details: make([]*domain.AccountDetails, 0, len(customerIDs))}

	for i, customerID := range customerIDs {
		customerID = domain.NormalizeCustomerID(customerID)

		if i >= s.detailsLimit {
			fold.details = append(fold.details, placeholderDetails(customerID))
			continue
		}

		details, err := s.client.GetCustomerDetails(ctx, accessToken, customerID)
		if err != nil {
			fold.failures = append(fold.failures, detailsFailure{customerID: customerID, err: err})
			fold.details = append(fold.details, placeholderDetails(customerID))
			continue
		}

		if details.Name == "" {
			details.Name = placeholderName(customerID)
		}
		fold.details = append(fold.details, details)
	}

	return fold
}

func placeholderDetails(customerID string) *domain.AccountDetails {
	return &domain.AccountDetails{
		CustomerID: customerID,
		Name:       placeholderName(customerID),
	}
}

func placeholderName(customerID string) string {
	return "Google Ads " + customerID
}

// redirectBase só aceita returnUrl de origens conhecidas
func (s *Service) redirectBase(returnURL string) string {
	if returnURL == "" {
		return s.frontendURL
	}

	parsed, err := url.Parse(returnURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return s.frontendURL
	}

	origin := parsed.Scheme + "://" + parsed.Host
	if origin == originOf(s.frontendURL) {
		return strings.TrimRight(returnURL, "/")
	}
	for _, allowed := range s.allowedOrigins {
		if origin == strings.TrimRight(allowed, "/") {
			return strings.TrimRight(returnURL, "/")
		}
	}

	logrus.WithField("return_url", returnURL).Warn("returnUrl fora das origens permitidas, usando FRONTEND_URL")
	return s.frontendURL
}

func (s *Service) errorRedirect(base, message string) string {
	if base == "" {
		base = s.frontendURL
	}

	query := url.Values{}
	query.Set("error", message)
	return base + "/integrations?" + query.Encode()
}

func originOf(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return parsed.Scheme + "://" + parsed.Host
}

func callbackMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingRefreshToken):
		return "Nenhum refresh token recebido. Remova o acesso do app na sua conta Google e conecte novamente"
	case errors.Is(err, domain.ErrTimeout):
		return "Tempo esgotado ao comunicar com o Google"
	case errors.Is(err, domain.ErrTokenExchange):
		return "Falha ao trocar o código de autorização"
	case errors.Is(err, domain.ErrUpstreamAPI):
		return "Falha ao listar as contas do Google Ads"
	case errors.Is(err, domain.ErrConfiguration):
		return "Integração com o Google Ads não configurada"
	}
	return "Falha ao salvar as contas do Google Ads"
}
