package adsclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	adsdomain "github.com/vfg2006/google-ads-insights-api/infrastructure/integrator/googleads/domain"
	"github.com/vfg2006/google-ads-insights-api/internal/domain"
	"github.com/vfg2006/google-ads-insights-api/pkg/utils"
)

const customerPrefix = "customers/"

// Search executa uma consulta GAQL seguindo a paginação até o fim.
// Um 401 é devolvido como UpstreamError com Status 401 para que o chamador decida o retry.
func (c *AdsClient) Search(ctx context.Context, accessToken, customerID, query string) ([]adsdomain.GoogleAdsRow, error) {
	url := fmt.Sprintf("%s/customers/%s/googleAds:search", c.cfg.APIURL, domain.NormalizeCustomerID(customerID))

	rows := make([]adsdomain.GoogleAdsRow, 0)
	pageToken := ""

	for {
		payload, err := json.Marshal(adsdomain.SearchRequest{Query: query, PageToken: pageToken})
		if err != nil {
			return nil, fmt.Errorf("erro ao serializar consulta: %w", err)
		}

		body, err := c.do(ctx, http.MethodPost, url, accessToken, payload)
		if err != nil {
			return nil, err
		}

		var response adsdomain.SearchResponse
		if err := json.Unmarshal(body, &response); err != nil {
			logrus.WithError(err).Error("Erro ao decodificar JSON da busca")
			return nil, domain.NewUpstreamError(domain.ErrUpstreamAPI, http.StatusOK, "resposta inválida: "+err.Error())
		}

		rows = append(rows, response.Results...)

		if response.NextPageToken == "" {
			return rows, nil
		}
		pageToken = response.NextPageToken
	}
}

func (c *AdsClient) ListAccessibleCustomers(ctx context.Context, accessToken string) ([]string, error) {
	url := fmt.Sprintf("%s/customers:listAccessibleCustomers", c.cfg.APIURL)

	body, err := c.do(ctx, http.MethodGet, url, accessToken, nil)
	if err != nil {
		return nil, err
	}

	var response adsdomain.ListAccessibleCustomersResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, domain.NewUpstreamError(domain.ErrUpstreamAPI, http.StatusOK, "resposta inválida: "+err.Error())
	}

	ids := make([]string, 0, len(response.ResourceNames))
	for _, name := range response.ResourceNames {
		ids = append(ids, strings.TrimPrefix(name, customerPrefix))
	}

	return ids, nil
}

func (c *AdsClient) GetCustomerDetails(ctx context.Context, accessToken, customerID string) (*domain.AccountDetails, error) {
	rows, err := c.Search(ctx, accessToken, customerID,
		"SELECT customer.id, customer.descriptive_name, customer.currency_code, customer.time_zone, "+
			"customer.manager, customer.test_account FROM customer LIMIT 1")
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 || rows[0].Customer == nil {
		return nil, domain.NewUpstreamError(domain.ErrUpstreamAPI, http.StatusOK, "cliente sem dados")
	}

	customer := rows[0].Customer
	details := &domain.AccountDetails{
		CustomerID: customerID,
		Name:       customer.DescriptiveName,
		IsManager:  customer.Manager,
		IsTest:     customer.TestAccount,
	}

	if customer.CurrencyCode != "" {
		details.CurrencyCode = &customer.CurrencyCode
	}
	if customer.TimeZone != "" {
		details.TimeZone = &customer.TimeZone
	}

	return details, nil
}

func (c *AdsClient) do(ctx context.Context, method, url, accessToken string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição")
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("developer-token", c.cfg.DeveloperToken)
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.LoginCustomerID != "" {
		req.Header.Set("login-customer-id", domain.NormalizeCustomerID(c.cfg.LoginCustomerID))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if utils.IsTimeout(err) {
			return nil, fmt.Errorf("%w: %w", domain.ErrTimeout, err)
		}
		logrus.WithError(err).Error("Erro ao fazer a requisição")
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstreamAPI, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if utils.IsTimeout(err) {
			return nil, fmt.Errorf("%w: %w", domain.ErrTimeout, err)
		}
		return nil, fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, domain.NewUpstreamError(domain.ErrUpstreamAPI, resp.StatusCode, string(body))
	}

	return body, nil
}
