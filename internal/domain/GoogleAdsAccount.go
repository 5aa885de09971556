package domain

import (
	"strings"
	"time"
)

type AccountType string

const (
	AccountTypeProduction AccountType = "PRODUCTION"
	AccountTypeTest       AccountType = "TEST"
)

type ConnectionStatus string

const (
	ConnectionStatusConnected         ConnectionStatus = "CONNECTED"
	ConnectionStatusError             ConnectionStatus = "ERROR"
	ConnectionStatusNeedsReconnection ConnectionStatus = "NEEDS_RECONNECTION"
)

// PlaceholderCustomerID marca uma concessão OAuth válida sem nenhuma conta acessível
const PlaceholderCustomerID = "oauth_connected_no_accounts"

type GoogleAdsAccount struct {
	ID                string           `json:"id"`
	UserID            string           `json:"user_id"`
	CustomerID        string           `json:"customer_id"`
	AccountName       string           `json:"account_name"`
	CurrencyCode      *string          `json:"currency_code"`
	TimeZone          *string          `json:"time_zone"`
	IsManager         bool             `json:"is_manager"`
	AccountType       AccountType      `json:"account_type"`
	RefreshToken      string           `json:"-"`
	IsActive          bool             `json:"is_active"`
	ConnectionStatus  ConnectionStatus `json:"connection_status"`
	NeedsReconnection bool             `json:"needs_reconnection"`
	LastErrorMessage  *string          `json:"last_error_message"`
	LastErrorAt       *time.Time       `json:"last_error_at"`
	TokenExpiresAt    *time.Time       `json:"token_expires_at"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// APICustomerID retorna o customer id apenas com dígitos, como exigido pela API
func (a *GoogleAdsAccount) APICustomerID() string {
	return NormalizeCustomerID(a.CustomerID)
}

func NormalizeCustomerID(customerID string) string {
	return strings.ReplaceAll(strings.TrimSpace(customerID), "-", "")
}

// AccountDetails são os dados descritivos de um cliente retornados pela API
type AccountDetails struct {
	CustomerID   string
	Name         string
	CurrencyCode *string
	TimeZone     *string
	IsManager    bool
	IsTest       bool
}

type ConnectRequest struct {
	ReturnURL string `json:"returnUrl,omitempty" validate:"omitempty,url"`
}

type ConnectResponse struct {
	AuthURL     string `json:"authUrl"`
	RedirectURI string `json:"redirectUri"`
}

// CallbackParams são os parâmetros de query recebidos do Google no retorno do consentimento
type CallbackParams struct {
	Code          string
	State         string
	ProviderError string
}
