package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Tipos de erro do domínio. Erros mais ricos embrulham um destes e podem ser testados com errors.Is.
var (
	ErrConfiguration        = errors.New("missing required configuration")
	ErrAuthentication       = errors.New("authentication required")
	ErrAuthorization        = errors.New("account does not belong to user")
	ErrReconnectionRequired = errors.New("google ads account needs reconnection")
	ErrTokenExchange        = errors.New("failed to exchange authorization code")
	ErrMissingRefreshToken  = errors.New("no refresh token received")
	ErrRefresh              = errors.New("failed to refresh access token")
	ErrUpstreamAPI          = errors.New("google ads api request failed")
	ErrDecryption           = errors.New("failed to decrypt stored token")
	ErrValidation           = errors.New("invalid request")
	ErrTimeout              = errors.New("upstream request timed out")
	ErrNotFound             = errors.New("resource not found")
)

const maxErrorBodyLength = 500

// UpstreamError carrega o status e o corpo de uma resposta mal sucedida de um provedor externo
type UpstreamError struct {
	Kind   error
	Status int
	Body   string
}

func NewUpstreamError(kind error, status int, body string) *UpstreamError {
	return &UpstreamError{Kind: kind, Status: status, Body: body}
}

func (e *UpstreamError) Error() string {
	body := e.Body
	if len(body) > maxErrorBodyLength {
		body = body[:maxErrorBodyLength] + "..."
	}
	return fmt.Sprintf("%s: status %d: %s", e.Kind.Error(), e.Status, body)
}

func (e *UpstreamError) Unwrap() error {
	return e.Kind
}

// IsInvalidGrant indica que o provedor revogou ou expirou a concessão
func (e *UpstreamError) IsInvalidGrant() bool {
	return strings.Contains(e.Body, "invalid_grant")
}

// ValidationError descreve um campo obrigatório ausente ou mal formatado
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrValidation.Error(), e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", ErrValidation.Error(), e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
