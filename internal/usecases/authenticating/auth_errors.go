package authenticating

import (
	"errors"
	"fmt"

	"github.com/vfg2006/google-ads-insights-api/internal/domain"
)

// Tipos de erros de autenticação. Todos embrulham domain.ErrAuthentication.
var (
	ErrMissingToken = fmt.Errorf("token ausente: %w", domain.ErrAuthentication)
	ErrInvalidToken = fmt.Errorf("token inválido: %w", domain.ErrAuthentication)
	ErrExpiredToken = fmt.Errorf("token expirado: %w", domain.ErrAuthentication)
	ErrMissingUser  = fmt.Errorf("token sem usuário: %w", domain.ErrAuthentication)
)

// AuthError é um erro com contexto adicional para autenticação
type AuthError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *AuthError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *AuthError) Unwrap() error {
	return e.Err
}

// IsAuthenticationError verifica se o erro impede identificar o usuário
func IsAuthenticationError(err error) bool {
	return errors.Is(err, domain.ErrAuthentication)
}

// NewAuthError cria um novo erro de autenticação
func NewAuthError(baseErr error, code string, details string) *AuthError {
	return &AuthError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}
