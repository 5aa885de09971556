package apiErrors

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/google-ads-insights-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Códigos de erro da API
const (
	// Erros de autenticação (1000-1999)
	ErrInvalidToken          = "AUTH_006" // Token inválido
	ErrExpiredToken          = "AUTH_007" // Token expirado
	ErrInsufficientPrivilege = "AUTH_008" // Privilégios insuficientes
	ErrInvalidCronSecret     = "AUTH_011" // Segredo do cron inválido

	// Erros de validação (2000-2999)
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido
	ErrNotFound            = "VAL_004" // Recurso não encontrado

	// Erros da integração Google Ads (3000-3999)
	ErrReconnectionRequired = "GADS_001" // Conta precisa ser reconectada
	ErrAccountAccessDenied  = "GADS_002" // Conta não pertence ao usuário
	ErrTokenExchange        = "GADS_003" // Falha na troca do código OAuth
	ErrMissingRefreshToken  = "GADS_004" // Provedor não devolveu refresh token
	ErrTokenRefresh         = "GADS_005" // Falha ao renovar o access token
	ErrGoogleAdsAPI         = "GADS_006" // Erro retornado pela API do Google Ads

	// Erros do servidor (5000-5999)
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrExternalService   = "SRV_003" // Erro em serviço externo
	ErrCommunication     = "SRV_004" // Erro de comunicação
	ErrConfiguration     = "SRV_005" // Configuração obrigatória ausente
	ErrDecryption        = "SRV_006" // Falha ao decifrar token armazenado
	ErrTimeout           = "SRV_007" // Tempo limite excedido
	ErrJobRunning        = "SRV_008" // Execução já em andamento
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrExpiredToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrInvalidCronSecret:     http.StatusUnauthorized,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrNotFound:              http.StatusNotFound,
	ErrReconnectionRequired:  http.StatusConflict,
	ErrAccountAccessDenied:   http.StatusForbidden,
	ErrTokenExchange:         http.StatusBadGateway,
	ErrMissingRefreshToken:   http.StatusBadGateway,
	ErrTokenRefresh:          http.StatusBadGateway,
	ErrGoogleAdsAPI:          http.StatusBadGateway,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrDatabaseOperation:     http.StatusInternalServerError,
	ErrExternalService:       http.StatusBadGateway,
	ErrCommunication:         http.StatusServiceUnavailable,
	ErrConfiguration:         http.StatusInternalServerError,
	ErrDecryption:            http.StatusInternalServerError,
	ErrTimeout:               http.StatusGatewayTimeout,
	ErrJobRunning:            http.StatusConflict,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// StatusFor devolve o status HTTP de um código, 500 para códigos desconhecidos
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	WriteErrorWithStatus(w, StatusFor(code), code, message, details)
}

// WriteErrorWithStatus é usado quando o status não deriva do código, como no 405 do router
func WriteErrorWithStatus(w http.ResponseWriter, status int, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}

// CodeFromError traduz os tipos de erro do domínio para códigos da API.
// A ordem importa: um erro de reconexão também embrulha o erro de refresh.
func CodeFromError(err error) string {
	switch {
	case err == nil:
		return ErrInternalServer
	case errors.Is(err, domain.ErrReconnectionRequired):
		return ErrReconnectionRequired
	case errors.Is(err, domain.ErrTimeout):
		return ErrTimeout
	case errors.Is(err, domain.ErrValidation):
		return ErrInvalidRequest
	case errors.Is(err, domain.ErrAuthentication):
		return ErrInvalidToken
	case errors.Is(err, domain.ErrAuthorization):
		return ErrAccountAccessDenied
	case errors.Is(err, domain.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, domain.ErrMissingRefreshToken):
		return ErrMissingRefreshToken
	case errors.Is(err, domain.ErrTokenExchange):
		return ErrTokenExchange
	case errors.Is(err, domain.ErrRefresh):
		return ErrTokenRefresh
	case errors.Is(err, domain.ErrUpstreamAPI):
		return ErrGoogleAdsAPI
	case errors.Is(err, domain.ErrDecryption):
		return ErrDecryption
	case errors.Is(err, domain.ErrConfiguration):
		return ErrConfiguration
	}
	return ErrInternalServer
}

// FromError cria um erro de API a partir de um erro Go
// Útil para quando você quer envolver um erro existente em um erro de API
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	if code == "" {
		code = CodeFromError(err)
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
