package handler

import (
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/google-ads-insights-api/internal/domain"
	"github.com/vfg2006/google-ads-insights-api/internal/usecases/authenticating"
	"github.com/vfg2006/google-ads-insights-api/internal/usecases/insighting"
	"github.com/vfg2006/google-ads-insights-api/pkg/apiErrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	// Erros de validação usam o nome do campo no JSON
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// decodeRequest lê o corpo JSON e valida as tags do payload
func decodeRequest(r *http.Request, dst any) error {
	// Corpo vazio segue para a validação dos campos obrigatórios
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return domain.NewValidationError("", "corpo da requisição inválido")
	}

	if err := validate.Struct(dst); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			first := validationErrs[0]
			return domain.NewValidationError(first.Field(), validationMessage(first))
		}
		return domain.NewValidationError("", err.Error())
	}

	return nil
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "obrigatório"
	case "datetime":
		return "use o formato YYYY-MM-DD"
	case "url":
		return "URL inválida"
	}
	return "inválido"
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.WithError(err).Error("Erro ao codificar resposta")
	}
}

// writeServiceError converte o erro do caso de uso em {code, message} uma única vez
func writeServiceError(w http.ResponseWriter, err error) {
	var insightErr *insighting.InsightError
	if errors.As(err, &insightErr) && insightErr.Code != "" {
		apiErrors.WriteError(w, insightErr.Code, insightErr.Error(), nil)
		return
	}

	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) && authErr.Code != "" {
		apiErrors.WriteError(w, authErr.Code, authErr.Error(), nil)
		return
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		details := map[string]string{}
		if validationErr.Field != "" {
			details["field"] = validationErr.Field
		}
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, validationErr.Error(), details)
		return
	}

	apiErr := apiErrors.FromError(err, "")
	if apiErrors.StatusFor(apiErr.Code) >= http.StatusInternalServerError {
		logrus.WithError(err).Error("Erro ao processar requisição")
	}

	var upstreamErr *domain.UpstreamError
	if errors.As(err, &upstreamErr) {
		apiErrors.WriteError(w, apiErr.Code, apiErr.Message, map[string]int{"status": upstreamErr.Status})
		return
	}

	apiErrors.WriteError(w, apiErr.Code, apiErr.Message, nil)
}
