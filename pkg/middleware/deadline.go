package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/google-ads-insights-api/pkg/apiErrors"
)

const CronSecretHeader = "X-Cron-Secret"

// RequestDeadline aplica um único prazo a toda a requisição, incluindo as chamadas externas
func RequestDeadline(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if timeout <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CronSecret protege as rotas de disparo manual com o segredo compartilhado
func CronSecret(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				logrus.Warn("CRON_SECRET não configurado, rota de cron bloqueada")
				apiErrors.WriteError(w, apiErrors.ErrConfiguration, "Segredo do cron não configurado", nil)
				return
			}

			provided := r.Header.Get(CronSecretHeader)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidCronSecret, "Segredo do cron inválido", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
