package insighting

import (
	"fmt"
)

// InsightError é um erro com contexto adicional para consultas de métricas
type InsightError struct {
	Err       error  // Erro base
	Code      string // Código de erro para API
	AccountID string // ID da conta envolvida (quando aplicável)
	Details   string // Detalhes adicionais
}

func (e *InsightError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *InsightError) Unwrap() error {
	return e.Err
}

func NewInsightError(err error, code string, accountID string, details string) *InsightError {
	return &InsightError{
		Err:       err,
		Code:      code,
		AccountID: accountID,
		Details:   details,
	}
}
