package connecting

import (
	"encoding/base64"
	"errors"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var ErrInvalidState = errors.New("invalid oauth state")

// State é o conteúdo do parâmetro state; StructuredState ou LegacyState
type State interface {
	User() string
	Return() string
	isState()
}

// StructuredState é o formato atual: base64 de {"userId","returnUrl"}
type StructuredState struct {
	UserID    string `json:"userId"`
	ReturnURL string `json:"returnUrl,omitempty"`
}

func (s StructuredState) User() string   { return s.UserID }
func (s StructuredState) Return() string { return s.ReturnURL }
func (StructuredState) isState()         {}

// LegacyState é o formato antigo, em que o state carregava apenas o id do usuário
type LegacyState struct {
	UserID string
}

func (s LegacyState) User() string { return s.UserID }
func (LegacyState) Return() string { return "" }
func (LegacyState) isState()       {}

func EncodeState(userID, returnURL string) (string, error) {
	raw, err := json.Marshal(StructuredState{UserID: userID, ReturnURL: returnURL})
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// ParseState tenta o formato estruturado; qualquer outro valor não vazio é tratado como legado
func ParseState(raw string) (State, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrInvalidState
	}

	for _, encoding := range []*base64.Encoding{base64.StdEncoding, base64.URLEncoding, base64.RawURLEncoding} {
		decoded, err := encoding.DecodeString(raw)
		if err != nil {
			continue
		}

		var structured StructuredState
		if err := json.Unmarshal(decoded, &structured); err != nil || structured.UserID == "" {
			continue
		}
		return structured, nil
	}

	return LegacyState{UserID: raw}, nil
}
