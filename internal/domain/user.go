package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// UserProfile pertence ao provedor de identidade e é somente leitura aqui
type UserProfile struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	FullName *string `json:"full_name"`
}

// Claims do JWT emitido pelo provedor de identidade; Subject é o id do usuário
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}
