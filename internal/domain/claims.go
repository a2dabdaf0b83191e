package domain

import "github.com/golang-jwt/jwt/v5"

// Claims são as credenciais do token JWT aceito pela API administrativa
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}
