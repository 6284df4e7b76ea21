package auth

import "github.com/golang-jwt/jwt/v5"

type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

const (
	SubjectAdmin = "admin"
	RoleAdmin    = "admin"
)
