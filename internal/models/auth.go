package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims carries the authenticated operator identity. The username doubles
// as the default changed_by audit value.
type JWTClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// LoginRequest is the credential payload for the single-operator login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the issued access token.
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}
