package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	EmployeeID uuid.UUID
	Username   string
	JTI        string
}

// AccessTokenClaims represents the typed JWT issued to admin clients.
type AccessTokenClaims struct {
	EmployeeID uuid.UUID `json:"employee_id"`
	Username   string    `json:"username"`
	jwt.RegisteredClaims
}
