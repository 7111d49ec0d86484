package domain

import "github.com/golang-jwt/jwt/v5"

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Claims carrega a identidade emitida pelo serviço de autenticação.
// O claim "sub" é o ID opaco do usuário.
type Claims struct {
	Role  string `json:"role,omitempty"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() string {
	return c.Subject
}

func (c *Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}
