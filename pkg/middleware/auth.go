package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/hexa-dashboard-api/internal/domain"
	"github.com/vfg2006/hexa-dashboard-api/pkg/apiErrors"
)

type contextKey string

const (
	ContextKeyUser contextKey = "user"
)

// Rotas que não exigem sessão
var publicPaths = map[string]struct{}{
	"/healthcheck": {},
	"/metrics":     {},
}

// Rotas em que o token pode vir na query string (navegadores não enviam headers no upgrade do websocket)
var queryTokenPaths = map[string]struct{}{
	"/v1/ws": {},
}

var errMissingSubject = errors.New("token sem subject")

// AuthMiddleware valida o JWT de sessão (HMAC) e coloca as claims no contexto.
// A emissão do token é responsabilidade do serviço de autenticação externo.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	key := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := publicPaths[r.URL.Path]; ok || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			tokenString, ok := tokenFromRequest(r)
			if !ok {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Token de autenticação é obrigatório", nil)
				return
			}

			claims, err := ParseToken(tokenString, key)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"path":  r.URL.Path,
					"error": err.Error(),
				}).Debug("Token rejeitado")

				if errors.Is(err, jwt.ErrTokenExpired) {
					apiErrors.WriteError(w, apiErrors.ErrExpiredToken, "Token expirado", nil)
					return
				}
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Token inválido", nil)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromRequest(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			return "", false
		}
		return tokenString, true
	}

	if _, ok := queryTokenPaths[r.URL.Path]; ok {
		if token := r.URL.Query().Get("token"); token != "" {
			return token, true
		}
	}

	return "", false
}

// ParseToken valida assinatura, expiração e presença do subject
func ParseToken(tokenString string, key []byte) (*domain.Claims, error) {
	claims := &domain.Claims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
		}
		return key, nil
	})
	if err != nil {
		return nil, err
	}

	if claims.Subject == "" {
		return nil, errMissingSubject
	}

	return claims, nil
}

// ClaimsFromContext devolve a sessão colocada pelo AuthMiddleware
func ClaimsFromContext(ctx context.Context) (*domain.Claims, bool) {
	claims, ok := ctx.Value(ContextKeyUser).(*domain.Claims)
	return claims, ok && claims != nil
}

// UserIDFromContext devolve o ID opaco do usuário da sessão
func UserIDFromContext(ctx context.Context) (string, bool) {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return "", false
	}
	return claims.UserID(), true
}

// WithClaims coloca as claims no contexto; usado por testes de handlers
func WithClaims(ctx context.Context, claims *domain.Claims) context.Context {
	return context.WithValue(ctx, ContextKeyUser, claims)
}
