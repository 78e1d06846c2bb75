package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"jsonshare/pkg/apperr"
	"jsonshare/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const UserIDKey contextKey = "userID"

// Auth validates the bearer token issued by the identity provider and puts
// the verified user id on the request context. Handlers behind it never see
// credentials, only the resolved id.
func Auth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")

			if tokenString == "" || tokenString == authHeader {
				apperr.WriteError(w, apperr.Unauthenticated("No token provided"))
				return
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				logger.Sugar.Debugf("Invalid token: %v", err)
				apperr.WriteError(w, apperr.Unauthenticated("Invalid or expired token"))
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				apperr.WriteError(w, apperr.Unauthenticated("Could not parse token claims"))
				return
			}
			userID, ok := claims["sub"].(string)
			if !ok || userID == "" {
				apperr.WriteError(w, apperr.Unauthenticated("User ID (sub) claim is missing or invalid"))
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
