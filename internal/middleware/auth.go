package middleware

import (
	"errors"
	"net/http"
	"strings"

	"catalog-admin/internal/logger"
	"catalog-admin/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

var errMissingToken = errors.New("missing bearer token")

// Auth verifies HS256 bearer tokens issued by the authentication service and
// stores the user on the request context. Only admins reach next.
func Auth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.FromCtx(r.Context())

			claims, err := parseToken(r, secret)
			if err != nil {
				log.Warn("authentication failed", zap.Error(err))
				utils.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			uid, _ := claims["user_id"].(float64)
			role, _ := claims["role"].(string)
			ctx := utils.SetUserContext(r.Context(), uint(uid), role)

			if !utils.IsAdmin(ctx) {
				log.Warn("non-admin access denied", zap.Uint("user_id", uint(uid)))
				utils.WriteJSONError(w, "forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func parseToken(r *http.Request, secret []byte) (jwt.MapClaims, error) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, errMissingToken
	}
	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	return claims, nil
}
