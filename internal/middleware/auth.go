package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/utils"
)

// ctxKey is unexported to prevent collisions.
type ctxKey string

// ContextKeyUserID holds the authenticated caller's subject claim.
const ContextKeyUserID ctxKey = "userID"

const RoleAdmin = "admin"

// AdminClaims are the claims the external authenticator issues for
// back-office callers. This service only verifies them; it never mints
// tokens.
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// RequireAdmin validates the bearer token and rejects callers without
// the admin role. The verified subject id is put on the request context
// under ContextKeyUserID.
func RequireAdmin(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized,
					"Authorization header required", nil)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized,
					"Invalid authorization header format", nil)
				return
			}

			claims := &AdminClaims{}
			token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("unexpected signing method")
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				code := utils.ErrCodeUnauthorized
				if errors.Is(err, jwt.ErrTokenExpired) {
					code = utils.ErrCodeTokenExpired
				}
				utils.RespondErrorWithCode(w, http.StatusUnauthorized, code,
					"Invalid or expired token", nil, err)
				return
			}
			if claims.Role != RoleAdmin {
				utils.RespondErrorWithCode(w, http.StatusForbidden, utils.ErrCodeUnauthorized,
					"Admin role required", nil)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUserID, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
