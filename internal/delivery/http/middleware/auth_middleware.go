package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"clinic-whatsapp-scheduler/pkg/jwt"
	"clinic-whatsapp-scheduler/pkg/response"

	"github.com/redis/go-redis/v9"
)

type contextKey string

const (
	TokenIDKey contextKey = "token_id"
)

// AuthMiddleware guards the administrative surface. It accepts either the
// static admin bearer token or an access JWT issued by the login flow that
// has not been revoked.
type AuthMiddleware struct {
	adminToken  string
	jwtService  *jwt.JWTService
	redisClient *redis.Client
}

func NewAuthMiddleware(adminToken string, jwtService *jwt.JWTService, redisClient *redis.Client) *AuthMiddleware {
	return &AuthMiddleware{
		adminToken:  adminToken,
		jwtService:  jwtService,
		redisClient: redisClient,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		tokenString := parts[1]

		// Static admin credential.
		if m.adminToken != "" &&
			subtle.ConstantTimeCompare([]byte(tokenString), []byte(m.adminToken)) == 1 {
			next.ServeHTTP(w, r)
			return
		}

		// Otherwise expect an access JWT from the login flow.
		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		if claims.TokenType != jwt.AccessToken {
			response.Unauthorized(w, "Invalid token type")
			return
		}

		// Check the token has not been revoked.
		exists, err := m.redisClient.Exists(r.Context(), "access_token:"+claims.TokenID).Result()
		if err != nil {
			response.InternalServerError(w, "Failed to validate token")
			return
		}
		if exists == 0 {
			response.Unauthorized(w, "Token has been revoked")
			return
		}

		ctx := context.WithValue(r.Context(), TokenIDKey, claims.TokenID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetTokenIDFromContext extracts the access token ID from context.
// Absent when the request authenticated with the static admin token.
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok
}
