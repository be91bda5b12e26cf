package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AnuragDayal94/role-based-task-manager/logging"
	"github.com/AnuragDayal94/role-based-task-manager/models"
	"github.com/AnuragDayal94/role-based-task-manager/services"
)

type contextKey string

const userContextKey contextKey = "user"

// AuthMiddleware resolves the bearer token into the caller's user record
// before any handler runs. All failure cases (missing header, bad signature,
// expired token, deleted subject) collapse into the same 401.
type AuthMiddleware struct {
	jwtService *services.JWTService
	users      services.UserRepository
}

func NewAuthMiddleware(jwtService *services.JWTService, users services.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		users:      users,
	}
}

func (m *AuthMiddleware) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			logging.Logger.Warnf("Authorization header missing for %s %s", r.Method, r.URL.Path)
			writeUnauthorized(w, "Authorization header missing")
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := m.jwtService.ValidateToken(tokenStr)
		if err != nil {
			logging.Logger.Warnf("Invalid token for %s %s: %v", r.Method, r.URL.Path, err)
			writeUnauthorized(w, "Invalid token")
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			writeUnauthorized(w, "Invalid token")
			return
		}

		// The token is stateless, the account behind it may be gone.
		caller, err := m.users.GetByID(r.Context(), userID)
		if err != nil {
			logging.Logger.Warnf("Token subject %s not found", claims.UserID)
			writeUnauthorized(w, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, caller)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CallerFromContext returns the authenticated user placed by Protect.
func CallerFromContext(ctx context.Context) (models.User, bool) {
	caller, ok := ctx.Value(userContextKey).(models.User)
	return caller, ok
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
