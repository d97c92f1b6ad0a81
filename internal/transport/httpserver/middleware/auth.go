package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"church-checkin-go/internal/auth"
	userdomain "church-checkin-go/internal/domain/user"
	"church-checkin-go/pkg/logger"
)

// JWTAuth authenticates requests with a bearer token and loads the owning
// user row on every request, so disabled accounts lose access without
// waiting for token expiry.
type JWTAuth struct {
	tokens *auth.Manager
	users  *userdomain.Service
	log    logger.Logger
}

type contextKey int

const (
	userIDKey contextKey = iota
	userKey
)

// User is the authenticated caller as seen by handlers.
type User struct {
	ID         string
	Email      string
	Name       string
	Role       string
	CanCheckIn bool
	PersonID   *string
}

// CanRecordCheckIns mirrors the domain capability rule for the context copy.
func (u User) CanRecordCheckIns() bool {
	return u.Role == userdomain.RoleAdmin || u.CanCheckIn
}

func NewJWTAuth(tokens *auth.Manager, users *userdomain.Service, log logger.Logger) *JWTAuth {
	return &JWTAuth{tokens: tokens, users: users, log: log}
}

func (a *JWTAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			unauthorized(w)
			return
		}

		userID, err := a.tokens.Verify(token)
		if err != nil {
			unauthorized(w)
			return
		}

		row, err := a.users.GetByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, userdomain.ErrUserNotFound) {
				unauthorized(w)
				return
			}
			a.log.InternalError("auth: load user failed", err, "user_id", userID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
			return
		}

		ctx := WithUser(r.Context(), User{
			ID:         row.ID,
			Email:      row.Email,
			Name:       row.Name,
			Role:       row.Role,
			CanCheckIn: row.CanCheckIn,
			PersonID:   row.PersonID,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
}

func WithUser(ctx context.Context, user User) context.Context {
	ctx = context.WithValue(ctx, userKey, user)
	return context.WithValue(ctx, userIDKey, user.ID)
}

func UserFromContext(ctx context.Context) (User, bool) {
	value := ctx.Value(userKey)
	user, ok := value.(User)
	if !ok || user.ID == "" {
		return User{}, false
	}
	return user, true
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	value := ctx.Value(userIDKey)
	userID, ok := value.(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
