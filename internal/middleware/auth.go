package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/forgo/gatekeeper/internal/model"
	"github.com/forgo/gatekeeper/pkg/jwt"
)

// TokenValidator validates bearer tokens for a guard
type TokenValidator interface {
	Validate(token, guard string) (*jwt.Claims, error)
}

// Auth returns a middleware that accepts only tokens issued for guard
func Auth(validator TokenValidator, guard string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				model.NewUnauthorizedError("missing or malformed authorization header").WriteJSON(w)
				return
			}

			claims, err := validator.Validate(token, guard)
			if err != nil {
				tokenProblem(err).WriteJSON(w)
				return
			}

			setPrincipal(r.Context(), claims.UserID)
			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects principals whose token does not carry role
func RequireRole(role string) Middleware {
	return requireClaim(func(c *jwt.Claims) bool {
		return slices.Contains(c.Roles, role)
	}, func() *model.ProblemDetails {
		return model.NewForbiddenError(fmt.Sprintf("role %q required", role)).WithCode(model.ErrCodeMissingRole)
	})
}

// RequirePermission rejects principals whose token does not carry permission
func RequirePermission(permission string) Middleware {
	return requireClaim(func(c *jwt.Claims) bool {
		return slices.Contains(c.Permissions, permission)
	}, func() *model.ProblemDetails {
		return model.NewForbiddenError(fmt.Sprintf("permission %q required", permission)).WithCode(model.ErrCodeMissingPermission)
	})
}

func requireClaim(allowed func(*jwt.Claims) bool, denied func() *model.ProblemDetails) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetClaims(r.Context())
			if claims == nil {
				model.NewUnauthorizedError("authentication required").WriteJSON(w)
				return
			}
			if !allowed(claims) {
				denied().WriteJSON(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetUserID extracts the user ID from context
func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}

// GetClaims extracts the JWT claims from context
func GetClaims(ctx context.Context) *jwt.Claims {
	if claims, ok := ctx.Value(ClaimsKey).(*jwt.Claims); ok {
		return claims
	}
	return nil
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return token, true
}

func tokenProblem(err error) *model.ProblemDetails {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return model.NewUnauthorizedError("token expired").WithCode(model.ErrCodeTokenExpired)
	case errors.Is(err, jwt.ErrWrongGuard):
		return model.NewUnauthorizedError("token issued for another guard").WithCode(model.ErrCodeWrongGuard)
	case errors.Is(err, jwt.ErrInvalidSignature):
		return model.NewUnauthorizedError("invalid token signature").WithCode(model.ErrCodeTokenInvalid)
	default:
		return model.NewUnauthorizedError("invalid token").WithCode(model.ErrCodeTokenInvalid)
	}
}
