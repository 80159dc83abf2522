package middleware

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/aroolinks/agencydesk/internal/core/domain"
	"github.com/aroolinks/agencydesk/internal/core/ports"
)

// AuthCookieName is the HTTP-only cookie carrying the session token.
const AuthCookieName = "auth-token"

// actorKey is the echo context key the decoded actor is stored under.
const actorKey = "actor"

// Auth reads the session cookie, verifies the JWT, and injects the decoded
// actor into the request context. Requests without a valid token get 401.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(AuthCookieName)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired session")
			}

			c.Set(actorKey, actorFromClaims(claims))
			return next(c)
		}
	}
}

// ActorFrom extracts the actor injected by Auth. The second return is false
// when the middleware did not run for this route.
func ActorFrom(c echo.Context) (ports.Actor, bool) {
	actor, ok := c.Get(actorKey).(ports.Actor)
	return actor, ok
}

func actorFromClaims(claims jwt.MapClaims) ports.Actor {
	actor := ports.Actor{
		UserID:   stringClaim(claims, "userId"),
		Username: stringClaim(claims, "username"),
		Email:    stringClaim(claims, "email"),
		Role:     stringClaim(claims, "role"),
	}

	if perms, ok := claims["permissions"].(map[string]interface{}); ok {
		actor.Permissions = domain.Permissions{
			CanViewTasks:   boolClaim(perms, domain.PermViewTasks),
			CanEditTasks:   boolClaim(perms, domain.PermEditTasks),
			CanViewClients: boolClaim(perms, domain.PermViewClients),
			CanEditClients: boolClaim(perms, domain.PermEditClients),
			CanManageUsers: boolClaim(perms, domain.PermManageUsers),
		}
	}
	return actor
}

func stringClaim(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

func boolClaim(m map[string]interface{}, key string) bool {
	b, _ := m[key].(bool)
	return b
}
