package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/shaysadin/wedding-seating-api/internal/domain/event"
	"github.com/shaysadin/wedding-seating-api/internal/domain/user"
	"github.com/shaysadin/wedding-seating-api/internal/response"
)

// Context keys set by RequireAuth
const (
	ContextUserID   = "user_id"
	ContextUserRole = "user_role"
)

// Claims is the JWT payload issued at login
type Claims struct {
	UserID string `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs a JWT for an authenticated user
func IssueToken(u *user.User, secret string, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID: u.ID.String(),
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates a signed JWT and returns its claims
func ParseToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// RequireAuth guards a route group with bearer-token authentication
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.UnauthorizedError(c, "missing authorization header")
			c.Abort()
			return
		}

		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			response.UnauthorizedError(c, "authorization header must be a bearer token")
			c.Abort()
			return
		}

		claims, err := ParseToken(tokenString, secret)
		if err != nil {
			response.UnauthorizedError(c, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, claims.Role)
		c.Next()
	}
}

// EventLookup resolves events for ownership checks
type EventLookup interface {
	GetEventByID(id string) (*event.Event, error)
}

// RequireEventOwner restricts event-scoped routes to the event's owner or an
// admin; must run after RequireAuth on routes carrying an :event_id param.
func RequireEventOwner(events EventLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		evt, err := events.GetEventByID(c.Param("event_id"))
		if err != nil {
			response.NotFoundError(c, "event not found")
			c.Abort()
			return
		}

		if c.GetString(ContextUserRole) == user.RoleAdmin {
			c.Next()
			return
		}

		userID, err := uuid.Parse(c.GetString(ContextUserID))
		if err != nil || !evt.IsOwner(userID) {
			response.ForbiddenError(c, "you do not own this event")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin allows only users with the admin role; must run after RequireAuth
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextUserRole) != user.RoleAdmin {
			response.ForbiddenError(c, "admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}
