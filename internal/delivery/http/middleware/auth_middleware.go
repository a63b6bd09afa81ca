package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/rocker1166/skilllink/internal/pkg/jwt"
)

const (
	CtxUserIDKey = "user_id"
	CtxEmailKey  = "email"
	CtxNameKey   = "name"
)

type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

// Middleware rejects requests without a valid access token.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		claims, err := m.validateAccess(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		setViewer(c, claims)
		return c.Next()
	}
}

// OptionalMiddleware attaches the viewer context when a valid token is
// present and lets anonymous requests through untouched. The provider page
// uses it to decide whether viewer-scoped reads run at all.
func (m *AuthMiddleware) OptionalMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if ok {
			if claims, err := m.validateAccess(token); err == nil {
				setViewer(c, claims)
			}
		}
		return c.Next()
	}
}

func (m *AuthMiddleware) validateAccess(token string) (jwt.Claims, error) {
	claims, err := m.jwt.ValidateToken(token)
	if err != nil {
		return jwt.Claims{}, err
	}
	if claims.TokenType != jwt.TokenTypeAccess || m.jwt.IsRefreshToken(claims) {
		return jwt.Claims{}, jwt.ErrTokenInvalid
	}
	return claims, nil
}

func setViewer(c fiber.Ctx, claims jwt.Claims) {
	c.Locals(CtxUserIDKey, claims.UserID)
	c.Locals(CtxEmailKey, claims.Email)
	c.Locals(CtxNameKey, claims.Name)
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
