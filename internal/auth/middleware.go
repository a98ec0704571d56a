package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/smartcity/internal/domain"
	apperrors "github.com/spec-kit/smartcity/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal is the pre-validated identity claim set attached to a request.
// Service marks trusted service-to-service calls made with the internal token.
type Principal struct {
	UserID  string
	Role    domain.UserRole
	Service bool
}

// Middleware validates bearer tokens and attaches principals. The blacklist is
// optional; services without a revocation store pass nil.
type Middleware struct {
	tokens        *TokenManager
	blacklist     *Blacklist
	internalToken string
}

// NewMiddleware constructs the middleware.
func NewMiddleware(tokens *TokenManager, blacklist *Blacklist, internalToken string) *Middleware {
	return &Middleware{tokens: tokens, blacklist: blacklist, internalToken: internalToken}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}
	token := parts[1]

	if m.internalToken != "" && token == m.internalToken {
		c.Locals(principalKey, &Principal{Service: true})
		return c.Next()
	}

	claims, err := m.tokens.ParseToken(token)
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}
	if m.blacklist.IsRevoked(c.UserContext(), token) {
		return apperrors.NewUnauthorized("token revoked")
	}

	c.Locals(principalKey, &Principal{UserID: claims.UserID, Role: claims.Role})
	c.Locals(tokenKey, token)
	return c.Next()
}

const tokenKey = "auth_token"

// PrincipalFromContext retrieves the authenticated identity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// TokenFromContext returns the raw bearer token of the current request.
func TokenFromContext(c *fiber.Ctx) (string, bool) {
	val := c.Locals(tokenKey)
	if val == nil {
		return "", false
	}
	token, ok := val.(string)
	return token, ok
}
