package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"talentflow/internal/tenant"
	"talentflow/pkg/utils"
)

// Claims is the body of the bearer tokens accepted by the API.
// The subject carries the user id.
type Claims struct {
	Organization string `json:"org"`
	Role         string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator verifies HS256 bearer tokens
type Authenticator struct {
	secret []byte
	issuer string
	parser *jwt.Parser
}

func NewAuthenticator(secret, issuer string) *Authenticator {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	return &Authenticator{
		secret: []byte(secret),
		issuer: issuer,
		parser: jwt.NewParser(opts...),
	}
}

// Issue signs a token for the given scope. Used by tooling and tests.
func (a *Authenticator) Issue(scope tenant.Scope, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Organization: scope.OrganizationID,
		Role:         string(scope.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   scope.UserID,
			Issuer:    a.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Verify parses a raw token into the caller's scope
func (a *Authenticator) Verify(raw string) (tenant.Scope, error) {
	var claims Claims
	if _, err := a.parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	}); err != nil {
		return tenant.Scope{}, err
	}
	if claims.Organization == "" || claims.Subject == "" {
		return tenant.Scope{}, errors.New("token lacks organization or subject")
	}
	role := tenant.Role(strings.ToUpper(claims.Role))
	switch role {
	case tenant.RoleAdmin, tenant.RoleHR, tenant.RoleManager, tenant.RoleEmployee:
	default:
		return tenant.Scope{}, errors.New("token carries an unknown role")
	}
	return tenant.Scope{
		OrganizationID: claims.Organization,
		UserID:         claims.Subject,
		Role:           role,
	}, nil
}

// Authenticate rejects requests without a valid bearer token and stores
// the caller's scope in the request context
func (a *Authenticator) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				return utils.NewUnauthorizedError("Missing bearer token")
			}

			scope, err := a.Verify(strings.TrimSpace(raw))
			if err != nil {
				return utils.NewUnauthorizedError("Invalid or expired token").WithCause(err)
			}

			req := c.Request()
			c.SetRequest(req.WithContext(tenant.WithScope(req.Context(), scope)))
			return next(c)
		}
	}
}

// RequireRole lets only callers holding one of roles through
func RequireRole(roles ...tenant.Role) echo.MiddlewareFunc {
	allowed := make([]string, 0, len(roles))
	for _, r := range roles {
		allowed = append(allowed, string(r))
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			scope, ok := tenant.FromContext(c.Request().Context())
			if !ok {
				return utils.NewUnauthorizedError("Authentication required")
			}
			if !utils.Contains(allowed, string(scope.Role)) {
				return utils.NewForbiddenError("Insufficient role for this operation")
			}
			return next(c)
		}
	}
}
