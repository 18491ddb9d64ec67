package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"igreja_backend/internal/domain"
)

const contextUserKey = "authUser"

// SessionCookieName is the httpOnly cookie browser clients authenticate with.
const SessionCookieName = "session"

// SessionTTL é a validade do cookie de sessão; tokens bearer expiram antes.
const (
	TokenTTL   = 24 * time.Hour
	SessionTTL = 7 * 24 * time.Hour
)

type authClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken signs an HS256 token carrying the identity and role.
func GenerateToken(secret []byte, userID int64, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := authClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func parseToken(secret []byte, token string) (domain.RequestContext, error) {
	var claims authClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return domain.RequestContext{}, domain.AuthError{Msg: "token inválido ou expirado", Err: err}
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return domain.RequestContext{}, domain.AuthError{Msg: "token inválido ou expirado", Err: err}
	}
	return domain.RequestContext{UserID: userID, Role: claims.Role}, nil
}

func abortEnvelope(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "error": message})
}

// RequireAuth resolves the identity from the bearer token or, for browser
// clients, the session cookie. It runs before any validation or data access.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			if cookie, err := c.Cookie(SessionCookieName); err == nil {
				token = cookie
			}
		}
		if token == "" {
			abortEnvelope(c, http.StatusUnauthorized, "não autenticado")
			return
		}

		identity, err := parseToken(secret, token)
		if err != nil {
			abortEnvelope(c, http.StatusUnauthorized, err.Error())
			return
		}

		c.Set(contextUserKey, identity)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// CurrentUser returns the identity attached by RequireAuth.
func CurrentUser(c *gin.Context) (domain.RequestContext, bool) {
	v, ok := c.Get(contextUserKey)
	if !ok {
		return domain.RequestContext{}, false
	}
	identity, ok := v.(domain.RequestContext)
	return identity, ok
}

// RequireRole gates the route on a minimum role. It assumes RequireAuth ran
// earlier in the chain.
func RequireRole(minimum string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentUser(c)
		if !ok {
			abortEnvelope(c, http.StatusUnauthorized, "não autenticado")
			return
		}
		if !domain.RoleAtLeast(identity.Role, minimum) {
			abortEnvelope(c, http.StatusForbidden, "acesso negado")
			return
		}
		c.Next()
	}
}
