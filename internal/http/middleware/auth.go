package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"ridereport/internal/domain"
)

const credentialKey = "provider_credential"

// MintSessionToken wraps an externally captured provider credential into a
// signed short-lived bearer token. The server keeps no credential state; the
// claims travel with each request.
func MintSessionToken(secret []byte, cred domain.Credential, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"cookie": cred.SessionCookie,
		"csrf":   cred.CSRFToken,
		"exp":    time.Now().Add(ttl).Unix(),
	})
	return token.SignedString(secret)
}

// RequireCredential verifies the bearer token and exposes the provider
// credential to the handlers.
func RequireCredential(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if raw == "" || raw == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			return
		}
		cred := domain.Credential{
			SessionCookie: stringClaim(claims, "cookie"),
			CSRFToken:     stringClaim(claims, "csrf"),
		}
		if !cred.Valid() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token carries no credential"})
			return
		}

		c.Set(credentialKey, cred)
		c.Next()
	}
}

// GetCredential extracts the provider credential placed by RequireCredential.
func GetCredential(c *gin.Context) domain.Credential {
	if v, ok := c.Get(credentialKey); ok {
		if cred, ok := v.(domain.Credential); ok {
			return cred
		}
	}
	return domain.Credential{}
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
