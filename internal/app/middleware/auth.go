package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/samfisher58/LoanLink-server-side/internal/pkg/consts"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/downstreams"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/logger"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/store"

	"github.com/gin-gonic/gin"
)

// PrincipalEmailKey is where VerifyToken leaves the authenticated email for
// downstream guards and handlers.
const PrincipalEmailKey = "principalEmail"

// VerifyToken resolves the Authorization bearer credential through the
// external identity verifier. Missing, malformed or rejected tokens end the
// request with 401.
func VerifyToken(verifier downstreams.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": consts.ErrorUnauthenticated.Message})
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		email, err := verifier.VerifyToken(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, consts.ErrorUnauthenticated) {
				logger.Error(c.Request.Context(), "Identity verification failed: %v", err)
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": consts.ErrorUnauthenticated.Message})
			return
		}

		c.Set(PrincipalEmailKey, email)
		c.Next()
	}
}

// OwnerOrSelf only lets a request through when the query parameter names the
// authenticated principal's own email.
func OwnerOrSelf(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := c.GetString(PrincipalEmailKey)
		requested := c.Query(param)
		if principal == "" || requested != principal {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": consts.ErrorForbidden.Message})
			return
		}
		c.Next()
	}
}

// RequireRole checks the principal's User record against the required role.
// No record or a different role is a 403.
func RequireRole(users store.UsersRepo, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := c.GetString(PrincipalEmailKey)
		if principal == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": consts.ErrorForbidden.Message})
			return
		}

		user, err := users.GetByEmail(c.Request.Context(), principal)
		if err != nil {
			if !errors.Is(err, consts.ErrorNotFound) {
				logger.Error(c.Request.Context(), "Role lookup failed for %v: %v", principal, err)
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": consts.ErrorForbidden.Message})
			return
		}
		if user.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": consts.ErrorForbidden.Message})
			return
		}
		c.Next()
	}
}
