package middleware

import (
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/logger"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestDetailsKey is where the middleware leaves the request details on
// the gin context.
const RequestDetailsKey = "requestDetails"

// AttachRequestDetails tags every request context with a generated request
// id so log lines across the handler chain correlate.
func AttachRequestDetails() gin.HandlerFunc {
	return func(c *gin.Context) {
		details := models.RequestDetails{
			RequestID:  uuid.New().String(),
			IP:         c.ClientIP(),
			HTTPMethod: c.Request.Method,
			Path:       c.Request.URL.Path,
		}

		ctx := logger.WithRequestID(c.Request.Context(), details.RequestID)
		c.Request = c.Request.WithContext(ctx)
		c.Set(RequestDetailsKey, details)
		c.Writer.Header().Set("X-Request-Id", details.RequestID)

		c.Next()

		logger.Info(ctx, "%v %v from %v -> %v", details.HTTPMethod, details.Path, details.IP, c.Writer.Status())
	}
}
