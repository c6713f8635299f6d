package middleware

import (
	"errors"
	"net/http"

	"github.com/samfisher58/LoanLink-server-side/internal/pkg/logger"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// StatusForError maps the error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is an internal error and its text is not leaked.
func StatusForError(err error) (int, string) {
	var custom *models.CustomError
	if errors.As(err, &custom) {
		return custom.Status, custom.Message
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return http.StatusNotFound, "not found"
	}
	return http.StatusInternalServerError, "internal server error"
}

// ErrorBoundary converts errors recorded on the gin context into a JSON
// response, and backs gin's recovery so a panic still yields a clean 500.
func ErrorBoundary() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status, message := StatusForError(err)
		if status == http.StatusInternalServerError {
			logger.Error(c.Request.Context(), "Unhandled error: %v", err)
		}
		c.JSON(status, gin.H{"message": message})
	}
}

// RecoveryHandler is the gin.CustomRecovery callback.
func RecoveryHandler(c *gin.Context, recovered interface{}) {
	logger.Error(c.Request.Context(), "Panic recovered: %v", recovered)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
}
