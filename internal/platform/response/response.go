package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cicd-demo/board-service/internal/platform/apperror"
)

// Error maps err to a status code. Only application errors expose their message.
func Error(c *gin.Context, err error) {
	_ = c.Error(err)

	switch apperror.KindOf(err) {
	case apperror.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperror.KindValidation:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperror.KindConflict:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
