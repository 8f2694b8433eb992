package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// The API has three fixed body shapes: the entity (or array) as-is, a
// field→messages map for validation failures, and {"message": ...} for
// everything else. Handlers emit entities and validation maps directly;
// these helpers cover the message shape.

func Message(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"message": message})
}

func BadRequest(c *gin.Context, message string) {
	Message(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	Message(c, http.StatusNotFound, message)
}

func Conflict(c *gin.Context, message string) {
	Message(c, http.StatusConflict, message)
}

func InternalServerError(c *gin.Context, message string) {
	Message(c, http.StatusInternalServerError, message)
}
