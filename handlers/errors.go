package handlers

import (
	"log"

	"rentatool-backend/apperrors"

	"github.com/gin-gonic/gin"
)

// respondError maps a typed error to its HTTP status and JSON body. Internal
// errors are logged with their cause and surfaced without detail.
func respondError(c *gin.Context, err error) {
	appErr := apperrors.From(err)
	if appErr.Type == apperrors.TypeInternal {
		log.Printf("Internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, appErr)
	}

	body := gin.H{"error": appErr.Message}
	if appErr.Field != "" {
		body["field"] = appErr.Field
	}
	c.JSON(appErr.HTTPStatus(), body)
}
