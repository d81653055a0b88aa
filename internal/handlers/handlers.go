package handlers

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/productivity-api/internal/errors"
)

// bindOptionalJSON binds the request body into obj when one is present.
// An empty body is fine; a malformed one writes a 400 and returns false.
func bindOptionalJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		apierrors.BadRequest(c, "Invalid request body")
		return false
	}
	return true
}
