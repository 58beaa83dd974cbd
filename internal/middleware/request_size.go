package middleware

import (
	"net/http"
	"recipe-manager/pkg/utils"

	"github.com/gin-gonic/gin"
)

const (
	DefaultMaxRequestSize = 16 << 20

	// room for the text fields and multipart framing around an image
	formOverhead = 1 << 20
)

// UploadRequestLimit is the body limit for forms that may carry an upload of
// at most maxUpload bytes.
func UploadRequestLimit(maxUpload int64) int64 {
	if maxUpload <= 0 {
		maxUpload = DefaultMaxRequestSize
	}
	return maxUpload + formOverhead
}

// RequestSizeLimitMiddleware limits the size of incoming requests to maxSize bytes.
func RequestSizeLimitMiddleware(maxSize int64) gin.HandlerFunc {
	if maxSize <= 0 {
		maxSize = UploadRequestLimit(DefaultMaxRequestSize)
	}

	return func(c *gin.Context) {
		if c.Request.ContentLength > maxSize {
			utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, "The uploaded file is too large.")
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}
