package utils

import (
	"github.com/gin-gonic/gin"
)

const ErrorTemplate = "error.html"

// ErrorResponse aborts the request with an error page for browsers and a
// JSON body for everything else.
func ErrorResponse(c *gin.Context, status int, message string) {
	c.Negotiate(status, gin.Negotiate{
		Offered:  []string{gin.MIMEJSON, gin.MIMEHTML, gin.MIMEPlain},
		HTMLName: ErrorTemplate,
		HTMLData: gin.H{"Status": status, "Message": message},
		JSONData: gin.H{"success": false, "error": message},
		Data:     message,
	})
	c.Abort()
}
