package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// publicStatusText is shown in place of private error messages.
var publicStatusText = map[int]string{
	http.StatusBadRequest:          "bad request",
	http.StatusUnauthorized:        "unauthorized",
	http.StatusForbidden:           "forbidden",
	http.StatusNotFound:            "not found",
	http.StatusConflict:            "conflict",
	http.StatusUnprocessableEntity: "unprocessable entity",
	http.StatusTooManyRequests:     "too many requests",
	http.StatusBadGateway:          "payment provider unavailable",
}

func statusErrorText(status int) string {
	if text, ok := publicStatusText[status]; ok {
		return text
	}
	return "internal server error"
}

// Errors renders the first error attached to the context as `{"error": msg}`, or as plain text when
// the client accepts only text/plain. Only public errors show their message, private ones are
// replaced with the status text. Responses already written by the handler are left as is.
func Errors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		status := c.Writer.Status()
		first := c.Errors[0]
		msg := statusErrorText(status)
		if first.IsType(gin.ErrorTypePublic) {
			msg = first.Error()
		}

		if c.NegotiateFormat(binding.MIMEJSON, binding.MIMEPlain) == binding.MIMEPlain {
			c.String(status, msg)
		} else {
			c.JSON(status, gin.H{"error": msg})
		}
		c.Abort()
	}
}
