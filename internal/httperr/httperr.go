package httperr

import (
	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Success bool   `json:"success"`
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func body(err error) (int, HTTPError) {
	e, ok := As(err)
	if !ok {
		return Status(KindInternal), HTTPError{Code: "internal_error", Message: "Internal server error."}
	}

	msg := e.Message
	if msg == "" {
		msg = e.Code
	}
	return Status(e.Kind), HTTPError{Code: e.Code, Message: msg}
}

// Write renders err as the failure envelope. Errors outside the taxonomy
// become internal errors and their text never reaches the client.
func Write(c *gin.Context, err error) {
	status, b := body(err)
	_ = c.Error(err)
	c.JSON(status, b)
}

// Abort is Write for middleware: it stops the handler chain.
func Abort(c *gin.Context, err error) {
	status, b := body(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, b)
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, Validation(code, message))
}
