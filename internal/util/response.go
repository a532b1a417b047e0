package util

import "github.com/gin-gonic/gin"

// business error codes carried alongside the HTTP status
const (
	CodeOK           = 0
	CodeInvalidParam = 40001
	CodeNotFound     = 40401
	CodeServerErr    = 50001
	CodeUpstream     = 50201
)

// Error writes the unified error envelope. Success responses are written
// directly by the handlers in the shape each endpoint defines.
func Error(c *gin.Context, httpStatus int, code int, msg string) {
	c.JSON(httpStatus, gin.H{
		"code":    code,
		"message": msg,
	})
}
