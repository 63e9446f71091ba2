package middleware

import (
	"log"
	"net/http"

	"terlab/domain/core"

	"github.com/gin-gonic/gin"
)

const sessionIDKey = "session_id"

// SessionParam parses the :id path parameter into a session ID and aborts with
// 400 when it is not a UUID
func SessionParam() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := core.ParseSessionID(c.Param("id"))
		if err != nil {
			log.Printf("[SessionParam] Rejected session id %q: %v", c.Param("id"), err)
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
				"code":  "INVALID_INPUT",
			})
			return
		}
		c.Set(sessionIDKey, id)
		c.Next()
	}
}

// SessionID returns the session ID stored by SessionParam
func SessionID(c *gin.Context) core.SessionID {
	id, _ := c.MustGet(sessionIDKey).(core.SessionID)
	return id
}

// LimitBody caps request bodies at maxBytes
func LimitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
