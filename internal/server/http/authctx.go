// Package httpserver exposes the contact-keeper REST API handlers.
package httpserver

import (
	"github.com/gin-gonic/gin"
)

const userIDKey = "ck.userID"

// withUserID stores the authenticated user id in the request context.
func withUserID(c *gin.Context, id int64) {
	c.Set(userIDKey, id)
}

// userIDFrom fetches the authenticated user id from the request context.
func userIDFrom(c *gin.Context) (int64, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
