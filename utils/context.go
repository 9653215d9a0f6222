package utils

import "github.com/gin-gonic/gin"

// CurrentAccountID reads the account id the auth middleware stored.
func CurrentAccountID(c *gin.Context) uint {
	v, _ := c.Get("accountId")
	id, _ := v.(uint)
	return id
}

// CurrentRole reads the role the auth middleware stored.
func CurrentRole(c *gin.Context) string {
	v, _ := c.Get("role")
	role, _ := v.(string)
	return role
}
