package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func getUserID(c *gin.Context) (string, bool) {
	v, ok := c.Get("user_id")
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

func ok(c *gin.Context, data gin.H) {
	body := gin.H{"success": true}
	for k, v := range data {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}
