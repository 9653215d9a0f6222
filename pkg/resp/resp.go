package resp

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoalevan2535/Goldenbamboo-sub001/pkg/apperr"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "data": data})
}
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"ok": true, "data": data})
}
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": msg})
}
func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": msg})
}
func Forbidden(c *gin.Context, msg string) {
	c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": msg})
}
func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": msg})
}
func Conflict(c *gin.Context, msg string) {
	c.JSON(http.StatusConflict, gin.H{"ok": false, "error": msg})
}
func ServerError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
}

// Error picks the HTTP status from the core's error taxonomy. Every rejected
// command carries the violated invariant in its message.
func Error(c *gin.Context, err error) {
	var conflict *apperr.ConflictError
	var invalid *apperr.InvalidTransitionError
	var notFound *apperr.NotFoundError
	var pricing *apperr.PricingInconsistencyError
	switch {
	case errors.As(err, &conflict):
		Conflict(c, err.Error())
	case errors.As(err, &invalid):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "error": err.Error()})
	case errors.As(err, &notFound):
		NotFound(c, err.Error())
	case errors.As(err, &pricing):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "error": err.Error()})
	default:
		ServerError(c, err)
	}
}
