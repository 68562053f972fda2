package api

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zoklk/ProjectTracker/internal/service"
)

// parseDateParam reads a required YYYY-MM-DD query parameter.
// Writes the 400 response itself on failure.
func parseDateParam(c *gin.Context, name string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", c.Query(name))
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid " + name + " date, expected YYYY-MM-DD"})
		return time.Time{}, err
	}
	return t, nil
}

// respondError maps service errors to HTTP status codes
func respondError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(400, gin.H{"error": validationErr.Error()})
		return
	}

	var fetchErr *service.FetchError
	if errors.As(err, &fetchErr) {
		c.JSON(502, gin.H{"error": fetchErr.Error()})
		return
	}

	c.JSON(500, gin.H{"error": err.Error()})
}
