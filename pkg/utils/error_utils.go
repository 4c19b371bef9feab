package utils

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
)

// The JSON failure envelopes mirror what the frontend already consumes:
// most endpoints answer {"success": false, "message": ...}, the order and
// item-creation endpoints answer {"success": false, "error": ...}.

// RespondError writes {"success": false, "error": message} with the given status.
func RespondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"success": false, "error": message})
	c.Abort()
}

// RespondFailure writes {"success": false, "message": message} with the given status.
func RespondFailure(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"success": false, "message": message})
	c.Abort()
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`)

// IsValidEmail checks if a string is a valid email format.
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(strings.ToLower(email))
}

// IsValidPasswordLength checks if password meets minimum length requirement.
func IsValidPasswordLength(password string, minLength int) bool {
	return len(password) >= minLength
}
