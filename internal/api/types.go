package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// displayName turns a stored identifier like "upper_body" into "Upper Body"
// for response payloads.
func displayName(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '_' || s[i] == '-' {
			out[i] = ' '
		} else {
			out[i] = s[i]
		}
	}
	return titleCaser.String(string(out))
}

// currentUserID extracts the authenticated user's ID from the context. It
// writes a 401 response and returns false when the ID is missing.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	val, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return uuid.Nil, false
	}
	id, ok := val.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return uuid.Nil, false
	}
	return id, true
}

// parseWeekday reads the :weekday route param and rejects values outside the
// 0 (Sunday) .. 6 (Saturday) range.
func parseWeekday(c *gin.Context) (int, bool) {
	weekday, err := strconv.Atoi(c.Param("weekday"))
	if err != nil || weekday < 0 || weekday > 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "weekday must be between 0 and 6"})
		return 0, false
	}
	return weekday, true
}
