package database

import "strings"

// isUniqueViolation reports whether err is a unique constraint failure on
// column. SQLite and postgres word it differently.
func isUniqueViolation(err error, column string) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	unique := strings.Contains(errStr, "unique constraint failed") || strings.Contains(errStr, "duplicate key")
	return unique && strings.Contains(errStr, column)
}
