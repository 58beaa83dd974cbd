package utils

import (
	"regexp"
	"strings"
	"unicode"
)

var htmlTag = regexp.MustCompile(`<[^>]*>`)

// SanitizeString trims whitespace and drops control characters. Output is
// escaped by the templates, so nothing is HTML-escaped here.
func SanitizeString(input string) string {
	return removeControlChars(strings.TrimSpace(input), false)
}

// SanitizeText is SanitizeString for multi-line input; newlines and tabs survive.
func SanitizeText(input string) string {
	return removeControlChars(strings.TrimSpace(input), true)
}

// SanitizeEmail sanitizes email input
func SanitizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	email = htmlTag.ReplaceAllString(email, "")
	return removeControlChars(email, false)
}

func removeControlChars(input string, keepLines bool) string {
	var result strings.Builder
	for _, r := range input {
		switch {
		case keepLines && (r == '\n' || r == '\r' || r == '\t'):
			result.WriteRune(r)
		case unicode.IsPrint(r) || r == ' ':
			result.WriteRune(r)
		}
	}
	return result.String()
}
