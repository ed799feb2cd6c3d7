package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// PlaceholderUsername returns the username given to users created on first login
func PlaceholderUsername(walletAddress string) string {
	return "User_" + walletAddress
}

// Initials returns the uppercased first letter of each whitespace-separated word
func Initials(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// Truncate shortens s to at most n runes
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// StringOr dereferences s, returning fallback when s is nil or empty
func StringOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
