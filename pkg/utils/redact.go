package utils

import "strings"

const TokenPlaceholder = "[TOKEN_HIDDEN]"

// RedactToken replaces every occurrence of token in s. An empty token leaves
// s untouched.
func RedactToken(s, token string) string {
	if token == "" {
		return s
	}
	return strings.ReplaceAll(s, token, TokenPlaceholder)
}
