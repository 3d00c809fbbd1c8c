package utils

import "testing"

func TestRedactToken(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		token string
		want  string
	}{
		{"query", "https://graph.instagram.com/me/media?access_token=IGQV123&limit=4", "IGQV123", "https://graph.instagram.com/me/media?access_token=[TOKEN_HIDDEN]&limit=4"},
		{"repeated", "IGQV123 IGQV123", "IGQV123", "[TOKEN_HIDDEN] [TOKEN_HIDDEN]"},
		{"empty token", "nothing to hide", "", "nothing to hide"},
		{"absent", "https://example.com", "secret", "https://example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RedactToken(tt.in, tt.token); got != tt.want {
				t.Errorf("RedactToken() = %q, want %q", got, tt.want)
			}
		})
	}
}
