package utils

import "testing"

func TestSanitizeEmail(t *testing.T) {
	t.Run("valid email is lowercased and trimmed", func(t *testing.T) {
		got, err := SanitizeEmail("  User@Example.COM ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "user@example.com" {
			t.Errorf("SanitizeEmail() = %q, want %q", got, "user@example.com")
		}
	})

	t.Run("invalid email is rejected", func(t *testing.T) {
		for _, email := range []string{"", "not-an-email", "missing@tld", "@example.com"} {
			if _, err := SanitizeEmail(email); err == nil {
				t.Errorf("expected error for %q", email)
			}
		}
	})
}

func TestSanitizeInput(t *testing.T) {
	got := SanitizeInput("  <b>hello</b>\x00  ")
	if got != "&lt;b&gt;hello&lt;/b&gt;" {
		t.Errorf("SanitizeInput() = %q", got)
	}
}
