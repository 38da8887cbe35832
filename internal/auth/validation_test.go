package auth

import "testing"

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		wantError bool
	}{
		{"valid simple", "a@x.com", false},
		{"valid subdomain", "user@mail.example.org", false},
		{"valid plus", "user+tag@example.com", false},

		{"empty string", "", true},
		{"whitespace only", "   ", true},
		{"missing at", "userexample.com", true},
		{"missing domain", "user@", true},
		{"missing tld", "user@example", true},
		{"embedded space", "us er@example.com", true},
		{"double at", "user@@example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantError {
				t.Errorf("ValidateEmail(%q) error = %v, wantError %v", tt.email, err, tt.wantError)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name      string
		password  string
		wantError bool
	}{
		{"valid 6 chars", "abc123", false},
		{"valid long", "a-much-longer-password", false},

		{"empty string", "", true},
		{"5 chars", "abc12", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if (err != nil) != tt.wantError {
				t.Errorf("ValidatePassword(%q) error = %v, wantError %v", tt.password, err, tt.wantError)
			}
		})
	}
}
