package auth

import (
	"strings"
	"testing"
)

func TestGeneratePassword(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		password := GeneratePassword()
		if len(password) != 15 {
			t.Fatalf("expected 15 characters, got %d", len(password))
		}
		for _, r := range password {
			if !strings.ContainsRune(passwordAlphabet, r) {
				t.Fatalf("unexpected character %q", r)
			}
		}
		if seen[password] {
			t.Fatalf("duplicate password %q", password)
		}
		seen[password] = true
	}
}

func TestValidatePasswordComplexity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		password string
		wantErr  bool
	}{
		{"Abc123", false},
		{"LongerPassw0rd", false},
		{"Ab1", true},
		{"alllower1", true},
		{"ALLUPPER1", true},
		{"NoDigitsHere", true},
		{"", true},
	}
	for _, tc := range tests {
		err := ValidatePasswordComplexity(tc.password)
		if (err != nil) != tc.wantErr {
			t.Errorf("%q: got err %v, wantErr %v", tc.password, err, tc.wantErr)
		}
	}
}

func TestHashAndComparePassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("Abc123", 4)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := ComparePassword(hash, "Abc123"); err != nil {
		t.Errorf("compare with correct password: %v", err)
	}
	if err := ComparePassword(hash, "Wrong1"); err == nil {
		t.Error("compare with wrong password should fail")
	}
}
