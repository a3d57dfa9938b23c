package token

import (
	"testing"
)

func TestIssueAndVerify(t *testing.T) {
	maker := NewMaker("test-secret", 1)

	signed, err := maker.Issue("capulet", "moderator")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if signed == "" {
		t.Fatal("Issue() returned empty token")
	}

	claims, err := maker.Verify(signed)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.Username != "capulet" {
		t.Errorf("claims.Username = %q, want %q", claims.Username, "capulet")
	}
	if claims.Role != "moderator" {
		t.Errorf("claims.Role = %q, want %q", claims.Role, "moderator")
	}
}

func TestVerifyFailsClosed(t *testing.T) {
	maker := NewMaker("test-secret", 1)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := maker.Verify(tt.token); err == nil {
				t.Error("Verify() accepted an invalid token")
			}
		})
	}

	// Token signed with a different secret must be rejected.
	other := NewMaker("other-secret", 1)
	signed, err := other.Issue("capulet", "user")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if _, err := maker.Verify(signed); err == nil {
		t.Error("Verify() accepted a token signed with the wrong secret")
	}
}

func TestVerifyExpired(t *testing.T) {
	maker := NewMaker("test-secret", 1)
	maker.expiry = -1 // already expired on issue

	signed, err := maker.Issue("capulet", "user")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if _, err := maker.Verify(signed); err == nil {
		t.Error("Verify() accepted an expired token")
	}
}
