package auth

import (
	"errors"
	"testing"
	"time"
)

func newTestManager(t *testing.T) *TokenManager {
	t.Helper()
	tm, err := NewTokenManager(Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
	})
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	return tm
}

func TestConfig_Validate(t *testing.T) {
	if _, err := NewTokenManager(Config{AccessSecret: "same", RefreshSecret: "same"}); err == nil {
		t.Error("expected error for identical secrets")
	}
	if _, err := NewTokenManager(Config{AccessSecret: "only-access"}); err == nil {
		t.Error("expected error for missing refresh secret")
	}
}

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	tm := newTestManager(t)

	access, err := tm.IssueAccess("user-1")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	subject, err := tm.Verify(access, AccessToken)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if subject != "user-1" {
		t.Errorf("subject = %q, want user-1", subject)
	}
}

func TestVerify_RejectsWrongClass(t *testing.T) {
	tm := newTestManager(t)

	access, _ := tm.IssueAccess("user-1")
	refresh, _ := tm.IssueRefresh("user-1", false)

	if _, err := tm.Verify(access, RefreshToken); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("access token verified as refresh: err=%v", err)
	}
	if _, err := tm.Verify(refresh, AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("refresh token verified as access: err=%v", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	tm := newTestManager(t)

	issued := time.Now()
	tm.now = func() time.Time { return issued }
	access, _ := tm.IssueAccess("user-1")

	tm.now = func() time.Time { return issued.Add(16 * time.Minute) }
	if _, err := tm.Verify(access, AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken after expiry, got %v", err)
	}
}

func TestVerify_Garbage(t *testing.T) {
	tm := newTestManager(t)
	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := tm.Verify(tok, AccessToken); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Verify(%q) = %v, want ErrInvalidToken", tok, err)
		}
	}
}

func TestRefreshTTL_RememberExtends(t *testing.T) {
	tm := newTestManager(t)

	if got := tm.RefreshTTL(false); got != 7*24*time.Hour {
		t.Errorf("RefreshTTL(false) = %v, want 168h", got)
	}
	if got := tm.RefreshTTL(true); got != 30*24*time.Hour {
		t.Errorf("RefreshTTL(true) = %v, want 720h", got)
	}
}
