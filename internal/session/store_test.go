package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpenMissingFileIsUnauthenticated(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Authenticated() {
		t.Fatalf("expected unauthenticated store")
	}
	if tok := s.Token(); tok != "" {
		t.Fatalf("expected empty token, got %q", tok)
	}
	if _, ok := s.Admin(); ok {
		t.Fatalf("expected no admin profile")
	}
}

func TestSetPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Set("tok-123", Admin{Email: "admin@prepstack.dev", Role: "admin"}); err != nil {
		t.Fatalf("set: %v", err)
	}

	// Reopen: the file alone must restore the session.
	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if !s2.Authenticated() {
		t.Fatalf("expected authenticated after reopen")
	}
	if s2.Token() != "tok-123" {
		t.Fatalf("token = %q", s2.Token())
	}
	a, ok := s2.Admin()
	if !ok || a.Email != "admin@prepstack.dev" || a.Role != "admin" {
		t.Fatalf("admin = %+v ok=%v", a, ok)
	}
}

func TestClearRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s, _ := Open(path)
	if err := s.Set("tok", Admin{Email: "a@b.c"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if s.Authenticated() {
		t.Fatalf("expected unauthenticated after clear")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected session file removed, stat err=%v", err)
	}
	// Clearing again must still succeed.
	if err := s.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestOpenCorruptFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path); err == nil {
		t.Fatalf("expected error for corrupt session file")
	}
}
