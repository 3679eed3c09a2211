package envutil

import (
	"strings"
	"testing"
	"time"
)

func TestRegisterConflicts(t *testing.T) {
	s := NewSet()
	if err := s.Register("TOLLAN_DEBUG", "enable debug output"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	// Same doc is idempotent.
	if err := s.Register("TOLLAN_DEBUG", "enable debug output"); err != nil {
		t.Fatalf("idempotent Register: %v", err)
	}
	if err := s.Register("TOLLAN_DEBUG", "something else"); err == nil {
		t.Fatal("conflicting Register should fail")
	}
	if got := s.Names(); len(got) != 1 || got[0] != "TOLLAN_DEBUG" {
		t.Fatalf("Names = %v", got)
	}
}

func TestDocRendersTable(t *testing.T) {
	s := NewSet()
	if err := s.Register("TOLLAN_DATA_DIR", "data directory"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := s.Register("TOLLAN_DEBUG", "enable debug output"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	doc := s.Doc()
	if !strings.Contains(doc, "TOLLAN_DATA_DIR") || !strings.Contains(doc, "enable debug output") {
		t.Fatalf("Doc missing entries:\n%s", doc)
	}
}

func TestTypedAccessors(t *testing.T) {
	s := NewSet()

	t.Setenv("TOLLAN_NAME", "toltec")
	if got := s.String("TOLLAN_NAME", "fallback"); got != "toltec" {
		t.Fatalf("String = %q", got)
	}
	if got := s.String("TOLLAN_UNSET", "fallback"); got != "fallback" {
		t.Fatalf("String default = %q", got)
	}

	t.Setenv("TOLLAN_N", "42")
	if got, err := s.Int("TOLLAN_N", 0); err != nil || got != 42 {
		t.Fatalf("Int = %d, %v", got, err)
	}
	if got, err := s.Int("TOLLAN_UNSET", 7); err != nil || got != 7 {
		t.Fatalf("Int default = %d, %v", got, err)
	}
	t.Setenv("TOLLAN_BAD", "xyz")
	if _, err := s.Int("TOLLAN_BAD", 0); err == nil {
		t.Fatal("Int should fail on malformed value")
	}

	t.Setenv("TOLLAN_FLAG", "true")
	if got, err := s.Bool("TOLLAN_FLAG", false); err != nil || !got {
		t.Fatalf("Bool = %v, %v", got, err)
	}

	t.Setenv("TOLLAN_TIMEOUT", "1500ms")
	if got, err := s.Duration("TOLLAN_TIMEOUT", 0); err != nil || got != 1500*time.Millisecond {
		t.Fatalf("Duration = %v, %v", got, err)
	}
}
