package signal

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writePolicy(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "policy.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write policy: %v", err)
	}
	return path
}

func TestLoadPolicy_EmptyPathReturnsDefaults(t *testing.T) {
	t.Parallel()

	policy, err := LoadPolicy("")
	if err != nil {
		t.Fatalf("load policy: %v", err)
	}
	if !reflect.DeepEqual(policy, DefaultPolicy()) {
		t.Fatalf("expected default policy, got %+v", policy)
	}
}

func TestLoadPolicy_OverridesSelectedFields(t *testing.T) {
	t.Parallel()

	path := writePolicy(t, `
enter_at: 80
corner_pace:
  weight: 200
  cap: 55
ladder:
  - min_projection: 11
    line: Over 10.5
  - min_projection: 9
    line: Over 8.5
`)

	policy, err := LoadPolicy(path)
	if err != nil {
		t.Fatalf("load policy: %v", err)
	}
	if policy.EnterAt != 80 || policy.SkipBelow != 45 {
		t.Fatalf("unexpected thresholds enter=%v skip=%v", policy.EnterAt, policy.SkipBelow)
	}
	if policy.CornerPace.Weight != 200 {
		t.Fatalf("unexpected corner pace weight %v", policy.CornerPace.Weight)
	}
	if len(policy.Ladder) != 2 {
		t.Fatalf("unexpected ladder %+v", policy.Ladder)
	}
	if got := policy.LineFor(12); got != "Over 10.5" {
		t.Fatalf("LineFor(12) = %q", got)
	}
	if got := policy.ActionFor(75); got != ActionWait {
		t.Fatalf("ActionFor(75) = %q", got)
	}
}

func TestLoadPolicy_RejectsUnorderedLadder(t *testing.T) {
	t.Parallel()

	path := writePolicy(t, `
ladder:
  - min_projection: 8
    line: Over 7.5
  - min_projection: 10
    line: Over 9.5
`)

	if _, err := LoadPolicy(path); !errors.Is(err, ErrInvalidPolicy) {
		t.Fatalf("expected ErrInvalidPolicy, got %v", err)
	}
}

func TestLoadPolicy_MissingFile(t *testing.T) {
	t.Parallel()

	if _, err := LoadPolicy(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
