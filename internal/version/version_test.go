package version

import "testing"

func TestString(t *testing.T) {
	orig := GitCommit
	t.Cleanup(func() { GitCommit = orig })

	GitCommit = "unknown"
	if got := String(); got != Version {
		t.Fatalf("String() = %q, want %q", got, Version)
	}

	GitCommit = "abc123"
	if got := String(); got != Version+" (abc123)" {
		t.Fatalf("String() = %q", got)
	}
}
