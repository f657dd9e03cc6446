package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	info := Info()

	for _, key := range []string{"version", "git_commit", "build_date", "go_version"} {
		if _, ok := info[key]; !ok {
			t.Errorf("Info() missing key %q", key)
		}
	}
	if info["go_version"] != runtime.Version() {
		t.Errorf("go_version = %v, want %v", info["go_version"], runtime.Version())
	}
}

func TestString(t *testing.T) {
	got := String()
	if !strings.HasPrefix(got, "flowclock-exporter "+Version) {
		t.Errorf("String() = %q, want prefix with version %q", got, Version)
	}
}
