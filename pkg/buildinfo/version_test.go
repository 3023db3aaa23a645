package buildinfo

import (
	"strings"
	"testing"
)

func TestCacheScope(t *testing.T) {
	oldV, oldC := Version, Commit
	t.Cleanup(func() { Version, Commit = oldV, oldC })

	Version, Commit = "v1.2.3", "0123456789abcdef0123"
	if got := CacheScope(); got != "v1.2.3+0123456789ab:" {
		t.Errorf("CacheScope() = %q", got)
	}
	Version, Commit = "dev", "none"
	if got := CacheScope(); got != "dev+none:" {
		t.Errorf("CacheScope() = %q", got)
	}
}

func TestTemplate(t *testing.T) {
	if !strings.HasPrefix(Template(), "{{.Name}} version ") {
		t.Errorf("Template() = %q", Template())
	}
	if !strings.Contains(String(), "commit: ") {
		t.Errorf("String() = %q", String())
	}
}
