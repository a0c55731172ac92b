package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestGetInfo(t *testing.T) {
	origVersion := Version
	origCommit := Commit
	origDate := Date

	Version = "1.0.0"
	Commit = "abc123def456"
	Date = "2026-01-01T12:00:00Z"

	defer func() {
		Version = origVersion
		Commit = origCommit
		Date = origDate
	}()

	info := GetInfo()

	if info.Version != "1.0.0" {
		t.Errorf("expected version 1.0.0, got %s", info.Version)
	}
	if info.Commit != "abc123def456" {
		t.Errorf("expected commit abc123def456, got %s", info.Commit)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("expected go version %s, got %s", runtime.Version(), info.GoVersion)
	}
}

func TestInfoString(t *testing.T) {
	info := Info{
		Version:   "1.2.3",
		Commit:    "abcdef0123456789",
		Date:      "2026-01-01",
		GoVersion: "go1.24",
		Platform:  "linux/amd64",
	}

	s := info.String()

	if !strings.Contains(s, "eventsctl 1.2.3") {
		t.Errorf("expected version string to name the binary and version, got %q", s)
	}
	if !strings.Contains(s, "abcdef01") {
		t.Errorf("expected short commit in %q", s)
	}
	if strings.Contains(s, "abcdef0123456789") {
		t.Errorf("expected commit to be truncated in %q", s)
	}
}

func TestInfoShort(t *testing.T) {
	info := Info{Version: "2.0.0"}
	if info.Short() != "2.0.0" {
		t.Errorf("expected 2.0.0, got %s", info.Short())
	}
}
