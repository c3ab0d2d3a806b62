package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestRootRejectsPositionalArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"src"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for positional argument")
	}
}

func TestRootReformatsTree(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "nucleus", "emulator.cpp")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("\tint a;  \r\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--dir", base, "-j", "2"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "    int a;\r\n" {
		t.Fatalf("unexpected content %q", got)
	}
}

func TestBuildConfigJobs(t *testing.T) {
	dir := t.TempDir()
	cfg, err := buildConfig(&cliOptions{dir: dir, jobs: 3})
	if err != nil {
		t.Fatalf("buildConfig error: %v", err)
	}
	if cfg.Jobs != 3 {
		t.Fatalf("jobs got %d", cfg.Jobs)
	}
	if cfg.BaseDir != dir {
		t.Fatalf("base got %q", cfg.BaseDir)
	}
	if _, err := buildConfig(&cliOptions{dir: dir, jobs: -1}); err == nil {
		t.Fatalf("expected error for negative jobs")
	}
}

func TestVersionCommand(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version", "--full"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	s := out.String()
	if !strings.HasPrefix(s, "nucleus-format ") {
		t.Fatalf("unexpected output %q", s)
	}
	if !strings.Contains(s, "commit: unknown") {
		t.Fatalf("expected commit line, got %q", s)
	}
}
