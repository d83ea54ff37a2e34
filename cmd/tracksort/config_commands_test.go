package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCLI(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, "Wrote sample configuration") {
		t.Fatalf("unexpected output: %q", out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
}

func TestConfigInitRefusesExistingFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(target, []byte("# existing\n"), 0o644); err != nil {
		t.Fatalf("seed config: %v", err)
	}

	if _, err := runCLI(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error for existing config without --overwrite")
	}
	out, err := runCLI(t, "config", "init", "--path", target, "--overwrite")
	if err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
	if !strings.Contains(out, "Wrote sample configuration") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestConfigShowPrintsResolvedConfig(t *testing.T) {
	base := t.TempDir()
	configPath := filepath.Join(base, "config.toml")
	content := "[paths]\nsource_dir = \"" + filepath.Join(base, "music") + "\"\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, err := runCLI(t, "--config", configPath, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, configPath) {
		t.Fatalf("expected config path in output, got %q", out)
	}
	if !strings.Contains(out, "[musicbrainz]") {
		t.Fatalf("expected resolved sections in output, got %q", out)
	}
}

func TestScanCommandCountsFiles(t *testing.T) {
	base := t.TempDir()
	source := filepath.Join(base, "music")
	for _, name := range []string{"one.mp3", "two.MP3", "skip.txt"} {
		path := filepath.Join(source, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte{0xFF, 0xFB}, 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	configPath := filepath.Join(base, "config.toml")
	content := "[paths]\nlog_dir = \"" + filepath.Join(base, "logs") + "\"\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, err := runCLI(t, "--config", configPath, "scan", "--source", source)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if !strings.Contains(out, "Found 2 MP3 file(s)") {
		t.Fatalf("unexpected scan output: %q", out)
	}
}
