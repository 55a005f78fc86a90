package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"payloadgen/internal/config"
	"payloadgen/pkg/probepayload"
)

const sampleInput = `# comment
tcp 7,9 \x00\x01
icmp \x08\x00
udp 53 \x44\x4e\x53
tcp 80
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--no-color", "--log-file", filepath.Join(t.TempDir(), "log.json")))
	err := cmd.Execute()
	return out.String(), err
}

func writeInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nmap-payloads")
	if err := os.WriteFile(path, []byte(sampleInput), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestNewRootCmd(t *testing.T) {
	cmd := newRootCmd()
	if cmd == nil {
		t.Fatal("newRootCmd returned nil")
	}
	if cmd.Use != "payloadgen" {
		t.Errorf("Expected use 'payloadgen', got '%s'", cmd.Use)
	}
	if sub, _, err := cmd.Find([]string{"dump"}); err != nil || sub.Use != "dump" {
		t.Errorf("Expected dump subcommand, got %v", err)
	}
}

func TestGenerateJSON(t *testing.T) {
	input := writeInput(t)
	outPath := filepath.Join(t.TempDir(), "payloads.json")

	output, err := execute(t, "--input", input, "--out", outPath, "--format", "json")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(output, "Generated 3 entries.") {
		t.Fatalf("expected summary in output, got %q", output)
	}

	f, err := os.Open(outPath)
	if err != nil {
		t.Fatalf("expected output file, got %v", err)
	}
	defer f.Close()
	table, err := probepayload.LoadJSON(f)
	if err != nil {
		t.Fatalf("expected loadable output, got %v", err)
	}
	entries := table.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if len(entries[0].Ports) != 0 || entries[2].Ports[0] != 53 {
		t.Fatalf("expected [] first and [53] last, got %v and %v", entries[0].Ports, entries[2].Ports)
	}
}

func TestGenerateGoSource(t *testing.T) {
	input := writeInput(t)
	outPath := filepath.Join(t.TempDir(), "generated.go")

	if _, err := execute(t, "--input", input, "--out", outPath, "--package", "probes", "-w", "3"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	src, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("expected output file, got %v", err)
	}
	if !bytes.Contains(src, []byte("package probes")) {
		t.Fatalf("expected package clause, got:\n%s", src)
	}
	if !bytes.Contains(src, []byte("// Code generated by payloadgen from nmap-payloads; DO NOT EDIT.")) {
		t.Fatalf("expected generated header, got:\n%s", src)
	}
}

func TestGenerateMissingInputIsNotAnError(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "generated.go")
	output, err := execute(t, "--input", filepath.Join(t.TempDir(), "absent"), "--out", outPath)
	if err != nil {
		t.Fatalf("expected missing input to abort without error, got %v", err)
	}
	if !strings.Contains(output, "not found") {
		t.Fatalf("expected not found warning, got %q", output)
	}
	if _, err := os.Stat(outPath); !os.IsNotExist(err) {
		t.Fatalf("expected no output to be written")
	}
}

func TestGenerateWriteFailure(t *testing.T) {
	input := writeInput(t)
	outPath := filepath.Join(t.TempDir(), "missing-dir", "generated.go")
	if _, err := execute(t, "--input", input, "--out", outPath); err == nil {
		t.Fatalf("expected write failure to be returned")
	}
}

func TestGenerateRejectsOversizeInput(t *testing.T) {
	input := writeInput(t)
	cfgPath := filepath.Join(t.TempDir(), "payloadgen.yaml")
	if err := os.WriteFile(cfgPath, []byte("max_input_size: 10B\n"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	outPath := filepath.Join(t.TempDir(), "generated.go")
	if _, err := execute(t, "--config", cfgPath, "--input", input, "--out", outPath); err == nil || !strings.Contains(err.Error(), "exceeds max input size") {
		t.Fatalf("expected size limit error, got %v", err)
	}
}

func TestGenerateRejectsInvalidFlags(t *testing.T) {
	input := writeInput(t)
	if _, err := execute(t, "--input", input, "--format", "xml"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
	if _, err := execute(t, "--input", input, "--sink", "mariadb"); err == nil {
		t.Fatalf("expected error for mariadb sink without DSN")
	}
}

func TestDump(t *testing.T) {
	input := writeInput(t)
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"dump", "--input", input, "--no-color", "--log-file", filepath.Join(t.TempDir(), "log.json")})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := "- \\x08\\x00\n7,9 \\x00\\x01\n53 DNS\n"
	if out.String() != want {
		t.Fatalf("expected %q, got %q", want, out.String())
	}
}

func TestLoadConfigFileAndFlagPrecedence(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "payloadgen.yaml")
	data := "input: from-file\nworkers: 2\noutput:\n  format: json\n  path: from-file.json\n"
	if err := os.WriteFile(cfgPath, []byte(data), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--config", cfgPath, "--out", "from-flag.json"}); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Input != "from-file" || cfg.Workers != 2 || cfg.Output.Format != config.FormatJSON {
		t.Fatalf("expected file values, got %+v", cfg)
	}
	if cfg.Output.Path != "from-flag.json" {
		t.Fatalf("expected flag to override output path, got %q", cfg.Output.Path)
	}
}

func TestSetupLogger(t *testing.T) {
	levels := []string{"DEBUG", "INFO", "WARN", "ERROR", "UNKNOWN"}
	for _, lvl := range levels {
		l := setupLogger(lvl, "")
		if l == nil {
			t.Errorf("setupLogger returned nil for level %s", lvl)
		}
	}
}
