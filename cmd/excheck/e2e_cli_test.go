package excheck

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// run as subprocess to avoid os.Exit in-process
func runCLI(t *testing.T, args ...string) (stdout, stderr string, exitCode int) {
	t.Helper()
	cmd := exec.Command("go", append([]string{"run", "."}, args...)...)
	cmd.Dir = filepath.Clean(filepath.Join("..", ".."))
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb
	err := cmd.Run()
	code := 0
	if err != nil {
		ee, ok := err.(*exec.ExitError)
		if !ok {
			t.Fatalf("execute: %v\n%s", err, errb.String())
		}
		code = ee.ExitCode()
	}
	return out.String(), errb.String(), code
}

func TestCLI_CleanRunExitsZero(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "ok.py"), []byte("def f():\n    try:\n        a()\n    except KeyError:\n        fix()\n"), 0644); err != nil {
		t.Fatal(err)
	}
	stdout, _, code := runCLI(t, "--json", "--quiet", dir)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	var doc struct {
		Violations []map[string]any `json:"violations"`
	}
	if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
		t.Fatalf("json unmarshal: %v\n%s", err, stdout)
	}
	if len(doc.Violations) != 0 {
		t.Fatalf("expected no violations, got %v", doc.Violations)
	}
}

func TestCLI_ViolationsDoNotAffectExitCode(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.py"), []byte("try:\n    a()\nexcept:\n    pass\n"), 0644); err != nil {
		t.Fatal(err)
	}
	stdout, _, code := runCLI(t, "--json", "--quiet", dir)
	if code != 0 {
		t.Fatalf("violations are report content, expected exit 0, got %d", code)
	}
	var doc struct {
		Violations []map[string]any `json:"violations"`
	}
	if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
		t.Fatalf("json unmarshal: %v\n%s", err, stdout)
	}
	if len(doc.Violations) != 1 {
		t.Fatalf("expected one violation, got %v", doc.Violations)
	}
}

func TestCLI_ParseFailureExitsOne(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.py"), []byte("def f(:\n    pass\n"), 0644); err != nil {
		t.Fatal(err)
	}
	stdout, _, code := runCLI(t, "--json", "--quiet", dir)
	if code != 1 {
		t.Fatalf("expected exit 1 for unparseable file, got %d\n%s", code, stdout)
	}
	var doc struct {
		Warnings []struct {
			Kind string `json:"kind"`
		} `json:"warnings"`
	}
	if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
		t.Fatalf("json unmarshal: %v\n%s", err, stdout)
	}
	if len(doc.Warnings) != 1 || doc.Warnings[0].Kind != "parse-failure" {
		t.Fatalf("expected a parse-failure warning, got %+v", doc.Warnings)
	}
}

func TestCLI_UnknownToolExitsTwo(t *testing.T) {
	dir := t.TempDir()
	_, stderr, code := runCLI(t, "--tool", "bandit", "--quiet", dir)
	if code != 2 {
		t.Fatalf("expected exit 2 for unknown tool, got %d", code)
	}
	if !bytes.Contains([]byte(stderr), []byte("unknown tool")) {
		t.Fatalf("expected unknown tool message on stderr, got %q", stderr)
	}
}

func TestCLI_ReportFileErrorExitsTwo(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "ok.py"), []byte("pass\n"), 0644); err != nil {
		t.Fatal(err)
	}
	bad := filepath.Join(dir, "no", "such", "dir", "report.json")
	_, stderr, code := runCLI(t, "--json", "--quiet", "--report_file", bad, dir)
	if code != 2 {
		t.Fatalf("expected exit 2 for unwritable report file, got %d", code)
	}
	if !bytes.Contains([]byte(stderr), []byte("cannot write report")) {
		t.Fatalf("expected report error on stderr, got %q", stderr)
	}
}

func TestCLI_ReportFileWritten(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.py"), []byte("try:\n    a()\nexcept:\n    pass\n"), 0644); err != nil {
		t.Fatal(err)
	}
	report := filepath.Join(dir, "report.json")
	_, _, code := runCLI(t, "--json", "--quiet", "--report_file", report, dir)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	b, err := os.ReadFile(report)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	var doc struct {
		Violations []map[string]any `json:"violations"`
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("report json: %v\n%s", err, b)
	}
	if len(doc.Violations) != 1 {
		t.Fatalf("expected one violation in report file, got %v", doc.Violations)
	}
}
