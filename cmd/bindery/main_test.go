package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"bindery/internal/isbn"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()

	base := t.TempDir()
	configPath := filepath.Join(base, "config.toml")
	contents := fmt.Sprintf(`[paths]
snapshot_path = %q
log_dir = %q

[logging]
format = "json"
level = "warn"

[import]
identifier_column = "ISBN"
title_column = "Title"
status_column = "Status"
publisher_column = "Publisher"
format_column = "Format"
`, filepath.Join(base, "ledger.json"), filepath.Join(base, "logs"))

	if err := os.WriteFile(configPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func mustRunCLI(t *testing.T, configPath string, args ...string) string {
	t.Helper()

	stdout, stderr, err := runCLI(t, configPath, args...)
	if err != nil {
		t.Fatalf("bindery %s: %v (stderr: %s)", strings.Join(args, " "), err, stderr)
	}
	return stdout
}

func TestAddBlockAndReport(t *testing.T) {
	t.Setenv("BINDERY_SNAPSHOT", "")
	configPath := writeTestConfig(t)

	out := mustRunCLI(t, configPath, "add-block", "978", "1000", "1099", "--publisher", "123456")
	if !strings.Contains(out, "100 identifiers") {
		t.Fatalf("expected capacity in output, got %q", out)
	}

	out = mustRunCLI(t, configPath, "report")
	if !strings.Contains(out, "100 total, 0 used, 100 available") {
		t.Fatalf("unexpected report output: %q", out)
	}

	out = mustRunCLI(t, configPath, "blocks")
	if !strings.Contains(out, "978") || !strings.Contains(out, "123456") {
		t.Fatalf("unexpected blocks output: %q", out)
	}

	if _, _, err := runCLI(t, configPath, "add-block", "978", "1050", "1200", "--publisher", "123456"); err == nil {
		t.Fatal("expected overlapping block to be rejected")
	}
}

func TestScheduleAssignPublishFlow(t *testing.T) {
	t.Setenv("BINDERY_SNAPSHOT", "")
	configPath := writeTestConfig(t)
	mustRunCLI(t, configPath, "add-block", "978", "1000", "1099", "--publisher", "123456")

	date := time.Now().AddDate(0, 0, 20).Format(dateLayout)
	out := mustRunCLI(t, configPath, "schedule", "The Long Field", date, "--priority", "2")

	id, err := isbn.Synthesize("978", 1000)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if !strings.Contains(out, string(id)) {
		t.Fatalf("expected %s in schedule output, got %q", id, out)
	}

	out = mustRunCLI(t, configPath, "status", string(id))
	if !strings.Contains(out, "scheduled") || !strings.Contains(out, "The Long Field") {
		t.Fatalf("unexpected status output: %q", out)
	}

	out = mustRunCLI(t, configPath, "upcoming", "--days", "30")
	if !strings.Contains(out, "The Long Field") {
		t.Fatalf("expected scheduled title in upcoming output: %q", out)
	}

	mustRunCLI(t, configPath, "assign", string(id))
	mustRunCLI(t, configPath, "publish", string(id))

	out = mustRunCLI(t, configPath, "status", string(id))
	if !strings.Contains(out, "published") {
		t.Fatalf("expected published status, got %q", out)
	}

	if _, _, err := runCLI(t, configPath, "release", string(id)); err == nil {
		t.Fatal("expected release of a published identifier to fail")
	}
}

func TestStatusRejectsMalformedIdentifier(t *testing.T) {
	t.Setenv("BINDERY_SNAPSHOT", "")
	configPath := writeTestConfig(t)

	if _, _, err := runCLI(t, configPath, "status", "9780306406158"); err == nil {
		t.Fatal("expected checksum failure")
	}
	if _, _, err := runCLI(t, configPath, "status", "notanisbn"); err == nil {
		t.Fatal("expected parse failure")
	}
}

func TestUpdateRequiresAField(t *testing.T) {
	t.Setenv("BINDERY_SNAPSHOT", "")
	configPath := writeTestConfig(t)
	mustRunCLI(t, configPath, "add-block", "978", "1000", "1099", "--publisher", "123456")

	id, err := isbn.Synthesize("978", 1000)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	mustRunCLI(t, configPath, "reserve", string(id), "--notes", "holdback")

	if _, _, err := runCLI(t, configPath, "update", string(id)); err == nil {
		t.Fatal("expected update without flags to fail")
	}
	mustRunCLI(t, configPath, "update", string(id), "--notes", "special edition")

	out := mustRunCLI(t, configPath, "status", string(id))
	if !strings.Contains(out, "special edition") {
		t.Fatalf("expected updated notes in status output: %q", out)
	}
}

func TestImportCommandSummarizes(t *testing.T) {
	t.Setenv("BINDERY_SNAPSHOT", "")
	configPath := writeTestConfig(t)
	mustRunCLI(t, configPath, "add-block", "978", "1000", "1099", "--publisher", "123456")

	first, err := isbn.Synthesize("978", 1000)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	second, err := isbn.Synthesize("978", 1001)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	csvPath := filepath.Join(t.TempDir(), "export.csv")
	contents := fmt.Sprintf("ISBN,Title,Status,Publisher,Format\n%s,Harvest,privately assigned,Acme,hardcover\n%s,,available,,\nbadrow,X,available,,\n", first, second)
	if err := os.WriteFile(csvPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	stdout, stderr, err := runCLI(t, configPath, "import", csvPath)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(stdout, "3 total, 1 imported, 1 skipped") {
		t.Fatalf("unexpected import summary: %q", stdout)
	}
	if !strings.Contains(stderr, "line 4") {
		t.Fatalf("expected row error on stderr, got %q", stderr)
	}

	out := mustRunCLI(t, configPath, "status", string(first))
	if !strings.Contains(out, "assigned") {
		t.Fatalf("expected imported record to be assigned: %q", out)
	}
}

func TestConfigInit(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	cmd := newRootCommand()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stdout)
	cmd.SetArgs([]string{"config", "init", "--path", target})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected sample config at %s: %v", target, err)
	}

	cmd = newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stdout)
	cmd.SetArgs([]string{"config", "init", "--path", target})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected second init without --overwrite to fail")
	}
}
