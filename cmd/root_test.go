package cmd

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matheuskafuri/jobtrack/internal/config"
	"github.com/matheuskafuri/jobtrack/internal/store"
)

func TestParseSince(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
		err   bool
	}{
		{"7d", 7 * 24 * time.Hour, false},
		{"1d", 24 * time.Hour, false},
		{"24h", 24 * time.Hour, false},
		{"30m", 30 * time.Minute, false},
		{"2h30m", 2*time.Hour + 30*time.Minute, false},
		{"invalid", 0, true},
		{"", 0, true},
		{"d", 0, true},
	}

	for _, tt := range tests {
		got, err := parseSince(tt.input)
		if tt.err {
			if err == nil {
				t.Errorf("parseSince(%q): expected error, got %v", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseSince(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseSince(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{3 << 20, "3.0 MB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// env points config, store and log at a fresh temp dir.
type env struct {
	t   *testing.T
	dir string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv(config.EnvDB, filepath.Join(dir, "jobtrack.db"))
	t.Setenv(config.EnvLog, filepath.Join(dir, "jobtrack.log"))
	t.Setenv(config.EnvLogLevel, "debug")
	return &env{t: t, dir: dir}
}

// run executes the command tree with args and returns combined output.
func (e *env) run(args ...string) (string, error) {
	e.t.Helper()
	resetFlags(rootCmd)
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(append(args, "--config", filepath.Join(e.dir, "config.yaml")))
	err := rootCmd.Execute()
	return buf.String(), err
}

func (e *env) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run(args...)
	if err != nil {
		e.t.Fatalf("%s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

// resetFlags restores defaults; cobra keeps flag values between Execute calls.
func resetFlags(c *cobra.Command) {
	c.Flags().VisitAll(func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func TestVersion(t *testing.T) {
	e := newEnv(t)
	if out := e.mustRun("version"); !strings.HasPrefix(out, "jobtrack dev") {
		t.Errorf("unexpected version output %q", out)
	}
}

func TestListLimitAndSort(t *testing.T) {
	e := newEnv(t)
	out := e.mustRun("list", "--limit", "5", "--sort", "salary")
	if !strings.Contains(out, "Showing 5 of 60 jobs (sorted by Salary)") {
		t.Errorf("unexpected list footer:\n%s", out)
	}
	if !strings.Contains(out, "₹") {
		t.Error("expected formatted salary column")
	}

	if _, err := e.run("list", "--sort", "alphabetical"); err == nil {
		t.Error("expected error for unknown sort")
	}
}

func TestListFiltersAndTrace(t *testing.T) {
	e := newEnv(t)
	out := e.mustRun("list", "--search", "zoho", "--trace")
	if strings.Contains(out, "Swiggy") {
		t.Errorf("search should exclude other companies:\n%s", out)
	}
	if !strings.Contains(out, "search") || !strings.Contains(out, "matches") {
		t.Errorf("expected stage trace:\n%s", out)
	}

	out = e.mustRun("list", "--matches")
	if !strings.Contains(out, "No preferences saved") {
		t.Errorf("expected hint without preferences:\n%s", out)
	}
}

func TestPrefsSetMergesAndClears(t *testing.T) {
	e := newEnv(t)
	if out := e.mustRun("prefs"); !strings.Contains(out, "No preferences saved") {
		t.Errorf("expected empty preferences:\n%s", out)
	}

	out := e.mustRun("prefs", "set", "--roles", "react, frontend", "--min-score", "55")
	if !strings.Contains(out, "Preferences saved") || !strings.Contains(out, "Min score:   55") {
		t.Errorf("unexpected set output:\n%s", out)
	}

	out = e.mustRun("prefs", "set", "--skills", "java")
	for _, want := range []string{"Roles:       react, frontend", "Skills:      java", "Min score:   55"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q after partial update:\n%s", want, out)
		}
	}

	e.mustRun("prefs", "clear")
	if out := e.mustRun("prefs", "show"); !strings.Contains(out, "No preferences saved") {
		t.Errorf("expected preferences cleared:\n%s", out)
	}
}

func TestStatusSetAndGet(t *testing.T) {
	e := newEnv(t)
	if out := e.mustRun("status", "3"); !strings.Contains(out, "3: Not Applied") {
		t.Errorf("expected default status:\n%s", out)
	}
	if out := e.mustRun("status", "3", "applied"); !strings.Contains(out, "Status updated: Applied") {
		t.Errorf("expected notification:\n%s", out)
	}
	if out := e.mustRun("status", "3"); !strings.Contains(out, "3: Applied") {
		t.Errorf("expected persisted status:\n%s", out)
	}
	if out := e.mustRun("list", "--status", "Applied"); !strings.Contains(out, "Showing 1 of 1 jobs") {
		t.Errorf("status filter should keep one job:\n%s", out)
	}

	if _, err := e.run("status", "3", "ghosted"); err == nil {
		t.Error("expected error for unknown status")
	}
	if _, err := e.run("status", "999", "applied"); err == nil {
		t.Error("expected error for unknown job id")
	}
}

func TestSaveToggle(t *testing.T) {
	e := newEnv(t)
	if out := e.mustRun("saved"); !strings.Contains(out, "No saved jobs yet") {
		t.Errorf("expected empty saved list:\n%s", out)
	}
	if out := e.mustRun("save", "2"); !strings.Contains(out, "Job saved") {
		t.Errorf("expected save notification:\n%s", out)
	}
	if out := e.mustRun("saved"); !strings.Contains(out, "★") {
		t.Errorf("expected saved job listed:\n%s", out)
	}
	if out := e.mustRun("save", "2"); !strings.Contains(out, "Removed from saved") {
		t.Errorf("expected removal notification:\n%s", out)
	}
}

func TestNote(t *testing.T) {
	e := newEnv(t)
	e.mustRun("note", "4", "call", "recruiter", "friday")
	if out := e.mustRun("note", "4"); strings.TrimSpace(out) != "call recruiter friday" {
		t.Errorf("note = %q", out)
	}
	if out := e.mustRun("show", "4"); !strings.Contains(out, "Note:   call recruiter friday") {
		t.Errorf("show should include the note:\n%s", out)
	}
	e.mustRun("note", "4", "")
	if out := e.mustRun("note", "4"); !strings.Contains(out, "No note on job 4") {
		t.Errorf("expected note removed:\n%s", out)
	}
}

func TestShipGatedByChecklist(t *testing.T) {
	e := newEnv(t)
	if _, err := e.run("ship"); !errors.Is(err, errShipLocked) {
		t.Fatalf("expected errShipLocked, got %v", err)
	}

	out := e.mustRun("checklist", "toggle", "1", "2", "3", "4", "5", "6", "7", "8", "9", "10")
	if !strings.Contains(out, "Tests Passed: 10 / 10") {
		t.Errorf("expected all items checked:\n%s", out)
	}
	if out := e.mustRun("ship"); !strings.Contains(out, "Ready to ship") {
		t.Errorf("expected ship view:\n%s", out)
	}

	if out := e.mustRun("checklist", "reset"); !strings.Contains(out, "--yes") {
		t.Errorf("expected confirmation hint:\n%s", out)
	}
	if out := e.mustRun("checklist"); !strings.Contains(out, "Tests Passed: 10 / 10") {
		t.Error("unconfirmed reset should keep progress")
	}
	e.mustRun("checklist", "reset", "--yes")
	if out := e.mustRun("checklist"); !strings.Contains(out, "Tests Passed: 0 / 10") {
		t.Errorf("expected reset checklist:\n%s", out)
	}

	if _, err := e.run("checklist", "toggle", "11"); err == nil {
		t.Error("expected error for out-of-range item")
	}
}

func TestDigest(t *testing.T) {
	e := newEnv(t)
	if out := e.mustRun("digest"); !strings.Contains(out, "Personalize Your Digest") {
		t.Errorf("expected personalize prompt:\n%s", out)
	}

	e.mustRun("prefs", "set", "--roles", "developer", "--skills", "java,react")
	first := e.mustRun("digest")
	if !strings.Contains(first, "Top 10 Jobs for") {
		t.Errorf("expected digest heading:\n%s", first)
	}

	// Changing preferences does not regenerate today's digest.
	e.mustRun("prefs", "set", "--roles", "intern", "--skills", "python")
	if again := e.mustRun("digest"); again != first {
		t.Error("digest should stay locked for the day")
	}
}

func TestProof(t *testing.T) {
	e := newEnv(t)
	if _, err := e.run("proof", "export"); err == nil {
		t.Error("export should fail without links")
	}

	out := e.mustRun("proof", "--project", "https://example.com/p", "--repo", "not a url")
	if !strings.Contains(out, "Status: In Progress") || !strings.Contains(out, "invalid") {
		t.Errorf("unexpected proof output:\n%s", out)
	}

	e.mustRun("proof", "--repo", "https://github.com/u/r", "--deploy", "https://u.example.app")
	out = e.mustRun("proof", "export")
	if !strings.Contains(out, "Final Submission") || !strings.Contains(out, "https://github.com/u/r") {
		t.Errorf("unexpected submission text:\n%s", out)
	}
}

func TestStatsAndPrune(t *testing.T) {
	e := newEnv(t)
	e.mustRun("save", "1")

	out := e.mustRun("stats")
	for _, want := range []string{"Jobs: 60", "Saved: 1", "Checklist: 0/10 (locked)", "Proof: Not Started"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats missing %q:\n%s", want, out)
		}
	}

	if out := e.mustRun("prune"); !strings.Contains(out, "Nothing to prune.") {
		t.Errorf("expected nothing to prune:\n%s", out)
	}

	db, err := store.Open(filepath.Join(e.dir, "jobtrack.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	old := time.Now().AddDate(0, 0, -45)
	if err := db.Set(store.DigestKey(old), `{"date":"old","jobs":[]}`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	db.Close()

	if out := e.mustRun("prune", "--older-than", "7d"); !strings.Contains(out, "Pruned 1 digest(s) older than 7d.") {
		t.Errorf("expected one digest pruned:\n%s", out)
	}
	if _, err := e.run("prune", "--older-than", "-1h"); err == nil {
		t.Error("expected error for negative retention")
	}
}
