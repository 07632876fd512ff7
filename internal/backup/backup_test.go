package backup

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func writeDB(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "financas.db")
	if err := os.WriteFile(path, []byte("sqlite-bytes"), 0o644); err != nil {
		t.Fatalf("write fake db: %v", err)
	}
	return path
}

func backupFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read backup dir: %v", err)
	}
	var names []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), filePrefix) {
			names = append(names, e.Name())
		}
	}
	return names
}

func TestRunOnce_CopiesDatabase(t *testing.T) {
	tmp := t.TempDir()
	dbPath := writeDB(t, tmp)
	backupDir := filepath.Join(tmp, "backups")

	s, err := NewScheduler(dbPath, backupDir, "", 7, testLogger())
	if err != nil {
		t.Fatalf("NewScheduler() error = %v", err)
	}

	if err := s.RunOnce(); err != nil {
		t.Fatalf("RunOnce() error = %v", err)
	}

	names := backupFiles(t, backupDir)
	if len(names) != 1 {
		t.Fatalf("backup files = %v, want exactly one", names)
	}
	data, err := os.ReadFile(filepath.Join(backupDir, names[0]))
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(data) != "sqlite-bytes" {
		t.Errorf("backup content = %q, want copy of the database", data)
	}
}

func TestPrune_KeepsNewest(t *testing.T) {
	tmp := t.TempDir()
	dbPath := writeDB(t, tmp)
	backupDir := filepath.Join(tmp, "backups")

	s, err := NewScheduler(dbPath, backupDir, "", 2, testLogger())
	if err != nil {
		t.Fatalf("NewScheduler() error = %v", err)
	}

	// timestamped names sort chronologically
	old := []string{
		filePrefix + "20240101_030000.db",
		filePrefix + "20240102_030000.db",
		filePrefix + "20240103_030000.db",
	}
	for _, name := range old {
		if err := os.WriteFile(filepath.Join(backupDir, name), []byte("old"), 0o644); err != nil {
			t.Fatalf("seed backup %s: %v", name, err)
		}
	}

	if err := s.RunOnce(); err != nil {
		t.Fatalf("RunOnce() error = %v", err)
	}

	names := backupFiles(t, backupDir)
	if len(names) != 2 {
		t.Fatalf("backup files after prune = %v, want 2", names)
	}
	for _, name := range names {
		if name == old[0] || name == old[1] {
			t.Errorf("old backup %s survived prune", name)
		}
	}
}

func TestNewScheduler_InvalidSchedule(t *testing.T) {
	tmp := t.TempDir()
	if _, err := NewScheduler(writeDB(t, tmp), filepath.Join(tmp, "backups"), "not a cron expr", 7, testLogger()); err == nil {
		t.Error("NewScheduler() with invalid schedule = nil, want error")
	}
}

func TestRunOnce_MissingDatabase(t *testing.T) {
	tmp := t.TempDir()
	s, err := NewScheduler(filepath.Join(tmp, "nope.db"), filepath.Join(tmp, "backups"), "", 7, testLogger())
	if err != nil {
		t.Fatalf("NewScheduler() error = %v", err)
	}
	if err := s.RunOnce(); err == nil {
		t.Error("RunOnce() with missing database = nil, want error")
	}
}
