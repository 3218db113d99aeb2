package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/dayquest/internal/storage"
)

func newJSONFixture(t *testing.T) (*Manager, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dayquest.json")
	store := storage.NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	return NewManager(path), path
}

func newSQLiteFixture(t *testing.T) (*Manager, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dayquest.db")
	store := storage.NewSQLiteStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("failed to close store: %v", err)
	}
	return NewManager(path), path
}

func TestCreateBackup_JSON(t *testing.T) {
	m, _ := newJSONFixture(t)

	backupPath, err := m.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	if _, err := os.Stat(backupPath); err != nil {
		t.Fatalf("backup file missing: %v", err)
	}
	name := filepath.Base(backupPath)
	if !strings.HasPrefix(name, BackupFilePrefix) || !strings.HasSuffix(name, ".json") {
		t.Errorf("unexpected backup name %q", name)
	}
}

func TestCreateBackup_SQLite(t *testing.T) {
	m, _ := newSQLiteFixture(t)

	backupPath, err := m.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	// The snapshot must itself be a loadable store.
	restored := storage.NewSQLiteStore(backupPath)
	if err := restored.Load(); err != nil {
		t.Fatalf("backup is not a valid database: %v", err)
	}
	restored.Close()
}

func TestCreateBackup_MissingSource(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "missing.json"))
	if _, err := m.CreateBackup(); err == nil {
		t.Fatal("expected error for missing storage file")
	}
}

func TestListBackups_NewestFirst(t *testing.T) {
	m, _ := newJSONFixture(t)

	if _, err := m.CreateBackup(); err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if _, err := m.CreateBackup(); err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	backups, err := m.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 2 {
		t.Fatalf("backups = %d, want 2", len(backups))
	}
	if backups[0].Timestamp.Before(backups[1].Timestamp) {
		t.Error("backups not sorted newest first")
	}
}

func TestListBackups_EmptyDir(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "dayquest.json"))
	backups, err := m.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("backups = %d, want 0", len(backups))
	}
}

func TestRotation(t *testing.T) {
	m, path := newJSONFixture(t)

	// Create more snapshots than the retention limit by planting fake
	// timestamped files.
	if err := os.MkdirAll(m.GetBackupDir(), 0700); err != nil {
		t.Fatalf("failed to create backup dir: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read store: %v", err)
	}
	for i := 0; i < MaxBackups+3; i++ {
		name := fmt.Sprintf("%s202601%02d-080000.json", BackupFilePrefix, i+1)
		if err := os.WriteFile(filepath.Join(m.GetBackupDir(), name), data, 0600); err != nil {
			t.Fatalf("failed to plant backup: %v", err)
		}
	}

	if _, err := m.CreateBackup(); err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	backups, err := m.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) > MaxBackups {
		t.Errorf("backups = %d after rotation, want at most %d", len(backups), MaxBackups)
	}
}

func TestRestoreBackup(t *testing.T) {
	m, path := newJSONFixture(t)

	backupPath, err := m.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	// Corrupt the live file, then restore.
	if err := os.WriteFile(path, []byte("not json"), 0600); err != nil {
		t.Fatalf("failed to corrupt store: %v", err)
	}
	if err := m.RestoreBackup(backupPath); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}

	store := storage.NewJSONStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("restored store does not load: %v", err)
	}
}

func TestRestoreBackup_RejectsCorrupt(t *testing.T) {
	m, _ := newJSONFixture(t)

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("not json"), 0600); err != nil {
		t.Fatalf("failed to write corrupt file: %v", err)
	}

	if err := m.RestoreBackup(bad); err == nil {
		t.Fatal("expected corrupt backup to be rejected")
	}
}
