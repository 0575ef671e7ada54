package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/potato/internal/constants"
)

func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "potato.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE kv (key TEXT PRIMARY KEY, value BLOB NOT NULL, updated_at TEXT NOT NULL)`); err != nil {
		t.Fatalf("failed to create kv table: %v", err)
	}
	for _, kv := range [][2]string{
		{"potatoHabits", `[]`},
		{"potatoGameStats", `{"harvestCount":1,"growthStage":0,"lastWateredDate":""}`},
	} {
		if _, err := db.Exec("INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)", kv[0], kv[1], "2024-01-01T00:00:00Z"); err != nil {
			t.Fatalf("failed to insert test data: %v", err)
		}
	}
	return dbPath
}

func countRows(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM kv").Scan(&count); err != nil {
		t.Fatalf("failed to query database: %v", err)
	}
	return count
}

// fixedClock returns a clock that advances by step on every call.
func fixedClock(start time.Time, step time.Duration) func() time.Time {
	now := start
	return func() time.Time {
		t := now
		now = now.Add(step)
		return t
	}
}

func TestCreateBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(backupPath), constants.BackupFilePrefix) || filepath.Ext(backupPath) != ".db" {
		t.Errorf("unexpected backup name %s", backupPath)
	}
	if filepath.Dir(backupPath) != mgr.GetBackupDir() {
		t.Errorf("backup written to %s, want %s", filepath.Dir(backupPath), mgr.GetBackupDir())
	}
	if n := countRows(t, backupPath); n != 2 {
		t.Errorf("expected 2 rows in backup, got %d", n)
	}
}

func TestCreateBackupMissingStore(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("CreateBackup should fail when the store does not exist")
	}
}

func TestBackupRotation(t *testing.T) {
	mgr := NewManager(setupTestDB(t))
	mgr.now = fixedClock(time.Date(2024, 1, 1, 8, 0, 0, 0, time.Local), time.Minute)

	for i := 0; i < constants.MaxBackups+5; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Fatalf("expected %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if !backups[i].Timestamp.Before(backups[i-1].Timestamp) {
			t.Errorf("backups not sorted newest first at %d", i)
		}
	}
	// The oldest five were pruned
	oldestKept := time.Date(2024, 1, 1, 8, 5, 0, 0, time.Local)
	if got := backups[len(backups)-1].Timestamp; !got.Equal(oldestKept) {
		t.Errorf("oldest kept backup = %v, want %v", got, oldestKept)
	}
}

func TestUniqueBackupFilenamesWithinOneMinute(t *testing.T) {
	mgr := NewManager(setupTestDB(t))
	now := time.Date(2024, 1, 1, 8, 0, 30, 0, time.Local)
	mgr.now = func() time.Time { return now }

	seen := make(map[string]bool)
	var order []string
	for i := 0; i < 5; i++ {
		p, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
		name := filepath.Base(p)
		if seen[name] {
			t.Errorf("duplicate backup filename: %s", name)
		}
		seen[name] = true
		order = append(order, name)
	}

	wantOrder := []string{
		"potato-20240101-0800.db",
		"potato-20240101-080030.db",
		"potato-20240101-080030-1.db",
		"potato-20240101-080030-2.db",
		"potato-20240101-080030-3.db",
	}
	for i, want := range wantOrder {
		if order[i] != want {
			t.Errorf("backup %d = %s, want %s", i, order[i], want)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(backups[0].Path) != "potato-20240101-080030-3.db" {
		t.Errorf("newest backup = %s", filepath.Base(backups[0].Path))
	}
	if filepath.Base(backups[len(backups)-1].Path) != "potato-20240101-0800.db" {
		t.Errorf("oldest backup = %s", filepath.Base(backups[len(backups)-1].Path))
	}
}

func TestListBackups(t *testing.T) {
	mgr := NewManager(setupTestDB(t))
	mgr.now = fixedClock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local), time.Hour)

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected 0 backups initially, got %d", len(backups))
	}
	if _, ok, _ := mgr.Latest(); ok {
		t.Error("Latest() reported a backup before any were made")
	}

	for i := 0; i < 3; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
	}

	// Unrelated files are ignored
	_ = os.WriteFile(filepath.Join(mgr.GetBackupDir(), "notes.txt"), []byte("x"), 0600)
	_ = os.WriteFile(filepath.Join(mgr.GetBackupDir(), "potato-garbage.db"), []byte("x"), 0600)

	backups, err = mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("expected 3 backups, got %d", len(backups))
	}
	for _, b := range backups {
		if b.Path == "" || b.Size == 0 || b.Timestamp.IsZero() {
			t.Errorf("incomplete backup info %+v", b)
		}
	}

	latest, ok, err := mgr.Latest()
	if err != nil || !ok {
		t.Fatalf("Latest() = %v, %v", ok, err)
	}
	if latest.Path != backups[0].Path {
		t.Errorf("Latest() = %s, want %s", latest.Path, backups[0].Path)
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = fixedClock(time.Date(2024, 1, 1, 8, 0, 0, 0, time.Local), time.Minute)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if _, err := db.Exec("INSERT INTO kv (key, value, updated_at) VALUES ('extra', '1', 'now')"); err != nil {
		t.Fatalf("failed to insert data: %v", err)
	}
	db.Close()
	if n := countRows(t, dbPath); n != 3 {
		t.Fatalf("expected 3 rows before restore, got %d", n)
	}

	safety, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	if n := countRows(t, dbPath); n != 2 {
		t.Errorf("expected 2 rows after restore, got %d", n)
	}

	if safety == "" {
		t.Fatal("RestoreBackup did not report the pre-restore backup")
	}
	if n := countRows(t, safety); n != 3 {
		t.Errorf("pre-restore backup has %d rows, want 3", n)
	}
	if _, err := os.Stat(dbPath + ".restore.tmp"); !os.IsNotExist(err) {
		t.Error("temporary restore file left behind")
	}
}

func TestRestoreBackupRejectsInvalid(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	if _, err := mgr.RestoreBackup(filepath.Join(t.TempDir(), "nope.db")); err == nil {
		t.Error("RestoreBackup should fail for a missing file")
	}

	invalid := filepath.Join(t.TempDir(), "invalid.db")
	if err := os.WriteFile(invalid, []byte("not a database, definitely not"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.RestoreBackup(invalid); err == nil {
		t.Error("RestoreBackup should fail for an invalid backup")
	}
	if n := countRows(t, dbPath); n != 2 {
		t.Errorf("store changed after rejected restore: %d rows", n)
	}
}

func TestJSONStoreBackupAndRestore(t *testing.T) {
	dir := t.TempDir()
	storePath := filepath.Join(dir, "potato.json")
	original := `{"potatoGameStats":{"harvestCount":2,"growthStage":1,"lastWateredDate":"2024-01-01"}}`
	if err := os.WriteFile(storePath, []byte(original), 0600); err != nil {
		t.Fatal(err)
	}

	mgr := NewManager(storePath)
	mgr.now = fixedClock(time.Date(2024, 1, 1, 8, 0, 0, 0, time.Local), time.Minute)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if filepath.Ext(backupPath) != ".json" {
		t.Errorf("JSON backup has extension %s", filepath.Ext(backupPath))
	}

	if err := os.WriteFile(storePath, []byte(`{}`), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.RestoreBackup(backupPath); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	got, err := os.ReadFile(storePath)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != original {
		t.Errorf("restored store = %s", got)
	}

	backups, err := mgr.ListBackups()
	if err != nil || len(backups) != 2 {
		t.Errorf("ListBackups() = %d, %v; want the backup plus the pre-restore copy", len(backups), err)
	}
}

func TestJSONBackupRejectsCorruptSource(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "potato.json")
	if err := os.WriteFile(storePath, []byte("{broken"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewManager(storePath).CreateBackup(); err == nil {
		t.Error("CreateBackup should refuse a corrupt JSON store")
	}
}

func TestParseStamp(t *testing.T) {
	tests := []struct {
		in     string
		ok     bool
		seq    int
		minute int
		second int
	}{
		{in: "20240101-0800", ok: true, seq: 0},
		{in: "20240101-080030", ok: true, seq: 1, second: 30},
		{in: "20240101-080030-4", ok: true, seq: 6, second: 30},
		{in: "20240101-0800-4", ok: false},
		{in: "garbage", ok: false},
	}
	for _, tt := range tests {
		ts, seq, ok := parseStamp(tt.in)
		if ok != tt.ok {
			t.Errorf("parseStamp(%q) ok = %v", tt.in, ok)
			continue
		}
		if !ok {
			continue
		}
		if seq != tt.seq || ts.Second() != tt.second {
			t.Errorf("parseStamp(%q) = %v seq %d", tt.in, ts, seq)
		}
	}
}
