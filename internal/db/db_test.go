package db

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/zulandar/podium/internal/config"
	"github.com/zulandar/podium/internal/models"
)

func TestDSN(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		port     int
		database string
		want     string
	}{
		{
			name:     "default local",
			host:     "127.0.0.1",
			port:     3306,
			database: "podium",
			want:     "root@tcp(127.0.0.1:3306)/podium?parseTime=true",
		},
		{
			name:     "custom host and port",
			host:     "10.0.0.5",
			port:     3307,
			database: "podium_school",
			want:     "root@tcp(10.0.0.5:3307)/podium_school?parseTime=true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DSN(tt.host, tt.port, tt.database)
			if got != tt.want {
				t.Errorf("DSN() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConnectSQLite_InMemory(t *testing.T) {
	gdb, err := ConnectSQLite(":memory:")
	if err != nil {
		t.Fatalf("ConnectSQLite(:memory:) error = %v", err)
	}
	if err := AutoMigrate(gdb); err != nil {
		t.Fatalf("AutoMigrate() error = %v", err)
	}

	// Round-trip one session through the migrated schema.
	s := models.Session{Title: "Math", StartTime: "09:00", EndTime: "10:00", Active: true}
	if err := gdb.Create(&s).Error; err != nil {
		t.Fatalf("create session: %v", err)
	}
	var got models.Session
	if err := gdb.First(&got, s.ID).Error; err != nil {
		t.Fatalf("read session: %v", err)
	}
	if got.StartTime != "09:00" || got.EndTime != "10:00" || !got.Active {
		t.Errorf("session round-trip = %+v", got)
	}
}

func TestConnectSQLite_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "podium.db")
	gdb, err := ConnectSQLite(path)
	if err != nil {
		t.Fatalf("ConnectSQLite(%s) error = %v", path, err)
	}
	if err := AutoMigrate(gdb); err != nil {
		t.Fatalf("AutoMigrate() error = %v", err)
	}
}

func TestConnectSQLite_EmptyPath(t *testing.T) {
	_, err := ConnectSQLite("")
	if err == nil {
		t.Fatal("expected error for empty path")
	}
	if !strings.Contains(err.Error(), "path is required") {
		t.Errorf("error = %q", err.Error())
	}
}

func TestOpen_DriverDispatch(t *testing.T) {
	gdb, err := Open(config.StorageConfig{Driver: "sqlite", Path: ":memory:"})
	if err != nil {
		t.Fatalf("Open(sqlite) error = %v", err)
	}
	if gdb == nil {
		t.Fatal("Open(sqlite) returned nil DB")
	}

	_, err = Open(config.StorageConfig{Driver: "postgres"})
	if err == nil {
		t.Fatal("expected error for unsupported driver")
	}
	if !strings.Contains(err.Error(), "unsupported driver") {
		t.Errorf("error = %q", err.Error())
	}
}

func TestConnectMySQL_Error(t *testing.T) {
	// Port 1 is unlikely to have a MySQL server; expect connection error.
	_, err := ConnectMySQL("127.0.0.1", 1, "nonexistent")
	if err == nil {
		t.Fatal("expected error connecting to invalid port")
	}
	if !strings.Contains(err.Error(), "db: connect to") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "db: connect to")
	}
}

func TestAllModels_Count(t *testing.T) {
	if got := len(AllModels()); got != 2 {
		t.Errorf("AllModels() returned %d models, want 2", got)
	}
}
