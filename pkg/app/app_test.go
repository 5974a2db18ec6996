package app

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"kanbanboard/pkg/common/database"
	"kanbanboard/pkg/models"

	"github.com/spf13/viper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	database.ResetForTest()
	t.Cleanup(database.ResetForTest)

	cmd := NewCommand()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func countUsers(t *testing.T, dsn string) int64 {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()
	var n int64
	if err := db.Model(&models.User{}).Count(&n).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	return n
}

func seedUser(t *testing.T, dsn string) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()
	if err := db.AutoMigrate(models.Default.Models()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Create(&models.User{Email: "linus@example.com", Username: "linus", HashedPassword: "x"}).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
}

func TestCommandForceReset(t *testing.T) {
	dir := t.TempDir()
	dsn := filepath.Join(dir, "kanban.db")
	seedUser(t, dsn)

	out, err := execute(t, "", "--config", dir, "--dsn", dsn, "--force")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if !strings.Contains(out, "Database cleaned and reset successfully.") {
		t.Errorf("expected success message, got %q", out)
	}
	if strings.Contains(out, "Type 'y'") {
		t.Error("--force must skip the prompt")
	}
	if n := countUsers(t, dsn); n != 0 {
		t.Errorf("expected empty users table, got %d rows", n)
	}
}

func TestCommandCancelled(t *testing.T) {
	dir := t.TempDir()
	dsn := filepath.Join(dir, "kanban.db")
	seedUser(t, dsn)

	out, err := execute(t, "n\n", "--config", dir, "--dsn", dsn)
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if !strings.Contains(out, "Operation cancelled.") {
		t.Errorf("expected cancel message, got %q", out)
	}
	if n := countUsers(t, dsn); n != 1 {
		t.Errorf("expected data kept, got %d users", n)
	}
}

func TestCommandDryRun(t *testing.T) {
	dir := t.TempDir()
	dsn := filepath.Join(dir, "kanban.db")
	seedUser(t, dsn)

	out, err := execute(t, "", "--config", dir, "--dsn", dsn, "--dry-run")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if !strings.Contains(out, "10 tables, 1 rows would be removed.") {
		t.Errorf("unexpected dry run output %q", out)
	}
	if n := countUsers(t, dsn); n != 1 {
		t.Errorf("dry run must keep data, got %d users", n)
	}
}

func TestCommandRejectsBadDriver(t *testing.T) {
	dir := t.TempDir()
	if _, err := execute(t, "", "--config", dir, "--driver", "oracle", "--force"); err == nil {
		t.Error("expected error for unknown driver")
	}
}

func TestCommandRejectsArgs(t *testing.T) {
	if _, err := execute(t, "", "extra"); err == nil {
		t.Error("expected error for positional arguments")
	}
}
