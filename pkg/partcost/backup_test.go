package partcost

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}

func TestCreateBackup(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "Order.xlsx")
	if err := writeFile(src, "workbook"); err != nil {
		t.Fatal(err)
	}
	abs := filepath.Join(t.TempDir(), "archive")

	tests := []struct {
		name     string
		dir      string
		expected string
	}{
		{"relative", "backups", filepath.Join(dir, "backups", "Order_backup_20260102_030405.xlsx")},
		{"default", "", filepath.Join(dir, "backups", "Order_backup_20260102_030405.xlsx")},
		{"absolute", abs, filepath.Join(abs, "Order_backup_20260102_030405.xlsx")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CreateBackup(src, tt.dir, testNow())
			if err != nil {
				t.Fatalf("CreateBackup failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
			data, err := os.ReadFile(got)
			if err != nil || string(data) != "workbook" {
				t.Errorf("Backup content %q, err %v", data, err)
			}
		})
	}
}

func TestCreateBackupMissingSource(t *testing.T) {
	if _, err := CreateBackup(filepath.Join(t.TempDir(), "none.xlsx"), "", testNow()); err == nil {
		t.Error("Expected error for missing source")
	}
}
