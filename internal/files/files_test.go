package files

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGateway_Exists(t *testing.T) {
	tmpDir := t.TempDir()
	g := Gateway{}

	existing := filepath.Join(tmpDir, "present.zip")
	if err := os.WriteFile(existing, []byte("content"), 0644); err != nil {
		t.Fatal(err)
	}

	if !g.Exists(existing) {
		t.Error("Exists() = false for existing file")
	}
	if g.Exists(filepath.Join(tmpDir, "absent.zip")) {
		t.Error("Exists() = true for absent file")
	}
	if !g.Exists(tmpDir) {
		t.Error("Exists() = false for existing directory")
	}
}

func TestGateway_EnsureDir(t *testing.T) {
	tmpDir := t.TempDir()
	g := Gateway{}

	// 创建多级目录
	nested := filepath.Join(tmpDir, "DOCS2023", "Mar")
	if err := g.EnsureDir(nested); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}
	info, err := os.Stat(nested)
	if err != nil || !info.IsDir() {
		t.Error("directory was not created")
	}

	// 已存在时不报错
	if err := g.EnsureDir(nested); err != nil {
		t.Errorf("EnsureDir() on existing directory error = %v", err)
	}
}

func TestGateway_Move(t *testing.T) {
	tmpDir := t.TempDir()
	g := Gateway{}

	source := filepath.Join(tmpDir, "source.zip")
	destination := filepath.Join(tmpDir, "destination.zip")
	if err := os.WriteFile(source, []byte("content"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := g.Move(source, destination); err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if _, err := os.Stat(source); !os.IsNotExist(err) {
		t.Error("source file still exists after move")
	}
	content, err := os.ReadFile(destination)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "content" {
		t.Errorf("destination content = %q, want %q", content, "content")
	}

	// 源文件消失
	t.Run("missing source", func(t *testing.T) {
		err := g.Move(filepath.Join(tmpDir, "gone.zip"), filepath.Join(tmpDir, "other.zip"))
		if err == nil {
			t.Error("expected error for missing source")
		}
	})

	// 目标已存在时拒绝覆盖
	t.Run("existing destination", func(t *testing.T) {
		second := filepath.Join(tmpDir, "second.zip")
		if err := os.WriteFile(second, []byte("new"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := g.Move(second, destination); err == nil {
			t.Error("expected error for existing destination")
		}
		// 原有内容未被覆盖
		content, err := os.ReadFile(destination)
		if err != nil {
			t.Fatal(err)
		}
		if string(content) != "content" {
			t.Error("destination was overwritten")
		}
	})
}
