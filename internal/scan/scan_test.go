package scan

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScanContainers_ExcludeOutAndCache(t *testing.T) {
	root := t.TempDir()

	// 永久排除 out/cache。
	touch(t, filepath.Join(root, "out", "photo-01.Jpg"))
	touch(t, filepath.Join(root, "cache", "report.json"))

	// 正常目录。
	touch(t, filepath.Join(root, "in", "photo.jpg"))
	touch(t, filepath.Join(root, "in", "ignore.txt"))

	got, err := ScanContainers(root, nil)
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if len(got) != 1 {
		t.Fatalf("期望 1 个候选容器，实际 %d", len(got))
	}
	wantRel := filepath.Join("in", "photo.jpg")
	if got[0].RelPath != wantRel {
		t.Fatalf("期望 rel=%q，实际=%q", wantRel, got[0].RelPath)
	}
}

func TestScanContainers_ExcludeDirsFromConfig(t *testing.T) {
	root := t.TempDir()

	touch(t, filepath.Join(root, "temp", "a.png"))
	touch(t, filepath.Join(root, "ok", "b.livp"))

	got, err := ScanContainers(root, []string{"temp"})
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if len(got) != 1 {
		t.Fatalf("期望 1 个候选容器，实际 %d", len(got))
	}
	wantRel := filepath.Join("ok", "b.livp")
	if got[0].RelPath != wantRel {
		t.Fatalf("期望 rel=%q，实际=%q", wantRel, got[0].RelPath)
	}
}

func TestScanContainers_ExtCaseInsensitive(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "X.JPG"))

	got, err := ScanContainers(root, nil)
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if len(got) != 1 {
		t.Fatalf("期望 1 个候选容器，实际 %d", len(got))
	}
	if got[0].Ext != ".jpg" {
		t.Fatalf("期望 ext=.jpg，实际=%q", got[0].Ext)
	}
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("创建目录失败：%v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("写入文件失败：%v", err)
	}
}
