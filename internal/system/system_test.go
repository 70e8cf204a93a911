package system

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFindLatestFile(t *testing.T) {
	dir := t.TempDir()
	names := []string{"a.yaml", "b.YML", "c.txt"}
	for i, name := range names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		mod := time.Now().Add(time.Duration(i) * time.Minute)
		os.Chtimes(path, mod, mod)
	}

	latest, err := FindLatestFile(dir, ".yaml", ".yml")
	if err != nil {
		t.Fatalf("FindLatestFile failed: %v", err)
	}
	if filepath.Base(latest) != "b.YML" {
		t.Errorf("Expected b.YML, got %s", latest)
	}

	if _, err := FindLatestFile(dir, ".png"); err == nil {
		t.Error("Expected error when nothing matches")
	}
}

func TestIsDir(t *testing.T) {
	dir := t.TempDir()
	if !IsDir(dir) {
		t.Errorf("%s should be a directory", dir)
	}
	file := filepath.Join(dir, "f")
	os.WriteFile(file, nil, 0644)
	if IsDir(file) || IsDir(filepath.Join(dir, "missing")) {
		t.Error("Files and missing paths are not directories")
	}
}

func TestWorkers(t *testing.T) {
	ctx := context.Background()
	if got := Workers(ctx, 3, 10); got != 3 {
		t.Errorf("Expected requested 3 workers, got %d", got)
	}
	if got := Workers(ctx, 8, 2); got != 2 {
		t.Errorf("Expected workers capped to jobs, got %d", got)
	}
	if got := Workers(ctx, 0, 0); got < 1 {
		t.Errorf("Expected at least one worker, got %d", got)
	}
}

func TestSnapshot(t *testing.T) {
	res, err := Snapshot(context.Background())
	if err != nil {
		t.Skipf("process stats unavailable: %v", err)
	}
	if res.PID != int32(os.Getpid()) {
		t.Errorf("Expected pid %d, got %d", os.Getpid(), res.PID)
	}
	if res.RSS == 0 {
		t.Error("Expected non-zero RSS")
	}
	t.Logf("Resources: %+v", res)
}

func TestImagePoolBySize(t *testing.T) {
	var pool ImagePool
	rect := image.Rect(0, 0, 4, 4)
	img := pool.Get(rect)
	if img.Bounds() != rect {
		t.Fatalf("Expected bounds %v, got %v", rect, img.Bounds())
	}
	pool.Put(img)
	pool.Put(nil)

	moved := image.Rect(10, 10, 14, 14)
	if got := pool.Get(moved).Bounds(); got != moved {
		t.Fatalf("Expected bounds %v, got %v", moved, got)
	}
	other := pool.Get(image.Rect(0, 0, 8, 8))
	if other.Bounds().Dx() != 8 || len(other.Pix) != 8*8*4 {
		t.Errorf("Expected 8px wide image, got %v", other.Bounds())
	}

	stats := pool.Stats()
	if stats.Allocated+stats.Reused != 3 {
		t.Errorf("Expected 3 gets, got %+v", stats)
	}
	if stats.Allocated < 2 {
		t.Errorf("Expected at least one allocation per size, got %+v", stats)
	}
	t.Logf("Pool stats: %+v", stats)
}
