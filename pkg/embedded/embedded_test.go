package embedded

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/arena.yaml":         {Data: []byte("waves: {}\n")},
		"data/enemy_types.yaml":   {Data: []byte("types: {}\n")},
		"data/weapons/rifle.yaml": {Data: []byte("name: rifle\n")},
	}
}

func TestInitAndReset(t *testing.T) {
	t.Cleanup(Reset)

	Reset()
	if IsInitialized() {
		t.Fatal("should not be initialized after Reset")
	}
	Init(testFS())
	if !IsInitialized() {
		t.Fatal("should be initialized after Init")
	}
	Init(nil)
	if IsInitialized() {
		t.Error("Init(nil) must leave the package uninitialized")
	}
}

func TestReadFileFromEmbeddedFS(t *testing.T) {
	t.Cleanup(Reset)
	Init(testFS())

	// 路径标准化："./" 前缀应被移除
	data, err := ReadFile("./data/arena.yaml")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "waves: {}\n" {
		t.Errorf("unexpected content: %q", data)
	}

	if _, err := ReadFile("data/missing.yaml"); err == nil {
		t.Error("missing embedded file should return an error")
	}
}

func TestReadFileFallsBackToOS(t *testing.T) {
	t.Cleanup(Reset)
	Init(testFS())

	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("x: 1\n"), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	data, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile from OS failed: %v", err)
	}
	if string(data) != "x: 1\n" {
		t.Errorf("unexpected content: %q", data)
	}
	if !Exists(path) {
		t.Error("Exists should report OS files")
	}
}

func TestExistsAndGlob(t *testing.T) {
	t.Cleanup(Reset)

	Reset()
	if _, err := Glob("data/*.yaml"); err == nil {
		t.Error("Glob should fail when not initialized")
	}

	Init(testFS())
	if !Exists("data/enemy_types.yaml") {
		t.Error("embedded file should exist")
	}
	if Exists("data/nope.yaml") {
		t.Error("missing embedded file should not exist")
	}

	matches, err := Glob("data/*.yaml")
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("expected 2 matches, got %d: %v", len(matches), matches)
	}

	if _, err := Glob("assets/*.png"); err == nil {
		t.Error("Glob with unknown prefix should fail")
	}
}
