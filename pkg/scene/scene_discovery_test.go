package scene

import (
	"os"
	"path/filepath"
	"testing"
)

func TestListRTScenes(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"two-spheres.rt": "# Scene: Two Spheres\n# Description: A pair of spheres\nC 0,0,-5 0,0,1 70\n",
		"plain.rt":       "C 0,0,-5 0,0,1 70\n",
		"ignored.txt":    "not a scene",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	scenes, err := ListRTScenes(dir)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(scenes) != 2 {
		t.Fatalf("Expected 2 scenes, got %d", len(scenes))
	}

	// Sorted by name: "Plain" < "Two Spheres"
	if scenes[0].Name != "Plain" || scenes[0].ID != "rt:plain" {
		t.Errorf("Unexpected first scene: %+v", scenes[0])
	}
	if scenes[1].Name != "Two Spheres" || scenes[1].Description != "A pair of spheres" {
		t.Errorf("Unexpected second scene: %+v", scenes[1])
	}
	if scenes[1].Type != "rt" {
		t.Errorf("Expected type rt, got %q", scenes[1].Type)
	}
}

func TestListRTScenes_MissingDir(t *testing.T) {
	scenes, err := ListRTScenes(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(scenes) != 0 {
		t.Errorf("Expected no scenes, got %d", len(scenes))
	}
}

func TestListScenes_IncludesBuiltins(t *testing.T) {
	scenes, err := ListScenes(t.TempDir())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(scenes) != len(BuiltinSceneNames()) {
		t.Fatalf("Expected %d built-in scenes, got %d", len(BuiltinSceneNames()), len(scenes))
	}
	for _, s := range scenes {
		if s.Type != "builtin" {
			t.Errorf("Expected builtin type, got %q for %s", s.Type, s.ID)
		}
	}
}

func TestTitleCase(t *testing.T) {
	tests := map[string]string{
		"cornell-empty": "Cornell Empty",
		"two_spheres":   "Two Spheres",
		"default":       "Default",
	}
	for in, expected := range tests {
		if got := titleCase(in); got != expected {
			t.Errorf("titleCase(%q) = %q, expected %q", in, got, expected)
		}
	}
}
