package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-minirt/pkg/config"
	"github.com/df07/go-minirt/pkg/renderer"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneArg    string
		expectError bool
	}{
		// Built-in scenes
		{"default scene", "default", false},
		{"shadow scene", "shadow", false},
		{"mixed scene", "mixed", false},
		{"empty scene", "empty", false},

		// .rt scenes by path
		{"spheres file", "scenes/spheres.rt", false},
		{"shadow file", "scenes/shadow.rt", false},
		{"mixed file", "scenes/mixed.rt", false},

		// Invalid scenes
		{"unknown scene", "nonexistent", true},
		{"missing file", "scenes/nonexistent.rt", true},
		{"wrong extension", "scenes/spheres.pbrt", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(tt.sceneArg)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene '%s', but got none", tt.sceneArg)
				}
				if s != nil {
					t.Errorf("Expected nil scene for invalid scene '%s'", tt.sceneArg)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene '%s': %v", tt.sceneArg, err)
			}
			if !s.HasCamera() {
				t.Errorf("Scene '%s' has no camera", tt.sceneArg)
			}
			if tt.sceneArg != "empty" && len(s.Objects) == 0 {
				t.Errorf("Scene '%s' has no objects", tt.sceneArg)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minirt.json")
	if err := os.WriteFile(path, []byte(`{"width": 320, "height": 200}`), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := loadConfig(path, config.Flags{Height: 100})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Width != 320 || cfg.Height != 100 {
		t.Errorf("Expected 320x100, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Output != "output.bmp" {
		t.Errorf("Expected default output, got %q", cfg.Output)
	}
}

type recordingUploader struct {
	key         string
	contentType string
	data        []byte
}

func (u *recordingUploader) Upload(ctx context.Context, key, contentType string, data []byte) error {
	u.key, u.contentType, u.data = key, contentType, data
	return nil
}

func TestUploadEncoded(t *testing.T) {
	fb := renderer.NewFramebuffer(4, 4)
	u := &recordingUploader{}

	if err := uploadEncoded(context.Background(), u, "out/frame.png", fb); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.HasPrefix(u.key, "renders/render_") || !strings.HasSuffix(u.key, ".png") {
		t.Errorf("Unexpected key %q", u.key)
	}
	if u.contentType != "image/png" {
		t.Errorf("Unexpected content type %q", u.contentType)
	}
	if len(u.data) < 8 || string(u.data[1:4]) != "PNG" {
		t.Errorf("Expected PNG data")
	}
}

func TestRun_NoWindow(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frame.bmp")
	err := run([]string{"-scene", "shadow", "-width", "40", "-height", "30", "-no-window", "-output", out})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if info, err := os.Stat(out); err != nil || info.Size() == 0 {
		t.Errorf("Expected a written image at %s", out)
	}
}

func TestRun_MissingScene(t *testing.T) {
	if err := run([]string{"-no-window"}); err == nil {
		t.Error("Expected a usage error without a scene")
	}
}

func TestRun_HelpFlags(t *testing.T) {
	for _, args := range [][]string{{"-h"}, {"-help"}, {"--help"}} {
		if err := run(args); err != nil {
			t.Errorf("%v: expected help to succeed, got %v", args, err)
		}
	}
}

func TestRun_UnknownFlag(t *testing.T) {
	if err := run([]string{"-bogus"}); err == nil {
		t.Error("Expected an error for an undefined flag")
	}
}
