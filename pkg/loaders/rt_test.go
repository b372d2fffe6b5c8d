package loaders

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-minirt/pkg/core"
	"github.com/df07/go-minirt/pkg/geometry"
	"github.com/df07/go-minirt/pkg/scene"
)

const sampleScene = `# Scene: Sample
A 0.2 255,255,255

C -50,0,20 0,0,1 70
L -40,0,30 0.7 255,255,255

pl 0,0,0 0,1.0,0 255,0,225
sp 0,0,20 20 255,0,0
cy 50.0,0.0,20.6 0,0,1.0 14.2 21.42 10,0,255
`

func TestParseRT_Sample(t *testing.T) {
	s, err := ParseRT(strings.NewReader(sampleScene))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if s.Ambient == nil {
		t.Fatal("Expected ambient to be set")
	}
	if s.Ambient.Ratio != 0.2 {
		t.Errorf("Expected ambient ratio 0.2, got %f", s.Ambient.Ratio)
	}
	if s.Ambient.Color != core.NewVec3(1, 1, 1) {
		t.Errorf("Expected white ambient, got %v", s.Ambient.Color)
	}

	if !s.HasCamera() {
		t.Fatal("Expected camera to be set")
	}
	if s.Camera.Position != core.NewVec3(-50, 0, 20) || s.Camera.FOV != 70 {
		t.Errorf("Unexpected camera: %+v", s.Camera)
	}

	if len(s.Lights) != 1 || s.Lights[0].Ratio != 0.7 {
		t.Fatalf("Unexpected lights: %+v", s.Lights)
	}

	if len(s.Objects) != 3 {
		t.Fatalf("Expected 3 objects, got %d", len(s.Objects))
	}
	expectedKinds := []geometry.Kind{geometry.KindPlane, geometry.KindSphere, geometry.KindCylinder}
	for i, kind := range expectedKinds {
		if s.Objects[i].Kind() != kind {
			t.Errorf("Object %d: expected %v, got %v", i, kind, s.Objects[i].Kind())
		}
	}

	sphere := s.Objects[1].Primitive.(*geometry.Sphere)
	if sphere.Radius != 10 {
		t.Errorf("Expected radius 10 from diameter 20, got %f", sphere.Radius)
	}
	if s.Objects[1].Color != core.NewVec3(1, 0, 0) {
		t.Errorf("Expected red sphere, got %v", s.Objects[1].Color)
	}

	cylinder := s.Objects[2].Primitive.(*geometry.Cylinder)
	if cylinder.Diameter != 14.2 || cylinder.Height != 21.42 {
		t.Errorf("Unexpected cylinder: %+v", cylinder)
	}
	if math.Abs(s.Objects[2].Color.X-10.0/255.0) > 1e-12 {
		t.Errorf("Expected color scaled by 255, got %v", s.Objects[2].Color)
	}
}

func TestParseRT_LargeInput(t *testing.T) {
	// Far beyond a single 1 KiB read
	var b strings.Builder
	b.WriteString("C 0,0,-5 0,0,1 90\n")
	const count = 200
	for i := 0; i < count; i++ {
		b.WriteString("sp 0,0,10 1 255,255,255\n")
	}
	if b.Len() < 4096 {
		t.Fatalf("Test input too small: %d bytes", b.Len())
	}

	s, err := ParseRT(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(s.Objects) != count {
		t.Errorf("Expected %d objects, got %d", count, len(s.Objects))
	}
}

func TestParseRT_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  error
		wantLine int
	}{
		{"unknown identifier", "C 0,0,0 0,0,1 70\nxx 1 2 3\n", ErrUnknownIdentifier, 2},
		{"missing field", "sp 0,0,0 2\n", ErrMissingField, 1},
		{"bad float", "A abc 255,255,255\n", ErrMalformedNumber, 1},
		{"bad triple", "\n\nL 1,2 0.5 255,255,255\n", ErrMalformedNumber, 3},
		{"bad fov", "C 0,0,0 0,0,1 wide\n", ErrMalformedNumber, 1},
		{"second camera", "C 0,0,0 0,0,1 70\nA 0.2 255,255,255\nC 1,1,1 0,0,1 60\n", ErrDuplicateCamera, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRT(strings.NewReader(tt.input))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected %v, got %v", tt.wantErr, err)
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("Expected *ParseError, got %T", err)
			}
			if parseErr.Line != tt.wantLine {
				t.Errorf("Expected line %d, got %d", tt.wantLine, parseErr.Line)
			}
		})
	}
}

func TestParseRT_CommentsAndBlankLines(t *testing.T) {
	input := "# header\n\n   \n#sp 0,0,0 1 0,0,0\nC 0,0,0 0,0,1 70\n"
	s, err := ParseRT(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(s.Objects) != 0 {
		t.Errorf("Expected commented sphere to be skipped, got %d objects", len(s.Objects))
	}
}

func TestLoadRT(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "valid.rt")
	if err := os.WriteFile(valid, []byte(sampleScene), 0644); err != nil {
		t.Fatal(err)
	}
	noCamera := filepath.Join(dir, "nocamera.rt")
	if err := os.WriteFile(noCamera, []byte("sp 0,0,0 1 255,0,0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadRT(valid); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if _, err := LoadRT(noCamera); !errors.Is(err, scene.ErrNoCamera) {
		t.Errorf("Expected ErrNoCamera, got %v", err)
	}
	if _, err := LoadRT(filepath.Join(dir, "missing.rt")); err == nil {
		t.Error("Expected error for missing file")
	}
	if _, err := LoadRT(filepath.Join(dir, "scene.txt")); err == nil {
		t.Error("Expected error for wrong extension")
	}
	if _, err := LoadRT(""); err == nil {
		t.Error("Expected error for empty filename")
	}

	// The file exists, but the path climbs out through ".."
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	traversal := []string{
		dir + "/sub/../valid.rt",
		"../valid.rt",
		"scenes/../../valid.rt",
	}
	for _, path := range traversal {
		if _, err := LoadRT(path); err == nil || !strings.Contains(err.Error(), "traversal") {
			t.Errorf("Expected traversal error for %q, got %v", path, err)
		}
	}
}
