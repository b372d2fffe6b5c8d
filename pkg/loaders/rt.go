package loaders

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/df07/go-minirt/pkg/core"
	"github.com/df07/go-minirt/pkg/geometry"
	"github.com/df07/go-minirt/pkg/scene"
)

var (
	// ErrUnknownIdentifier is returned for a line whose first field is not a known element
	ErrUnknownIdentifier = errors.New("unknown identifier")
	// ErrMissingField is returned when a line has fewer fields than its element needs
	ErrMissingField = errors.New("missing field")
	// ErrMalformedNumber is returned for a field that is not a number or triple
	ErrMalformedNumber = errors.New("malformed number")
	// ErrDuplicateCamera is returned for a second C line; a scene has one camera
	ErrDuplicateCamera = errors.New("duplicate camera")
)

// ParseError locates a failure in a scene file
type ParseError struct {
	Line  int
	Ident string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Ident == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d (%s): %v", e.Line, e.Ident, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// elementArity is the number of fields after the identifier
var elementArity = map[string]int{
	"A":  2,
	"C":  3,
	"L":  3,
	"sp": 3,
	"pl": 3,
	"cy": 5,
}

// RTParser holds the state of a single .rt parse
type RTParser struct {
	scene      *scene.Scene
	lineNumber int
}

// NewRTParser creates a parser that fills a fresh scene
func NewRTParser() *RTParser {
	return &RTParser{scene: &scene.Scene{}}
}

// ParseRT parses .rt scene content from an io.Reader. The whole input is
// consumed line by line; objects and lights keep their file order.
func ParseRT(reader io.Reader) (*scene.Scene, error) {
	parser := NewRTParser()

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		if err := parser.processLine(scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading input: %w", err)
	}

	return parser.scene, nil
}

// LoadRT loads, parses and validates a .rt scene file
func LoadRT(filename string) (*scene.Scene, error) {
	if err := validateFilePath(filename); err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Clean(filename))
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	s, err := ParseRT(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

func validateFilePath(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}
	if !strings.EqualFold(filepath.Ext(filename), ".rt") {
		return fmt.Errorf("invalid file type: only .rt files are allowed")
	}

	// Reject traversal even when Clean would resolve it away
	for _, part := range strings.Split(filepath.ToSlash(filename), "/") {
		if part == ".." {
			return fmt.Errorf("invalid file path: directory traversal not allowed")
		}
	}
	return nil
}

// processLine parses one line into the scene
func (p *RTParser) processLine(line string) error {
	p.lineNumber++

	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}

	ident := fields[0]
	arity, ok := elementArity[ident]
	if !ok {
		return p.errorf(ident, "%w %q", ErrUnknownIdentifier, ident)
	}
	if len(fields)-1 < arity {
		return p.errorf(ident, "%w: want %d, got %d", ErrMissingField, arity, len(fields)-1)
	}

	var err error
	switch ident {
	case "A":
		err = p.parseAmbient(fields[1:])
	case "C":
		err = p.parseCamera(fields[1:])
	case "L":
		err = p.parseLight(fields[1:])
	case "sp":
		err = p.parseSphere(fields[1:])
	case "pl":
		err = p.parsePlane(fields[1:])
	case "cy":
		err = p.parseCylinder(fields[1:])
	}
	if err != nil {
		return &ParseError{Line: p.lineNumber, Ident: ident, Err: err}
	}
	return nil
}

func (p *RTParser) errorf(ident, format string, args ...interface{}) error {
	return &ParseError{Line: p.lineNumber, Ident: ident, Err: fmt.Errorf(format, args...)}
}

// A ratio r,g,b
func (p *RTParser) parseAmbient(f []string) error {
	ratio, err := parseFloat(f[0])
	if err != nil {
		return err
	}
	color, err := parseColor(f[1])
	if err != nil {
		return err
	}
	p.scene.SetAmbient(ratio, color)
	return nil
}

// C x,y,z nx,ny,nz fov
func (p *RTParser) parseCamera(f []string) error {
	if p.scene.HasCamera() {
		return ErrDuplicateCamera
	}
	position, err := parseVec3(f[0])
	if err != nil {
		return err
	}
	orientation, err := parseVec3(f[1])
	if err != nil {
		return err
	}
	fov, err := strconv.Atoi(f[2])
	if err != nil {
		return fmt.Errorf("%w: fov %q", ErrMalformedNumber, f[2])
	}
	p.scene.SetCamera(scene.Camera{Position: position, Orientation: orientation, FOV: fov})
	return nil
}

// L x,y,z ratio r,g,b
func (p *RTParser) parseLight(f []string) error {
	position, err := parseVec3(f[0])
	if err != nil {
		return err
	}
	ratio, err := parseFloat(f[1])
	if err != nil {
		return err
	}
	color, err := parseColor(f[2])
	if err != nil {
		return err
	}
	p.scene.AddLight(scene.Light{Position: position, Ratio: ratio, Color: color})
	return nil
}

// sp x,y,z diameter r,g,b
func (p *RTParser) parseSphere(f []string) error {
	center, err := parseVec3(f[0])
	if err != nil {
		return err
	}
	diameter, err := parseFloat(f[1])
	if err != nil {
		return err
	}
	color, err := parseColor(f[2])
	if err != nil {
		return err
	}
	p.scene.AddObject(geometry.NewSphereFromDiameter(center, diameter), color)
	return nil
}

// pl x,y,z nx,ny,nz r,g,b
func (p *RTParser) parsePlane(f []string) error {
	point, err := parseVec3(f[0])
	if err != nil {
		return err
	}
	normal, err := parseVec3(f[1])
	if err != nil {
		return err
	}
	color, err := parseColor(f[2])
	if err != nil {
		return err
	}
	p.scene.AddObject(geometry.NewPlane(point, normal), color)
	return nil
}

// cy x,y,z ax,ay,az diameter height r,g,b
func (p *RTParser) parseCylinder(f []string) error {
	center, err := parseVec3(f[0])
	if err != nil {
		return err
	}
	axis, err := parseVec3(f[1])
	if err != nil {
		return err
	}
	diameter, err := parseFloat(f[2])
	if err != nil {
		return err
	}
	height, err := parseFloat(f[3])
	if err != nil {
		return err
	}
	color, err := parseColor(f[4])
	if err != nil {
		return err
	}
	p.scene.AddObject(geometry.NewCylinder(center, axis, diameter, height), color)
	return nil
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedNumber, s)
	}
	return v, nil
}

// parseVec3 parses a comma separated "x,y,z" triple
func parseVec3(s string) (core.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return core.Vec3{}, fmt.Errorf("%w: expected x,y,z, got %q", ErrMalformedNumber, s)
	}
	var xyz [3]float64
	for i, part := range parts {
		v, err := parseFloat(part)
		if err != nil {
			return core.Vec3{}, err
		}
		xyz[i] = v
	}
	return core.NewVec3(xyz[0], xyz[1], xyz[2]), nil
}

// parseColor parses "r,g,b" in 0-255 and scales it to [0,1]
func parseColor(s string) (core.Vec3, error) {
	v, err := parseVec3(s)
	if err != nil {
		return core.Vec3{}, err
	}
	return v.Divide(255.0), nil
}
