// Package scenario loads gridtool map files: a topology, rows of terrain
// glyphs, and the points of interest the commands work with.
//
// Cells are addressed by (col, row) tuples. For hex topologies these are
// odd offset coordinates (odd-r for pointy, odd-q for flat), so the rows
// in the file line up with the rows on screen.
package scenario

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/gridkit/pkg/fov"
)

// Scenario format errors.
var (
	ErrUnknownTopology   = errors.New("unknown topology")
	ErrEmptyMap          = errors.New("scenario has no rows")
	ErrRaggedRows        = errors.New("rows differ in length")
	ErrUnknownTerrain    = errors.New("unknown terrain glyph")
	ErrOutOfBounds       = errors.New("point outside the map")
	ErrNegativeIntensity = errors.New("light intensity is negative")
)

// Topology names the coordinate system a scenario uses.
type Topology string

// Supported topologies.
const (
	HexPointy Topology = "hex-pointy"
	HexFlat   Topology = "hex-flat"
	Square4   Topology = "square4"
	Square8   Topology = "square8"
	Tri       Topology = "tri"
	Iso       Topology = "iso"
)

// Topologies lists every supported topology.
var Topologies = []Topology{HexPointy, HexFlat, Square4, Square8, Tri, Iso}

// ParseTopology validates a topology name.
func ParseTopology(s string) (Topology, error) {
	t := Topology(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Topologies {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTopology, s)
}

// Point is a (col, row) tuple written as a two-element YAML sequence.
type Point [2]int

// UnmarshalYAML accepts [col, row].
func (p *Point) UnmarshalYAML(n *yaml.Node) error {
	var xs []int
	if err := n.Decode(&xs); err != nil {
		return err
	}
	if len(xs) != 2 {
		return fmt.Errorf("line %d: point needs 2 values, got %d", n.Line, len(xs))
	}
	p[0], p[1] = xs[0], xs[1]
	return nil
}

// MarshalYAML writes [col, row] in flow style.
func (p Point) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range p {
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(v)})
	}
	return n, nil
}

func (p Point) String() string { return fmt.Sprintf("(%d, %d)", p[0], p[1]) }

// LightSpec describes one light source.
type LightSpec struct {
	At              Point    `yaml:"at"`
	Radius          int      `yaml:"radius"`
	Intensity       *float32 `yaml:"intensity,omitempty"` // 1 when omitted
	Falloff         string   `yaml:"falloff,omitempty"`
	Color           string   `yaml:"color,omitempty"` // #rrggbb, white when empty
	PenetratesWalls bool     `yaml:"penetrates_walls,omitempty"`
}

// Level returns the light's intensity, 1 when none was given.
func (l LightSpec) Level() float32 {
	if l.Intensity == nil {
		return 1
	}
	return *l.Intensity
}

// ParseColor returns the light's color. An empty string is white.
func (l LightSpec) ParseColor() (color.NRGBA, error) {
	return parseHexColor(l.Color)
}

// Change rewrites one cell after the initial flow computation.
type Change struct {
	At      Point  `yaml:"at"`
	Terrain string `yaml:"terrain"`
}

// Scenario is a parsed scenario file.
type Scenario struct {
	Name     string      `yaml:"name"`
	Topology Topology    `yaml:"topology"`
	Origin   Point       `yaml:"origin"`
	Rows     []string    `yaml:"rows"`
	Start    *Point      `yaml:"start,omitempty"`
	Goal     *Point      `yaml:"goal,omitempty"`
	Goals    []Point     `yaml:"goals,omitempty"`
	Viewer   *Point      `yaml:"viewer,omitempty"` // defaults to start
	Lights   []LightSpec `yaml:"lights,omitempty"`
	Changes  []Change    `yaml:"changes,omitempty"`

	terrain *Terrain
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Parse decodes and validates a scenario document. The document may be
// UTF-8, UTF-16 with a byte order mark, or Windows-1252.
func Parse(data []byte) (*Scenario, error) {
	data, err := decodeText(data)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("decoding scenario: %w", err)
	}
	if err := sc.init(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (s *Scenario) init() error {
	topo, err := ParseTopology(string(s.Topology))
	if err != nil {
		return err
	}
	s.Topology = topo

	s.terrain, err = ParseTerrain(s.Rows, s.Origin[0], s.Origin[1])
	if err != nil {
		return err
	}

	check := func(what string, p *Point) error {
		if p != nil && !s.terrain.Contains(p[0], p[1]) {
			return fmt.Errorf("%s %v: %w", what, *p, ErrOutOfBounds)
		}
		return nil
	}
	if err := errors.Join(check("start", s.Start), check("goal", s.Goal), check("viewer", s.Viewer)); err != nil {
		return err
	}
	for i := range s.Goals {
		if err := check(fmt.Sprintf("goals[%d]", i), &s.Goals[i]); err != nil {
			return err
		}
	}
	for i, l := range s.Lights {
		if l.Level() < 0 {
			return fmt.Errorf("lights[%d]: intensity %v: %w", i, l.Level(), ErrNegativeIntensity)
		}
		if err := check(fmt.Sprintf("lights[%d]", i), &l.At); err != nil {
			return err
		}
		if _, err := fov.ParseFalloff(l.Falloff); err != nil {
			return fmt.Errorf("lights[%d]: %w", i, err)
		}
		if _, err := l.ParseColor(); err != nil {
			return fmt.Errorf("lights[%d]: %w", i, err)
		}
	}
	for i, c := range s.Changes {
		if err := check(fmt.Sprintf("changes[%d]", i), &c.At); err != nil {
			return err
		}
		if _, err := c.CellType(); err != nil {
			return fmt.Errorf("changes[%d]: %w", i, err)
		}
	}
	return nil
}

// CellType returns the terrain the change writes.
func (c Change) CellType() (CellType, error) {
	runes := []rune(c.Terrain)
	if len(runes) != 1 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTerrain, c.Terrain)
	}
	return ParseCellType(runes[0])
}

// Terrain returns the parsed terrain. Callers may modify it.
func (s *Scenario) Terrain() *Terrain { return s.terrain }

// ViewerPoint returns the FOV viewer: Viewer, else Start, else the origin.
func (s *Scenario) ViewerPoint() Point {
	switch {
	case s.Viewer != nil:
		return *s.Viewer
	case s.Start != nil:
		return *s.Start
	default:
		return s.Origin
	}
}

// AllGoals returns Goal followed by Goals, without duplicates.
func (s *Scenario) AllGoals() []Point {
	var out []Point
	seen := make(map[Point]bool)
	add := func(p Point) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	if s.Goal != nil {
		add(*s.Goal)
	}
	for _, g := range s.Goals {
		add(g)
	}
	return out
}

func parseHexColor(s string) (color.NRGBA, error) {
	if s == "" {
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
