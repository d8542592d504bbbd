package scenario

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

const corridor = `
name: corridor
topology: square8
origin: [0, 0]
rows:
  - "....#...."
  - "..~.#.%.."
  - "....^...."
  - "........."
start: [0, 0]
goal: [8, 0]
goals: [[8, 0], [0, 3]]
lights:
  - {at: [2, 2], radius: 4, intensity: 0.8, falloff: quadratic, color: "#ffcc88"}
changes:
  - {at: [4, 0], terrain: "."}
`

func TestParse(t *testing.T) {
	sc, err := Parse([]byte(corridor))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if sc.Name != "corridor" || sc.Topology != Square8 {
		t.Errorf("name/topology = %q/%q", sc.Name, sc.Topology)
	}
	ter := sc.Terrain()
	if ter.Width() != 9 || ter.Height() != 4 {
		t.Errorf("terrain is %dx%d, want 9x4", ter.Width(), ter.Height())
	}
	if *sc.Start != (Point{0, 0}) || *sc.Goal != (Point{8, 0}) {
		t.Errorf("start/goal = %v/%v", *sc.Start, *sc.Goal)
	}
	if got := sc.AllGoals(); len(got) != 2 || got[1] != (Point{0, 3}) {
		t.Errorf("AllGoals() = %v", got)
	}
	if sc.ViewerPoint() != *sc.Start {
		t.Errorf("viewer should default to start, got %v", sc.ViewerPoint())
	}

	l := sc.Lights[0]
	if l.Radius != 4 || l.Level() != 0.8 || l.Falloff != "quadratic" {
		t.Errorf("light = %+v", l)
	}
	c, err := l.ParseColor()
	if err != nil || c != (color.NRGBA{R: 0xff, G: 0xcc, B: 0x88, A: 0xff}) {
		t.Errorf("ParseColor() = %v, %v", c, err)
	}
	if ct, err := sc.Changes[0].CellType(); err != nil || ct != Floor {
		t.Errorf("change terrain = %v, %v", ct, err)
	}
}

func TestTerrain(t *testing.T) {
	sc, err := Parse([]byte(corridor))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	ter := sc.Terrain()

	tests := []struct {
		col, row int
		want     CellType
		walkable bool
		opaque   bool
		cost     int
	}{
		{0, 0, Floor, true, false, 1},
		{4, 0, Wall, false, true, 1},
		{2, 1, Water, true, false, 3},
		{6, 1, Brush, true, true, 2},
		{4, 2, Cliff, false, false, 1},
		{-1, 0, Wall, false, true, 1}, // outside
		{9, 3, Wall, false, true, 1},
	}
	for _, tt := range tests {
		if got := ter.GetCell(tt.col, tt.row); got != tt.want {
			t.Errorf("GetCell(%d, %d) = %v, want %v", tt.col, tt.row, got, tt.want)
		}
		if got := ter.IsWalkable(tt.col, tt.row); got != tt.walkable {
			t.Errorf("IsWalkable(%d, %d) = %v", tt.col, tt.row, got)
		}
		if got := ter.IsOpaque(tt.col, tt.row); got != tt.opaque {
			t.Errorf("IsOpaque(%d, %d) = %v", tt.col, tt.row, got)
		}
		if got := ter.Cost(tt.col, tt.row); got != tt.cost {
			t.Errorf("Cost(%d, %d) = %d, want %d", tt.col, tt.row, got, tt.cost)
		}
	}

	if ter.Count(Wall) != 2 || ter.Count(Floor) != 31 {
		t.Errorf("Count(Wall) = %d, Count(Floor) = %d", ter.Count(Wall), ter.Count(Floor))
	}
	if !ter.SetCell(4, 0, Floor) || ter.SetCell(20, 0, Floor) {
		t.Error("SetCell should succeed inside and fail outside")
	}
	if got := strings.Split(ter.String(), "\n")[0]; got != "........." {
		t.Errorf("first row after SetCell = %q", got)
	}
}

func TestTerrainOrigin(t *testing.T) {
	ter, err := ParseTerrain([]string{"#.", ".#"}, -3, 5)
	if err != nil {
		t.Fatalf("ParseTerrain() error = %v", err)
	}
	if ter.GetCell(-3, 5) != Wall || ter.GetCell(-2, 5) != Floor || ter.GetCell(-2, 6) != Wall {
		t.Error("origin offset not applied")
	}
	if ter.Contains(0, 0) {
		t.Error("(0, 0) should be outside a terrain at (-3, 5)")
	}
	if ter.String() != "#.\n.#" {
		t.Errorf("String() = %q", ter.String())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"unknown topology", "topology: octagon\nrows: ['...']\n", ErrUnknownTopology},
		{"no rows", "topology: tri\n", ErrEmptyMap},
		{"empty row", "topology: tri\nrows: ['']\n", ErrEmptyMap},
		{"ragged", "topology: iso\nrows: ['...', '..']\n", ErrRaggedRows},
		{"bad glyph", "topology: iso\nrows: ['.x.']\n", ErrUnknownTerrain},
		{"start outside", "topology: square4\nrows: ['...']\nstart: [3, 0]\n", ErrOutOfBounds},
		{"goal outside", "topology: hex-flat\nrows: ['...']\ngoals: [[0, 1]]\n", ErrOutOfBounds},
		{"bad change", "topology: square4\nrows: ['...']\nchanges: [{at: [0, 0], terrain: 'x'}]\n", ErrUnknownTerrain},
		{"negative intensity", "topology: square4\nrows: ['...']\nlights: [{at: [0, 0], radius: 2, intensity: -0.5}]\n", ErrNegativeIntensity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseInvalidLights(t *testing.T) {
	docs := []string{
		"topology: square4\nrows: ['...']\nlights: [{at: [0, 0], radius: 2, falloff: cubic}]\n",
		"topology: square4\nrows: ['...']\nlights: [{at: [0, 0], radius: 2, color: 'red'}]\n",
		"topology: square4\nrows: ['...']\nstart: [1, 2, 3]\n",
	}
	for _, doc := range docs {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("Parse(%q) should fail", doc)
		}
	}
}

func TestLightIntensity(t *testing.T) {
	sc, err := Parse([]byte("topology: square4\nrows: ['...']\nlights:\n  - {at: [0, 0], radius: 2}\n  - {at: [1, 0], radius: 2, intensity: 0}\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := sc.Lights[0].Level(); got != 1 {
		t.Errorf("omitted intensity = %v, want 1", got)
	}
	if got := sc.Lights[1].Level(); got != 0 {
		t.Errorf("explicit zero intensity = %v, want 0", got)
	}
}

func TestParseTopology(t *testing.T) {
	for _, topo := range Topologies {
		got, err := ParseTopology(strings.ToUpper(string(topo)))
		if err != nil || got != topo {
			t.Errorf("ParseTopology(%q) = %q, %v", topo, got, err)
		}
	}
}

func TestPointYAML(t *testing.T) {
	out, err := yaml.Marshal(struct {
		At Point `yaml:"at"`
	}{Point{3, -4}})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if strings.TrimSpace(string(out)) != "at: [3, -4]" {
		t.Errorf("Marshal() = %q", out)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corridor.yaml")
	if err := os.WriteFile(path, []byte(corridor), 0644); err != nil {
		t.Fatalf("failed to write scenario: %v", err)
	}
	if _, err := Load(path); err != nil {
		t.Errorf("Load() error = %v", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of a missing file should fail")
	}
}

func TestCellTypeGlyphs(t *testing.T) {
	for _, ct := range []CellType{Floor, Wall, Water, Cliff, Brush} {
		got, err := ParseCellType(ct.Glyph())
		if err != nil || got != ct {
			t.Errorf("ParseCellType(%q) = %v, %v", ct.Glyph(), got, err)
		}
	}
	if CellType(99).Glyph() != '?' || CellType(99).String() != "Unknown(99)" {
		t.Error("unknown cell type should render as '?'")
	}
}
