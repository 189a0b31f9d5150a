package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"math"
	"path"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/platformer/collision"
	"github.com/milk9111/platformer/motion"
)

//go:embed *.json
var LevelsFS embed.FS

// DefaultLayer is used for solids that do not name a layer.
const DefaultLayer = "ground"

type Level struct {
	Name     string    `json:"name"`
	Spawn    Point     `json:"spawn"`
	KillY    float64   `json:"kill_y"`
	Layers   []string  `json:"layers,omitempty"`
	Solids   []Solid   `json:"solids"`
	Segments []Segment `json:"segments,omitempty"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Solid is an axis-aligned box; X/Y is its bottom-left corner.
type Solid struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	W     float64 `json:"w"`
	H     float64 `json:"h"`
	Layer string  `json:"layer,omitempty"`
}

// Segment is a thin static line, used for slopes and thin ledges.
type Segment struct {
	A      Point   `json:"a"`
	B      Point   `json:"b"`
	Radius float64 `json:"radius,omitempty"`
	Layer  string  `json:"layer,omitempty"`
}

// Load reads an embedded level by base name; the .json suffix is optional.
func Load(name string) (*Level, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("levels: empty level name")
	}
	if path.Ext(name) != ".json" {
		name += ".json"
	}
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	return Parse(data)
}

// Parse decodes a level document.
func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal: %w", err)
	}
	if len(lvl.Layers) == 0 {
		lvl.Layers = []string{DefaultLayer}
	}
	if len(lvl.Layers) > 32 {
		return nil, fmt.Errorf("levels: %s declares %d layers, at most 32 supported", lvl.Name, len(lvl.Layers))
	}
	return &lvl, nil
}

// Names lists the embedded levels without their suffix.
func Names() []string {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names
}

// Layer returns the bit for a named layer.
func (l *Level) Layer(name string) (motion.Layer, error) {
	if name == "" {
		name = DefaultLayer
	}
	for i, n := range l.Layers {
		if n == name {
			return motion.Layer(1) << i, nil
		}
	}
	return 0, fmt.Errorf("levels: %s: unknown layer %q", l.Name, name)
}

// Mask combines named layers into one mask.
func (l *Level) Mask(names ...string) (motion.Layer, error) {
	var mask motion.Layer
	for _, n := range names {
		bit, err := l.Layer(n)
		if err != nil {
			return 0, err
		}
		mask |= bit
	}
	return mask, nil
}

// SpawnPosition returns the spawn point in world space.
func (l *Level) SpawnPosition() mgl64.Vec3 {
	return mgl64.Vec3{l.Spawn.X, l.Spawn.Y, 0}
}

// Bounds returns the box enclosing all solids.
func (l *Level) Bounds() (lo, hi mgl64.Vec2) {
	if len(l.Solids) == 0 {
		return mgl64.Vec2{}, mgl64.Vec2{}
	}
	lo = mgl64.Vec2{math.Inf(1), math.Inf(1)}
	hi = mgl64.Vec2{math.Inf(-1), math.Inf(-1)}
	for _, s := range l.Solids {
		lo[0] = math.Min(lo[0], s.X)
		lo[1] = math.Min(lo[1], s.Y)
		hi[0] = math.Max(hi[0], s.X+s.W)
		hi[1] = math.Max(hi[1], s.Y+s.H)
	}
	return lo, hi
}

// BuildSpace creates the static collision space for the level.
func (l *Level) BuildSpace() (*collision.Space, error) {
	space := collision.NewSpace()
	for i, s := range l.Solids {
		layer, err := l.Layer(s.Layer)
		if err != nil {
			return nil, fmt.Errorf("levels: solid %d: %w", i, err)
		}
		if s.W <= 0 || s.H <= 0 {
			return nil, fmt.Errorf("levels: %s: solid %d has non-positive size %vx%v", l.Name, i, s.W, s.H)
		}
		space.AddBox(s.X, s.Y, s.X+s.W, s.Y+s.H, layer)
	}
	for i, seg := range l.Segments {
		layer, err := l.Layer(seg.Layer)
		if err != nil {
			return nil, fmt.Errorf("levels: segment %d: %w", i, err)
		}
		space.AddSegment(mgl64.Vec2{seg.A.X, seg.A.Y}, mgl64.Vec2{seg.B.X, seg.B.Y}, seg.Radius, layer)
	}
	return space, nil
}
