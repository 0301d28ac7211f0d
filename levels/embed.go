package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed *.json
var LevelsFS embed.FS

// Default is the level played when none is named.
const Default = "snowfield.json"

// Entity types placed in a level.
const (
	EntityPlayer  = "player"
	EntitySnowman = "snowman"
	EntityStar    = "star"
	EntityHealth  = "health"
)

// Level is a single-layer tile map plus entity placements. Tiles are
// 0 empty, 1 ground, 2 spikes. Entity coordinates are in tiles.
type Level struct {
	Name     string   `json:"name"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	Tiles    []int    `json:"tiles"`
	Entities []Entity `json:"entities,omitempty"`
	// CameraY is the initial vertical scroll in pixels.
	CameraY float64 `json:"camera_y,omitempty"`
}

type Entity struct {
	Type  string                 `json:"type"`
	X     int                    `json:"x"`
	Y     int                    `json:"y"`
	Props map[string]interface{} `json:"props,omitempty"`
}

// IntProp returns an integer property, or def when missing.
func (e Entity) IntProp(name string, def int) int {
	v, ok := e.Props[name]
	if !ok {
		return def
	}
	// encoding/json decodes numbers into float64
	if f, ok := v.(float64); ok {
		return int(f)
	}
	return def
}

// Load reads a level by name from disk if the path exists, otherwise from
// the embedded levels. An empty name loads Default; ".json" is optional.
func Load(name string) (*Level, error) {
	if name == "" {
		name = Default
	}
	if filepath.Ext(name) == "" {
		name += ".json"
	}
	if data, err := os.ReadFile(name); err == nil {
		return Parse(data)
	}
	data, err := fs.ReadFile(LevelsFS, filepath.Base(name))
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

// Validate checks the tile layer size and that exactly one player is placed
// inside the map.
func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("level %q: bad size %dx%d", l.Name, l.Width, l.Height)
	}
	if len(l.Tiles) != l.Width*l.Height {
		return fmt.Errorf("level %q: %d tiles for a %dx%d map", l.Name, len(l.Tiles), l.Width, l.Height)
	}
	players := 0
	for i, e := range l.Entities {
		if e.X < 0 || e.Y < 0 || e.X >= l.Width || e.Y >= l.Height {
			return fmt.Errorf("level %q: entity %d (%s) outside the map", l.Name, i, e.Type)
		}
		switch e.Type {
		case EntityPlayer:
			players++
		case EntitySnowman, EntityStar, EntityHealth:
		default:
			return fmt.Errorf("level %q: entity %d has unknown type %q", l.Name, i, e.Type)
		}
	}
	if players != 1 {
		return fmt.Errorf("level %q: want one player, got %d", l.Name, players)
	}
	return nil
}
