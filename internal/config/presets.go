package config

import "sort"

var Presets = map[string]*Config{
	"glider-torus": {
		Width: 16, Height: 16, Toroidal: true, Generations: 64, StopOnCycle: true,
		Pattern: "glider", Placement: PlacementConfig{X: 1, Y: 1},
		View: ViewConfig{FPS: 10, Theme: "retro"},
	},
	"glider-wall": {
		Width: 12, Height: 12, Toroidal: false, Generations: 60,
		Pattern: "glider", Placement: PlacementConfig{X: 2, Y: 2},
		View: ViewConfig{FPS: 10, Theme: "minimal"},
	},
	"rpentomino": {
		Width: 64, Height: 48, Toroidal: false, Generations: 300, StopOnCycle: true,
		Pattern: "rpentomino", Placement: PlacementConfig{X: 30, Y: 22},
		View: ViewConfig{FPS: 20, Theme: "ocean"},
	},
	"lwss": {
		Width: 40, Height: 12, Toroidal: true, Generations: 80, StopOnCycle: true,
		Pattern: "lwss", Placement: PlacementConfig{X: 2, Y: 4, Rotation: 2},
		View: ViewConfig{FPS: 15, Theme: "cyberpunk"},
	},
	"blinker": {
		Width: 5, Height: 5, Toroidal: false, Generations: 10, StopOnCycle: true,
		Pattern: "blinker", Placement: PlacementConfig{X: 1, Y: 1},
		View: ViewConfig{FPS: 4, Theme: "minimal"},
	},
	"soup": {
		Width: 80, Height: 40, Toroidal: true, Generations: 500, StopOnCycle: true,
		Soup: SoupConfig{Density: DefaultDensity, Seed: 1},
		View: ViewConfig{FPS: 30, Theme: "sunset"},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
