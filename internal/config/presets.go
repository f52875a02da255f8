package config

import (
	"sort"

	"github.com/san-kum/discwalk/internal/walk"
)

var Presets = map[string]*Config{
	"original": {
		Region: walk.DefaultRegion, Disc: DiscConfig{Radius: walk.DefaultRadius},
		Walk: WalkConfig{Step: walk.DefaultStep, Delta: 30}, Frames: walk.DefaultFrames,
		FPS: DefaultFPS, Background: DefaultBackground,
	},
	"classic": {
		Region: walk.DefaultRegion, Disc: DiscConfig{Radius: 5},
		Walk: WalkConfig{Step: 3, Delta: 20}, Frames: 20000,
		FPS: DefaultFPS, Background: DefaultBackground,
	},
	"dense": {
		Region: walk.DefaultRegion, Disc: DiscConfig{Radius: 1.5},
		Walk: WalkConfig{Step: 1.2, Delta: 15}, Frames: 250000,
		FPS: DefaultFPS, Background: DefaultBackground,
	},
	"gradient": {
		Region: walk.DefaultRegion, Disc: DiscConfig{Radius: 3},
		Walk: WalkConfig{Step: 2.64, Delta: walk.MinColorDelta}, Frames: 50000,
		FPS: DefaultFPS, Background: "#101010",
	},
	"storm": {
		Region: walk.DefaultRegion, Disc: DiscConfig{Radius: 2.2},
		Walk: WalkConfig{Step: 8, Delta: walk.MaxColorDelta}, Frames: 50000,
		FPS: DefaultFPS, Background: "#000000",
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
