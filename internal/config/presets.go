package config

import "sort"

// Presets are complete configurations; each starts from the defaults.
var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"calm": preset(func(c *Config) {
		c.Population.Primary.Speed = 0.15
		c.Population.Secondary.Speed = 0.25
		c.Population.Ambient.Speed = 0.4
		c.Physics.Damping = 0.985
		c.Physics.Repulsion = 0.4
		c.Render.ConnectionAlpha = 0.1
	}),
	"dense": preset(func(c *Config) {
		c.Population.Secondary.Count = 60
		c.Population.Ambient.Count = 120
		c.Population.WavePoints = 120
		c.Render.ConnectionDistance = 110
	}),
	"storm": preset(func(c *Config) {
		c.Population.Primary.Speed = 0.6
		c.Population.Secondary.Speed = 1.0
		c.Population.Ambient.Speed = 1.6
		c.Population.AmplitudeSpan = 35
		c.Physics.Damping = 0.995
		c.Physics.InteractionRadius = 180
		c.Physics.Repulsion = 1.6
		c.Render.PulseRate = 4
	}),
}

func preset(mod func(*Config)) *Config {
	c := DefaultConfig()
	mod(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *cfg
	return &cp
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
