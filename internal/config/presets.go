package config

// Presets are ready-made run configurations for the three encodings.
var Presets = map[string]func() *Config{
	"power": func() *Config {
		cfg := DefaultConfig()
		cfg.Encoding = "power"
		cfg.Dim = 6
		return cfg
	},
	"gauss4": func() *Config {
		cfg := DefaultConfig()
		cfg.Encoding = "gauss4"
		cfg.Dim = 4
		return cfg
	},
	"gauss6": func() *Config {
		cfg := DefaultConfig()
		cfg.Encoding = "gauss6"
		cfg.Dim = 6
		return cfg
	},
	// A cheap configuration for smoke-testing a setup before a full run.
	"quick": func() *Config {
		cfg := DefaultConfig()
		cfg.Particles = 10
		cfg.Iterations = 25
		return cfg
	},
}

func GetPreset(name string) *Config {
	build, ok := Presets[name]
	if !ok {
		return nil
	}
	return build()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
