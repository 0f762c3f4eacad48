package config

// Siftfile represents the structure of the sift.yaml configuration file.
type Siftfile struct {
	Version    string   `yaml:"version"`
	Root       string   `yaml:"root"`
	SpecGlob   string   `yaml:"specGlob"`
	Ignore     []string `yaml:"ignore"`
	DebounceMs int      `yaml:"debounceMs"`
	Runner     []string `yaml:"runner"`
}
