package domain

import "time"

// DefaultDebounce is the debounce interval applied to watch events when the
// configuration does not override it.
const DefaultDebounce = 200 * time.Millisecond

// DefaultSpecGlob matches spec module file names.
const DefaultSpecGlob = "*_spec.go"

// Config is the resolved project configuration.
type Config struct {
	// Root is the absolute project root all relative paths resolve against.
	Root string
	// SpecGlob matches spec module base names under Root.
	SpecGlob string
	// Ignore lists directory name patterns excluded from walking and watching.
	Ignore []string
	// Debounce is the watch event coalescing window.
	Debounce time.Duration
	// RunnerCmd is the external compiler/executor command invoked per module.
	RunnerCmd []string
}

// DefaultConfig returns the configuration used when no sift.yaml is present.
func DefaultConfig(root string) *Config {
	return &Config{
		Root:     root,
		SpecGlob: DefaultSpecGlob,
		Ignore:   []string{"node_modules", "vendor", ".direnv"},
		Debounce: DefaultDebounce,
		RunnerCmd: []string{
			"sift-run",
		},
	}
}
