package unfold

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Setup enumerates the engine's configuration options.
type Setup struct {
	// MaxEvents caps the number of events the prefix may contain. Zero or
	// negative means "use the package default" (DefaultMaxEvents).
	MaxEvents int
	// MaxBound caps the multiplicity any single place may reach inside a
	// cut. Only the general variant checks it; the safe variant builds no
	// cuts and does not check it. Zero or negative means "use the package
	// default" (DefaultMaxBound).
	MaxBound int
	// SafeOptimization selects the safe (1-bounded) variant B when true,
	// and the general variant A when false.
	SafeOptimization bool
	// Order is the adequate order used to pick the next extension and to
	// decide cutoffs. Defaults to SizeOrder when nil.
	Order AdequateOrder
	// Hook contributes additional possible extensions and may veto/replace
	// cutoff correspondences. Defaults to NoopExtensionHook when nil.
	Hook ExtensionHook
}

// Defaults applied when a Setup field is left at its zero value.
const (
	DefaultMaxEvents = 100000
	DefaultMaxBound  = 1
)

func (s Setup) withDefaults() Setup {
	if s.MaxEvents <= 0 {
		s.MaxEvents = DefaultMaxEvents
	}
	if s.MaxBound <= 0 {
		s.MaxBound = DefaultMaxBound
	}
	if s.Order == nil {
		s.Order = NewSizeOrder()
	}
	if s.Hook == nil {
		s.Hook = NoopExtensionHook{}
	}
	return s
}

// fileConfig is the YAML-serializable subset of Setup: Order and Hook are
// Go interfaces chosen by the caller in code, not data, so they are not part
// of the on-disk document.
type fileConfig struct {
	MaxEvents        int  `yaml:"max_events"`
	MaxBound         int  `yaml:"max_bound"`
	SafeOptimization bool `yaml:"safe_optimization"`
}

// LoadSetup reads a YAML document (max_events, max_bound,
// safe_optimization) and returns a Setup with Order/Hook left at their
// package defaults. Callers that need a custom AdequateOrder or
// ExtensionHook set those fields on the returned Setup afterwards.
func LoadSetup(path string) (Setup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Setup{}, err
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Setup{}, err
	}
	return Setup{
		MaxEvents:        fc.MaxEvents,
		MaxBound:         fc.MaxBound,
		SafeOptimization: fc.SafeOptimization,
	}.withDefaults(), nil
}
