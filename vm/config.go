package vm

// Config mirrors the teacher's engine.Config: a handful of tunables an
// embedder may override, each left at its default when the zero value is
// supplied. See New for the nil-Config-means-defaults resolution this
// mirrors from NewWazeroEngineWithConfig.
type Config struct {
	// MaxStackDepth bounds recursive Execute re-entry through a closure
	// call (interp.Interpreter.MaxStackDepth). 0 means default
	// (defaultMaxStackDepth), matching the teacher's MemoryLimitPages
	// convention.
	MaxStackDepth int

	// InlineCacheSize is resolved by New and kept in the VM's Config, but
	// nothing reads it: the generator allocates a bytecode.ICSlot for
	// every named-property site, with no bound.
	InlineCacheSize int

	// JITThreshold is the count at which the VM attempts front-end
	// compilation: either the CodeBlock's own Run count or any of its
	// ProfileSlot.HitCount values reaching it is enough.
	JITThreshold int

	// EnableJIT gates whether the VM ever attempts promotion at all; a
	// caller that wants interpreter-only execution passes &Config{} with
	// this left false (see New — unlike the numeric fields, a supplied
	// Config's EnableJIT is taken literally, not defaulted).
	EnableJIT bool
}

const (
	defaultMaxStackDepth   = 4096
	defaultInlineCacheSize = 256
	defaultJITThreshold    = 1000
)

// defaultConfig is what a nil Config resolves to.
func defaultConfig() Config {
	return Config{
		MaxStackDepth:   defaultMaxStackDepth,
		InlineCacheSize: defaultInlineCacheSize,
		JITThreshold:    defaultJITThreshold,
		EnableJIT:       true,
	}
}

// resolve mirrors NewWazeroEngineWithConfig's nil-config-means-defaults
// pattern: start from the defaults, then let a supplied Config override
// only the fields it sets (the numeric ones guarded by cfg != nil && > 0;
// EnableJIT always takes cfg's literal value once cfg is non-nil, since a
// bool has no zero-value-means-unset reading the way a count does).
func resolveConfig(cfg *Config) Config {
	resolved := defaultConfig()
	if cfg == nil {
		return resolved
	}
	if cfg.MaxStackDepth > 0 {
		resolved.MaxStackDepth = cfg.MaxStackDepth
	}
	if cfg.InlineCacheSize > 0 {
		resolved.InlineCacheSize = cfg.InlineCacheSize
	}
	if cfg.JITThreshold > 0 {
		resolved.JITThreshold = cfg.JITThreshold
	}
	resolved.EnableJIT = cfg.EnableJIT
	return resolved
}
