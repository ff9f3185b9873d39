package tweak

import (
	"log/slog"
)

// KeyBinding nudges Property by Steps whenever Key is pressed. Steps is multiplied by
// the fast multiplier while shift is held.
type KeyBinding struct {
	Key      int
	Property string
	Steps    float64
}

// KeyPanel is a keyboard-driven Panel. It logs bound properties and applies key bindings.
type KeyPanel struct {
	registry *Registry
	bindings map[int]KeyBinding
	fast     float64
	logger   *slog.Logger
}

// NewKeyPanel creates a panel driving the registry from key presses.
//
// Parameters:
//   - registry: the property registry to drive
//   - logger: destination for property change records; nil uses slog.Default()
//   - bindings: key to property mappings
//
// Returns:
//   - *KeyPanel: the panel
func NewKeyPanel(registry *Registry, logger *slog.Logger, bindings ...KeyBinding) *KeyPanel {
	if logger == nil {
		logger = slog.Default()
	}
	kp := &KeyPanel{
		registry: registry,
		bindings: make(map[int]KeyBinding, len(bindings)),
		fast:     10,
		logger:   logger,
	}
	for _, b := range bindings {
		kp.bindings[b.Key] = b
	}
	return kp
}

// Bind logs a property so its range and initial value are visible on startup.
func (kp *KeyPanel) Bind(info Info) {
	kp.logger.Info("tweak property",
		"name", info.Name, "min", info.Min, "max", info.Max, "step", info.Step, "value", info.Value)
}

// Press applies the binding for key, if any.
//
// Returns:
//   - bool: true if the key was bound
func (kp *KeyPanel) Press(key int, shift bool) bool {
	b, ok := kp.bindings[key]
	if !ok {
		return false
	}
	steps := b.Steps
	if shift {
		steps *= kp.fast
	}
	v, err := kp.registry.Nudge(b.Property, steps)
	if err != nil {
		kp.logger.Warn("tweak failed", "property", b.Property, "error", err)
		return true
	}
	kp.logger.Debug("tweak", "property", b.Property, "value", v)
	return true
}
