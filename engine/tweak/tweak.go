// Package tweak exposes named numeric properties to a debug panel through explicit get/set
// accessors. Values written here persist until written again; nothing in the frame loop
// resets them.
package tweak

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
)

var (
	// ErrUnknownProperty is returned for names that were never registered.
	ErrUnknownProperty = errors.New("unknown tweak property")
	// ErrDuplicateProperty is returned when a name is registered twice.
	ErrDuplicateProperty = errors.New("duplicate tweak property")
	// ErrInvalidRange is returned for a property whose min exceeds its max or whose step is not positive.
	ErrInvalidRange = errors.New("invalid tweak range")
)

// Getter reads the live value of a property.
type Getter func() float64

// Setter writes an already clamped and snapped value.
type Setter func(float64)

// Property describes one tweakable value.
type Property struct {
	Name string
	Min  float64
	Max  float64
	Step float64
	Get  Getter
	Set  Setter
}

// Normalize clamps v to [Min, Max] and snaps it to the nearest multiple of Step from Min.
func (p Property) Normalize(v float64) float64 {
	if math.IsNaN(v) {
		return p.Get()
	}
	v = math.Max(p.Min, math.Min(v, p.Max))
	snapped := p.Min + math.Round((v-p.Min)/p.Step)*p.Step
	return math.Max(p.Min, math.Min(snapped, p.Max))
}

// Info is a read-only view of a property for panels.
type Info struct {
	Name  string
	Min   float64
	Max   float64
	Step  float64
	Value float64
}

// Panel is the debug UI sink. Bind is called once per registered property.
type Panel interface {
	Bind(info Info)
}

// Registry holds the registered properties.
type Registry struct {
	mu    *sync.Mutex
	props map[string]Property
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		mu:    &sync.Mutex{},
		props: make(map[string]Property),
	}
}

// Register adds a property.
//
// Parameters:
//   - p: the property; Get and Set must be non-nil
//
// Returns:
//   - error: ErrDuplicateProperty or ErrInvalidRange
func (r *Registry) Register(p Property) error {
	if p.Get == nil || p.Set == nil {
		return fmt.Errorf("%w: %s has no accessors", ErrInvalidRange, p.Name)
	}
	if p.Min > p.Max || p.Step <= 0 {
		return fmt.Errorf("%w: %s [%g, %g] step %g", ErrInvalidRange, p.Name, p.Min, p.Max, p.Step)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.props[p.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateProperty, p.Name)
	}
	r.props[p.Name] = p
	return nil
}

func (r *Registry) lookup(name string) (Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.props[name]
	if !ok {
		return Property{}, fmt.Errorf("%w: %s", ErrUnknownProperty, name)
	}
	return p, nil
}

// Get returns the live value of a property.
func (r *Registry) Get(name string) (float64, error) {
	p, err := r.lookup(name)
	if err != nil {
		return 0, err
	}
	return p.Get(), nil
}

// Set clamps and snaps v, writes it through the property's setter and returns the value the
// property reports afterwards. Properties backed by float32 state read back the nearest float32.
func (r *Registry) Set(name string, v float64) (float64, error) {
	p, err := r.lookup(name)
	if err != nil {
		return 0, err
	}
	p.Set(p.Normalize(v))
	return p.Get(), nil
}

// Nudge moves a property by a whole number of steps.
func (r *Registry) Nudge(name string, steps float64) (float64, error) {
	p, err := r.lookup(name)
	if err != nil {
		return 0, err
	}
	p.Set(p.Normalize(p.Get() + steps*p.Step))
	return p.Get(), nil
}

// Properties lists all properties sorted by name.
func (r *Registry) Properties() []Info {
	r.mu.Lock()
	props := make([]Property, 0, len(r.props))
	for _, p := range r.props {
		props = append(props, p)
	}
	r.mu.Unlock()

	sort.Slice(props, func(i, j int) bool { return props[i].Name < props[j].Name })
	infos := make([]Info, len(props))
	for i, p := range props {
		infos[i] = Info{Name: p.Name, Min: p.Min, Max: p.Max, Step: p.Step, Value: p.Get()}
	}
	return infos
}

// Bind hands every property to a panel in name order.
func (r *Registry) Bind(panel Panel) {
	for _, info := range r.Properties() {
		panel.Bind(info)
	}
}
