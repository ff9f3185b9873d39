package scene

// GraphOption is a functional option for configuring a Graph.
type GraphOption func(g *Graph)

// WithFog enables linear fog.
//
// Parameters:
//   - fog: color and distance range
//
// Returns:
//   - GraphOption: option function to apply
func WithFog(fog Fog) GraphOption {
	return func(g *Graph) {
		g.fog = &fog
	}
}

// WithBackground sets the clear color.
func WithBackground(rgb [3]float32) GraphOption {
	return func(g *Graph) {
		g.background = rgb
	}
}
