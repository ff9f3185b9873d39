package geometry

import (
	"github.com/chewxy/math32"
	"github.com/flywave/go3d/vec2"
	"github.com/flywave/go3d/vec3"
)

// NewBox creates an axis-aligned box centered on the origin with one segment per side.
//
// Parameters:
//   - width, height, depth: extents along X, Y and Z
//
// Returns:
//   - Geometry: 24 vertices, 12 triangles
func NewBox(width, height, depth float32) Geometry {
	b := &builder{}
	// u, v, w axis indices; u and v directions; plane width, height and depth.
	faces := []struct {
		u, v, w       int
		udir, vdir    float32
		pw, ph, depth float32
	}{
		{2, 1, 0, -1, -1, depth, height, width},  // +x
		{2, 1, 0, 1, -1, depth, height, -width},  // -x
		{0, 2, 1, 1, 1, width, depth, height},    // +y
		{0, 2, 1, 1, -1, width, depth, -height},  // -y
		{0, 1, 2, 1, -1, width, height, depth},   // +z
		{0, 1, 2, -1, -1, width, height, -depth}, // -z
	}
	for _, f := range faces {
		start := b.count()
		for iy := range 2 {
			y := float32(iy)*f.ph - f.ph/2
			for ix := range 2 {
				x := float32(ix)*f.pw - f.pw/2

				var p, n vec3.T
				p[f.u] = x * f.udir
				p[f.v] = y * f.vdir
				p[f.w] = f.depth / 2
				n[f.w] = 1
				if f.depth < 0 {
					n[f.w] = -1
				}
				b.vertex(p, n, vec2.T{float32(ix), 1 - float32(iy)})
			}
		}
		b.quad(start, start+2, start+3, start+1)
	}

	return newGeometry(Descriptor{
		Shape: ShapeBox, Width: width, Height: height, Depth: depth,
		WidthSegments: 1, HeightSegments: 1, DepthSegments: 1,
	}, b)
}

// NewCone creates a closed cone centered on the origin with its apex at +height/2.
//
// Parameters:
//   - radius: base radius
//   - height: apex to base distance
//   - radialSegments: number of sides, at least 3
//
// Returns:
//   - Geometry: the cone mesh
func NewCone(radius, height float32, radialSegments int) Geometry {
	radialSegments = max(radialSegments, 3)
	b := &builder{}
	half := height / 2
	slope := radius / height

	// Lateral surface: apex row then base row.
	for y := range 2 {
		v := float32(y)
		r := v * radius
		for x := 0; x <= radialSegments; x++ {
			u := float32(x) / float32(radialSegments)
			sin, cos := math32.Sincos(u * 2 * math32.Pi)
			n := vec3.T{sin, slope, cos}
			n.Normalize()
			b.vertex(vec3.T{r * sin, -v*height + half, r * cos}, n, vec2.T{u, 1 - v})
		}
	}
	row := uint32(radialSegments + 1)
	for x := range uint32(radialSegments) {
		// Only the lower triangle of each apex quad is non-degenerate.
		b.indices = append(b.indices, x+row, x+row+1, x+1)
	}

	// Base cap.
	centerStart := b.count()
	for range radialSegments {
		b.vertex(vec3.T{0, -half, 0}, vec3.T{0, -1, 0}, vec2.T{0.5, 0.5})
	}
	ringStart := b.count()
	for x := 0; x <= radialSegments; x++ {
		u := float32(x) / float32(radialSegments)
		sin, cos := math32.Sincos(u * 2 * math32.Pi)
		b.vertex(vec3.T{radius * sin, -half, radius * cos}, vec3.T{0, -1, 0},
			vec2.T{cos*0.5 + 0.5, sin*0.5*-1 + 0.5})
	}
	for x := range uint32(radialSegments) {
		b.indices = append(b.indices, ringStart+x+1, ringStart+x, centerStart+x)
	}

	return newGeometry(Descriptor{
		Shape: ShapeCone, Radius: radius, Height: height,
		RadialSegments: radialSegments, HeightSegments: 1,
	}, b)
}

// NewSphere creates a UV sphere centered on the origin.
//
// Parameters:
//   - radius: sphere radius
//   - widthSegments: horizontal segments, at least 3
//   - heightSegments: vertical segments, at least 2
//
// Returns:
//   - Geometry: (widthSegments+1)*(heightSegments+1) vertices
func NewSphere(radius float32, widthSegments, heightSegments int) Geometry {
	widthSegments = max(widthSegments, 3)
	heightSegments = max(heightSegments, 2)
	b := &builder{}

	grid := make([][]uint32, heightSegments+1)
	for iy := 0; iy <= heightSegments; iy++ {
		v := float32(iy) / float32(heightSegments)
		var uOffset float32
		switch iy {
		case 0:
			uOffset = 0.5 / float32(widthSegments)
		case heightSegments:
			uOffset = -0.5 / float32(widthSegments)
		}
		sinTheta, cosTheta := math32.Sincos(v * math32.Pi)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float32(ix) / float32(widthSegments)
			sinPhi, cosPhi := math32.Sincos(u * 2 * math32.Pi)
			p := vec3.T{-radius * cosPhi * sinTheta, radius * cosTheta, radius * sinPhi * sinTheta}
			n := p
			n.Normalize()
			grid[iy] = append(grid[iy], b.count())
			b.vertex(p, n, vec2.T{u + uOffset, 1 - v})
		}
	}
	for iy := range heightSegments {
		for ix := range widthSegments {
			a := grid[iy][ix+1]
			bb := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			if iy != 0 {
				b.indices = append(b.indices, a, bb, d)
			}
			if iy != heightSegments-1 {
				b.indices = append(b.indices, bb, c, d)
			}
		}
	}

	return newGeometry(Descriptor{
		Shape: ShapeSphere, Radius: radius,
		WidthSegments: widthSegments, HeightSegments: heightSegments,
	}, b)
}

// NewPlane creates a plane in the XY plane facing +Z, centered on the origin.
//
// Parameters:
//   - width, height: extents along X and Y
//   - widthSegments, heightSegments: subdivisions, at least 1
//
// Returns:
//   - Geometry: (widthSegments+1)*(heightSegments+1) vertices
func NewPlane(width, height float32, widthSegments, heightSegments int) Geometry {
	widthSegments = max(widthSegments, 1)
	heightSegments = max(heightSegments, 1)
	b := &builder{}

	segW := width / float32(widthSegments)
	segH := height / float32(heightSegments)
	for iy := 0; iy <= heightSegments; iy++ {
		y := float32(iy)*segH - height/2
		for ix := 0; ix <= widthSegments; ix++ {
			x := float32(ix)*segW - width/2
			b.vertex(vec3.T{x, -y, 0}, vec3.T{0, 0, 1},
				vec2.T{float32(ix) / float32(widthSegments), 1 - float32(iy)/float32(heightSegments)})
		}
	}
	row := uint32(widthSegments + 1)
	for iy := range uint32(heightSegments) {
		for ix := range uint32(widthSegments) {
			a := ix + row*iy
			bb := ix + row*(iy+1)
			c := ix + 1 + row*(iy+1)
			d := ix + 1 + row*iy
			b.quad(a, bb, c, d)
		}
	}

	return newGeometry(Descriptor{
		Shape: ShapePlane, Width: width, Height: height,
		WidthSegments: widthSegments, HeightSegments: heightSegments,
	}, b)
}
