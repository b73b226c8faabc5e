package scene

import (
	"github.com/chewxy/math32"
)

// Vertex is the interleaved vertex layout uploaded to the GPU.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// NewPlane builds a width x height quad in the XY plane facing +Z, centred
// on the origin, with UVs spanning [0,1].
func NewPlane(width, height float32) *Mesh {
	w, h := width/2, height/2
	n := [3]float32{0, 0, 1}
	return &Mesh{
		Vertices: []Vertex{
			{Position: [3]float32{-w, -h, 0}, Normal: n, TexCoord: [2]float32{0, 0}},
			{Position: [3]float32{w, -h, 0}, Normal: n, TexCoord: [2]float32{1, 0}},
			{Position: [3]float32{w, h, 0}, Normal: n, TexCoord: [2]float32{1, 1}},
			{Position: [3]float32{-w, h, 0}, Normal: n, TexCoord: [2]float32{0, 1}},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}

// NewBox builds an axis-aligned box centred on the origin with one quad
// (four unshared vertices) per face.
func NewBox(width, height, depth float32) *Mesh {
	w, h, d := width/2, height/2, depth/2
	faces := []struct {
		normal  [3]float32
		corners [4][3]float32
	}{
		{[3]float32{1, 0, 0}, [4][3]float32{{w, -h, d}, {w, -h, -d}, {w, h, -d}, {w, h, d}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-w, -h, -d}, {-w, -h, d}, {-w, h, d}, {-w, h, -d}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-w, h, d}, {w, h, d}, {w, h, -d}, {-w, h, -d}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-w, -h, -d}, {w, -h, -d}, {w, -h, d}, {-w, -h, d}}},
		{[3]float32{0, 0, 1}, [4][3]float32{{-w, -h, d}, {w, -h, d}, {w, h, d}, {-w, h, d}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{w, -h, -d}, {-w, -h, -d}, {-w, h, -d}, {w, h, -d}}},
	}
	uvs := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	m := &Mesh{
		Vertices: make([]Vertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
	}
	for _, f := range faces {
		base := uint32(len(m.Vertices))
		for i, c := range f.corners {
			m.Vertices = append(m.Vertices, Vertex{Position: c, Normal: f.normal, TexCoord: uvs[i]})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

// NewSphere builds a UV sphere centred on the origin. Segment counts below
// the minimum (3 around, 2 from pole to pole) are raised to it.
func NewSphere(radius float32, widthSegments, heightSegments int) *Mesh {
	widthSegments = max(widthSegments, 3)
	heightSegments = max(heightSegments, 2)

	m := &Mesh{
		Vertices: make([]Vertex, 0, (widthSegments+1)*(heightSegments+1)),
		Indices:  make([]uint32, 0, widthSegments*heightSegments*6),
	}
	for y := 0; y <= heightSegments; y++ {
		v := float32(y) / float32(heightSegments)
		sinT, cosT := math32.Sincos(v * math32.Pi)
		for x := 0; x <= widthSegments; x++ {
			u := float32(x) / float32(widthSegments)
			sinP, cosP := math32.Sincos(u * 2 * math32.Pi)
			n := [3]float32{-cosP * sinT, cosT, sinP * sinT}
			m.Vertices = append(m.Vertices, Vertex{
				Position: [3]float32{n[0] * radius, n[1] * radius, n[2] * radius},
				Normal:   n,
				TexCoord: [2]float32{u, 1 - v},
			})
		}
	}

	stride := uint32(widthSegments + 1)
	for y := 0; y < heightSegments; y++ {
		for x := 0; x < widthSegments; x++ {
			a := uint32(y)*stride + uint32(x) + 1
			b := uint32(y)*stride + uint32(x)
			c := uint32(y+1)*stride + uint32(x)
			d := uint32(y+1)*stride + uint32(x) + 1
			if y != 0 {
				m.Indices = append(m.Indices, a, b, d)
			}
			if y != heightSegments-1 {
				m.Indices = append(m.Indices, b, c, d)
			}
		}
	}
	return m
}
