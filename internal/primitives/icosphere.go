package primitives

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrDegenerate is returned when parameters cannot produce a mesh topology.
var ErrDegenerate = errors.New("degenerate primitive parameters")

// ErrTooDetailed is returned when parameters would produce more geometry than a mesh can hold.
var ErrTooDetailed = errors.New("primitive parameters exceed mesh limits")

const (
	// MaxSubdivisions keeps an icosphere at 81920 triangles.
	MaxSubdivisions = 64
	// MaxTessellation is the most sides a cylinder may have.
	MaxTessellation = 1024
)

// Geometry is an unindexed triangle list ready for upload: three floats per vertex position and
// normal, two per texcoord.
type Geometry struct {
	Vertices  []float32
	Normals   []float32
	Texcoords []float32
}

// VertexCount returns the number of vertices in g.
func (g *Geometry) VertexCount() int { return len(g.Vertices) / 3 }

// TriangleCount returns the number of triangles in g.
func (g *Geometry) TriangleCount() int { return len(g.Vertices) / 9 }

// golden ratio; the icosahedron vertices are the cyclic permutations of (0, ±1, ±phi).
var phi = (1 + math32.Sqrt(5)) / 2

var icosahedronVertices = [12]mgl32.Vec3{
	{-1, phi, 0}, {1, phi, 0}, {-1, -phi, 0}, {1, -phi, 0},
	{0, -1, phi}, {0, 1, phi}, {0, -1, -phi}, {0, 1, -phi},
	{phi, 0, -1}, {phi, 0, 1}, {-phi, 0, -1}, {-phi, 0, 1},
}

var icosahedronFaces = [20][3]int{
	{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
	{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
	{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
	{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
}

// IcoSphereGeometry builds an icosphere of the given diameter. Each icosahedron edge is split into
// subdivisions segments, giving 20*subdivisions^2 flat-shaded triangles. The diameter is not
// validated; a negative one mirrors the sphere.
func IcoSphereGeometry(diameter float64, subdivisions int) (*Geometry, error) {
	if subdivisions < 1 {
		return nil, fmt.Errorf("%w: icosphere subdivisions %d", ErrDegenerate, subdivisions)
	}
	if subdivisions > MaxSubdivisions {
		return nil, fmt.Errorf("%w: icosphere subdivisions %d > %d", ErrTooDetailed, subdivisions, MaxSubdivisions)
	}
	radius := float32(diameter / 2)
	s := subdivisions
	tris := 20 * s * s
	g := &Geometry{
		Vertices:  make([]float32, 0, tris*9),
		Normals:   make([]float32, 0, tris*9),
		Texcoords: make([]float32, 0, tris*6),
	}

	for _, f := range icosahedronFaces {
		a, b, c := icosahedronVertices[f[0]], icosahedronVertices[f[1]], icosahedronVertices[f[2]]
		u := b.Sub(a).Mul(1 / float32(s))
		v := c.Sub(a).Mul(1 / float32(s))
		point := func(i, j int) mgl32.Vec3 {
			return a.Add(u.Mul(float32(i))).Add(v.Mul(float32(j))).Normalize()
		}
		for i := 0; i < s; i++ {
			for j := 0; j < s-i; j++ {
				g.addTriangle(point(i, j), point(i+1, j), point(i, j+1), radius)
				if j < s-i-1 {
					g.addTriangle(point(i+1, j), point(i+1, j+1), point(i, j+1), radius)
				}
			}
		}
	}
	return g, nil
}

// addTriangle appends one triangle on the unit sphere scaled by radius, wound counter-clockwise
// seen from outside.
func (g *Geometry) addTriangle(p0, p1, p2 mgl32.Vec3, radius float32) {
	n := p1.Sub(p0).Cross(p2.Sub(p0))
	if n.Dot(p0.Add(p1).Add(p2)) < 0 {
		p1, p2 = p2, p1
		n = n.Mul(-1)
	}
	n = n.Normalize()
	if radius < 0 {
		n = n.Mul(-1)
	}
	for _, p := range [3]mgl32.Vec3{p0, p1, p2} {
		g.Vertices = append(g.Vertices, p[0]*radius, p[1]*radius, p[2]*radius)
		g.Normals = append(g.Normals, n[0], n[1], n[2])
		uv := sphericalUV(p)
		g.Texcoords = append(g.Texcoords, uv[0], uv[1])
	}
}

// sphericalUV maps a unit direction to equirectangular texture coordinates.
func sphericalUV(p mgl32.Vec3) mgl32.Vec2 {
	y := mgl32.Clamp(p[1], -1, 1)
	return mgl32.Vec2{
		0.5 + math32.Atan2(p[2], p[0])/(2*math32.Pi),
		0.5 - math32.Asin(y)/math32.Pi,
	}
}
