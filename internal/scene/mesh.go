package scene

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"primitive-playground/internal/primitives"
)

// minCylinderSlices is the fewest sides raylib can build a closed cylinder from.
const minCylinderSlices = 3

// entry is one live mesh. geometry keeps Go-owned vertex data alive for meshes uploaded from it.
type entry struct {
	handle   primitives.Handle
	mesh     rl.Mesh
	geometry *primitives.Geometry
	offset   mgl32.Vec3 // model-space shift so position is the mesh centre
	position mgl32.Vec3
	scale    mgl32.Vec3
	rotation mgl32.Quat
}

// transform returns the model matrix: translate, rotate, scale, then the centring offset.
func (e *entry) transform() rl.Matrix {
	m := mgl32.Translate3D(e.position[0], e.position[1], e.position[2]).
		Mul4(e.rotation.Mat4()).
		Mul4(mgl32.Scale3D(e.scale[0], e.scale[1], e.scale[2])).
		Mul4(mgl32.Translate3D(e.offset[0], e.offset[1], e.offset[2]))
	return toMatrix(m)
}

// toMatrix converts a column-major mgl32 matrix to raylib's layout.
func toMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

// buildMesh creates the GPU mesh for shape. The box is a cube of its size; the cylinder is raylib's
// (base at y=0, so it carries a -height/2 offset); the icosphere is generated and uploaded.
func buildMesh(shape primitives.Shape) (*entry, error) {
	e := &entry{scale: mgl32.Vec3{1, 1, 1}, rotation: mgl32.QuatIdent()}
	switch p := shape.(type) {
	case primitives.BoxParams:
		size := float32(p.Size)
		e.mesh = rl.GenMeshCube(size, size, size)
	case primitives.CylinderParams:
		if p.Tessellation < minCylinderSlices {
			return nil, fmt.Errorf("%w: cylinder tessellation %d", primitives.ErrDegenerate, p.Tessellation)
		}
		if p.Tessellation > primitives.MaxTessellation {
			return nil, fmt.Errorf("%w: cylinder tessellation %d > %d", primitives.ErrTooDetailed, p.Tessellation, primitives.MaxTessellation)
		}
		height := float32(p.Height)
		e.mesh = rl.GenMeshCylinder(float32(p.Diameter/2), height, p.Tessellation)
		e.offset = mgl32.Vec3{0, -height / 2, 0}
	case primitives.IcoSphereParams:
		g, err := primitives.IcoSphereGeometry(p.Diameter, p.Subdivisions)
		if err != nil {
			return nil, err
		}
		e.geometry = g
		e.mesh = uploadGeometry(g)
	default:
		return nil, fmt.Errorf("unsupported shape %T", shape)
	}
	return e, nil
}

// uploadGeometry hands g's vertex data to the GPU. raylib-go pins the slices for the upload and
// remembers the mesh as Go-managed, so UnloadMesh frees only GPU buffers.
func uploadGeometry(g *primitives.Geometry) rl.Mesh {
	mesh := rl.Mesh{
		VertexCount:   int32(g.VertexCount()),
		TriangleCount: int32(g.TriangleCount()),
		Vertices:      &g.Vertices[0],
		Normals:       &g.Normals[0],
		Texcoords:     &g.Texcoords[0],
	}
	rl.UploadMesh(&mesh, false)
	return mesh
}
