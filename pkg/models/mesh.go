// Package models loads triangle meshes from Wavefront OBJ and glTF files.
package models

import (
	"errors"

	"github.com/taigrr/rast/pkg/math3d"
)

// ErrNoFaces is returned when a model file contains no triangles.
var ErrNoFaces = errors.New("models: no faces")

// Mesh is an indexed triangle mesh. Faces are split into surface groups
// (OBJ objects, groups and materials, or glTF primitives).
type Mesh struct {
	Name     string
	Vertices []MeshVertex
	Faces    []Face
	Groups   []string // Group names, indexed by Face.Group

	// TexCoords is true when the vertices carry texture coordinates.
	TexCoords bool

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// MeshVertex holds all vertex attributes.
type MeshVertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	UV       math3d.Vec2
}

// Face is a triangle referencing three vertices.
type Face struct {
	V     [3]int // Indices into Mesh.Vertices
	Group int    // Index into Mesh.Groups
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// AddGroup returns the index of the named group, adding it if needed.
func (m *Mesh) AddGroup(name string) int {
	for i, g := range m.Groups {
		if g == name {
			return i
		}
	}
	m.Groups = append(m.Groups, name)
	return len(m.Groups) - 1
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// CalculateSmoothNormals sets each vertex normal to the area-weighted
// average of the normals of the faces sharing it.
func (m *Mesh) CalculateSmoothNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = math3d.Vec3{}
	}

	for _, f := range m.Faces {
		v0 := m.Vertices[f.V[0]].Position
		v1 := m.Vertices[f.V[1]].Position
		v2 := m.Vertices[f.V[2]].Position

		// Not normalized: larger faces weigh more
		normal := v1.Sub(v0).Cross(v2.Sub(v0))
		for _, idx := range f.V {
			m.Vertices[idx].Normal = m.Vertices[idx].Normal.Add(normal)
		}
	}

	for i := range m.Vertices {
		if n := m.Vertices[i].Normal; !n.IsZero() {
			m.Vertices[i].Normal = n.Normalize()
		}
	}
}

// Transform applies a transformation matrix to all vertices.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		v := &m.Vertices[i]
		v.Position = mat.MulPoint(v.Position)
		// Rotation and uniform scale only; no inverse transpose
		if !v.Normal.IsZero() {
			v.Normal = mat.MulDir(v.Normal).Normalize()
		}
	}
	m.CalculateBounds()
}

// NormalizeToUnit centers the mesh on the origin and scales it uniformly
// so its largest extent spans [-1, 1].
func (m *Mesh) NormalizeToUnit() {
	m.CalculateBounds()
	size := m.Size()
	extent := max(size.X, size.Y, size.Z)
	if extent == 0 {
		m.Transform(math3d.Translate(m.Center().Scale(-1)))
		return
	}
	m.Transform(math3d.ScaleUniform(2 / extent).Mul(math3d.Translate(m.Center().Scale(-1))))
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := *m
	clone.Vertices = append([]MeshVertex(nil), m.Vertices...)
	clone.Faces = append([]Face(nil), m.Faces...)
	clone.Groups = append([]string(nil), m.Groups...)
	return &clone
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// Triangle returns the positions and texture coordinates of face i.
func (m *Mesh) Triangle(i int) (pos [3]math3d.Vec3, uv [3]math3d.Vec2) {
	for j, idx := range m.Faces[i].V {
		v := m.Vertices[idx]
		pos[j] = v.Position
		uv[j] = v.UV
	}
	return pos, uv
}

// Group returns the group index of face i.
func (m *Mesh) Group(i int) int {
	return m.Faces[i].Group
}

// HasUV reports whether the mesh carries texture coordinates.
func (m *Mesh) HasUV() bool {
	return m.TexCoords
}
