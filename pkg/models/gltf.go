package models

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/taigrr/rast/pkg/imageio"
	"github.com/taigrr/rast/pkg/math3d"
)

// GLTFLoader loads GLTF/GLB files into Mesh format. Every triangle
// primitive becomes its own surface group.
type GLTFLoader struct {
	Logger *zap.Logger

	// CalculateNormals fills vertex normals for primitives that have none.
	CalculateNormals bool
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		Logger:           zap.NewNop(),
		CalculateNormals: true,
	}
}

// LoadGLTF loads a .gltf or .glb file with the default loader. The image
// is the base color texture of the first textured material, or nil.
func LoadGLTF(path string) (*Mesh, image.Image, error) {
	return NewGLTFLoader().Load(path)
}

// Load reads the meshes of a GLTF or GLB document into one Mesh and decodes
// its base color texture if there is one.
func (l *GLTFLoader) Load(path string) (*Mesh, image.Image, error) {
	log := l.Logger
	if log == nil {
		log = zap.NewNop()
	}

	doc, err := gltf.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := NewMesh(filepath.Base(path))
	hasNormals := true

	for mi, m := range doc.Meshes {
		for pi, prim := range m.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				log.Debug("skipping non-triangle primitive",
					zap.String("mesh", m.Name), zap.Int("primitive", pi))
				continue
			}

			withNormals, err := l.readPrimitive(doc, prim, mesh, primitiveName(doc, m, mi, pi))
			if err != nil {
				return nil, nil, fmt.Errorf("mesh %q primitive %d: %w", m.Name, pi, err)
			}
			hasNormals = hasNormals && withNormals
		}
	}

	if len(mesh.Faces) == 0 {
		return nil, nil, fmt.Errorf("gltf %s: %w", mesh.Name, ErrNoFaces)
	}

	if l.CalculateNormals && !hasNormals {
		mesh.CalculateSmoothNormals()
	}
	mesh.CalculateBounds()

	tex, err := baseColorImage(doc, filepath.Dir(path))
	if err != nil {
		// Keep the mesh; callers fall back to another texture
		log.Warn("could not decode embedded texture", zap.Error(err))
		tex = nil
	}

	log.Debug("loaded gltf",
		zap.String("name", mesh.Name),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("faces", mesh.TriangleCount()),
		zap.Int("groups", len(mesh.Groups)),
		zap.Bool("texture", tex != nil),
	)
	return mesh, tex, nil
}

// primitiveName names a surface group after the primitive's material, or
// its mesh when it has none.
func primitiveName(doc *gltf.Document, m *gltf.Mesh, mi, pi int) string {
	if prim := m.Primitives[pi]; prim.Material != nil && *prim.Material < len(doc.Materials) {
		if name := doc.Materials[*prim.Material].Name; name != "" {
			return name
		}
	}
	name := m.Name
	if name == "" {
		name = fmt.Sprintf("mesh%d", mi)
	}
	if len(m.Primitives) > 1 {
		name = fmt.Sprintf("%s/%d", name, pi)
	}
	return name
}

// readPrimitive appends the vertices and faces of prim to mesh. It reports
// whether the primitive carried normals.
func (l *GLTFLoader) readPrimitive(doc *gltf.Document, prim *gltf.Primitive, mesh *Mesh, group string) (bool, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return true, nil
	}

	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return false, fmt.Errorf("read positions: %w", err)
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			return false, fmt.Errorf("read normals: %w", err)
		}
	}

	var uvs [][2]float32
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
			return false, fmt.Errorf("read uvs: %w", err)
		}
		mesh.TexCoords = true
	}

	base := len(mesh.Vertices)
	for i, p := range positions {
		v := MeshVertex{Position: math3d.V3(float64(p[0]), float64(p[1]), float64(p[2]))}
		if i < len(normals) {
			n := normals[i]
			v.Normal = math3d.V3(float64(n[0]), float64(n[1]), float64(n[2]))
		}
		if i < len(uvs) {
			// GLTF puts V=0 at the top of the image, flip to bottom-left origin
			v.UV = math3d.V2(float64(uvs[i][0]), 1-float64(uvs[i][1]))
		}
		mesh.Vertices = append(mesh.Vertices, v)
	}

	var indices []uint32
	if prim.Indices != nil {
		if indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil); err != nil {
			return false, fmt.Errorf("read indices: %w", err)
		}
	} else {
		// No indices, assume sequential triangles
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	g := mesh.AddGroup(group)
	for i := 0; i+2 < len(indices); i += 3 {
		f := Face{Group: g}
		for j := range 3 {
			idx := int(indices[i+j])
			if idx >= len(positions) {
				return false, fmt.Errorf("index %d out of range (have %d vertices)", idx, len(positions))
			}
			f.V[j] = base + idx
		}
		mesh.Faces = append(mesh.Faces, f)
	}

	return len(normals) > 0, nil
}

// baseColorImage decodes the base color texture of the first material that
// has one, falling back to the first image in the document.
func baseColorImage(doc *gltf.Document, dir string) (image.Image, error) {
	src := -1
	for _, mat := range doc.Materials {
		pbr := mat.PBRMetallicRoughness
		if pbr == nil || pbr.BaseColorTexture == nil {
			continue
		}
		if ti := pbr.BaseColorTexture.Index; ti < len(doc.Textures) && doc.Textures[ti].Source != nil {
			src = *doc.Textures[ti].Source
			break
		}
	}
	if src < 0 && len(doc.Images) > 0 {
		src = 0
	}
	if src < 0 || src >= len(doc.Images) {
		return nil, nil
	}

	data, err := imageBytes(doc, doc.Images[src], dir)
	if err != nil {
		return nil, err
	}
	return imageio.Decode(data)
}

// imageBytes returns the encoded bytes of a GLTF image stored in a buffer
// view or in a file next to the document.
func imageBytes(doc *gltf.Document, img *gltf.Image, dir string) ([]byte, error) {
	if img.BufferView != nil {
		bv := doc.BufferViews[*img.BufferView]
		data := doc.Buffers[bv.Buffer].Data
		end := bv.ByteOffset + bv.ByteLength
		if end > len(data) {
			return nil, fmt.Errorf("image buffer view out of range")
		}
		return data[bv.ByteOffset:end], nil
	}

	if img.URI == "" || strings.HasPrefix(img.URI, "data:") {
		return nil, fmt.Errorf("image %q has no readable source", img.Name)
	}
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(img.URI)))
	if err != nil {
		return nil, fmt.Errorf("read texture: %w", err)
	}
	return data, nil
}
