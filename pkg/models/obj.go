package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/taigrr/rast/pkg/math3d"
)

// OBJLoader parses Wavefront OBJ files. It reads positions, texture
// coordinates, normals and polygon faces; polygons are triangulated as a
// fan. Objects, groups and material switches start new surface groups.
type OBJLoader struct {
	Logger *zap.Logger

	// CalculateNormals fills vertex normals when the file has none.
	CalculateNormals bool
}

// NewOBJLoader creates an OBJ loader with default options.
func NewOBJLoader() *OBJLoader {
	return &OBJLoader{
		Logger:           zap.NewNop(),
		CalculateNormals: true,
	}
}

// LoadOBJ loads an OBJ file with the default loader.
func LoadOBJ(path string) (*Mesh, error) {
	return NewOBJLoader().Load(path)
}

// Load opens and parses an OBJ file.
func (l *OBJLoader) Load(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	return l.Parse(f, filepath.Base(path))
}

// objIndex identifies one corner of an OBJ face. Missing parts are -1.
type objIndex struct {
	v, vt, vn int
}

// objParser accumulates the separate OBJ attribute streams and merges them
// into unified mesh vertices.
type objParser struct {
	log       *zap.Logger
	mesh      *Mesh
	positions []math3d.Vec3
	uvs       []math3d.Vec2
	normals   []math3d.Vec3
	vertices  map[objIndex]int
	group     int
	object    string
	skipped   map[string]int
}

// Parse reads OBJ data from r. name becomes the mesh name.
func (l *OBJLoader) Parse(r io.Reader, name string) (*Mesh, error) {
	log := l.Logger
	if log == nil {
		log = zap.NewNop()
	}

	p := &objParser{
		log:      log,
		mesh:     NewMesh(name),
		vertices: make(map[objIndex]int),
		skipped:  make(map[string]int),
	}
	p.group = p.mesh.AddGroup("default")

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if err := p.directive(fields); err != nil {
			return nil, fmt.Errorf("obj: line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("obj: read: %w", err)
	}

	for kw, n := range p.skipped {
		log.Debug("ignored obj directive", zap.String("keyword", kw), zap.Int("count", n))
	}

	mesh := p.mesh
	if len(mesh.Faces) == 0 {
		return nil, fmt.Errorf("obj %s: %w", name, ErrNoFaces)
	}

	p.dropUnusedGroups()
	mesh.TexCoords = len(p.uvs) > 0

	if l.CalculateNormals && len(p.normals) == 0 {
		mesh.CalculateSmoothNormals()
	}
	mesh.CalculateBounds()

	log.Debug("loaded obj",
		zap.String("name", name),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("faces", mesh.TriangleCount()),
		zap.Int("groups", len(mesh.Groups)),
	)
	return mesh, nil
}

func (p *objParser) directive(fields []string) error {
	switch kw := fields[0]; kw {
	case "v":
		v, err := parseFloats(fields[1:], 3)
		if err != nil {
			return fmt.Errorf("vertex: %w", err)
		}
		p.positions = append(p.positions, math3d.V3(v[0], v[1], v[2]))

	case "vt":
		v, err := parseFloats(fields[1:], 2)
		if err != nil {
			return fmt.Errorf("texture coordinate: %w", err)
		}
		p.uvs = append(p.uvs, math3d.V2(v[0], v[1]))

	case "vn":
		v, err := parseFloats(fields[1:], 3)
		if err != nil {
			return fmt.Errorf("normal: %w", err)
		}
		p.normals = append(p.normals, math3d.V3(v[0], v[1], v[2]))

	case "f":
		return p.face(fields[1:])

	case "o":
		p.object = strings.Join(fields[1:], " ")
		p.group = p.mesh.AddGroup(p.object)

	case "g", "usemtl":
		name := strings.Join(fields[1:], " ")
		if p.object != "" {
			name = p.object + "/" + name
		}
		p.group = p.mesh.AddGroup(name)

	default:
		// mtllib, s, l, p and friends
		p.skipped[kw]++
	}
	return nil
}

// face triangulates a polygon as a fan around its first corner.
func (p *objParser) face(corners []string) error {
	if len(corners) < 3 {
		return fmt.Errorf("face needs at least 3 vertices, got %d", len(corners))
	}

	idx := make([]int, len(corners))
	for i, c := range corners {
		ref, err := p.parseCorner(c)
		if err != nil {
			return fmt.Errorf("face vertex %q: %w", c, err)
		}
		idx[i] = p.vertex(ref)
	}

	for i := 1; i+1 < len(idx); i++ {
		p.mesh.Faces = append(p.mesh.Faces, Face{
			V:     [3]int{idx[0], idx[i], idx[i+1]},
			Group: p.group,
		})
	}
	return nil
}

// parseCorner resolves "v", "v/vt", "v//vn" or "v/vt/vn" into zero-based
// indices. Negative indices count back from the most recent element.
func (p *objParser) parseCorner(s string) (objIndex, error) {
	parts := strings.Split(s, "/")
	if len(parts) > 3 {
		return objIndex{}, fmt.Errorf("too many components")
	}

	ref := objIndex{v: -1, vt: -1, vn: -1}
	counts := [3]int{len(p.positions), len(p.uvs), len(p.normals)}
	targets := [3]*int{&ref.v, &ref.vt, &ref.vn}

	for i, part := range parts {
		if part == "" {
			if i == 0 {
				return objIndex{}, fmt.Errorf("missing position index")
			}
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return objIndex{}, fmt.Errorf("bad index: %w", err)
		}
		resolved, err := resolveIndex(n, counts[i])
		if err != nil {
			return objIndex{}, err
		}
		*targets[i] = resolved
	}
	return ref, nil
}

func resolveIndex(n, count int) (int, error) {
	switch {
	case n > 0 && n <= count:
		return n - 1, nil
	case n < 0 && -n <= count:
		return count + n, nil
	default:
		return 0, fmt.Errorf("index %d out of range (have %d)", n, count)
	}
}

// vertex returns the mesh vertex for ref, creating it on first use.
func (p *objParser) vertex(ref objIndex) int {
	if i, ok := p.vertices[ref]; ok {
		return i
	}

	v := MeshVertex{Position: p.positions[ref.v]}
	if ref.vt >= 0 {
		v.UV = p.uvs[ref.vt]
	}
	if ref.vn >= 0 {
		v.Normal = p.normals[ref.vn]
	}

	i := len(p.mesh.Vertices)
	p.mesh.Vertices = append(p.mesh.Vertices, v)
	p.vertices[ref] = i
	return i
}

// dropUnusedGroups removes groups that received no faces and renumbers the
// rest in order of first use.
func (p *objParser) dropUnusedGroups() {
	mesh := p.mesh
	remap := make([]int, len(mesh.Groups))
	for i := range remap {
		remap[i] = -1
	}

	var groups []string
	for i := range mesh.Faces {
		g := mesh.Faces[i].Group
		if remap[g] < 0 {
			remap[g] = len(groups)
			groups = append(groups, mesh.Groups[g])
		}
		mesh.Faces[i].Group = remap[g]
	}
	mesh.Groups = groups
}

// parseFloats parses at least want numbers from fields. Extra components
// (vertex colors, the w of a texture coordinate) are ignored.
func parseFloats(fields []string, want int) ([]float64, error) {
	if len(fields) < want {
		return nil, fmt.Errorf("want %d components, got %d", want, len(fields))
	}
	out := make([]float64, want)
	for i := range want {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}
