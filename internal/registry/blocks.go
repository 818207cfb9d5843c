package registry

import (
	"errors"
	"fmt"
	"slices"

	"mini-voxel/internal/world"
)

var (
	ErrUnknownBlockType   = errors.New("unknown block type")
	ErrDuplicateBlockType = errors.New("block type already registered")
)

// Shape is the geometry template a block is meshed with.
type Shape int

const (
	// ShapeNone has no geometry; only Air should use it.
	ShapeNone Shape = iota
	// ShapeCube is a full unit cube, one quad per visible face.
	ShapeCube
)

// BlockDefinition defines the properties of a block type
type BlockDefinition struct {
	ID            world.BlockType
	Name          string
	TextureTop    string
	TextureSide   string
	TextureBot    string
	IsOpaque      bool
	IsTransparent bool
	// NoGeometry registers a type the mesher cannot emit.
	NoGeometry bool
}

// Material is the visual description of a block type as the mesher sees it.
type Material struct {
	ID          world.BlockType
	Name        string
	Opaque      bool
	Transparent bool
	Shape       Shape
	// Cells holds the atlas cell per face, indexed by world.BlockFace.
	Cells [world.NumFaces]int
}

// Cell returns the atlas cell for the given face.
func (m Material) Cell(face world.BlockFace) int {
	return m.Cells[face]
}

// Registry maps block types to materials and assigns atlas cells to texture
// names in registration order.
type Registry struct {
	materials  map[world.BlockType]Material
	names      map[string]world.BlockType
	textures   []string
	textureMap map[string]int
}

// New returns an empty registry with Air pre-registered.
func New() *Registry {
	r := &Registry{
		materials:  make(map[world.BlockType]Material),
		names:      make(map[string]world.BlockType),
		textureMap: make(map[string]int),
	}
	r.materials[world.BlockTypeAir] = Material{ID: world.BlockTypeAir, Name: "air", Transparent: true, Shape: ShapeNone}
	r.names["air"] = world.BlockTypeAir
	return r
}

// FromDefinitions builds a registry from defs in order.
func FromDefinitions(defs []BlockDefinition) (*Registry, error) {
	r := New()
	for _, def := range defs {
		if err := r.Register(def); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds def. Missing side or bottom textures fall back to the top one.
func (r *Registry) Register(def BlockDefinition) error {
	if _, exists := r.materials[def.ID]; exists {
		return fmt.Errorf("register %q: id %d: %w", def.Name, def.ID, ErrDuplicateBlockType)
	}
	if _, exists := r.names[def.Name]; exists {
		return fmt.Errorf("register %q: name taken: %w", def.Name, ErrDuplicateBlockType)
	}

	top := def.TextureTop
	side := def.TextureSide
	if side == "" {
		side = top
	}
	bot := def.TextureBot
	if bot == "" {
		bot = top
	}

	m := Material{
		ID:          def.ID,
		Name:        def.Name,
		Opaque:      def.IsOpaque,
		Transparent: def.IsTransparent,
		Shape:       ShapeCube,
	}
	if def.NoGeometry || def.ID == world.BlockTypeAir {
		m.Shape = ShapeNone
		m.Opaque = false
	}
	if m.Shape == ShapeCube {
		topCell := r.registerTexture(top)
		sideCell := r.registerTexture(side)
		botCell := r.registerTexture(bot)
		for _, face := range world.AllFaces {
			switch face {
			case world.FaceTop:
				m.Cells[face] = topCell
			case world.FaceBottom:
				m.Cells[face] = botCell
			default:
				m.Cells[face] = sideCell
			}
		}
	}

	r.materials[def.ID] = m
	r.names[def.Name] = def.ID
	return nil
}

// registerTexture returns the atlas cell for name, assigning the next free one.
// An empty name maps to cell 0.
func (r *Registry) registerTexture(name string) int {
	if name == "" {
		return 0
	}
	if idx, exists := r.textureMap[name]; exists {
		return idx
	}
	idx := len(r.textures)
	r.textureMap[name] = idx
	r.textures = append(r.textures, name)
	return idx
}

// Lookup returns the material registered for t.
func (r *Registry) Lookup(t world.BlockType) (Material, error) {
	m, ok := r.materials[t]
	if !ok {
		return Material{}, fmt.Errorf("lookup %v: %w", t, ErrUnknownBlockType)
	}
	return m, nil
}

// IsOpaque reports whether t hides its neighbours. Unknown types never do.
func (r *Registry) IsOpaque(t world.BlockType) bool {
	m, ok := r.materials[t]
	return ok && m.Opaque
}

// ByName returns the block type registered under name.
func (r *Registry) ByName(name string) (world.BlockType, error) {
	t, ok := r.names[name]
	if !ok {
		return 0, fmt.Errorf("lookup %q: %w", name, ErrUnknownBlockType)
	}
	return t, nil
}

// Types returns every registered block type in ascending order.
func (r *Registry) Types() []world.BlockType {
	out := make([]world.BlockType, 0, len(r.materials))
	for t := range r.materials {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

// TextureNames returns texture names indexed by atlas cell.
func (r *Registry) TextureNames() []string {
	return slices.Clone(r.textures)
}

// CellCount returns how many atlas cells are in use.
func (r *Registry) CellCount() int {
	return len(r.textures)
}

// Uniform maps every non-Air type to one material. It is the constant
// variant used when no per-block textures exist.
type Uniform struct {
	Material Material
}

// NewUniform returns an opaque cube mapping that samples atlas cell 0.
func NewUniform() Uniform {
	return Uniform{Material: Material{Name: "uniform", Opaque: true, Shape: ShapeCube}}
}

func (u Uniform) Lookup(t world.BlockType) (Material, error) {
	if t.IsEmpty() {
		return Material{ID: t, Name: "air", Transparent: true, Shape: ShapeNone}, nil
	}
	m := u.Material
	m.ID = t
	return m, nil
}

func (u Uniform) IsOpaque(t world.BlockType) bool {
	return !t.IsEmpty() && u.Material.Opaque
}
