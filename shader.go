package painter

import (
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
)

// BlendMode is a Porter-Duff compositing operator applied by fixed-function
// blending. Colors are premultiplied.
type BlendMode uint8

const (
	BlendSrcOver BlendMode = iota // default
	BlendSrc
	BlendDst
	BlendDstOver
	BlendSrcIn
	BlendDstIn
	BlendSrcOut
	BlendDstOut
	BlendSrcAtop
	BlendDstAtop
	BlendXor
	BlendPlus
	BlendClear
)

var blendModeNames = [...]string{
	BlendSrcOver: "SrcOver",
	BlendSrc:     "Src",
	BlendDst:     "Dst",
	BlendDstOver: "DstOver",
	BlendSrcIn:   "SrcIn",
	BlendDstIn:   "DstIn",
	BlendSrcOut:  "SrcOut",
	BlendDstOut:  "DstOut",
	BlendSrcAtop: "SrcAtop",
	BlendDstAtop: "DstAtop",
	BlendXor:     "Xor",
	BlendPlus:    "Plus",
	BlendClear:   "Clear",
}

// String returns the operator name.
func (m BlendMode) String() string {
	if int(m) < len(blendModeNames) {
		return blendModeNames[m]
	}
	return fmt.Sprintf("BlendMode(%d)", m)
}

// blendFactors holds the source and destination factors of each mode.
var blendFactors = [...][2]gputypes.BlendFactor{
	BlendSrcOver: {gputypes.BlendFactorOne, gputypes.BlendFactorOneMinusSrcAlpha},
	BlendSrc:     {gputypes.BlendFactorOne, gputypes.BlendFactorZero},
	BlendDst:     {gputypes.BlendFactorZero, gputypes.BlendFactorOne},
	BlendDstOver: {gputypes.BlendFactorOneMinusDstAlpha, gputypes.BlendFactorOne},
	BlendSrcIn:   {gputypes.BlendFactorDstAlpha, gputypes.BlendFactorZero},
	BlendDstIn:   {gputypes.BlendFactorZero, gputypes.BlendFactorSrcAlpha},
	BlendSrcOut:  {gputypes.BlendFactorOneMinusDstAlpha, gputypes.BlendFactorZero},
	BlendDstOut:  {gputypes.BlendFactorZero, gputypes.BlendFactorOneMinusSrcAlpha},
	BlendSrcAtop: {gputypes.BlendFactorDstAlpha, gputypes.BlendFactorOneMinusSrcAlpha},
	BlendDstAtop: {gputypes.BlendFactorOneMinusDstAlpha, gputypes.BlendFactorSrcAlpha},
	BlendXor:     {gputypes.BlendFactorOneMinusDstAlpha, gputypes.BlendFactorOneMinusSrcAlpha},
	BlendPlus:    {gputypes.BlendFactorOne, gputypes.BlendFactorOne},
	BlendClear:   {gputypes.BlendFactorZero, gputypes.BlendFactorZero},
}

// BlendState returns the fixed-function blend state of the mode. The same
// factors apply to color and alpha.
func (m BlendMode) BlendState() gputypes.BlendState {
	f := blendFactors[BlendSrcOver]
	if int(m) < len(blendFactors) {
		f = blendFactors[m]
	}
	c := gputypes.BlendComponent{
		SrcFactor: f[0],
		DstFactor: f[1],
		Operation: gputypes.BlendOperationAdd,
	}
	return gputypes.BlendState{Color: c, Alpha: c}
}

// shader is the identity shared by every shader kind.
type shader struct {
	name   string
	source string

	registry *ShaderRegistry
	id       uint32
	group    uint32
}

// Name returns the debug name of the shader.
func (s *shader) Name() string { return s.name }

// Source returns the WGSL source, or "" for shaders without one.
func (s *shader) Source() string { return s.source }

// ID returns the registered id, or 0 if the shader is not registered.
func (s *shader) ID() uint32 { return s.id }

// Group returns the shader group. Shaders in the same group are handled
// by one backend program.
func (s *shader) Group() uint32 { return s.group }

// Registered reports whether the shader has been registered.
func (s *shader) Registered() bool { return s.registry != nil }

// ItemShader draws the geometry of an item.
type ItemShader struct {
	shader
	parent *ItemShader
}

// NewItemShader creates an unregistered item shader.
func NewItemShader(name, wgsl string) *ItemShader {
	return &ItemShader{shader: shader{name: name, source: wgsl}}
}

// Parent returns the shader s was registered as a sub-shader of, or nil.
func (s *ItemShader) Parent() *ItemShader { return s.parent }

// BlendShader is a programmable blend stage for modes that fixed-function
// blending cannot express.
type BlendShader struct {
	shader
}

// NewBlendShader creates an unregistered blend shader.
func NewBlendShader(name, wgsl string) *BlendShader {
	return &BlendShader{shader: shader{name: name, source: wgsl}}
}

// CompositeShader combines item output with the surface before blending.
type CompositeShader struct {
	shader
}

// NewCompositeShader creates an unregistered composite shader.
func NewCompositeShader(name, wgsl string) *CompositeShader {
	return &CompositeShader{shader: shader{name: name, source: wgsl}}
}

// ShaderRegistry assigns ids and groups to shaders. Ids are unique within
// a registry, start at 1 and increase monotonically.
//
// A registry is safe for concurrent use.
type ShaderRegistry struct {
	mu     sync.Mutex
	nextID uint32
	items  []*ItemShader
}

// NewShaderRegistry creates an empty registry.
func NewShaderRegistry() *ShaderRegistry {
	return &ShaderRegistry{}
}

func (r *ShaderRegistry) register(s *shader, group uint32) {
	if s.registry != nil {
		panic("painter: shader " + s.name + " registered twice")
	}
	r.nextID++
	s.registry = r
	s.id = r.nextID
	s.group = group
	if group == 0 {
		s.group = s.id
	}
}

// RegisterItemShader registers s in its own group.
// It panics if s is nil or already registered.
func (r *ShaderRegistry) RegisterItemShader(s *ItemShader) {
	if s == nil {
		panic("painter: RegisterItemShader with nil shader")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.register(&s.shader, 0)
	r.items = append(r.items, s)
}

// RegisterItemSubShader registers sub in the group of parent.
// It panics if parent is not registered with r or sub is already
// registered.
func (r *ShaderRegistry) RegisterItemSubShader(parent, sub *ItemShader) {
	if parent == nil || sub == nil {
		panic("painter: RegisterItemSubShader with nil shader")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if parent.registry != r {
		panic("painter: parent shader " + parent.name + " is not registered here")
	}
	r.register(&sub.shader, parent.group)
	sub.parent = parent
	r.items = append(r.items, sub)
}

// RegisterBlendShader registers s.
// It panics if s is nil or already registered.
func (r *ShaderRegistry) RegisterBlendShader(s *BlendShader) {
	if s == nil {
		panic("painter: RegisterBlendShader with nil shader")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.register(&s.shader, 0)
}

// RegisterCompositeShader registers s.
// It panics if s is nil or already registered.
func (r *ShaderRegistry) RegisterCompositeShader(s *CompositeShader) {
	if s == nil {
		panic("painter: RegisterCompositeShader with nil shader")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.register(&s.shader, 0)
}

// ItemShaders returns the registered item shaders in registration order.
func (r *ShaderRegistry) ItemShaders() []*ItemShader {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*ItemShader, len(r.items))
	copy(out, r.items)
	return out
}
