package painter

import "sync"

// PackedValuePool creates PackedValue handles. A handle packs its block
// once per alignment and shares those words across every draw that uses
// it, in every Packer that uses it.
//
// Handles are compared by identity: two handles created from equal blocks
// are different values. Acquire a handle once and reuse it for draws that
// share the same logical value.
//
// A pool is safe for concurrent use by several packers.
type PackedValuePool struct {
	mu      sync.Mutex
	created int
}

// NewPackedValuePool creates an empty pool.
func NewPackedValuePool() *PackedValuePool {
	return &PackedValuePool{}
}

// PackedValue is an immutable, pooled shader data block.
type PackedValue struct {
	pool  *PackedValuePool
	block ShaderDataBlock

	// packed words per alignment, guarded by pool.mu
	cache map[int][]GenericData
}

// Create returns a new handle holding a copy of b.
// It panics if b is nil.
func (p *PackedValuePool) Create(b ShaderDataBlock) *PackedValue {
	if b == nil {
		panic("painter: PackedValuePool.Create with nil block")
	}
	p.mu.Lock()
	p.created++
	p.mu.Unlock()
	return &PackedValue{
		pool:  p,
		block: b.Copy(),
	}
}

// CreateBrush is shorthand for Create(b).
func (p *PackedValuePool) CreateBrush(b Brush) *PackedValue {
	return p.Create(b)
}

// Len returns the number of handles the pool has created.
func (p *PackedValuePool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.created
}

// Block returns a copy of the block held by the handle.
func (v *PackedValue) Block() ShaderDataBlock {
	return v.block.Copy()
}

// words returns the packed form of the block for the given alignment.
// The returned slice is shared and must not be modified.
func (v *PackedValue) words(alignment int) []GenericData {
	v.pool.mu.Lock()
	defer v.pool.mu.Unlock()

	if w, ok := v.cache[alignment]; ok {
		return w
	}
	w := make([]GenericData, v.block.DataSize(alignment))
	v.block.Pack(alignment, w)
	if v.cache == nil {
		v.cache = make(map[int][]GenericData, 1)
	}
	v.cache[alignment] = w
	return w
}
