package painter

import "fmt"

// Packer accumulates draws into commands allocated by a Backend and hands
// them to the backend on End and Flush.
//
// Each draw writes its state values (clip, matrix, brush and shader data)
// into the store of the open command, followed by a header that records
// where they are, then appends its attributes and indices. A value from a
// PackedValuePool is written at most once per command; later draws in the
// same command reuse its location. A draw is never split across commands:
// when it does not fit, the open command is closed and a new one started.
//
// A Packer is not safe for concurrent use. Several packers may share one
// PackedValuePool.
type Packer struct {
	pool    *PackedValuePool
	backend Backend
	hints   PerformanceHints
	stats   *Stats

	// clip, matrix and brush used for absent slots
	defaults [slotBrush + 1]DataValue

	open    bool
	surface Surface
	info    SubmitInfo
	draws   []*DrawCommand
	current *DrawCommand

	// store offset of each pooled value written into current
	uploaded map[*PackedValue]uint32

	compositeShader *CompositeShader
	compositeMode   BlendMode
	blendShader     *BlendShader

	// blend mode of the last draw in current
	activeBlend BlendMode

	callbacks []DataCallback
}

// NewPacker creates a packer drawing through backend. Default values are
// created from pool; a nil pool gets a private one.
//
// It returns an error wrapping ErrInvalidHints if the backend reports
// unusable hints.
func NewPacker(pool *PackedValuePool, backend Backend, opts ...PackerOption) (*Packer, error) {
	if backend == nil {
		panic("painter: NewPacker with nil backend")
	}
	hints := backend.Hints()
	if err := hints.Validate(); err != nil {
		return nil, err
	}
	if pool == nil {
		pool = NewPackedValuePool()
	}

	o := defaultPackerOptions()
	for _, opt := range opts {
		opt(&o)
	}

	p := &Packer{
		pool:     pool,
		backend:  backend,
		hints:    hints,
		stats:    o.stats,
		uploaded: make(map[*PackedValue]uint32),
	}
	p.defaults[slotClip] = Pooled(pool.Create(o.defaultClip))
	p.defaults[slotMatrix] = Pooled(pool.Create(IdentityItemMatrix()))
	p.defaults[slotBrush] = Pooled(pool.CreateBrush(o.defaultBrush))
	return p, nil
}

// Hints returns the backend hints the packer was created with.
func (p *Packer) Hints() PerformanceHints { return p.hints }

// Pool returns the pool the packer creates its defaults from.
func (p *Packer) Pool() *PackedValuePool { return p.pool }

// Surface returns the surface of the open frame, or nil.
func (p *Packer) Surface() Surface { return p.surface }

// IsOpen reports whether Begin was called without a matching End.
func (p *Packer) IsOpen() bool { return p.open }

// CurrentDraw returns the open command, or nil outside Begin and End.
func (p *Packer) CurrentDraw() *DrawCommand { return p.current }

// CurrentIndicesWritten returns the number of indices written into the open
// command.
func (p *Packer) CurrentIndicesWritten() int {
	if p.current == nil {
		return 0
	}
	return p.current.WrittenIndices()
}

// Begin starts a frame on surface. It panics if a frame is already open.
func (p *Packer) Begin(surface Surface, clearColorBuffer bool) {
	p.begin(surface, SubmitInfo{ClearColorBuffer: clearColorBuffer, BeginNewTarget: true})
	p.stats.add(StatBegins, 1)
}

func (p *Packer) begin(surface Surface, info SubmitInfo) {
	if p.open {
		panic("painter: Begin called while a frame is open")
	}
	p.open = true
	p.surface = surface
	p.info = info
	p.startCommand()
}

// End closes the frame and submits its commands to the backend in order.
// An empty trailing command is dropped. The packer is closed even if the
// backend fails. It panics if no frame is open.
func (p *Packer) End() error {
	p.mustBeOpen("End")
	p.stats.add(StatEnds, 1)
	return p.end()
}

func (p *Packer) end() error {
	p.mustBeOpen("End")
	p.closeCommand()

	draws := p.draws
	surface, info := p.surface, p.info
	p.draws = nil
	p.open = false
	p.surface = nil

	Logger().Debug("painter: submit",
		"commands", len(draws),
		"clear_color", info.ClearColorBuffer,
		"new_target", info.BeginNewTarget)

	if err := p.backend.Submit(surface, draws, info); err != nil {
		return fmt.Errorf("painter: submit: %w", err)
	}
	return nil
}

// Flush submits the commands of the open frame and continues the frame on
// the same surface. The color buffer is kept; clearZ requests a depth
// reset for the draws that follow.
func (p *Packer) Flush(clearZ bool) error {
	p.mustBeOpen("Flush")
	surface := p.surface
	err := p.end()
	p.begin(surface, SubmitInfo{BeginNewTarget: clearZ})
	p.stats.add(StatFlushes, 1)
	return err
}

// CompositeShader returns the composite shader and blend mode of the next
// draws.
func (p *Packer) CompositeShader() (*CompositeShader, BlendMode) {
	return p.compositeShader, p.compositeMode
}

// SetCompositeShader sets the composite shader and blend mode of the next
// draws. A nil shader means no composite stage.
func (p *Packer) SetCompositeShader(s *CompositeShader, mode BlendMode) {
	p.compositeShader = s
	p.compositeMode = mode
}

// BlendShader returns the blend shader of the next draws.
func (p *Packer) BlendShader() *BlendShader { return p.blendShader }

// SetBlendShader sets the blend shader of the next draws. A nil shader
// means fixed-function blending only.
func (p *Packer) SetBlendShader(s *BlendShader) { p.blendShader = s }

// AddCallback attaches cb. Callbacks are called most recently added first.
// It panics if cb is attached to any packer.
func (p *Packer) AddCallback(cb DataCallback) {
	h := cb.handle()
	if h == nil {
		panic("painter: DataCallback has no CallbackHandle")
	}
	if h.owner != nil {
		panic("painter: DataCallback already attached to a packer")
	}
	h.owner = p
	p.callbacks = append(p.callbacks, cb)
}

// RemoveCallback detaches cb. It panics if cb is not attached to p.
func (p *Packer) RemoveCallback(cb DataCallback) {
	h := cb.handle()
	if h == nil || h.owner != p {
		panic("painter: DataCallback not attached to this packer")
	}
	for i, c := range p.callbacks {
		if c.handle() == h {
			p.callbacks = append(p.callbacks[:i], p.callbacks[i+1:]...)
			break
		}
	}
	h.owner = nil
}

// DrawBreak records a point after the draws issued so far at which the
// backend runs action. It panics if no frame is open or action is nil.
func (p *Packer) DrawBreak(action Action) {
	p.mustBeOpen("DrawBreak")
	if action == nil {
		panic("painter: DrawBreak with nil action")
	}
	p.current.AddBreak(action, false, p.activeBlend)
	p.stats.add(StatBreaks, 1)
	Logger().Debug("painter: draw break", "index", p.current.WrittenIndices())
}

// RoomNeeded returns the store words the state values of data would take
// in the open command. Pooled values already written into the open
// command take none.
func (p *Packer) RoomNeeded(data *PackerData) int {
	v := p.resolve(data)
	return p.stateRoom(&v)
}

// DrawGeneric draws an item whose attributes and indices are given as
// chunks. Index chunk i refers to attribute chunk i; its values are
// offsets into that chunk, biased by indexAdjusts[i] when indexAdjusts is
// not empty.
//
// It panics if no frame is open, shader is not registered, an index
// falls outside its chunk, or the draw cannot fit an empty command.
func (p *Packer) DrawGeneric(shader *ItemShader, data *PackerData, attribChunks [][]Attribute, indexChunks [][]Index, indexAdjusts []int, z int32) {
	if len(indexChunks) > len(attribChunks) {
		panic(fmt.Sprintf("painter: %d index chunks for %d attribute chunks", len(indexChunks), len(attribChunks)))
	}
	p.draw(shader, data, attribChunks, indexChunks, indexAdjusts, nil, z)
}

// DrawGenericSelect is DrawGeneric with index chunk i referring to
// attribute chunk selector[i].
func (p *Packer) DrawGenericSelect(shader *ItemShader, data *PackerData, attribChunks [][]Attribute, indexChunks [][]Index, indexAdjusts []int, selector []int, z int32) {
	if len(selector) != len(indexChunks) {
		panic(fmt.Sprintf("painter: %d chunk selectors for %d index chunks", len(selector), len(indexChunks)))
	}
	for i, k := range selector {
		if k < 0 || k >= len(attribChunks) {
			panic(fmt.Sprintf("painter: index chunk %d selects missing attribute chunk %d", i, k))
		}
	}
	p.draw(shader, data, attribChunks, indexChunks, indexAdjusts, selector, z)
}

func (p *Packer) draw(shader *ItemShader, data *PackerData, attribChunks [][]Attribute, indexChunks [][]Index, indexAdjusts []int, selector []int, z int32) {
	p.mustBeOpen("DrawGeneric")
	p.checkShader(shader)
	if len(indexAdjusts) != 0 && len(indexAdjusts) != len(indexChunks) {
		panic(fmt.Sprintf("painter: %d index adjusts for %d index chunks", len(indexAdjusts), len(indexChunks)))
	}

	chunkOf := func(i int) int {
		if selector != nil {
			return selector[i]
		}
		return i
	}
	adjustOf := func(i int) int {
		if len(indexAdjusts) == 0 {
			return 0
		}
		return indexAdjusts[i]
	}

	var numAttribs, numIndices int
	for _, c := range attribChunks {
		numAttribs += len(c)
	}
	for i, c := range indexChunks {
		numIndices += len(c)
		k, adj := chunkOf(i), adjustOf(i)
		for _, idx := range c {
			if v := int(idx) + adj; v < 0 || v >= len(attribChunks[k]) {
				panic(fmt.Sprintf("painter: index %d (adjust %d) outside attribute chunk %d of %d attributes",
					idx, adj, k, len(attribChunks[k])))
			}
		}
	}

	v := p.resolve(data)
	p.ensureRoom(&v, numAttribs, numIndices)
	if p.applyBlend() {
		p.ensureRoom(&v, numAttribs, numIndices)
	}

	d := p.current
	hdr, hdrOff := p.writeState(shader, &v, z)

	bases := make([]int, len(attribChunks))
	for k, c := range attribChunks {
		off, dst, hidx := d.AllocateAttributes(len(c))
		copy(dst, c)
		for j := range hidx {
			hidx[j] = hdrOff
		}
		bases[k] = off
	}
	for i, c := range indexChunks {
		bias := adjustOf(i) + bases[chunkOf(i)]
		_, dst := d.AllocateIndices(len(c))
		for j, idx := range c {
			dst[j] = Index(int(idx) + bias) //nolint:gosec // checked above
		}
	}

	p.notify(d, &hdr, hdrOff)
}

// DrawWriter draws an item produced by src. Units are written until the
// open command is full; the draw then continues in a new command, with
// its state values and header written again.
//
// It panics if no frame is open, shader is not registered, or a single
// unit cannot fit an empty command.
func (p *Packer) DrawWriter(shader *ItemShader, data *PackerData, src AttributeWriter, z int32) {
	p.mustBeOpen("DrawWriter")
	p.checkShader(shader)
	if !src.Begin() {
		return
	}
	minAttribs, minIndices := src.MinAttributes(), src.MinIndices()
	v := p.resolve(data)

	for {
		p.ensureRoom(&v, minAttribs, minIndices)
		if p.applyBlend() {
			p.ensureRoom(&v, minAttribs, minIndices)
		}

		d := p.current
		hdr, hdrOff := p.writeState(shader, &v, z)

		more := true
		for more {
			ra, ri := p.roomAttributes(d), p.roomIndices(d)
			if ra < minAttribs || ri < minIndices {
				break
			}
			base, attrs, hidx := d.AllocateAttributes(ra)
			_, idx := d.AllocateIndices(ri)

			var na, ni int
			na, ni, more = src.Write(attrs, idx, base)
			if na > ra || ni > ri {
				panic(fmt.Sprintf("painter: AttributeWriter wrote %d attributes and %d indices into room for %d and %d", na, ni, ra, ri))
			}
			for j := range hidx[:na] {
				hidx[j] = hdrOff
			}
			end := base + na
			for _, x := range idx[:ni] {
				if int(x) < 0 || int(x) >= end {
					panic(fmt.Sprintf("painter: AttributeWriter index %d outside %d attributes", x, end))
				}
			}
			d.unallocate(ra-na, ri-ni)
			if more && na == 0 && ni == 0 {
				panic("painter: AttributeWriter made no progress")
			}
		}

		p.notify(d, &hdr, hdrOff)
		if !more {
			return
		}
		p.startCommand()
		src.NewStore()
	}
}

func (p *Packer) mustBeOpen(op string) {
	if !p.open {
		panic("painter: " + op + " called outside Begin and End")
	}
}

func (p *Packer) checkShader(s *ItemShader) {
	if s == nil {
		panic("painter: draw with nil item shader")
	}
	if !s.Registered() {
		panic("painter: draw with unregistered item shader " + s.Name())
	}
}

func (p *Packer) resolve(data *PackerData) [numStateSlots]DataValue {
	var v [numStateSlots]DataValue
	if data != nil {
		v = data.slots()
	}
	for s := slotClip; s <= slotBrush; s++ {
		if v[s].IsZero() {
			v[s] = p.defaults[s]
		}
	}
	return v
}

// stateRoom counts a pooled value used by several slots once.
func (p *Packer) stateRoom(v *[numStateSlots]DataValue) int {
	n := 0
	for s, val := range v {
		if pv := val.Packed(); pv != nil {
			if _, ok := p.uploaded[pv]; ok || usedBefore(v, stateSlot(s), pv) {
				continue
			}
		}
		n += val.dataSize(p.hints.Alignment)
	}
	return n
}

func usedBefore(v *[numStateSlots]DataValue, s stateSlot, pv *PackedValue) bool {
	for _, prev := range v[:s] {
		if prev.Packed() == pv {
			return true
		}
	}
	return false
}

func (p *Packer) headerRoom() int {
	return AlignUp(HeaderSize, p.hints.Alignment)
}

func (p *Packer) roomStore(d *DrawCommand) int {
	return min(d.StoreCapacity(), p.hints.MaxStorePerDraw) - d.WrittenStore()
}

func (p *Packer) roomAttributes(d *DrawCommand) int {
	return min(d.AttributeCapacity(), p.hints.MaxAttributesPerDraw) - d.WrittenAttributes()
}

func (p *Packer) roomIndices(d *DrawCommand) int {
	return min(d.IndexCapacity(), p.hints.MaxIndicesPerDraw) - d.WrittenIndices()
}

// ensureRoom starts a new command if the open one cannot take the state
// of v, a header, attribs attributes and indices indices.
func (p *Packer) ensureRoom(v *[numStateSlots]DataValue, attribs, indices int) {
	fits := func() bool {
		d := p.current
		return p.stateRoom(v)+p.headerRoom() <= p.roomStore(d) &&
			attribs <= p.roomAttributes(d) &&
			indices <= p.roomIndices(d)
	}
	if fits() {
		return
	}
	if !p.current.Empty() {
		p.startCommand()
		if fits() {
			return
		}
	}
	panic(fmt.Sprintf("painter: draw of %d attributes, %d indices and %d store words exceeds command capacity",
		attribs, indices, p.stateRoom(v)+p.headerRoom()))
}

// applyBlend brings the open command to the composite blend mode. It
// reports whether it started a new command.
func (p *Packer) applyBlend() bool {
	mode := p.compositeMode
	if mode == p.activeBlend {
		return false
	}
	d := p.current
	switch {
	case d.WrittenIndices() == 0 && len(d.Breaks()) == 0:
		d.Blend = mode
	case p.hints.SplitOnBlendChange:
		p.startCommand()
		return true
	default:
		d.AddBreak(nil, true, mode)
		p.stats.add(StatBreaks, 1)
	}
	p.activeBlend = mode
	return false
}

// writeState writes the state values not yet in the open command and the
// header, and returns the header and its store offset.
func (p *Packer) writeState(shader *ItemShader, v *[numStateSlots]DataValue, z int32) (Header, uint32) {
	d := p.current
	a := p.hints.Alignment

	var hdr Header
	for s, val := range v {
		loc := hdr.location(stateSlot(s))
		switch {
		case val.IsZero():
			*loc = InvalidLocation
		case val.Packed() != nil:
			pv := val.Packed()
			if off, ok := p.uploaded[pv]; ok {
				*loc = off
				continue
			}
			w := pv.words(a)
			off, dst := d.AllocateStore(len(w))
			copy(dst, w)
			p.uploaded[pv] = uint32(off) //nolint:gosec // bounded by store capacity
			*loc = uint32(off)           //nolint:gosec // bounded by store capacity
		default:
			off, dst := d.AllocateStore(val.dataSize(a))
			val.Block().Pack(a, dst)
			*loc = uint32(off) //nolint:gosec // bounded by store capacity
		}
	}

	hdr.ItemShader = shader.ID()
	hdr.ItemGroup = shader.Group()
	if b, ok := v[slotBrush].Block().(interface{ ShaderID() uint32 }); ok {
		hdr.BrushShader = b.ShaderID()
	}
	if p.compositeShader != nil {
		hdr.CompositeShader = p.compositeShader.ID()
	}
	if p.blendShader != nil {
		hdr.BlendShader = p.blendShader.ID()
	}
	hdr.Z = z

	off, dst := d.AllocateStore(p.headerRoom())
	hdr.Pack(dst)
	p.stats.add(StatHeaders, 1)
	return hdr, uint32(off) //nolint:gosec // bounded by store capacity
}

func (p *Packer) notify(d *DrawCommand, hdr *Header, off uint32) {
	if len(p.callbacks) == 0 {
		return
	}
	mapped := d.Store()[off : off+HeaderSize]
	for i := len(p.callbacks) - 1; i >= 0; i-- {
		p.callbacks[i].HeaderAdded(d, hdr, mapped)
	}
}

func (p *Packer) startCommand() {
	if p.current != nil {
		p.closeCommand()
	}
	d := p.backend.NewDraw()
	if d == nil || d.Closed() || !d.Empty() {
		panic("painter: backend returned an unusable DrawCommand")
	}
	d.Blend = p.compositeMode
	p.activeBlend = p.compositeMode
	clear(p.uploaded)
	p.current = d
	p.draws = append(p.draws, d)

	Logger().Debug("painter: command started",
		"index", len(p.draws)-1,
		"store", d.StoreCapacity(),
		"attributes", d.AttributeCapacity(),
		"indices", d.IndexCapacity())
}

func (p *Packer) closeCommand() {
	d := p.current
	p.current = nil
	d.Close()
	if d.Empty() {
		p.draws = p.draws[:len(p.draws)-1]
		return
	}
	p.stats.add(StatDraws, 1)
	p.stats.add(StatAttributes, d.WrittenAttributes())
	p.stats.add(StatHeaderIndices, d.WrittenAttributes())
	p.stats.add(StatIndices, d.WrittenIndices())
	p.stats.add(StatGenericData, d.WrittenStore())
}
