package painter

import (
	"errors"
	"testing"
)

type testSurface struct{}

func (testSurface) Width() int  { return 64 }
func (testSurface) Height() int { return 64 }

type testSubmit struct {
	surface Surface
	draws   []*DrawCommand
	info    SubmitInfo
}

// testBackend records submissions without executing them.
type testBackend struct {
	hints    PerformanceHints
	err      error
	newDraws int
	submits  []testSubmit
}

func (b *testBackend) Hints() PerformanceHints { return b.hints }

func (b *testBackend) NewDraw() *DrawCommand {
	b.newDraws++
	return NewDrawCommand(b.hints.MaxStorePerDraw, b.hints.MaxAttributesPerDraw, b.hints.MaxIndicesPerDraw)
}

func (b *testBackend) Submit(surface Surface, draws []*DrawCommand, info SubmitInfo) error {
	b.submits = append(b.submits, testSubmit{surface: surface, draws: draws, info: info})
	return b.err
}

func newTestPacker(t *testing.T, hints PerformanceHints, opts ...PackerOption) *Packer {
	t.Helper()
	p, err := NewPacker(NewPackedValuePool(), &testBackend{hints: hints}, opts...)
	if err != nil {
		t.Fatalf("NewPacker() = %v", err)
	}
	return p
}

func backendOf(p *Packer) *testBackend {
	return p.backend.(*testBackend)
}

func testShader(name string) *ItemShader {
	s := NewItemShader(name, "")
	NewShaderRegistry().RegisterItemShader(s)
	return s
}

func quad() ([][]Attribute, [][]Index) {
	return [][]Attribute{make([]Attribute, 4)}, [][]Index{{0, 1, 2, 0, 2, 3}}
}

func smallHints(attribs int) PerformanceHints {
	h := DefaultHints()
	h.MaxAttributesPerDraw = attribs
	h.MaxIndicesPerDraw = 100
	h.MaxStorePerDraw = 1000
	return h
}

// headerRecorder captures every header a packer writes.
type headerRecorder struct {
	*CallbackHandle
	headers []Header
	offsets []int
	draws   []*DrawCommand
}

func newHeaderRecorder() *headerRecorder {
	return &headerRecorder{CallbackHandle: NewCallbackHandle()}
}

func (r *headerRecorder) HeaderAdded(d *DrawCommand, h *Header, mapped []GenericData) {
	r.headers = append(r.headers, *h)
	r.draws = append(r.draws, d)
	r.offsets = append(r.offsets, cap(d.Store())-cap(mapped))
}

func checkIndices(t *testing.T, d *DrawCommand) {
	t.Helper()
	for i, idx := range d.Indices() {
		if int(idx) >= d.WrittenAttributes() {
			t.Errorf("index %d = %d, outside %d attributes", i, idx, d.WrittenAttributes())
		}
	}
}

func TestNewPacker(t *testing.T) {
	_, err := NewPacker(nil, &testBackend{hints: PerformanceHints{}})
	if !errors.Is(err, ErrInvalidHints) {
		t.Errorf("NewPacker(invalid hints) error = %v, want ErrInvalidHints", err)
	}

	p := newTestPacker(t, DefaultHints())
	if p.Pool() == nil {
		t.Error("Pool() = nil")
	}
	if p.IsOpen() || p.CurrentDraw() != nil || p.CurrentIndicesWritten() != 0 {
		t.Error("new packer should be closed")
	}

	defer func() {
		if recover() == nil {
			t.Error("NewPacker(nil backend) did not panic")
		}
	}()
	_, _ = NewPacker(nil, nil)
}

func TestPackerDrawGeneric(t *testing.T) {
	p := newTestPacker(t, DefaultHints())
	shader := testShader("fill")
	attrs, idx := quad()

	p.Begin(testSurface{}, true)
	p.DrawGeneric(shader, nil, attrs, idx, nil, 7)
	if p.CurrentIndicesWritten() != 6 {
		t.Errorf("CurrentIndicesWritten() = %d, want 6", p.CurrentIndicesWritten())
	}
	if err := p.End(); err != nil {
		t.Fatalf("End() = %v", err)
	}

	b := backendOf(p)
	if len(b.submits) != 1 {
		t.Fatalf("%d submits, want 1", len(b.submits))
	}
	sub := b.submits[0]
	if sub.info != (SubmitInfo{ClearColorBuffer: true, BeginNewTarget: true}) {
		t.Errorf("SubmitInfo = %+v", sub.info)
	}
	if len(sub.draws) != 1 {
		t.Fatalf("%d draws, want 1", len(sub.draws))
	}
	d := sub.draws[0]
	if !d.Closed() {
		t.Error("submitted command not closed")
	}
	if d.WrittenAttributes() != 4 || d.WrittenIndices() != 6 {
		t.Errorf("written attributes/indices = %d/%d, want 4/6", d.WrittenAttributes(), d.WrittenIndices())
	}

	// clip 12 + matrix 12 + brush 4, then the header
	const hdrOff = 28
	if d.WrittenStore() != hdrOff+AlignUp(HeaderSize, 4) {
		t.Errorf("WrittenStore() = %d, want %d", d.WrittenStore(), hdrOff+AlignUp(HeaderSize, 4))
	}
	for i, h := range d.HeaderIndices() {
		if h != hdrOff {
			t.Errorf("header index %d = %d, want %d", i, h, hdrOff)
		}
	}
	hdr := UnpackHeader(d.Store()[hdrOff:])
	if hdr.ClipLocation != 0 || hdr.MatrixLocation != 12 || hdr.BrushLocation != 24 {
		t.Errorf("locations = %d %d %d, want 0 12 24", hdr.ClipLocation, hdr.MatrixLocation, hdr.BrushLocation)
	}
	if hdr.ItemShaderDataLocation != InvalidLocation || hdr.BlendShaderDataLocation != InvalidLocation {
		t.Errorf("absent shader data locations = %#x, %#x", hdr.ItemShaderDataLocation, hdr.BlendShaderDataLocation)
	}
	if hdr.ItemShader != shader.ID() || hdr.ItemGroup != shader.Group() || hdr.Z != 7 {
		t.Errorf("header = %+v", hdr)
	}
	checkIndices(t, d)
}

func TestPackerRoomNeeded(t *testing.T) {
	p := newTestPacker(t, DefaultHints())
	stroke := p.Pool().Create(DefaultStrokeParams())
	data := &PackerData{ItemShaderData: Pooled(stroke)}

	// defaults 28 + stroke 4
	if got := p.RoomNeeded(data); got != 32 {
		t.Errorf("RoomNeeded() before draw = %d, want 32", got)
	}
	twice := &PackerData{ItemShaderData: Pooled(stroke), CompositeShaderData: Pooled(stroke)}
	if got := p.RoomNeeded(twice); got != 32 {
		t.Errorf("RoomNeeded() with a value in two slots = %d, want 32", got)
	}

	attrs, idx := quad()
	p.Begin(testSurface{}, false)
	p.DrawGeneric(testShader("s"), data, attrs, idx, nil, 0)
	if got := p.RoomNeeded(data); got != 0 {
		t.Errorf("RoomNeeded() after draw = %d, want 0", got)
	}
	inline := &PackerData{ItemShaderData: Inline(DefaultStrokeParams())}
	if got := p.RoomNeeded(inline); got != 4 {
		t.Errorf("RoomNeeded(inline) = %d, want 4", got)
	}
	if err := p.End(); err != nil {
		t.Fatal(err)
	}
}

func TestPackerPooledValueWrittenOnce(t *testing.T) {
	p := newTestPacker(t, DefaultHints())
	rec := newHeaderRecorder()
	p.AddCallback(rec)
	shader := testShader("s")
	brush := p.Pool().CreateBrush(SolidBrush(Black))
	data := &PackerData{Brush: Pooled(brush)}
	attrs, idx := quad()

	p.Begin(testSurface{}, false)
	p.DrawGeneric(shader, data, attrs, idx, nil, 0)
	stored := p.CurrentDraw().WrittenStore()
	p.DrawGeneric(shader, data, attrs, idx, nil, 1)
	if grown := p.CurrentDraw().WrittenStore() - stored; grown != AlignUp(HeaderSize, 4) {
		t.Errorf("second draw wrote %d words, want only a header", grown)
	}
	if err := p.End(); err != nil {
		t.Fatal(err)
	}

	if len(rec.headers) != 2 {
		t.Fatalf("%d headers, want 2", len(rec.headers))
	}
	if rec.headers[0].BrushLocation != rec.headers[1].BrushLocation {
		t.Errorf("brush locations differ: %d, %d", rec.headers[0].BrushLocation, rec.headers[1].BrushLocation)
	}
}

func TestPackerSplitsCommands(t *testing.T) {
	p := newTestPacker(t, smallHints(10))
	shader := testShader("s")
	attrs, idx := quad()

	p.Begin(testSurface{}, false)
	for range 4 {
		p.DrawGeneric(shader, nil, attrs, idx, nil, 0)
	}
	if err := p.End(); err != nil {
		t.Fatal(err)
	}

	draws := backendOf(p).submits[0].draws
	if len(draws) != 2 {
		t.Fatalf("%d commands, want 2", len(draws))
	}
	for i, d := range draws {
		if d.WrittenAttributes() != 8 || d.WrittenIndices() != 12 {
			t.Errorf("command %d: attributes/indices = %d/%d, want 8/12", i, d.WrittenAttributes(), d.WrittenIndices())
		}
		hdr := UnpackHeader(d.Store()[d.HeaderIndices()[0]:])
		if hdr.ClipLocation != 0 {
			t.Errorf("command %d: defaults not written again, clip at %d", i, hdr.ClipLocation)
		}
		checkIndices(t, d)
	}
}

func TestPackerDrawTooLarge(t *testing.T) {
	p := newTestPacker(t, smallHints(3))
	attrs, idx := quad()
	p.Begin(testSurface{}, false)
	defer func() {
		if recover() == nil {
			t.Error("oversized draw did not panic")
		}
	}()
	p.DrawGeneric(testShader("s"), nil, attrs, idx, nil, 0)
}

func TestPackerIndexChunks(t *testing.T) {
	tests := []struct {
		name     string
		attrs    [][]Attribute
		indices  [][]Index
		adjusts  []int
		selector []int
		want     []Index
	}{
		{
			name:    "chunks",
			attrs:   [][]Attribute{make([]Attribute, 2), make([]Attribute, 3)},
			indices: [][]Index{{0, 1}, {0, 2}},
			want:    []Index{0, 1, 2, 4},
		},
		{
			name:    "adjusted",
			attrs:   [][]Attribute{make([]Attribute, 3)},
			indices: [][]Index{{1, 2}},
			adjusts: []int{-1},
			want:    []Index{0, 1},
		},
		{
			name:     "selected",
			attrs:    [][]Attribute{make([]Attribute, 2), make([]Attribute, 3)},
			indices:  [][]Index{{0, 2}, {1}},
			selector: []int{1, 0},
			want:     []Index{2, 4, 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPacker(t, DefaultHints())
			shader := testShader("s")
			p.Begin(testSurface{}, false)
			if tt.selector != nil {
				p.DrawGenericSelect(shader, nil, tt.attrs, tt.indices, tt.adjusts, tt.selector, 0)
			} else {
				p.DrawGeneric(shader, nil, tt.attrs, tt.indices, tt.adjusts, 0)
			}
			got := p.CurrentDraw().Indices()
			if len(got) != len(tt.want) {
				t.Fatalf("Indices() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Indices() = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestPackerContractPanics(t *testing.T) {
	attrs, idx := quad()
	tests := []struct {
		name string
		fn   func(p *Packer)
	}{
		{"begin twice", func(p *Packer) {
			p.Begin(testSurface{}, false)
			p.Begin(testSurface{}, false)
		}},
		{"end without begin", func(p *Packer) { _ = p.End() }},
		{"flush without begin", func(p *Packer) { _ = p.Flush(false) }},
		{"draw without begin", func(p *Packer) {
			p.DrawGeneric(testShader("s"), nil, attrs, idx, nil, 0)
		}},
		{"unregistered shader", func(p *Packer) {
			p.Begin(testSurface{}, false)
			p.DrawGeneric(NewItemShader("s", ""), nil, attrs, idx, nil, 0)
		}},
		{"index outside chunk", func(p *Packer) {
			p.Begin(testSurface{}, false)
			p.DrawGeneric(testShader("s"), nil, attrs, [][]Index{{4}}, nil, 0)
		}},
		{"adjust count mismatch", func(p *Packer) {
			p.Begin(testSurface{}, false)
			p.DrawGeneric(testShader("s"), nil, attrs, idx, []int{0, 0}, 0)
		}},
		{"selector out of range", func(p *Packer) {
			p.Begin(testSurface{}, false)
			p.DrawGenericSelect(testShader("s"), nil, attrs, idx, nil, []int{3}, 0)
		}},
		{"nil break action", func(p *Packer) {
			p.Begin(testSurface{}, false)
			p.DrawBreak(nil)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPacker(t, DefaultHints())
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn(p)
		})
	}
}

func TestPackerCallbacks(t *testing.T) {
	p := newTestPacker(t, DefaultHints())
	var order []string
	first := NewCallbackFunc(func(_ *DrawCommand, h *Header, mapped []GenericData) {
		order = append(order, "first")
		if got := mapped[HeaderZ].I(); got != h.Z {
			t.Errorf("mapped Z = %d, header Z = %d", got, h.Z)
		}
		if got := UnpackHeader(mapped); got != *h {
			t.Errorf("mapped header = %+v, want %+v", got, *h)
		}
	})
	second := NewCallbackFunc(func(*DrawCommand, *Header, []GenericData) {
		order = append(order, "second")
	})
	p.AddCallback(first)
	p.AddCallback(second)
	if !first.Attached() {
		t.Error("Attached() = false after AddCallback")
	}

	attrs, idx := quad()
	p.Begin(testSurface{}, false)
	p.DrawGeneric(testShader("s"), nil, attrs, idx, nil, -3)

	if len(order) != 2 || order[0] != "second" || order[1] != "first" {
		t.Errorf("callback order = %v, want [second first]", order)
	}

	p.RemoveCallback(second)
	if second.Attached() {
		t.Error("Attached() = true after RemoveCallback")
	}
	order = nil
	p.DrawGeneric(testShader("s"), nil, attrs, idx, nil, 0)
	if len(order) != 1 || order[0] != "first" {
		t.Errorf("callback order after remove = %v, want [first]", order)
	}
	if err := p.End(); err != nil {
		t.Fatal(err)
	}

	other := newTestPacker(t, DefaultHints())
	func() {
		defer func() {
			if recover() == nil {
				t.Error("attaching a callback to a second packer did not panic")
			}
		}()
		other.AddCallback(first)
	}()
	func() {
		defer func() {
			if recover() == nil {
				t.Error("removing a callback from a packer it is not attached to did not panic")
			}
		}()
		other.RemoveCallback(second)
	}()
}

func TestPackerDrawBreak(t *testing.T) {
	p := newTestPacker(t, DefaultHints())
	shader := testShader("s")
	attrs, idx := quad()
	ran := 0

	p.Begin(testSurface{}, false)
	p.DrawGeneric(shader, nil, attrs, idx, nil, 0)
	p.DrawBreak(ActionFunc(func() { ran++ }))
	p.DrawGeneric(shader, nil, attrs, idx, nil, 0)
	if err := p.End(); err != nil {
		t.Fatal(err)
	}

	draws := backendOf(p).submits[0].draws
	if len(draws) != 1 {
		t.Fatalf("%d commands, want 1", len(draws))
	}
	br := draws[0].Breaks()
	if len(br) != 1 || br[0].IndexOffset != 6 || br[0].BlendChange {
		t.Fatalf("Breaks() = %+v", br)
	}
	if ran != 0 {
		t.Error("packer ran the break action itself")
	}
	br[0].Action.Execute()
	if ran != 1 {
		t.Error("recorded action does not run the given function")
	}
}

func TestPackerBlendChange(t *testing.T) {
	attrs, idx := quad()

	t.Run("break", func(t *testing.T) {
		p := newTestPacker(t, DefaultHints())
		shader := testShader("s")
		p.Begin(testSurface{}, false)
		p.DrawGeneric(shader, nil, attrs, idx, nil, 0)
		p.SetCompositeShader(nil, BlendPlus)
		p.DrawGeneric(shader, nil, attrs, idx, nil, 0)
		p.DrawGeneric(shader, nil, attrs, idx, nil, 0)
		if err := p.End(); err != nil {
			t.Fatal(err)
		}
		draws := backendOf(p).submits[0].draws
		if len(draws) != 1 {
			t.Fatalf("%d commands, want 1", len(draws))
		}
		d := draws[0]
		if d.Blend != BlendSrcOver {
			t.Errorf("Blend = %v, want SrcOver", d.Blend)
		}
		br := d.Breaks()
		if len(br) != 1 || !br[0].BlendChange || br[0].Blend != BlendPlus || br[0].IndexOffset != 6 {
			t.Errorf("Breaks() = %+v", br)
		}
	})

	t.Run("split", func(t *testing.T) {
		h := DefaultHints()
		h.SplitOnBlendChange = true
		p := newTestPacker(t, h)
		shader := testShader("s")
		p.Begin(testSurface{}, false)
		p.DrawGeneric(shader, nil, attrs, idx, nil, 0)
		p.SetCompositeShader(nil, BlendPlus)
		p.DrawGeneric(shader, nil, attrs, idx, nil, 0)
		if err := p.End(); err != nil {
			t.Fatal(err)
		}
		draws := backendOf(p).submits[0].draws
		if len(draws) != 2 {
			t.Fatalf("%d commands, want 2", len(draws))
		}
		if draws[0].Blend != BlendSrcOver || draws[1].Blend != BlendPlus {
			t.Errorf("Blend = %v, %v; want SrcOver, Plus", draws[0].Blend, draws[1].Blend)
		}
		if len(draws[1].Breaks()) != 0 {
			t.Errorf("split command has breaks %+v", draws[1].Breaks())
		}
	})

	t.Run("before first draw", func(t *testing.T) {
		p := newTestPacker(t, DefaultHints())
		comp := NewCompositeShader("c", "")
		NewShaderRegistry().RegisterCompositeShader(comp)
		rec := newHeaderRecorder()
		p.AddCallback(rec)

		p.Begin(testSurface{}, false)
		p.SetCompositeShader(comp, BlendDstOver)
		p.DrawGeneric(testShader("s"), nil, attrs, idx, nil, 0)
		d := p.CurrentDraw()
		if d.Blend != BlendDstOver || len(d.Breaks()) != 0 {
			t.Errorf("Blend = %v, breaks = %+v; want DstOver and none", d.Blend, d.Breaks())
		}
		if rec.headers[0].CompositeShader != comp.ID() {
			t.Errorf("header CompositeShader = %d, want %d", rec.headers[0].CompositeShader, comp.ID())
		}
		if s, m := p.CompositeShader(); s != comp || m != BlendDstOver {
			t.Errorf("CompositeShader() = %v, %v", s, m)
		}
		if err := p.End(); err != nil {
			t.Fatal(err)
		}
	})
}

func TestPackerFlush(t *testing.T) {
	var stats Stats
	p := newTestPacker(t, DefaultHints(), WithStats(&stats))
	shader := testShader("s")
	attrs, idx := quad()

	p.Begin(testSurface{}, true)
	p.DrawGeneric(shader, nil, attrs, idx, nil, 0)
	if err := p.Flush(true); err != nil {
		t.Fatal(err)
	}
	if !p.IsOpen() {
		t.Fatal("packer closed after Flush")
	}
	p.DrawGeneric(shader, nil, attrs, idx, nil, 0)
	if err := p.Flush(false); err != nil {
		t.Fatal(err)
	}
	if err := p.End(); err != nil {
		t.Fatal(err)
	}

	subs := backendOf(p).submits
	want := []SubmitInfo{
		{ClearColorBuffer: true, BeginNewTarget: true},
		{BeginNewTarget: true},
		{},
	}
	if len(subs) != len(want) {
		t.Fatalf("%d submits, want %d", len(subs), len(want))
	}
	for i, w := range want {
		if subs[i].info != w {
			t.Errorf("submit %d info = %+v, want %+v", i, subs[i].info, w)
		}
		if subs[i].surface != (testSurface{}) {
			t.Errorf("submit %d surface = %v", i, subs[i].surface)
		}
	}
	if len(subs[2].draws) != 0 {
		t.Errorf("empty frame submitted %d commands", len(subs[2].draws))
	}

	checks := map[QueryStat]uint64{
		StatBegins:     1,
		StatEnds:       1,
		StatFlushes:    2,
		StatDraws:      2,
		StatHeaders:    2,
		StatAttributes: 8,
		StatIndices:    12,
	}
	for q, want := range checks {
		if got := stats.Get(q); got != want {
			t.Errorf("stats %v = %d, want %d", q, got, want)
		}
	}
}

func TestPackerEndError(t *testing.T) {
	p := newTestPacker(t, DefaultHints())
	errGPU := errors.New("device lost")
	backendOf(p).err = errGPU

	p.Begin(testSurface{}, false)
	err := p.End()
	if !errors.Is(err, errGPU) {
		t.Errorf("End() = %v, want wrapped %v", err, errGPU)
	}
	if p.IsOpen() {
		t.Error("packer still open after failed End")
	}
	p.Begin(testSurface{}, false)
	if !p.IsOpen() {
		t.Error("Begin after failed End did not open a frame")
	}
}

func TestPackerAlignment(t *testing.T) {
	h := DefaultHints()
	h.Alignment = 3
	p := newTestPacker(t, h)
	rec := newHeaderRecorder()
	p.AddCallback(rec)
	data := &PackerData{
		ItemShaderData: Inline(DefaultDashedStrokeParams().WithDashPattern(DashPatternElement{3, 2})),
		Brush:          Inline(DefaultBrush().WithTransformation(Scale(2, 2))),
	}
	attrs, idx := quad()

	p.Begin(testSurface{}, false)
	p.DrawGeneric(testShader("s"), data, attrs, idx, nil, 0)
	if err := p.End(); err != nil {
		t.Fatal(err)
	}

	hdr := rec.headers[0]
	locs := []uint32{hdr.ClipLocation, hdr.MatrixLocation, hdr.BrushLocation, hdr.ItemShaderDataLocation, uint32(rec.offsets[0])} //nolint:gosec // small offset
	for i, l := range locs {
		if l%3 != 0 {
			t.Errorf("location %d = %d, not aligned to 3", i, l)
		}
	}
	if hdr.BrushShader != uint32(BrushTransformation) {
		t.Errorf("BrushShader = %d, want %d", hdr.BrushShader, BrushTransformation)
	}
}

// unitWriter writes count quads.
type unitWriter struct {
	count     int
	next      int
	newStores int
}

func (w *unitWriter) MinAttributes() int { return 4 }
func (w *unitWriter) MinIndices() int    { return 6 }
func (w *unitWriter) NewStore()          { w.newStores++ }

func (w *unitWriter) Begin() bool {
	w.next = 0
	return w.count > 0
}

func (w *unitWriter) Write(attrs []Attribute, indices []Index, base int) (int, int, bool) {
	n := min(len(attrs)/4, len(indices)/6, w.count-w.next)
	for i := range n {
		b := Index(base + 4*i) //nolint:gosec // small test values
		copy(indices[6*i:], []Index{b, b + 1, b + 2, b, b + 2, b + 3})
	}
	w.next += n
	return 4 * n, 6 * n, w.next < w.count
}

func TestPackerDrawWriter(t *testing.T) {
	p := newTestPacker(t, smallHints(10))
	rec := newHeaderRecorder()
	p.AddCallback(rec)
	shader := testShader("s")
	w := &unitWriter{count: 5}

	p.Begin(testSurface{}, false)
	p.DrawWriter(shader, nil, w, 4)
	if err := p.End(); err != nil {
		t.Fatal(err)
	}

	draws := backendOf(p).submits[0].draws
	if len(draws) != 3 {
		t.Fatalf("%d commands, want 3", len(draws))
	}
	wantAttrs := []int{8, 8, 4}
	for i, d := range draws {
		if d.WrittenAttributes() != wantAttrs[i] || d.WrittenIndices() != wantAttrs[i]/4*6 {
			t.Errorf("command %d: attributes/indices = %d/%d", i, d.WrittenAttributes(), d.WrittenIndices())
		}
		checkIndices(t, d)
	}
	if w.newStores != 2 {
		t.Errorf("NewStore called %d times, want 2", w.newStores)
	}
	if len(rec.headers) != 3 {
		t.Errorf("%d headers, want one per command", len(rec.headers))
	}
	for i, d := range rec.draws {
		if d != draws[i] {
			t.Errorf("header %d reported for the wrong command", i)
		}
	}
}

func TestPackerDrawWriterEmpty(t *testing.T) {
	p := newTestPacker(t, DefaultHints())
	p.Begin(testSurface{}, false)
	p.DrawWriter(testShader("s"), nil, &unitWriter{}, 0)
	if !p.CurrentDraw().Empty() {
		t.Error("empty writer wrote into the command")
	}
	if err := p.End(); err != nil {
		t.Fatal(err)
	}
}
