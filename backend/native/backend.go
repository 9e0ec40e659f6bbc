// Package native provides a painter backend that uploads commands to a
// gogpu/wgpu HAL device.
//
// Each submitted command becomes one set of buffers: the word store as a
// storage buffer, attributes and header indices as vertex buffers, and
// indices as an index buffer. The index range is split at draw breaks
// into DrawRanges, each carrying the blend state in effect. Buffers of a
// submission live until the next submission or Close.
package native

import (
	"fmt"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
	"honnef.co/go/safeish"

	"github.com/gogpu/painter"
	"github.com/gogpu/painter/backend"
)

func init() {
	backend.Register(backend.BackendNative, func(h painter.PerformanceHints) (painter.Backend, error) {
		return OpenHeadless(WithHints(h))
	})
}

// DrawRange is a run of indices drawn with one blend state.
type DrawRange struct {
	First uint32
	Count uint32
	Blend gputypes.BlendState
}

// Upload holds the buffers of one submitted command. Buffers are nil for
// empty stores.
type Upload struct {
	Store         hal.Buffer
	Attributes    hal.Buffer
	HeaderIndices hal.Buffer
	Indices       hal.Buffer

	StoreSize, AttributesSize, HeaderIndicesSize, IndicesSize uint64

	Ranges []DrawRange
}

// Option configures a Backend.
type Option func(*options)

type options struct {
	hints  painter.PerformanceHints
	limits gputypes.Limits
}

// WithHints sets the requested command capacities. They are lowered to
// what the device limits allow. Default: painter.DefaultHints.
func WithHints(h painter.PerformanceHints) Option {
	return func(o *options) {
		o.hints = h
	}
}

// WithLimits sets the device limits used to derive hints.
// Default: gputypes.DefaultLimits.
func WithLimits(l gputypes.Limits) Option {
	return func(o *options) {
		o.limits = l
	}
}

// Backend is a painter.Backend on a HAL device.
type Backend struct {
	device hal.Device
	queue  hal.Queue
	hints  painter.PerformanceHints

	// set when the backend opened the device itself
	instance  hal.Instance
	ownDevice bool

	mu       sync.Mutex
	closed   bool
	inflight []Upload
	modules  map[*painter.ItemShader]hal.ShaderModule
}

// New creates a backend on device and queue. The caller keeps ownership of
// both.
func New(device hal.Device, queue hal.Queue, opts ...Option) (*Backend, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	o := options{
		hints:  painter.DefaultHints(),
		limits: gputypes.DefaultLimits(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	hints := deriveHints(o.hints, o.limits)
	if err := hints.Validate(); err != nil {
		return nil, err
	}
	return &Backend{
		device:  device,
		queue:   queue,
		hints:   hints,
		modules: make(map[*painter.ItemShader]hal.ShaderModule),
	}, nil
}

// NewFromProvider creates a backend on the device of provider. The
// provider must implement HalDevice() any and HalQueue() any returning
// hal.Device and hal.Queue.
func NewFromProvider(provider gpucontext.DeviceProvider, opts ...Option) (*Backend, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHalProvider
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHalProvider)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHalProvider)
	}
	return New(device, queue, opts...)
}

// OpenHeadless creates a backend on the noop HAL device. Uploads are
// validated and accounted but reach no GPU.
func OpenHeadless(opts ...Option) (*Backend, error) {
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		return nil, fmt.Errorf("native: create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapter
	}
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("native: open device: %w", err)
	}

	b, err := New(openDev.Device, openDev.Queue, opts...)
	if err != nil {
		openDev.Device.Destroy()
		instance.Destroy()
		return nil, err
	}
	b.instance = instance
	b.ownDevice = true
	painter.Logger().Info("native: headless device opened")
	return b, nil
}

// deriveHints lowers h to what buffers of at most limits.MaxBufferSize
// bytes can hold.
func deriveHints(h painter.PerformanceHints, limits gputypes.Limits) painter.PerformanceHints {
	maxBuf := limits.MaxBufferSize
	if maxBuf == 0 {
		return h
	}
	h.MaxStorePerDraw = clampCount(h.MaxStorePerDraw, maxBuf/4)
	h.MaxAttributesPerDraw = clampCount(h.MaxAttributesPerDraw, maxBuf/painter.AttributeSize)
	h.MaxIndicesPerDraw = clampCount(h.MaxIndicesPerDraw, maxBuf/4)
	return h
}

func clampCount(n int, limit uint64) int {
	if n > 0 && uint64(n) > limit {
		return int(limit) //nolint:gosec // limit < n
	}
	return n
}

// Device returns the HAL device.
func (b *Backend) Device() hal.Device { return b.device }

// Hints implements painter.Backend.
func (b *Backend) Hints() painter.PerformanceHints { return b.hints }

// NewDraw implements painter.Backend.
func (b *Backend) NewDraw() *painter.DrawCommand {
	return painter.NewDrawCommand(b.hints.MaxStorePerDraw, b.hints.MaxAttributesPerDraw, b.hints.MaxIndicesPerDraw)
}

// Submit implements painter.Backend. It releases the buffers of the
// previous submission, uploads every command and runs break actions in
// order.
func (b *Backend) Submit(_ painter.Surface, draws []*painter.DrawCommand, info painter.SubmitInfo) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}
	b.releaseLocked()

	uploads := make([]Upload, 0, len(draws))
	for i, d := range draws {
		if !d.Closed() {
			b.inflight = uploads
			return fmt.Errorf("%w: command %d", ErrOpenCommand, i)
		}
		u, err := b.upload(i, d)
		if err != nil {
			b.inflight = uploads
			return err
		}
		uploads = append(uploads, u)
	}
	b.inflight = uploads

	painter.Logger().Debug("native: frame uploaded",
		"commands", len(draws),
		"clear_color", info.ClearColorBuffer,
		"new_target", info.BeginNewTarget)
	return nil
}

func (b *Backend) upload(i int, d *painter.DrawCommand) (Upload, error) {
	var u Upload
	var err error

	store := safeish.SliceCast[[]byte](d.Store())
	if u.Store, err = b.createAndUpload(fmt.Sprintf("painter_store_%d", i), store,
		gputypes.BufferUsageStorage|gputypes.BufferUsageCopyDst); err != nil {
		return u, err
	}
	u.StoreSize = uint64(len(store))

	attrs := safeish.SliceCast[[]byte](d.Attributes())
	if u.Attributes, err = b.createAndUpload(fmt.Sprintf("painter_attributes_%d", i), attrs,
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst); err != nil {
		b.destroy(u)
		return Upload{}, err
	}
	u.AttributesSize = uint64(len(attrs))

	hidx := safeish.SliceCast[[]byte](d.HeaderIndices())
	if u.HeaderIndices, err = b.createAndUpload(fmt.Sprintf("painter_header_indices_%d", i), hidx,
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst); err != nil {
		b.destroy(u)
		return Upload{}, err
	}
	u.HeaderIndicesSize = uint64(len(hidx))

	idx := safeish.SliceCast[[]byte](d.Indices())
	if u.Indices, err = b.createAndUpload(fmt.Sprintf("painter_indices_%d", i), idx,
		gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst); err != nil {
		b.destroy(u)
		return Upload{}, err
	}
	u.IndicesSize = uint64(len(idx))

	u.Ranges = drawRanges(d)
	return u, nil
}

// drawRanges splits the indices of d at its breaks and runs their actions.
func drawRanges(d *painter.DrawCommand) []DrawRange {
	var ranges []DrawRange
	blend := d.Blend
	start := 0
	emit := func(end int) {
		if end > start {
			ranges = append(ranges, DrawRange{
				First: uint32(start),       //nolint:gosec // bounded by index capacity
				Count: uint32(end - start), //nolint:gosec // bounded by index capacity
				Blend: blend.BlendState(),
			})
			start = end
		}
	}
	for _, br := range d.Breaks() {
		emit(br.IndexOffset)
		if br.Action != nil {
			br.Action.Execute()
		}
		if br.BlendChange {
			blend = br.Blend
		}
	}
	emit(d.WrittenIndices())
	return ranges
}

// createAndUpload creates a buffer and uploads data. Empty data gives a
// nil buffer.
func (b *Backend) createAndUpload(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	if len(data) == 0 {
		return nil, nil
	}
	buf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("native: create %s: %w", label, err)
	}
	b.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// Uploads returns the buffers of the last submission.
func (b *Backend) Uploads() []Upload {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Upload, len(b.inflight))
	copy(out, b.inflight)
	return out
}

// VertexLayout returns the vertex buffer layouts of an upload: attributes
// at locations 0 to 2 and the header index at location 3.
func VertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: painter.AttributeSize,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatUint32x4, Offset: 0, ShaderLocation: 0},
				{Format: gputypes.VertexFormatUint32x4, Offset: 16, ShaderLocation: 1},
				{Format: gputypes.VertexFormatUint32x4, Offset: 32, ShaderLocation: 2},
			},
		},
		{
			ArrayStride: 4,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatUint32, Offset: 0, ShaderLocation: 3},
			},
		},
	}
}

func (b *Backend) destroy(u Upload) {
	for _, buf := range []hal.Buffer{u.Store, u.Attributes, u.HeaderIndices, u.Indices} {
		if buf != nil {
			b.device.DestroyBuffer(buf)
		}
	}
}

func (b *Backend) releaseLocked() {
	for _, u := range b.inflight {
		b.destroy(u)
	}
	b.inflight = nil
}

// Close destroys all buffers and shader modules, and the device if the
// backend opened it. Close is idempotent.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	b.releaseLocked()
	for s, m := range b.modules {
		b.device.DestroyShaderModule(m)
		delete(b.modules, s)
	}
	if b.ownDevice {
		b.device.Destroy()
		if b.instance != nil {
			b.instance.Destroy()
		}
	}
}
