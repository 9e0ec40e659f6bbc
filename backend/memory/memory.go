// Package memory provides an in-process painter backend.
//
// The backend allocates commands sized by its hints, reuses released
// commands, runs the actions of draw breaks in order on submission and
// keeps every submitted frame for inspection. It is the reference
// backend for tests and tools that examine packed output.
package memory

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/painter"
	"github.com/gogpu/painter/backend"
)

// ErrOpenCommand is returned by Submit when a command was not closed.
var ErrOpenCommand = errors.New("memory: submitted command is not closed")

func init() {
	backend.Register(backend.BackendMemory, func(h painter.PerformanceHints) (painter.Backend, error) {
		if err := h.Validate(); err != nil {
			return nil, err
		}
		return New(h), nil
	})
}

// Frame is one submission.
type Frame struct {
	Surface painter.Surface
	Info    painter.SubmitInfo
	Draws   []*painter.DrawCommand

	// Totals over Draws.
	Attributes int
	Indices    int
	StoreWords int
	Breaks     int
}

// Option configures a Backend.
type Option func(*Backend)

// WithSubmitHook calls fn with every recorded frame. An error from fn is
// returned by Submit; the frame stays recorded.
func WithSubmitHook(fn func(*Frame) error) Option {
	return func(b *Backend) {
		b.hook = fn
	}
}

// Backend is an in-memory painter.Backend. It is safe for concurrent use
// by several packers.
type Backend struct {
	hints painter.PerformanceHints
	hook  func(*Frame) error

	free sync.Pool

	mu        sync.Mutex
	frames    []Frame
	allocated int
}

// New creates a backend whose commands have the capacities of hints.
func New(hints painter.PerformanceHints, opts ...Option) *Backend {
	b := &Backend{hints: hints}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Hints implements painter.Backend.
func (b *Backend) Hints() painter.PerformanceHints { return b.hints }

// NewDraw implements painter.Backend. Released commands are reused.
func (b *Backend) NewDraw() *painter.DrawCommand {
	if d, ok := b.free.Get().(*painter.DrawCommand); ok {
		d.Reset()
		return d
	}
	b.mu.Lock()
	b.allocated++
	b.mu.Unlock()
	return painter.NewDrawCommand(b.hints.MaxStorePerDraw, b.hints.MaxAttributesPerDraw, b.hints.MaxIndicesPerDraw)
}

// Submit implements painter.Backend. It runs the actions of every break in
// command order and records the frame.
func (b *Backend) Submit(surface painter.Surface, draws []*painter.DrawCommand, info painter.SubmitInfo) error {
	f := Frame{
		Surface: surface,
		Info:    info,
		Draws:   draws,
	}
	for i, d := range draws {
		if !d.Closed() {
			return fmt.Errorf("%w: command %d", ErrOpenCommand, i)
		}
		for _, br := range d.Breaks() {
			if br.Action != nil {
				br.Action.Execute()
			}
		}
		f.Attributes += d.WrittenAttributes()
		f.Indices += d.WrittenIndices()
		f.StoreWords += d.WrittenStore()
		f.Breaks += len(d.Breaks())
	}

	b.mu.Lock()
	b.frames = append(b.frames, f)
	b.mu.Unlock()

	painter.Logger().Debug("memory: frame submitted",
		"commands", len(draws),
		"attributes", f.Attributes,
		"indices", f.Indices,
		"store", f.StoreWords,
		"breaks", f.Breaks)

	if b.hook != nil {
		return b.hook(&f)
	}
	return nil
}

// Frames returns the recorded frames in submission order.
func (b *Backend) Frames() []Frame {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Frame, len(b.frames))
	copy(out, b.frames)
	return out
}

// Allocated returns the number of commands created rather than reused.
func (b *Backend) Allocated() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.allocated
}

// Release forgets the recorded frames and makes their commands available
// to NewDraw. Commands of released frames must not be used afterwards.
func (b *Backend) Release() {
	b.mu.Lock()
	frames := b.frames
	b.frames = nil
	b.mu.Unlock()

	for _, f := range frames {
		for _, d := range f.Draws {
			b.free.Put(d)
		}
	}
}
