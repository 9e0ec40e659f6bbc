package painter

import (
	"errors"
	"fmt"
)

// ErrInvalidHints is returned by PerformanceHints.Validate.
var ErrInvalidHints = errors.New("painter: invalid performance hints")

// Surface is the render target of a frame. The packer only hands it to the
// backend.
type Surface interface {
	Width() int
	Height() int
}

// PerformanceHints are the capacities and layout requirements a backend
// reports to the packer.
type PerformanceHints struct {
	// MaxAttributesPerDraw is the attribute capacity of one command.
	MaxAttributesPerDraw int `yaml:"max_attributes_per_draw"`

	// MaxIndicesPerDraw is the index capacity of one command.
	MaxIndicesPerDraw int `yaml:"max_indices_per_draw"`

	// MaxStorePerDraw is the store capacity of one command, in words.
	MaxStorePerDraw int `yaml:"max_store_per_draw"`

	// Alignment is the word alignment of every value packed into the
	// store. It need not be a power of two.
	Alignment int `yaml:"alignment"`

	// SplitOnBlendChange starts a new command on a blend mode change
	// instead of recording a break in the current one.
	SplitOnBlendChange bool `yaml:"split_on_blend_change"`
}

// DefaultHints returns hints suitable for most backends.
func DefaultHints() PerformanceHints {
	return PerformanceHints{
		MaxAttributesPerDraw: 64 * 1024,
		MaxIndicesPerDraw:    96 * 1024,
		MaxStorePerDraw:      256 * 1024,
		Alignment:            4,
	}
}

// Validate checks that the hints describe usable commands.
func (h PerformanceHints) Validate() error {
	switch {
	case h.Alignment < 1:
		return fmt.Errorf("%w: alignment %d", ErrInvalidHints, h.Alignment)
	case h.MaxAttributesPerDraw < 1:
		return fmt.Errorf("%w: max attributes per draw %d", ErrInvalidHints, h.MaxAttributesPerDraw)
	case h.MaxIndicesPerDraw < 1:
		return fmt.Errorf("%w: max indices per draw %d", ErrInvalidHints, h.MaxIndicesPerDraw)
	case h.MaxStorePerDraw < AlignUp(HeaderSize, h.Alignment):
		return fmt.Errorf("%w: max store per draw %d cannot hold a header", ErrInvalidHints, h.MaxStorePerDraw)
	}
	return nil
}

// SubmitInfo describes how a backend starts a submission.
type SubmitInfo struct {
	// ClearColorBuffer clears the surface before the first command.
	ClearColorBuffer bool

	// BeginNewTarget resets the depth buffer. It is set by Begin and by
	// Flush(true).
	BeginNewTarget bool
}

// Backend allocates commands and executes them.
type Backend interface {
	// Hints returns the capacities of the commands NewDraw returns.
	Hints() PerformanceHints

	// NewDraw returns an empty, open command.
	NewDraw() *DrawCommand

	// Submit executes the closed commands in order. Ownership of the
	// commands passes to the backend.
	Submit(surface Surface, draws []*DrawCommand, info SubmitInfo) error
}
