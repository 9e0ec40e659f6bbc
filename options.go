package painter

// PackerOption configures a Packer during creation.
//
// Example:
//
//	var stats painter.Stats
//	p, err := painter.NewPacker(pool, backend,
//		painter.WithStats(&stats),
//		painter.WithDefaultBrush(painter.SolidBrush(painter.Black)))
type PackerOption func(*packerOptions)

// packerOptions holds optional configuration for Packer creation.
type packerOptions struct {
	stats        *Stats
	defaultBrush Brush
	defaultClip  ClipEquations
}

// defaultPackerOptions returns the default packer options.
func defaultPackerOptions() packerOptions {
	return packerOptions{
		defaultBrush: DefaultBrush(),
		defaultClip:  DefaultClipEquations(),
	}
}

// WithStats makes the packer count what it writes into s.
// Counters accumulate across frames until s.Reset is called.
func WithStats(s *Stats) PackerOption {
	return func(o *packerOptions) {
		o.stats = s
	}
}

// WithDefaultBrush sets the brush used by draws without one.
// Default: opaque white.
func WithDefaultBrush(b Brush) PackerOption {
	return func(o *packerOptions) {
		o.defaultBrush = b
	}
}

// WithDefaultClip sets the clip equations used by draws without them.
// Default: every point passes.
func WithDefaultClip(c ClipEquations) PackerOption {
	return func(o *packerOptions) {
		o.defaultClip = c
	}
}
