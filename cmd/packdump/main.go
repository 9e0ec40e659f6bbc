// Command packdump packs a demonstration frame through a painter backend
// and prints what each command holds.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/chewxy/math32"
	"github.com/spf13/pflag"
	"golang.org/x/image/math/f32"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/painter"
	"github.com/gogpu/painter/backend"
	"github.com/gogpu/painter/backend/memory"
	"github.com/gogpu/painter/backend/native"
	"github.com/gogpu/painter/tessellate"
)

const strokeWGSL = `
struct VertexOutput {
    @builtin(position) position: vec4<f32>,
}

@vertex
fn vs_main(@location(0) a0: vec4<u32>) -> VertexOutput {
    var out: VertexOutput;
    out.position = vec4<f32>(bitcast<f32>(a0.x), bitcast<f32>(a0.y), 0.0, 1.0);
    return out;
}
`

type surface struct {
	width, height int
}

func (s surface) Width() int  { return s.width }
func (s surface) Height() int { return s.height }

type config struct {
	backend    string
	hintsFile  string
	store      int
	attributes int
	indices    int
	splitBlend bool
	dash       []float32
	frames     int
	verbose    bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var cfg config
	fs := pflag.NewFlagSet("packdump", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&cfg.backend, "backend", "b", "", "Backend name ("+strings.Join(backend.Available(), ", ")+"); empty picks the default")
	fs.StringVar(&cfg.hintsFile, "hints", "", "YAML file with performance hints")
	fs.IntVar(&cfg.store, "store", 0, "Store words per command (0 keeps the hint)")
	fs.IntVar(&cfg.attributes, "attributes", 0, "Attributes per command (0 keeps the hint)")
	fs.IntVar(&cfg.indices, "indices", 0, "Indices per command (0 keeps the hint)")
	fs.BoolVar(&cfg.splitBlend, "split-blend", false, "Start a new command on blend mode changes")
	fs.Float32SliceVar(&cfg.dash, "dash", []float32{12, 6, 3, 6}, "Dash pattern as draw,space pairs")
	fs.IntVarP(&cfg.frames, "frames", "n", 1, "Number of frames to pack")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "Log packer activity to stderr")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if cfg.verbose {
		painter.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		defer painter.SetLogger(nil)
	}

	hints, err := loadHints(&cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	var b painter.Backend
	if cfg.backend == "" {
		b, err = backend.Default(hints)
	} else {
		b, err = backend.Open(cfg.backend, hints)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	var stats painter.Stats
	if err := dump(b, &cfg, &stats, stdout); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "stats: %s\n", stats.String())
	return 0
}

// loadHints starts from painter.DefaultHints, applies the hints file and
// then the command line overrides.
func loadHints(cfg *config) (painter.PerformanceHints, error) {
	hints := painter.DefaultHints()
	if cfg.hintsFile != "" {
		data, err := os.ReadFile(cfg.hintsFile)
		if err != nil {
			return hints, fmt.Errorf("read hints: %w", err)
		}
		if err := yaml.Unmarshal(data, &hints); err != nil {
			return hints, fmt.Errorf("parse hints %s: %w", cfg.hintsFile, err)
		}
	}
	if cfg.store > 0 {
		hints.MaxStorePerDraw = cfg.store
	}
	if cfg.attributes > 0 {
		hints.MaxAttributesPerDraw = cfg.attributes
	}
	if cfg.indices > 0 {
		hints.MaxIndicesPerDraw = cfg.indices
	}
	if cfg.splitBlend {
		hints.SplitOnBlendChange = true
	}
	return hints, hints.Validate()
}

func dash(values []float32) []painter.DashPatternElement {
	elems := make([]painter.DashPatternElement, 0, (len(values)+1)/2)
	for i := 0; i < len(values); i += 2 {
		e := painter.DashPatternElement{Draw: values[i]}
		if i+1 < len(values) {
			e.Space = values[i+1]
		}
		elems = append(elems, e)
	}
	return elems
}

func dump(b painter.Backend, cfg *config, stats *painter.Stats, w io.Writer) error {
	registry := painter.NewShaderRegistry()
	stroke := painter.NewItemShader("dashed_stroke", strokeWGSL)
	fill := painter.NewItemShader("fill", "")
	registry.RegisterItemShader(stroke)
	registry.RegisterItemSubShader(stroke, fill)
	composite := painter.NewCompositeShader("composite", "")
	registry.RegisterCompositeShader(composite)

	if nb, ok := b.(*native.Backend); ok {
		defer nb.Close()
		if err := nb.RegisterShaders(registry); err != nil {
			return err
		}
	}

	pool := painter.NewPackedValuePool()
	p, err := painter.NewPacker(pool, b, painter.WithStats(stats))
	if err != nil {
		return err
	}

	var builder tessellate.Builder
	builder.MoveTo(f32.Vec2{20, 20})
	builder.LineTo(f32.Vec2{220, 20})
	builder.QuadTo(f32.Vec2{300, 120}, f32.Vec2{220, 220})
	builder.ArcTo(math32.Pi, f32.Vec2{20, 220})
	builder.Close()
	path := builder.Build(tessellate.DefaultParams())

	strokeData := pool.Create(painter.DefaultDashedStrokeParams().
		WithWidth(4).
		WithDashPattern(dash(cfg.dash)...))
	brush := pool.CreateBrush(painter.SolidBrush(painter.Hex("#3366cc")).
		WithLinearGradient(f32.Vec2{0, 0}, f32.Vec2{320, 240}))
	matrix := painter.ItemMatrixFromAffine(painter.Translate(10, 10))

	quad := []painter.Attribute{{}, {}, {}, {}}
	quadIndices := []painter.Index{0, 1, 2, 0, 2, 3}

	for frame := range cfg.frames {
		p.Begin(surface{width: 320, height: 240}, true)

		p.DrawWriter(stroke, &painter.PackerData{
			Matrix:         painter.Inline(matrix),
			Brush:          painter.Pooled(brush),
			ItemShaderData: painter.Pooled(strokeData),
		}, tessellate.NewSegmentWriter(path.Segments()), 1)

		p.DrawBreak(painter.ActionFunc(func() {
			painter.Logger().Debug("packdump: stencil toggle", "frame", frame)
		}))

		p.SetCompositeShader(composite, painter.BlendPlus)
		p.DrawGeneric(fill, &painter.PackerData{Brush: painter.Pooled(brush)},
			[][]painter.Attribute{quad}, [][]painter.Index{quadIndices}, nil, 2)
		p.SetCompositeShader(nil, painter.BlendSrcOver)

		if err := p.End(); err != nil {
			return err
		}
	}

	printFrames(b, w)
	return nil
}

func printFrames(b painter.Backend, w io.Writer) {
	switch b := b.(type) {
	case *memory.Backend:
		for i, f := range b.Frames() {
			fmt.Fprintf(w, "frame %d: %d commands, clear=%t\n", i, len(f.Draws), f.Info.ClearColorBuffer)
			for j, d := range f.Draws {
				fmt.Fprintf(w, "  command %d: store=%d attributes=%d indices=%d breaks=%d blend=%s\n",
					j, d.WrittenStore(), d.WrittenAttributes(), d.WrittenIndices(), len(d.Breaks()), d.Blend)
			}
		}
	case *native.Backend:
		for j, u := range b.Uploads() {
			fmt.Fprintf(w, "upload %d: store=%dB attributes=%dB indices=%dB ranges=%d\n",
				j, u.StoreSize, u.AttributesSize, u.IndicesSize, len(u.Ranges))
		}
	}
}
