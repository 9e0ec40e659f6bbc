package native

import (
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/painter"
)

// compileWGSL compiles WGSL source to SPIR-V words.
func compileWGSL(wgsl string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgsl)
	if err != nil {
		return nil, err
	}

	// SPIR-V is little-endian 32-bit words
	code := make([]uint32, len(spirvBytes)/4)
	for i := range code {
		code[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return code, nil
}

// RegisterShader compiles the WGSL source of s and creates its shader
// module. Registering a shader twice is a no-op. The shader must be
// registered with a painter.ShaderRegistry and have a source.
func (b *Backend) RegisterShader(s *painter.ItemShader) error {
	if !s.Registered() {
		return fmt.Errorf("native: shader %q is not registered", s.Name())
	}
	if s.Source() == "" {
		return fmt.Errorf("native: shader %q has no WGSL source", s.Name())
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	if _, ok := b.modules[s]; ok {
		return nil
	}

	code, err := compileWGSL(s.Source())
	if err != nil {
		return fmt.Errorf("native: compile %q: %w", s.Name(), err)
	}
	module, err := b.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: s.Name(),
		Source: hal.ShaderSource{
			SPIRV: code,
		},
	})
	if err != nil {
		return fmt.Errorf("native: create shader module %q: %w", s.Name(), err)
	}
	b.modules[s] = module

	painter.Logger().Info("native: shader registered",
		"name", s.Name(), "id", s.ID(), "group", s.Group(), "spirv_words", len(code))
	return nil
}

// RegisterShaders registers every item shader of r that has a source.
func (b *Backend) RegisterShaders(r *painter.ShaderRegistry) error {
	for _, s := range r.ItemShaders() {
		if s.Source() == "" {
			continue
		}
		if err := b.RegisterShader(s); err != nil {
			return err
		}
	}
	return nil
}

// ShaderModule returns the module of s, or nil if s is not registered
// with the backend.
func (b *Backend) ShaderModule(s *painter.ItemShader) hal.ShaderModule {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.modules[s]
}
