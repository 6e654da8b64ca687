// Package naga compiles WGSL shaders to SPIR-V in pure Go. It needs no
// GPU or display, which makes it the default backend for tools and for
// validating shaders while they are being edited.
package naga

import (
	"crypto/sha256"

	nagac "github.com/gogpu/naga"
	"github.com/gogpu/shaderlab"
	"github.com/gogpu/shaderlab/internal/cache"
)

// defaultCacheSize bounds the per-stage compile cache. A broken shader
// is recompiled on every poll of the reload coordinator; the cache turns
// those retries into lookups until the file actually changes.
const defaultCacheSize = 64

// Program is a compiled vertex/fragment pair. Uniform slots resolve to
// the @binding index declared in the fragment source.
type Program struct {
	vertexSPIRV   []uint32
	fragmentSPIRV []uint32
	bindings      map[string]int
}

// VertexSPIRV returns the compiled vertex stage as SPIR-V words.
func (p *Program) VertexSPIRV() []uint32 { return p.vertexSPIRV }

// FragmentSPIRV returns the compiled fragment stage as SPIR-V words.
func (p *Program) FragmentSPIRV() []uint32 { return p.fragmentSPIRV }

// Lookup resolves a uniform name to its @binding index.
func (p *Program) Lookup(name string) (int, bool) {
	slot, ok := p.bindings[name]
	return slot, ok
}

type compileResult struct {
	words []uint32
	err   error
}

// Compiler implements shaderlab.Compiler on top of the naga WGSL
// compiler. Compile results are memoized by source hash, successes and
// failures alike.
//
// Compiler is safe for concurrent use.
type Compiler struct {
	cache *cache.Cache[[32]byte, compileResult]
}

var _ shaderlab.Compiler = (*Compiler)(nil)

// New creates a Compiler with the default cache size.
func New() *Compiler {
	return &Compiler{cache: cache.New[[32]byte, compileResult](defaultCacheSize)}
}

// Compile compiles both stages and scans the fragment source for
// uniform bindings. Errors are *shaderlab.CompileError naming the
// failing stage.
func (c *Compiler) Compile(vertexSource, fragmentSource string) (shaderlab.Program, error) {
	vertex, err := c.compileStage("vertex", vertexSource)
	if err != nil {
		return nil, err
	}
	fragment, err := c.compileStage("fragment", fragmentSource)
	if err != nil {
		return nil, err
	}
	return &Program{
		vertexSPIRV:   vertex,
		fragmentSPIRV: fragment,
		bindings:      scanBindings(fragmentSource),
	}, nil
}

func (c *Compiler) compileStage(stage, source string) ([]uint32, error) {
	key := sha256.Sum256([]byte(stage + "\x00" + source))
	if r, ok := c.cache.Get(key); ok {
		return r.words, r.err
	}

	words, err := compileWGSL(source)
	if err != nil {
		err = &shaderlab.CompileError{Stage: stage, Diagnostic: err.Error()}
	}
	c.cache.Set(key, compileResult{words: words, err: err})
	return words, err
}

// compileWGSL compiles WGSL source and repacks the SPIR-V byte stream
// into little-endian 32-bit words.
func compileWGSL(source string) ([]uint32, error) {
	spirvBytes, err := nagac.Compile(source)
	if err != nil {
		return nil, err
	}

	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return spirvCode, nil
}
