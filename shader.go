package shaderlab

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gogpu/shaderlab/internal/logging"
	"github.com/gogpu/shaderlab/preprocess"
	"github.com/gogpu/shaderlab/uniform"
)

// DefaultVertexSource is the fullscreen-triangle vertex stage paired with
// every fragment shader unless WithVertexSource overrides it.
const DefaultVertexSource = `@vertex
fn vs_main(@builtin(vertex_index) idx: u32) -> @builtin(position) vec4<f32> {
    var pos = array<vec2<f32>, 3>(
        vec2<f32>(-1.0, -1.0),
        vec2<f32>( 3.0, -1.0),
        vec2<f32>(-1.0,  3.0),
    );
    return vec4<f32>(pos[idx], 0.0, 1.0);
}
`

// ErrNoShaderPath is returned by ForceReload before any Load call.
var ErrNoShaderPath = errors.New("no shader path set")

// loaded is the state adopted wholesale on every successful load. Keeping
// program, uniforms and the dependency snapshot in one struct guarantees
// a reader never sees a new program paired with an old collection: Load
// swaps the single pointer after everything is assembled.
type loaded struct {
	program  Program
	uniforms *uniform.Collection
	deps     []string
	// modTimes maps the main file and every dependency to the
	// modification time observed at the last successful load.
	modTimes map[string]time.Time
}

// Shader owns one hot-reloadable shader slot: it preprocesses, scans
// annotations, compiles through the injected Compiler, and polls the
// file system for changes. After a failed load or reload the previous
// program and uniform collection stay active, so a renderer always has
// either nothing or the last known good state.
//
// Shader is not safe for concurrent use; everything is expected to run
// on the caller's render loop.
type Shader struct {
	compiler     Compiler
	log          *slog.Logger
	vertexSource string
	autoReload   bool

	path    string
	state   *loaded
	lastErr error
}

// Option configures a Shader.
type Option func(*Shader)

// WithLogger routes this shader's diagnostics to l instead of the
// package logger, keeping instances testable in isolation.
func WithLogger(l *slog.Logger) Option {
	return func(s *Shader) {
		if l != nil {
			s.log = l
		}
	}
}

// WithAutoReload enables or disables change polling in CheckAndReload.
// Enabled by default.
func WithAutoReload(enabled bool) Option {
	return func(s *Shader) { s.autoReload = enabled }
}

// WithVertexSource overrides DefaultVertexSource.
func WithVertexSource(src string) Option {
	return func(s *Shader) { s.vertexSource = src }
}

// New creates a shader slot compiling through c.
func New(c Compiler, opts ...Option) *Shader {
	s := &Shader{
		compiler:     c,
		log:          logging.Get(),
		vertexSource: DefaultVertexSource,
		autoReload:   true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load loads, preprocesses, scans and compiles the fragment shader at
// path. On success the previous program is discarded, user-edited values
// carry over to same-name same-kind uniforms, and the dependency
// snapshot is refreshed. On any failure the previously active program,
// uniform collection and snapshot are left untouched and the error is
// also available via Err.
func (s *Shader) Load(path string) error {
	s.path = path
	s.lastErr = nil

	if _, err := os.Stat(path); err != nil {
		return s.fail(fmt.Errorf("shader file not found: %s: %w", path, err))
	}

	res := preprocess.Process(path)
	if !res.OK() {
		return s.fail(fmt.Errorf("preprocessing failed: %w", res.Err))
	}

	next := uniform.Scan(res.Source)

	program, err := s.compiler.Compile(s.vertexSource, res.Source)
	if err != nil {
		return s.fail(fmt.Errorf("compilation failed: %w", err))
	}

	// Preserve user-edited values, then bind against the new program.
	if s.state != nil {
		next.AdoptValues(s.state.uniforms)
	}
	next.ResolveSlots(program)

	modTimes := make(map[string]time.Time, len(res.Dependencies)+1)
	modTimes[path] = modTime(path)
	for _, dep := range res.Dependencies {
		modTimes[dep] = modTime(dep)
	}

	s.state = &loaded{
		program:  program,
		uniforms: next,
		deps:     res.Dependencies,
		modTimes: modTimes,
	}

	s.log.Info("shader loaded",
		slog.String("component", "shader"),
		slog.String("file", filepath.Base(path)),
		slog.Int("uniforms", next.Len()),
		slog.Int("dependencies", len(res.Dependencies)))
	return nil
}

// CheckAndReload polls the main file and every dependency for a changed
// modification time and reloads on the first mismatch. It returns
// (false, nil) when nothing changed, or Load's outcome when a reload was
// triggered.
//
// The snapshot only advances on success, so a shader that keeps failing
// to compile is re-tried on every poll until its files stop differing
// from the last successful load. That keeps the reported diagnostic
// current at the cost of per-poll work; the naga backend's compile cache
// absorbs most of it.
func (s *Shader) CheckAndReload() (reloaded bool, err error) {
	if !s.autoReload || s.path == "" {
		return false, nil
	}

	if !s.stale() {
		return false, nil
	}
	s.log.Info("change detected, reloading",
		slog.String("component", "shader"),
		slog.String("file", filepath.Base(s.path)))
	err = s.Load(s.path)
	return err == nil, err
}

// stale reports whether any tracked file's modification time differs
// from the snapshot of the last successful load. Before any success the
// snapshot is empty, so an existing main file always reads as stale;
// that is what keeps retrying a shader whose very first load failed.
func (s *Shader) stale() bool {
	if s.state == nil {
		return !modTime(s.path).IsZero()
	}
	for file, stamp := range s.state.modTimes {
		if !modTime(file).Equal(stamp) {
			return true
		}
	}
	return false
}

// ForceReload reloads the current shader path regardless of timestamps.
func (s *Shader) ForceReload() error {
	if s.path == "" {
		s.lastErr = ErrNoShaderPath
		return ErrNoShaderPath
	}
	return s.Load(s.path)
}

// SetAutoReload toggles change polling.
func (s *Shader) SetAutoReload(enabled bool) { s.autoReload = enabled }

// AutoReload reports whether change polling is enabled.
func (s *Shader) AutoReload() bool { return s.autoReload }

// Path returns the shader path of the last Load call.
func (s *Shader) Path() string { return s.path }

// Err returns the error of the most recent failed operation, or nil if
// the last operation succeeded.
func (s *Shader) Err() error { return s.lastErr }

// Program returns the active compiled program, or nil before the first
// successful load.
func (s *Shader) Program() Program {
	if s.state == nil {
		return nil
	}
	return s.state.program
}

// Uniforms returns the active uniform collection. Never nil; empty
// before the first successful load.
func (s *Shader) Uniforms() *uniform.Collection {
	if s.state == nil {
		return uniform.NewCollection()
	}
	return s.state.uniforms
}

// Dependencies returns the include files of the last successful load, in
// expansion order.
func (s *Shader) Dependencies() []string {
	if s.state == nil {
		return nil
	}
	return s.state.deps
}

// ResetUniforms restores every uniform to its annotated default.
func (s *Shader) ResetUniforms() {
	if s.state != nil {
		s.state.uniforms.ResetDefaults()
	}
}

// WriteUniforms pushes the current uniform values through w. Call once
// per frame after binding the program.
func (s *Shader) WriteUniforms(w uniform.Writer) {
	if s.state != nil {
		s.state.uniforms.Write(w)
	}
}

// fail records and logs a load error without touching the active state.
func (s *Shader) fail(err error) error {
	s.lastErr = err
	s.log.Error("shader load failed",
		slog.String("component", "shader"),
		slog.String("file", filepath.Base(s.path)),
		slog.Any("error", err))
	return err
}

// modTime reads a file's modification time; the zero time stands in for
// files that cannot be stat'd, so comparisons work uniformly.
func modTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
