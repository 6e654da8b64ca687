package shaderlab

import "github.com/gogpu/shaderlab/uniform"

// Program is an opaque handle to a successfully compiled shader program.
// shaderlab never inspects its internals; it only passes it back to the
// rendering subsystem and resolves uniform binding slots through it.
type Program interface {
	uniform.Binder
}

// Compiler is the external compile boundary. Implementations turn a
// vertex/fragment source pair into a Program, or fail with a diagnostic
// error (conventionally a *CompileError). Compilation runs synchronously
// on the caller's loop.
//
// See backend/naga for a pure-Go implementation and backend/wgpu for one
// that targets a live GPU device.
type Compiler interface {
	Compile(vertexSource, fragmentSource string) (Program, error)
}

// CompileError is the diagnostic produced by a failed compilation. This
// is the one error class end users see routinely while iterating on
// broken shader syntax.
type CompileError struct {
	// Stage names the failing stage, e.g. "vertex", "fragment" or "link".
	Stage string
	// Diagnostic is the compiler's log, verbatim.
	Diagnostic string
}

func (e *CompileError) Error() string {
	if e.Stage == "" {
		return e.Diagnostic
	}
	return e.Stage + " shader error: " + e.Diagnostic
}
