// Package shaderlab provides the core of a shader playground: annotated
// shader parameters, #include preprocessing, and hot reload.
//
// # Overview
//
// shaderlab turns structured comments in shader source into typed,
// editable parameter descriptors, flattens #include trees into a single
// compilation unit, and recompiles a shader whenever it or any of its
// dependencies changes on disk, preserving user-edited values across
// reloads when the uniform keeps its name and kind.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/shaderlab"
//	    nagabackend "github.com/gogpu/shaderlab/backend/naga"
//	)
//
//	sh := shaderlab.New(nagabackend.New())
//	if err := sh.Load("scene.wgsl"); err != nil {
//	    // sh keeps its last good program; err carries the diagnostic.
//	}
//
//	// Once per frame:
//	sh.CheckAndReload()
//	for _, u := range sh.Uniforms().All() {
//	    // feed u into your editor UI / uniform writer
//	}
//
// # Annotations
//
// A line comment of the form
//
//	// @slider(min=0.0, max=2.0, default=1.0)
//	uniform float uSpeed;
//
// immediately preceding a declaration produces an editable descriptor.
// Supported directives: @slider, @color, @checkbox, @vec2, @vec3, @vec4,
// @dropdown. See the annot and uniform packages for the value grammar.
//
// # Architecture
//
// The library is organized into:
//   - Public API: Shader (reload coordinator), Compiler boundary
//   - annot: annotation lexer and parameter-list parser
//   - uniform: descriptor model, source scanner, binding boundary
//   - preprocess: #include expansion with dependency tracking
//   - backend/naga: pure-Go WGSL compiler (SPIR-V out)
//   - backend/wgpu: compiler that also creates a HAL shader module
//
// # Concurrency
//
// Everything runs cooperatively on the caller's loop; a reload completes
// within the call that triggers it. Change detection is by polling file
// modification times, never by OS file watching.
//
// # Logging
//
// shaderlab is silent by default. Call SetLogger to receive structured
// diagnostics from all sub-packages.
package shaderlab
