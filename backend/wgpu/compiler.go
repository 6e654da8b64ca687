// Package wgpu compiles shaders into live HAL shader modules on a GPU
// device. It builds on the naga backend for WGSL-to-SPIR-V translation
// and binding discovery, then uploads both stages to the device.
package wgpu

import (
	"github.com/gogpu/shaderlab"
	"github.com/gogpu/shaderlab/backend/naga"
	"github.com/gogpu/wgpu/hal"
)

// Program owns the vertex and fragment shader modules of one compiled
// shader. Call Destroy when a reload has replaced it.
type Program struct {
	device   hal.Device
	vertex   hal.ShaderModule
	fragment hal.ShaderModule
	spirv    *naga.Program
}

// VertexModule returns the uploaded vertex stage.
func (p *Program) VertexModule() hal.ShaderModule { return p.vertex }

// FragmentModule returns the uploaded fragment stage.
func (p *Program) FragmentModule() hal.ShaderModule { return p.fragment }

// Lookup resolves a uniform name to its @binding index.
func (p *Program) Lookup(name string) (int, bool) { return p.spirv.Lookup(name) }

// Destroy releases both shader modules on the device.
func (p *Program) Destroy() {
	if p.fragment != nil {
		p.device.DestroyShaderModule(p.fragment)
		p.fragment = nil
	}
	if p.vertex != nil {
		p.device.DestroyShaderModule(p.vertex)
		p.vertex = nil
	}
}

// Compiler implements shaderlab.Compiler against a HAL device. SPIR-V
// translation goes through the naga backend, so syntax errors are
// reported identically whether or not a GPU is present.
type Compiler struct {
	device hal.Device
	spirv  *naga.Compiler
}

var _ shaderlab.Compiler = (*Compiler)(nil)

// New creates a Compiler uploading modules to device.
func New(device hal.Device) *Compiler {
	return &Compiler{device: device, spirv: naga.New()}
}

// Compile translates both stages to SPIR-V and creates their shader
// modules. Device-side failures surface as *shaderlab.CompileError with
// the device's diagnostic.
func (c *Compiler) Compile(vertexSource, fragmentSource string) (shaderlab.Program, error) {
	p, err := c.spirv.Compile(vertexSource, fragmentSource)
	if err != nil {
		return nil, err
	}
	spirv := p.(*naga.Program)

	vertex, err := c.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "shaderlab_vertex",
		Source: hal.ShaderSource{SPIRV: spirv.VertexSPIRV()},
	})
	if err != nil {
		return nil, &shaderlab.CompileError{Stage: "vertex", Diagnostic: err.Error()}
	}

	fragment, err := c.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "shaderlab_fragment",
		Source: hal.ShaderSource{SPIRV: spirv.FragmentSPIRV()},
	})
	if err != nil {
		c.device.DestroyShaderModule(vertex)
		return nil, &shaderlab.CompileError{Stage: "fragment", Diagnostic: err.Error()}
	}

	return &Program{
		device:   c.device,
		vertex:   vertex,
		fragment: fragment,
		spirv:    spirv,
	}, nil
}
