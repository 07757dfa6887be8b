package gles

import (
	"fmt"
	"strings"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/glsl"

	"github.com/gogpu/gles/glx"
)

// ShaderModule holds a compiled vertex/fragment shader pair ready for
// program linking. The WGSL source is translated to GLSL ES 3.00 once at
// creation time; the resulting shader objects are shared by every pipeline
// created from this module.
type ShaderModule struct {
	device    *Device
	vertex    glx.Shader
	fragment  glx.Shader
	label     string
	destroyed bool
}

// The WGSL-to-GLSL translator flips Y and remaps depth for Vulkan-style
// clip space. GL already uses the convention the flip compensates for, so
// the flip is undone here while the depth remap is kept.
const (
	flippedPosition = "gl_Position.yz = vec2(-gl_Position.y, gl_Position.z * 2.0 - gl_Position.w);"
	depthOnlyRemap  = "gl_Position.z = gl_Position.z * 2.0 - gl_Position.w;"
)

// transpileWGSL translates a single entry point of a WGSL module into
// GLSL ES 3.00 source.
func transpileWGSL(source, entryPoint string) (string, error) {
	ast, err := naga.Parse(source)
	if err != nil {
		return "", fmt.Errorf("%w: parse %q: %v", ErrTranspile, entryPoint, err)
	}
	mod, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return "", fmt.Errorf("%w: lower %q: %v", ErrTranspile, entryPoint, err)
	}
	out, _, err := glsl.Compile(mod, glsl.Options{
		LangVersion: glsl.VersionES300,
		EntryPoint:  entryPoint,
	})
	if err != nil {
		return "", fmt.Errorf("%w: generate %q: %v", ErrTranspile, entryPoint, err)
	}
	return out, nil
}

// compileShader compiles GLSL source into a shader object of the given
// stage, returning the shader log on failure.
func compileShader(gl glx.Context, stage uint32, source string) (glx.Shader, error) {
	shader := gl.CreateShader(stage)
	gl.ShaderSource(shader, source)
	gl.CompileShader(shader)
	if !gl.GetShaderCompileStatus(shader) {
		log := gl.GetShaderInfoLog(shader)
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%w: %s", ErrShaderCompile, log)
	}
	return shader, nil
}

// CreateShaderModule translates WGSL source and compiles the named vertex
// and fragment entry points. Both stages come from the same source string,
// matching how WGSL modules are written.
func (d *Device) CreateShaderModule(source, vertexEntry, fragmentEntry string) (*ShaderModule, error) {
	vsSource, err := transpileWGSL(source, vertexEntry)
	if err != nil {
		return nil, err
	}
	vsSource = strings.Replace(vsSource, flippedPosition, depthOnlyRemap, 1)

	fsSource, err := transpileWGSL(source, fragmentEntry)
	if err != nil {
		return nil, err
	}

	vs, err := compileShader(d.gl, glx.VertexShader, vsSource)
	if err != nil {
		return nil, fmt.Errorf("vertex %q: %w", vertexEntry, err)
	}
	fs, err := compileShader(d.gl, glx.FragmentShader, fsSource)
	if err != nil {
		d.gl.DeleteShader(vs)
		return nil, fmt.Errorf("fragment %q: %w", fragmentEntry, err)
	}

	d.stats.shaderModules.Add(1)
	Logger().Info("shader module created",
		"vertex", vertexEntry, "fragment", fragmentEntry)
	return &ShaderModule{device: d, vertex: vs, fragment: fs}, nil
}

// Destroy releases both shader objects. Pipelines already linked from this
// module keep working. Destroy is idempotent.
func (m *ShaderModule) Destroy() {
	if m == nil || m.destroyed {
		return
	}
	m.destroyed = true
	m.device.gl.DeleteShader(m.vertex)
	m.device.gl.DeleteShader(m.fragment)
	m.device.stats.shaderModules.Add(-1)
}
