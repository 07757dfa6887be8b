// Package gles implements a WebGPU-shaped rendering device on top of an
// immediate-mode OpenGL ES 3.0 / WebGL2-class context.
//
// The target API has no bind groups, no pipeline layouts and no
// render-to-texture object, so the package emulates them:
//
//   - BindGroup values capture declarative resource bindings and replay
//     them onto global GL state right before a draw.
//   - After program link, uniform blocks are matched back to their
//     (group, binding) pair by parsing the cross-compiler's generated
//     names, and bound to GL binding points.
//   - Render-to-texture goes through a framebuffer cache keyed by the
//     color texture handle, with a lazily attached depth renderbuffer.
//
// Shaders are written in WGSL and cross-compiled to GLSL ES 300 with
// gogpu/naga at shader-module creation time.
//
// All Device methods must be called from the thread that owns the GL
// context. The package performs no locking of its own.
package gles
