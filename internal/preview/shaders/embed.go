// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// PreviewVertexShader draws a textured quad in clip space.
//
//go:embed preview.vert
var PreviewVertexShader string

// PreviewFragmentShader samples the packed texture, optionally isolating one channel.
//
//go:embed preview.frag
var PreviewFragmentShader string
