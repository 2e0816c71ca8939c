package shading

import (
	"bytes"
	"embed"
	"strconv"
	"strings"
	"sync"
	"text/template"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex attribute locations shared by the GLSL program and buffer setup.
const (
	AttribPosition = iota
	AttribTextureLayer
	AttribPackedFaceAO
	AttribTint
	AttribAlpha
)

// Uniform names used by the chunk program.
const (
	UniformProj         = "m_proj"
	UniformView         = "m_view"
	UniformTextureArray = "u_texture_array_0"
	UniformBackground   = "bg_color"
)

//go:embed shaders/*.tmpl
var shaderFS embed.FS

var (
	glslOnce sync.Once
	vertSrc  string
	fragSrc  string
	glslErr  error
)

// VertexSource returns the GLSL vertex stage with the constant tables inlined.
func VertexSource() (string, error) {
	glslOnce.Do(renderGLSL)
	return vertSrc, glslErr
}

// FragmentSource returns the GLSL fragment stage.
func FragmentSource() (string, error) {
	glslOnce.Do(renderGLSL)
	return fragSrc, glslErr
}

func renderGLSL() {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"float":  glslFloat,
		"floats": glslFloats,
		"ints":   glslInts,
		"vec2s":  glslVec2s,
	}).ParseFS(shaderFS, "shaders/*.tmpl")
	if err != nil {
		glslErr = err
		return
	}
	data := map[string]any{
		"AOScale":         AOScale[:],
		"FaceShading":     FaceShading[:],
		"UVCorners":       UVCorners[:],
		"UVOrder":         UVOrder[:],
		"VerticesPerQuad": VerticesPerQuad,
		"AOMask":          AOLevels - 1,
		"Gamma":           Gamma,
		"AlphaCutoff":     AlphaCutoff,
		"FogDensity":      FogDensity,
	}
	if vertSrc, glslErr = execute(tmpl, "chunk.vert.tmpl", data); glslErr != nil {
		return
	}
	fragSrc, glslErr = execute(tmpl, "chunk.frag.tmpl", data)
}

func execute(tmpl *template.Template, name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// glslFloat always keeps a decimal point so GLSL parses a float literal.
func glslFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 32)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func glslFloats(fs []float32) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = glslFloat(float64(f))
	}
	return strings.Join(parts, ", ")
}

func glslInts(is []int) string {
	parts := make([]string, len(is))
	for i, v := range is {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}

func glslVec2s(vs []mgl32.Vec2) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = "vec2(" + glslFloat(float64(v[0])) + ", " + glslFloat(float64(v[1])) + ")"
	}
	return strings.Join(parts, ", ")
}
