package raster

import (
	"context"
	"image"
	"math"
	"sync"

	"voxelview/internal/profiling"
	"voxelview/internal/shading"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// vertexBatch is how many vertices one vertex-stage job processes.
	vertexBatch = 4096
	// minClipW rejects triangles touching or behind the eye plane.
	minClipW = 1e-5
)

// DrawCall is one buffer drawn with one set of frame uniforms.
type DrawCall struct {
	Vertices   []shading.Vertex
	Uniforms   shading.VertexUniforms
	Textures   shading.Sampler
	Background mgl32.Vec3
	// DepthWrite disables depth updates when false, as for transparent passes.
	DepthWrite bool
	// Blend enables source-over alpha blending.
	Blend bool
}

// Stats counts what happened during a draw.
type Stats struct {
	Triangles int
	Rejected  int
	Fragments int
	Discarded int
}

func (s *Stats) add(o Stats) {
	s.Triangles += o.Triangles
	s.Rejected += o.Rejected
	s.Fragments += o.Fragments
	s.Discarded += o.Discarded
}

// Rasterizer emulates the chunk pipeline on the CPU. Every vertex is shaded by
// an independent call and the screen is split into bands of scanlines, each
// owned by one job, so per-pixel draw order is preserved without locks.
type Rasterizer struct {
	fb         *Framebuffer
	pool       *WorkerPool
	bandHeight int
}

func NewRasterizer(fb *Framebuffer, pool *WorkerPool, bandHeight int) *Rasterizer {
	if bandHeight < 1 {
		bandHeight = 16
	}
	return &Rasterizer{fb: fb, pool: pool, bandHeight: bandHeight}
}

func (r *Rasterizer) Framebuffer() *Framebuffer { return r.fb }

// Image converts the current color buffer for encoding.
func (r *Rasterizer) Image() *image.NRGBA { return r.fb.Image() }

// Clear resets the color buffer to bg with opaque alpha and depth to far.
func (r *Rasterizer) Clear(bg mgl32.Vec3) {
	r.fb.Clear(bg.Vec4(1))
}

// tri is a screen-space triangle ready for scan conversion.
type tri struct {
	x, y, z, invW [3]float32
	out           [3]*shading.VertexOut
	area          float32
	flat          *shading.VertexOut
	minX, maxX    int
	minY, maxY    int
}

// Draw runs both stages over call.Vertices in runs of three. A cancelled ctx
// abandons the draw; pixels already written stay written.
func (r *Rasterizer) Draw(ctx context.Context, call DrawCall) (Stats, error) {
	var stats Stats
	if len(call.Vertices) < 3 {
		return stats, nil
	}

	outs, err := r.runVertices(ctx, call)
	if err != nil {
		return stats, err
	}

	tris := r.setup(outs, &stats)
	if len(tris) == 0 {
		return stats, r.pool.stopErr(ctx)
	}

	err = r.runFragments(ctx, call, tris, &stats)
	return stats, err
}

func (r *Rasterizer) runVertices(ctx context.Context, call DrawCall) ([]shading.VertexOut, error) {
	defer profiling.Track(profiling.StageVertex)()

	prog := shading.NewVertexProgram(call.Uniforms)
	outs := make([]shading.VertexOut, len(call.Vertices))
	var wg sync.WaitGroup
	for start := 0; start < len(outs); start += vertexBatch {
		lo, hi := start, min(start+vertexBatch, len(outs))
		if !r.pool.submit(ctx, func() {
			for i := lo; i < hi; i++ {
				outs[i] = prog.Run(call.Vertices[i], i)
			}
		}, &wg) {
			break
		}
	}
	wg.Wait()
	return outs, r.pool.stopErr(ctx)
}

func (r *Rasterizer) setup(outs []shading.VertexOut, stats *Stats) []tri {
	defer profiling.Track(profiling.StageSetup)()

	w, h := float32(r.fb.width), float32(r.fb.height)
	tris := make([]tri, 0, len(outs)/3)
	for i := 0; i+2 < len(outs); i += 3 {
		stats.Triangles++
		var t tri
		ok := true
		for k := 0; k < 3; k++ {
			o := &outs[i+k]
			cw := o.Clip.W()
			if cw < minClipW {
				ok = false
				break
			}
			iw := 1 / cw
			t.x[k] = (o.Clip.X()*iw*0.5 + 0.5) * w
			t.y[k] = (0.5 - o.Clip.Y()*iw*0.5) * h
			t.z[k] = o.Clip.Z()*iw*0.5 + 0.5
			t.invW[k] = iw
			t.out[k] = o
		}
		if !ok {
			stats.Rejected++
			continue
		}
		// GL's default provoking vertex is the last one.
		t.flat = t.out[2]
		t.area = edge(t.x[0], t.y[0], t.x[1], t.y[1], t.x[2], t.y[2])
		if t.area == 0 {
			stats.Rejected++
			continue
		}
		if t.area < 0 {
			// culling is off; normalise orientation so inside means positive
			t.x[1], t.x[2] = t.x[2], t.x[1]
			t.y[1], t.y[2] = t.y[2], t.y[1]
			t.z[1], t.z[2] = t.z[2], t.z[1]
			t.invW[1], t.invW[2] = t.invW[2], t.invW[1]
			t.out[1], t.out[2] = t.out[2], t.out[1]
			t.area = -t.area
		}
		t.minX = max(0, int(math.Floor(float64(min(t.x[0], t.x[1], t.x[2])))))
		t.maxX = min(r.fb.width-1, int(math.Ceil(float64(max(t.x[0], t.x[1], t.x[2])))))
		t.minY = max(0, int(math.Floor(float64(min(t.y[0], t.y[1], t.y[2])))))
		t.maxY = min(r.fb.height-1, int(math.Ceil(float64(max(t.y[0], t.y[1], t.y[2])))))
		if t.minX > t.maxX || t.minY > t.maxY {
			stats.Rejected++
			continue
		}
		tris = append(tris, t)
	}
	return tris
}

func (r *Rasterizer) runFragments(ctx context.Context, call DrawCall, tris []tri, stats *Stats) error {
	defer profiling.Track(profiling.StageFragment)()

	bands := (r.fb.height + r.bandHeight - 1) / r.bandHeight
	perBand := make([]Stats, bands)
	var wg sync.WaitGroup
	for b := 0; b < bands; b++ {
		y0 := b * r.bandHeight
		y1 := min(y0+r.bandHeight, r.fb.height) - 1
		s := &perBand[b]
		if !r.pool.submit(ctx, func() {
			for i := range tris {
				r.scan(&tris[i], y0, y1, call, s)
			}
		}, &wg) {
			break
		}
	}
	wg.Wait()
	for _, s := range perBand {
		stats.add(s)
	}
	return r.pool.stopErr(ctx)
}

// scan converts the part of t that falls within rows [y0, y1].
func (r *Rasterizer) scan(t *tri, y0, y1 int, call DrawCall, stats *Stats) {
	lo, hi := max(t.minY, y0), min(t.maxY, y1)
	if lo > hi {
		return
	}
	own0 := ownsEdge(t.x[1], t.y[1], t.x[2], t.y[2])
	own1 := ownsEdge(t.x[2], t.y[2], t.x[0], t.y[0])
	own2 := ownsEdge(t.x[0], t.y[0], t.x[1], t.y[1])
	invArea := 1 / t.area
	fb := r.fb

	for y := lo; y <= hi; y++ {
		py := float32(y) + 0.5
		for x := t.minX; x <= t.maxX; x++ {
			px := float32(x) + 0.5
			w0 := edge(t.x[1], t.y[1], t.x[2], t.y[2], px, py)
			w1 := edge(t.x[2], t.y[2], t.x[0], t.y[0], px, py)
			w2 := edge(t.x[0], t.y[0], t.x[1], t.y[1], px, py)
			if !inside(w0, own0) || !inside(w1, own1) || !inside(w2, own2) {
				continue
			}
			b0, b1, b2 := w0*invArea, w1*invArea, w2*invArea

			z := b0*t.z[0] + b1*t.z[1] + b2*t.z[2]
			if z < 0 || z > 1 {
				continue
			}
			idx := y*fb.width + x
			if z >= fb.depth[idx] {
				continue
			}

			iw := b0*t.invW[0] + b1*t.invW[1] + b2*t.invW[2]
			p0, p1, p2 := b0*t.invW[0]/iw, b1*t.invW[1]/iw, b2*t.invW[2]/iw
			o0, o1, o2 := t.out[0], t.out[1], t.out[2]

			in := shading.FragmentIn{
				UV:           o0.UV.Mul(p0).Add(o1.UV.Mul(p1)).Add(o2.UV.Mul(p2)),
				Shading:      o0.Shading*p0 + o1.Shading*p1 + o2.Shading*p2,
				Tint:         o0.Tint.Mul(p0).Add(o1.Tint.Mul(p1)).Add(o2.Tint.Mul(p2)),
				Alpha:        o0.Alpha*p0 + o1.Alpha*p1 + o2.Alpha*p2,
				TextureLayer: t.flat.TextureLayer,
				FaceID:       t.flat.FaceID,
				FragCoord:    mgl32.Vec4{px, py, z, iw},
			}
			stats.Fragments++
			src, ok := shading.RunFragment(in, call.Textures, call.Background)
			if !ok {
				stats.Discarded++
				continue
			}

			if call.Blend {
				dst := fb.color[idx]
				a := src.W()
				fb.color[idx] = src.Mul(a).Add(dst.Mul(1 - a))
			} else {
				fb.color[idx] = src
			}
			if call.DepthWrite {
				fb.depth[idx] = z
			}
		}
	}
}

// edge is twice the signed area of (a, b, p).
func edge(ax, ay, bx, by, px, py float32) float32 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// ownsEdge breaks ties for samples exactly on an edge. It flips with the edge
// direction, so of two triangles sharing an edge exactly one owns it.
func ownsEdge(ax, ay, bx, by float32) bool {
	return ay < by || (ay == by && ax > bx)
}

func inside(w float32, owns bool) bool {
	return w > 0 || (w == 0 && owns)
}
