// Command voxelsnap renders the fixture scene on the CPU and writes an image.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"voxelview/internal/config"
	"voxelview/internal/logger"
	"voxelview/internal/meshing"
	"voxelview/internal/profiling"
	"voxelview/internal/raster"
	"voxelview/internal/scene"
	"voxelview/internal/shading"

	"go.uber.org/zap"
	"golang.org/x/image/bmp"
)

type options struct {
	out      string
	seed     int64
	radius   int
	textures string
	texSize  int
	debug    bool
}

func parseFlags() options {
	var o options
	width, height := config.Resolution()
	fov := float64(config.FOV())
	workers := config.Workers()
	band := config.BandHeight()
	flag.StringVar(&o.out, "out", "snapshot.png", "output image (.png or .bmp)")
	flag.Int64Var(&o.seed, "seed", 1, "terrain seed")
	flag.IntVar(&o.radius, "radius", 24, "scene radius in blocks")
	flag.StringVar(&o.textures, "textures", "", "directory of block textures (procedural if empty)")
	flag.IntVar(&o.texSize, "texsize", 0, "resample textures to this size (0 keeps the first image's size)")
	flag.IntVar(&width, "width", width, "image width")
	flag.IntVar(&height, "height", height, "image height")
	flag.Float64Var(&fov, "fov", fov, "vertical field of view in degrees")
	flag.IntVar(&workers, "workers", workers, "raster worker goroutines")
	flag.IntVar(&band, "band", band, "scanlines per fragment job")
	flag.BoolVar(&o.debug, "debug", false, "debug logging")
	flag.Parse()

	config.SetResolution(width, height)
	config.SetFOV(float32(fov))
	config.SetWorkers(workers)
	config.SetBandHeight(band)
	return o
}

func main() {
	opts := parseFlags()
	if err := logger.Init(opts.debug); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts); err != nil {
		logger.Log.Error("snapshot failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	textures := scene.Textures()
	if opts.textures != "" {
		var err error
		if textures, err = scene.TexturesFromDir(opts.textures, opts.texSize); err != nil {
			return err
		}
	}

	s := scene.Build(opts.seed, opts.radius)
	start := time.Now()
	img, stats, err := render(ctx, s, textures)
	if err != nil {
		return err
	}
	logger.Log.Info("Rendered",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("triangles", stats.Triangles),
		zap.Int("rejected", stats.Rejected),
		zap.Int("fragments", stats.Fragments),
		zap.Int("discarded", stats.Discarded),
		zap.String("stages", profiling.TopN(4)))

	if err := writeImage(opts.out, img); err != nil {
		return err
	}
	logger.Log.Info("Wrote snapshot", zap.String("path", opts.out))
	return nil
}

// render draws the opaque pass then the transparent pass, as the GL viewer does.
func render(ctx context.Context, s *scene.Scene, textures *raster.TextureArray) (*image.NRGBA, raster.Stats, error) {
	width, height := config.Resolution()
	pool := raster.NewWorkerPool(config.Workers(), config.Workers()*4)
	defer pool.Shutdown()
	r := raster.NewRasterizer(raster.NewFramebuffer(width, height), pool, config.BandHeight())

	profiling.ResetFrame()
	defer profiling.Track(profiling.StageFrame)()

	bg := config.Background()
	u := shading.VertexUniforms{Proj: config.Projection(), View: s.View()}
	r.Clear(bg)

	var total raster.Stats
	passes := []raster.DrawCall{
		{Vertices: meshing.Decode(s.Opaque.Floats()), DepthWrite: true},
		{Vertices: meshing.Decode(s.Transparent.Floats()), Blend: true},
	}
	for _, call := range passes {
		call.Uniforms = u
		call.Textures = textures
		call.Background = bg
		stats, err := r.Draw(ctx, call)
		if err != nil {
			return nil, total, fmt.Errorf("drawing: %w", err)
		}
		total.Triangles += stats.Triangles
		total.Rejected += stats.Rejected
		total.Fragments += stats.Fragments
		total.Discarded += stats.Discarded
	}
	return r.Image(), total, nil
}

func writeImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp":
		err = bmp.Encode(f, img)
	default:
		err = png.Encode(f, img)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}

