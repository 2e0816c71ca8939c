package main

import (
	"flag"
	"runtime"

	"voxelview/internal/config"
	"voxelview/internal/graphics"
	"voxelview/internal/graphics/renderables/chunks"
	renderer "voxelview/internal/graphics/renderer"
	"voxelview/internal/input"
	"voxelview/internal/logger"
	"voxelview/internal/raster"
	"voxelview/internal/scene"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/xlab/closer"
	"go.uber.org/zap"
)

func init() {
	runtime.LockOSThread()
}

type options struct {
	seed     int64
	radius   int
	textures string
	texSize  int
	fov      float64
	vsync    bool
	debug    bool
}

func parseFlags() options {
	var o options
	width, height := config.Resolution()
	flag.Int64Var(&o.seed, "seed", 1, "terrain seed")
	flag.IntVar(&o.radius, "radius", 24, "scene radius in blocks")
	flag.StringVar(&o.textures, "textures", "", "directory of block textures (procedural if empty)")
	flag.IntVar(&o.texSize, "texsize", 0, "resample textures to this size (0 keeps the first image's size)")
	flag.Float64Var(&o.fov, "fov", float64(config.FOV()), "vertical field of view in degrees")
	flag.IntVar(&width, "width", width, "window width")
	flag.IntVar(&height, "height", height, "window height")
	fpsLimit := config.FPSLimit()
	flag.BoolVar(&o.vsync, "vsync", true, "wait for vertical sync")
	flag.IntVar(&fpsLimit, "maxfps", fpsLimit, "frame rate cap (0 uncapped)")
	flag.BoolVar(&o.debug, "debug", false, "debug logging")
	flag.Parse()

	config.SetResolution(width, height)
	config.SetFOV(float32(o.fov))
	config.SetFPSLimit(fpsLimit)
	return o
}

func main() {
	defer closer.Close()
	opts := parseFlags()
	if err := logger.Init(opts.debug); err != nil {
		closer.Fatalln(err)
	}
	closer.Bind(logger.Sync)

	if err := run(opts); err != nil {
		logger.Log.Error("viewer stopped", zap.Error(err))
		closer.Fatalln(err)
	}
}

func run(opts options) error {
	if err := glfw.Init(); err != nil {
		return err
	}
	defer glfw.Terminate()

	window, err := setupWindow(opts.vsync)
	if err != nil {
		return err
	}
	defer window.Destroy()

	textures, err := loadTextures(opts)
	if err != nil {
		return err
	}
	s := scene.Build(opts.seed, opts.radius)
	logger.Log.Info("Scene built",
		zap.Int64("seed", opts.seed),
		zap.Int("radius", opts.radius),
		zap.Int("opaqueVertices", s.Opaque.VertexCount()),
		zap.Int("transparentVertices", s.Transparent.VertexCount()))

	fbw, fbh := window.GetFramebufferSize()
	camera := graphics.NewCamera(fbw, fbh)
	camera.Eye = s.Eye()
	camera.Target = s.Center()

	r, err := renderer.NewRenderer(camera, chunks.NewChunks(s, textures))
	if err != nil {
		return err
	}
	defer r.Dispose()
	r.UpdateViewport(fbw, fbh)

	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		r.UpdateViewport(width, height)
	})

	im := input.NewManager()
	im.SetKeyCallback(window)

	NewViewLoop(window, r, im).Run()
	return nil
}

func setupWindow(vsync bool) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	width, height := config.Resolution()
	window, err := glfw.CreateWindow(width, height, "voxelview", nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	// Initialize OpenGL bindings
	if err := gl.Init(); err != nil {
		window.Destroy()
		return nil, err
	}
	logger.Log.Info("OpenGL context ready", zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))))

	if vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	return window, nil
}

func loadTextures(opts options) (*raster.TextureArray, error) {
	if opts.textures == "" {
		return scene.Textures(), nil
	}
	return scene.TexturesFromDir(opts.textures, opts.texSize)
}

// Per-second camera rates.
const (
	orbitStep = 0.8
	zoomStep  = 12.0
	fovStep   = 20.0
)

func zoom(c *graphics.Camera, amount float32) {
	offset := c.Eye.Sub(c.Target)
	dist := offset.Len()
	next := mgl32.Clamp(dist-amount, 2, 500)
	c.Eye = c.Target.Add(offset.Mul(next / dist))
}
