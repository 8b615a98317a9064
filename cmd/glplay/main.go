//go:build !js

// Command glplay loads a Wavefront OBJ scene with its materials and diffuse
// maps and renders it spinning in an OpenGL window. With -preview the scene
// is rendered on the CPU to a PNG file instead and with -stl its triangles
// are exported to a binary STL file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/soypat/glgl/v4.6-core/glgl"
	"github.com/soypat/glplay"
	"github.com/soypat/glplay/assets"
	"github.com/soypat/glplay/gpu"
	"github.com/soypat/glplay/gpu/gogl"
	"github.com/soypat/glplay/internal/preview"
	"github.com/soypat/glplay/m4"
	"github.com/soypat/glplay/wavefront"
)

func init() {
	runtime.LockOSThread() // For GL.
}

func main() {
	var (
		configFile string
		flags      runFlags
	)
	flag.StringVar(&configFile, "config", "", "TOML configuration file")
	flag.StringVar(&flags.preview, "preview", "", "render the scene on the CPU to this PNG file and exit")
	flag.StringVar(&flags.stl, "stl", "", "export the scene triangles to this STL file and exit")
	flag.IntVar(&flags.frames, "frames", 0, "exit after this many frames; 0 runs until the window is closed")
	flag.Parse()

	cfg, err := LoadConfig(configFile)
	if err != nil {
		log.Fatal(err)
	}
	glplay.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Log.Level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err = run(ctx, cfg, flags)
	if err != nil && !errors.Is(err, context.Canceled) {
		stop()
		log.Fatal(err)
	}
}

type runFlags struct {
	preview string
	stl     string
	frames  int
}

func run(ctx context.Context, cfg Config, flags runFlags) error {
	fetcher, base := fetcherFor(cfg.Scene.Base)
	loader := cfg.Loader(fetcher)
	scene, err := loader.LoadScene(ctx, base, cfg.Scene.OBJ)
	if err != nil {
		return err
	}
	if flags.stl != "" {
		if err = writeSTL(flags.stl, scene); err != nil {
			return err
		}
	}
	if flags.preview != "" {
		if err = writePreview(flags.preview, cfg, scene); err != nil {
			return err
		}
	}
	if flags.stl != "" || flags.preview != "" {
		return nil
	}
	return runWindow(ctx, cfg, loader, base, scene, flags.frames)
}

func writeSTL(filename string, scene *assets.Scene) error {
	fp, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	n, err := wavefront.WriteSTL(fp, scene.OBJ.Geometries)
	if err != nil {
		return err
	}
	glplay.Logger().Info("wrote STL", slog.String("file", filename), slog.Int("bytes", n))
	return fp.Close()
}

func writePreview(filename string, cfg Config, scene *assets.Scene) error {
	pcfg := preview.DefaultConfig()
	pcfg.Width, pcfg.Height = cfg.Window.Width, cfg.Window.Height
	pcfg.FOV = m4.DegToRad(cfg.Camera.FOV)
	pcfg.Near, pcfg.Far = cfg.Camera.Near, cfg.Camera.Far
	pcfg.Eye, pcfg.Target, pcfg.Up = vec(cfg.Camera.Eye), vec(cfg.Camera.Target), vec(cfg.Camera.Up)
	img, err := preview.Render(scene.OBJ.Geometries, scene.Materials, pcfg)
	if err != nil {
		return err
	}
	fp, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	if err = png.Encode(fp, img); err != nil {
		return err
	}
	glplay.Logger().Info("wrote preview", slog.String("file", filename))
	return fp.Close()
}

func runWindow(ctx context.Context, cfg Config, loader *assets.Loader, base string, scene *assets.Scene, frames int) error {
	window, terminate, err := glgl.InitWithCurrentWindow33(glgl.WindowConfig{
		Title:   cfg.Window.Title,
		Version: cfg.Window.GLVersion,
		Width:   cfg.Window.Width,
		Height:  cfg.Window.Height,
	})
	if err != nil {
		return fmt.Errorf("starting GLFW: %w", err)
	}
	defer terminate()

	gctx, err := gpu.NewContext(gogl.New())
	if err != nil {
		return err
	}
	defer gctx.Close()
	r, err := newRenderer(ctx, gctx, loader, base, scene)
	if err != nil {
		return err
	}

	start := time.Now()
	for n := 0; !window.ShouldClose() && (frames <= 0 || n < frames); n++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		width, height := window.GetFramebufferSize()
		r.draw(cfg, width, height, time.Since(start))
		window.SwapBuffers()
		glfw.PollEvents()
	}
	return nil
}
