package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/glplay/assets"
)

// Config is the TOML configuration of the glplay command.
type Config struct {
	Window WindowConfig `toml:"window"`
	Scene  SceneConfig  `toml:"scene"`
	Camera CameraConfig `toml:"camera"`
	Fetch  FetchConfig  `toml:"fetch"`
	Log    LogConfig    `toml:"log"`
}

type WindowConfig struct {
	Title     string `toml:"title"`
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	GLVersion [2]int `toml:"gl_version"`
}

type SceneConfig struct {
	// Base is an http(s) URL or a local directory the scene is loaded from.
	Base string `toml:"base"`
	OBJ  string `toml:"obj"`
	// Spin is the model rotation speed around the y axis in degrees per second.
	Spin float32 `toml:"spin"`
}

type CameraConfig struct {
	FOV    float32    `toml:"fov"` // Vertical field of view in degrees.
	Near   float32    `toml:"near"`
	Far    float32    `toml:"far"`
	Eye    [3]float32 `toml:"eye"`
	Target [3]float32 `toml:"target"`
	Up     [3]float32 `toml:"up"`
}

type FetchConfig struct {
	Timeout      Duration `toml:"timeout"`
	Concurrency  int      `toml:"concurrency"`
	MaxDimension int      `toml:"max_dimension"`
}

type LogConfig struct {
	Level slog.Level `toml:"level"`
}

// Duration is a time.Duration written as a string such as "30s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(b []byte) (err error) {
	d.Duration, err = time.ParseDuration(string(b))
	return err
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// DefaultConfig returns the configuration used for fields absent from the
// configuration file.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Title:     "glplay",
			Width:     800,
			Height:    600,
			GLVersion: [2]int{3, 3},
		},
		Scene: SceneConfig{
			Base: ".",
			OBJ:  "scene.obj",
			Spin: 30,
		},
		Camera: CameraConfig{
			FOV:  60,
			Near: 0.1,
			Far:  100,
			Eye:  [3]float32{3, 3, 3},
			Up:   [3]float32{0, 1, 0},
		},
		Fetch: FetchConfig{
			Timeout:     Duration{assets.DefaultTimeout},
			Concurrency: assets.DefaultConcurrency,
		},
		Log: LogConfig{Level: slog.LevelInfo},
	}
}

// ReadConfig decodes TOML from r over DefaultConfig. Unknown keys are errors.
func ReadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("config: %s", strict.String())
		}
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, cfg.Validate()
}

// LoadConfig reads the configuration file at filename. An empty filename
// returns DefaultConfig.
func LoadConfig(filename string) (Config, error) {
	if filename == "" {
		return DefaultConfig(), nil
	}
	fp, err := os.Open(filename)
	if err != nil {
		return Config{}, err
	}
	defer fp.Close()
	return ReadConfig(fp)
}

// Validate reports the first invalid field of cfg.
func (cfg Config) Validate() error {
	switch {
	case cfg.Window.Width <= 0 || cfg.Window.Height <= 0:
		return errors.New("config: window size must be positive")
	case cfg.Scene.OBJ == "":
		return errors.New("config: scene.obj is required")
	case cfg.Camera.FOV <= 0 || cfg.Camera.FOV >= 180:
		return fmt.Errorf("config: camera.fov %v out of range (0,180)", cfg.Camera.FOV)
	case cfg.Camera.Near <= 0 || cfg.Camera.Far <= cfg.Camera.Near:
		return errors.New("config: camera requires 0 < near < far")
	case cfg.Fetch.Timeout.Duration < 0:
		return errors.New("config: fetch.timeout must not be negative")
	}
	return nil
}

// Loader returns an asset loader configured by cfg.Fetch.
func (cfg Config) Loader(f assets.Fetcher) *assets.Loader {
	l := assets.NewLoader(f)
	l.Timeout = cfg.Fetch.Timeout.Duration
	l.Concurrency = cfg.Fetch.Concurrency
	l.MaxDimension = cfg.Fetch.MaxDimension
	return l
}

// fetcherFor returns the Fetcher serving base and the base URL to resolve
// scene names against. Local directories are served from their own root.
func fetcherFor(base string) (assets.Fetcher, string) {
	if strings.HasPrefix(base, "http://") || strings.HasPrefix(base, "https://") {
		return assets.HTTPFetcher{Client: &http.Client{}}, base
	}
	return assets.FSFetcher{FS: os.DirFS(base)}, ""
}

func vec(v [3]float32) ms3.Vec { return ms3.Vec{X: v[0], Y: v[1], Z: v[2]} }
