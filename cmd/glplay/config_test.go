package main

import (
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/soypat/glplay/assets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadConfig(t *testing.T) {
	cfg, err := ReadConfig(strings.NewReader(`
[window]
title = "demo"
width = 320

[scene]
base = "https://example.com/models"
obj = "cube.obj"

[camera]
fov = 45.0
eye = [0.0, 2.0, 5.0]

[fetch]
timeout = "5s"
concurrency = 2

[log]
level = "debug"
`))
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Window.Title)
	assert.Equal(t, 320, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height, "unset fields keep defaults")
	assert.Equal(t, "cube.obj", cfg.Scene.OBJ)
	assert.Equal(t, float32(45), cfg.Camera.FOV)
	assert.Equal(t, [3]float32{0, 2, 5}, cfg.Camera.Eye)
	assert.Equal(t, 5*time.Second, cfg.Fetch.Timeout.Duration)
	assert.Equal(t, 2, cfg.Fetch.Concurrency)
	assert.Equal(t, slog.LevelDebug, cfg.Log.Level)

	l := cfg.Loader(assets.HTTPFetcher{})
	assert.Equal(t, 5*time.Second, l.Timeout)
	assert.Equal(t, 2, l.Concurrency)
}

func TestReadConfigEmpty(t *testing.T) {
	cfg, err := ReadConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, assets.DefaultTimeout, cfg.Fetch.Timeout.Duration)
}

func TestReadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown key", "[window]\ncolour = 1\n"},
		{"bad duration", "[fetch]\ntimeout = \"soon\"\n"},
		{"bad fov", "[camera]\nfov = 180.0\n"},
		{"near far", "[camera]\nnear = 10.0\nfar = 1.0\n"},
		{"empty obj", "[scene]\nobj = \"\"\n"},
		{"syntax", "[window\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadConfig(strings.NewReader(tt.src))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigDefault(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	_, err = LoadConfig("does-not-exist.toml")
	assert.Error(t, err)
}

func TestFetcherFor(t *testing.T) {
	f, base := fetcherFor("https://example.com/models")
	assert.IsType(t, assets.HTTPFetcher{}, f)
	assert.Equal(t, "https://example.com/models", base)
	f, base = fetcherFor("testdata")
	assert.IsType(t, assets.FSFetcher{}, f)
	assert.Equal(t, "", base)
}
