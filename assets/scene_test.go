package assets

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/soypat/glplay/wavefront"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sceneOBJ = `mtllib base.mtl
mtllib override.mtl
o tri
v 0 0 0
v 1 0 0
v 0 1 0
usemtl red
f 1 2 3
`

func TestLoadScene(t *testing.T) {
	fsys := fstest.MapFS{
		"models/scene.obj":    {Data: []byte(sceneOBJ)},
		"models/base.mtl":     {Data: []byte("newmtl red\nKd 1 0 0\nnewmtl blue\nKd 0 0 1\nfoo bar\n")},
		"models/override.mtl": {Data: []byte("newmtl red\nKd 0.5 0 0\n")},
	}
	l := NewLoader(FSFetcher{FS: fsys})
	scene, err := l.LoadScene(context.Background(), "models", "scene.obj")
	require.NoError(t, err)
	require.Len(t, scene.OBJ.Geometries, 1)
	assert.Equal(t, "red", scene.OBJ.Geometries[0].Material)
	require.Len(t, scene.Materials, 2)
	assert.Equal(t, [3]float32{0.5, 0, 0}, *scene.Materials["red"].Diffuse, "later library wins")
	assert.Equal(t, [3]float32{0, 0, 1}, *scene.Materials["blue"].Diffuse)
	require.Len(t, scene.Warnings, 1)
	assert.Equal(t, "foo", scene.Warnings[0].Keyword)
}

func TestLoadSceneMissingLibrary(t *testing.T) {
	fsys := fstest.MapFS{
		"scene.obj":    {Data: []byte(sceneOBJ)},
		"override.mtl": {Data: []byte("newmtl red\n")},
	}
	l := NewLoader(FSFetcher{FS: fsys})
	_, err := l.LoadScene(context.Background(), "", "scene.obj")
	var ferr *FetchError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, "base.mtl", ferr.URL)
}

func TestLoadSceneIndexError(t *testing.T) {
	fsys := fstest.MapFS{"bad.obj": {Data: []byte("v 0 0 0\nf 1 2 3\n")}}
	l := NewLoader(FSFetcher{FS: fsys})
	_, err := l.LoadScene(context.Background(), "", "bad.obj")
	var idxErr *wavefront.IndexError
	require.True(t, errors.As(err, &idxErr))
	assert.Equal(t, 2, idxErr.Line)
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		base, name, want string
	}{
		{"", "a.obj", "a.obj"},
		{"models", "a.mtl", "models/a.mtl"},
		{"models/", "../textures/t.png", "textures/t.png"},
		{"http://example.com/assets", "a.mtl", "http://example.com/assets/a.mtl"},
		{"http://example.com/assets/", "sub/a.mtl", "http://example.com/assets/sub/a.mtl"},
		{"http://example.com/assets", "/root.mtl", "http://example.com/root.mtl"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolveURL(tt.base, tt.name), "ResolveURL(%q, %q)", tt.base, tt.name)
	}
}
