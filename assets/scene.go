package assets

import (
	"context"
	"net/url"
	"path"
	"strings"

	"github.com/soypat/glplay"
	"github.com/soypat/glplay/wavefront"
	"golang.org/x/sync/errgroup"
)

// Scene is a parsed OBJ file together with the materials of every library
// it references.
type Scene struct {
	OBJ *wavefront.OBJ
	// Materials merges all material libraries. When two libraries define a
	// material with the same name the one listed later wins.
	Materials map[string]*wavefront.Material
	// Warnings collects OBJ and MTL parse warnings.
	Warnings []wavefront.Warning
}

// LoadScene fetches and parses the OBJ file objName relative to baseURL, then
// fetches and parses every material library it references, concurrently.
// Material library names are resolved relative to baseURL.
func (l *Loader) LoadScene(ctx context.Context, baseURL, objName string) (*Scene, error) {
	objURL := ResolveURL(baseURL, objName)
	text, err := l.LoadText(ctx, objURL)
	if err != nil {
		return nil, err
	}
	obj, err := wavefront.ParseOBJ(strings.NewReader(text))
	if err != nil {
		return nil, &FetchError{URL: objURL, Err: err}
	}

	libs := make([]*wavefront.MTL, len(obj.MaterialLibs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.limit())
	for i, lib := range obj.MaterialLibs {
		g.Go(func() error {
			libURL := ResolveURL(baseURL, lib)
			text, err := l.LoadText(gctx, libURL)
			if err != nil {
				return err
			}
			mtl, err := wavefront.ParseMTL(strings.NewReader(text))
			if err != nil {
				return &FetchError{URL: libURL, Err: err}
			}
			libs[i] = mtl
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	scene := &Scene{
		OBJ:       obj,
		Materials: make(map[string]*wavefront.Material),
		Warnings:  append([]wavefront.Warning(nil), obj.Warnings...),
	}
	for _, mtl := range libs {
		for name, m := range mtl.Materials {
			scene.Materials[name] = m
		}
		scene.Warnings = append(scene.Warnings, mtl.Warnings...)
	}
	glplay.Logger().Info("assets: scene loaded", "url", objURL,
		"geometries", len(obj.Geometries), "materials", len(scene.Materials))
	return scene, nil
}

// ResolveURL resolves name against base. Absolute URL bases are resolved
// as directories with net/url; other bases are joined as slash separated
// paths. An empty base returns name unchanged.
func ResolveURL(base, name string) string {
	if base == "" {
		return name
	}
	u, err := url.Parse(base)
	if err == nil && u.Scheme != "" {
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		ref, err := url.Parse(name)
		if err == nil {
			return u.ResolveReference(ref).String()
		}
	}
	return path.Join(base, name)
}
