package depgraph

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/preflightpy/preflight/registry"
)

type indexDoc struct {
	version string
	size    int64
	deps    []string
}

// newTestIndex serves canned PyPI JSON documents for the given packages.
func newTestIndex(t *testing.T, docs map[string]indexDoc) *registry.Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/"), "/json")
		doc, ok := docs[name]
		if !ok {
			http.NotFound(w, r)
			return
		}
		payload := map[string]any{
			"info": map[string]any{
				"name":          name,
				"version":       doc.version,
				"requires_dist": doc.deps,
			},
			"releases": map[string]any{
				doc.version: []map[string]any{
					{"packagetype": "bdist_wheel", "size": doc.size},
				},
			},
		}
		_ = json.NewEncoder(w).Encode(payload)
	}))
	t.Cleanup(server.Close)
	return registry.NewClient(registry.WithBaseURL(server.URL))
}

func TestBuild_Diamond(t *testing.T) {
	client := newTestIndex(t, map[string]indexDoc{
		"top":    {version: "1.0", size: 1, deps: []string{"left", "right"}},
		"left":   {version: "1.0", size: 2, deps: []string{"shared>=1.0"}},
		"right":  {version: "1.0", size: 4, deps: []string{"shared"}},
		"shared": {version: "1.0", size: 8},
	})

	g := Build(context.Background(), client, "top")
	if len(g.Packages) != 4 {
		t.Fatalf("got %d packages, want 4: %v", len(g.Packages), g.Packages)
	}

	stats := g.Stats()
	if stats.DirectDependencies != 2 {
		t.Errorf("DirectDependencies = %d, want 2", stats.DirectDependencies)
	}
	if stats.TransitiveDependencies != 1 {
		t.Errorf("TransitiveDependencies = %d, want 1", stats.TransitiveDependencies)
	}
	if stats.MaxDepth != 2 {
		t.Errorf("MaxDepth = %d, want 2", stats.MaxDepth)
	}
	if stats.TotalSize != 15 {
		t.Errorf("TotalSize = %d, want 15", stats.TotalSize)
	}

	dependents := g.Dependents("shared")
	slices.Sort(dependents)
	if !slices.Equal(dependents, []string{"left", "right"}) {
		t.Errorf("Dependents(shared) = %v", dependents)
	}
}

func TestBuild_CycleTerminates(t *testing.T) {
	client := newTestIndex(t, map[string]indexDoc{
		"a": {version: "1.0", size: 10, deps: []string{"b"}},
		"b": {version: "1.0", size: 20, deps: []string{"a"}},
	})

	g := Build(context.Background(), client, "a")
	if len(g.Packages) != 2 {
		t.Fatalf("got %d packages, want 2", len(g.Packages))
	}
	if !g.HasCycles() {
		t.Error("HasCycles = false for a <-> b")
	}

	// Rendering a cyclic graph must terminate and flag the back-edge.
	text := g.ToText()
	if !strings.Contains(text, "(circular)") {
		t.Errorf("ToText missing circular marker:\n%s", text)
	}
}

func TestBuild_UnresolvedDependency(t *testing.T) {
	client := newTestIndex(t, map[string]indexDoc{
		"app": {version: "1.0", size: 5, deps: []string{"ghost"}},
	})

	g := Build(context.Background(), client, "app")
	ghost := g.Get("ghost")
	if ghost == nil || !ghost.Unresolved {
		t.Fatalf("ghost node = %+v, want unresolved", ghost)
	}
	if g.Stats().Unresolved != 1 {
		t.Errorf("Unresolved = %d, want 1", g.Stats().Unresolved)
	}
}

func TestTransitiveDepsAndPath(t *testing.T) {
	client := newTestIndex(t, map[string]indexDoc{
		"app":     {version: "1.0", deps: []string{"web"}},
		"web":     {version: "2.0", deps: []string{"sockets"}},
		"sockets": {version: "0.9"},
	})

	g := Build(context.Background(), client, "app")

	deps := g.TransitiveDeps("app")
	if !slices.Equal(deps, []string{"web", "sockets"}) {
		t.Errorf("TransitiveDeps = %v", deps)
	}

	path := g.Path("app", "sockets")
	if !slices.Equal(path, []string{"app", "web", "sockets"}) {
		t.Errorf("Path = %v", path)
	}
	if g.Path("sockets", "app") != nil {
		t.Error("Path against edge direction should be nil")
	}
}

func TestNameNormalization(t *testing.T) {
	client := newTestIndex(t, map[string]indexDoc{
		"app":               {version: "1.0", deps: []string{"Typing_Extensions"}},
		"Typing_Extensions": {version: "4.9"},
	})

	g := Build(context.Background(), client, "app")
	if !g.Contains("typing-extensions") {
		t.Errorf("normalized lookup failed: %v", g.Packages)
	}
}

func TestToDOT(t *testing.T) {
	client := newTestIndex(t, map[string]indexDoc{
		"app": {version: "1.0", deps: []string{"lib"}},
		"lib": {version: "2.0"},
	})

	dot := Build(context.Background(), client, "app").ToDOT()
	for _, want := range []string{
		"digraph dependencies",
		`"app" -> "lib";`,
		"style=bold",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q:\n%s", want, dot)
		}
	}
}
