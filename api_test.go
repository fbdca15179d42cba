package preflight

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/preflightpy/preflight/pyenv"
	"github.com/preflightpy/preflight/registry"
)

func TestCheckFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "requirements.txt")
	content := "# deps\nrequests>=2.0.0\nghost\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	resolver := pyenv.StaticResolver{"requests": "2.31.0"}
	ok, results, err := CheckFile(context.Background(), path, WithResolver(resolver))
	if err != nil {
		t.Fatalf("CheckFile error: %v", err)
	}
	if ok {
		t.Error("all_ok = true with ghost missing")
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if !results[0].Satisfied() || results[1].Satisfied() {
		t.Errorf("results = %+v", results)
	}
}

func TestCheckFile_MissingFile(t *testing.T) {
	_, _, err := CheckFile(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil {
		t.Fatal("expected error for missing requirements file")
	}
}

func TestNewChecker_RejectsNilResolver(t *testing.T) {
	if _, err := NewChecker(WithResolver(nil)); err == nil {
		t.Error("expected error for nil resolver")
	}
	if _, err := NewChecker(WithRegistryClient(nil)); err == nil {
		t.Error("expected error for nil registry client")
	}
}

// fakeIndexClient serves one canned PyPI JSON document per package.
func fakeIndexClient(t *testing.T, docs map[string]any) *registry.Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/"), "/json")
		doc, ok := docs[name]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(doc)
	}))
	t.Cleanup(server.Close)
	return registry.NewClient(registry.WithBaseURL(server.URL))
}

func TestPythonCompatibility_UsesConfiguredVersion(t *testing.T) {
	client := fakeIndexClient(t, map[string]any{
		"numpy": map[string]any{
			"info": map[string]any{
				"name":    "numpy",
				"version": "1.26.0",
				"classifiers": []string{
					"Programming Language :: Python :: 3.11",
					"Programming Language :: Python :: 3.12",
				},
			},
		},
	})

	checker, err := NewChecker(
		WithResolver(pyenv.StaticResolver{}),
		WithRegistryClient(client),
		WithPythonVersion("3.12"),
	)
	if err != nil {
		t.Fatalf("NewChecker error: %v", err)
	}

	ok, _ := checker.PythonCompatibility(context.Background(), "numpy")
	if !ok {
		t.Error("3.12 should be compatible with declared classifiers")
	}

	checker, err = NewChecker(
		WithResolver(pyenv.StaticResolver{}),
		WithRegistryClient(client),
		WithPythonVersion("3.8"),
	)
	if err != nil {
		t.Fatalf("NewChecker error: %v", err)
	}
	ok, _ = checker.PythonCompatibility(context.Background(), "numpy")
	if ok {
		t.Error("3.8 should be rejected by declared classifiers")
	}
}

func TestSizeImpact(t *testing.T) {
	client := fakeIndexClient(t, map[string]any{
		"app": map[string]any{
			"info": map[string]any{
				"name":          "app",
				"version":       "1.0",
				"requires_dist": []string{"lib"},
			},
			"releases": map[string]any{
				"1.0": []map[string]any{{"packagetype": "bdist_wheel", "size": 100}},
			},
		},
		"lib": map[string]any{
			"info": map[string]any{"name": "lib", "version": "2.0"},
			"releases": map[string]any{
				"2.0": []map[string]any{{"packagetype": "sdist", "size": 50}},
			},
		},
	})

	checker, err := NewChecker(
		WithResolver(pyenv.StaticResolver{}),
		WithRegistryClient(client),
	)
	if err != nil {
		t.Fatalf("NewChecker error: %v", err)
	}

	impact := checker.SizeImpact(context.Background(), "app")
	if impact.TotalSize != 150 {
		t.Errorf("TotalSize = %d, want 150", impact.TotalSize)
	}
	if impact.DependenciesSize != 50 {
		t.Errorf("DependenciesSize = %d, want 50", impact.DependenciesSize)
	}
}
