package pyenv

import (
	"path/filepath"
	"runtime"
	"testing"
)

func TestIsIsolatedEnvironment(t *testing.T) {
	tests := []struct {
		name       string
		realPrefix string
		basePrefix string
		prefix     string
		want       bool
	}{
		{"system interpreter", "", "/usr", "/usr", false},
		{"venv: base differs from prefix", "", "/usr", "/home/u/venv", true},
		{"legacy virtualenv: real prefix set", "/usr", "", "/home/u/venv", true},
		{"real prefix wins even when prefixes match", "/usr", "/usr", "/usr", true},
		{"no prefixes at all", "", "", "/usr", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsIsolatedEnvironment(tt.realPrefix, tt.basePrefix, tt.prefix)
			if got != tt.want {
				t.Errorf("IsIsolatedEnvironment(%q, %q, %q) = %v, want %v",
					tt.realPrefix, tt.basePrefix, tt.prefix, got, tt.want)
			}
		})
	}
}

func TestPythonMajorMinor(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{"3.12.1", "3.12"},
		{"3.9", "3.9"},
		{"3", "3"},
		{"", ""},
	}
	for _, tt := range tests {
		info := &Info{PythonVersion: tt.version}
		if got := info.PythonMajorMinor(); got != tt.want {
			t.Errorf("PythonMajorMinor(%q) = %q, want %q", tt.version, got, tt.want)
		}
	}
}

func TestVenvPython(t *testing.T) {
	got := VenvPython(filepath.Join("home", "venv"))
	if runtime.GOOS == "windows" {
		want := filepath.Join("home", "venv", "Scripts", "python.exe")
		if got != want {
			t.Errorf("VenvPython = %q, want %q", got, want)
		}
	} else {
		want := filepath.Join("home", "venv", "bin", "python")
		if got != want {
			t.Errorf("VenvPython = %q, want %q", got, want)
		}
	}
}

func TestSitePackagesDir(t *testing.T) {
	got := SitePackagesDir("/opt/venv", "3.12")
	if runtime.GOOS != "windows" {
		want := filepath.Join("/opt/venv", "lib", "python3.12", "site-packages")
		if got != want {
			t.Errorf("SitePackagesDir = %q, want %q", got, want)
		}
	}
}
