package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_CreatesDefaultsOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !s.Environment.UseVenv {
		t.Error("default UseVenv = false, want true")
	}
	if s.Installer.Retries != 3 {
		t.Errorf("default Retries = %d, want 3", s.Installer.Retries)
	}

	// The defaults must have been persisted.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("defaults were not written: %v", err)
	}
	if !strings.Contains(string(data), `"requirements_file"`) {
		t.Errorf("written settings missing dependencies block: %s", data)
	}
}

func TestLoad_ReadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	content := `{
    "environment": {"use_venv": false, "python_path": "/usr/bin/python3"},
    "installer": {"timeout": 120}
}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if s.Environment.UseVenv {
		t.Error("UseVenv = true, want false from file")
	}
	if s.Environment.PythonPath != "/usr/bin/python3" {
		t.Errorf("PythonPath = %q", s.Environment.PythonPath)
	}
	if s.Installer.TimeoutSeconds != 120 {
		t.Errorf("TimeoutSeconds = %d, want 120", s.Installer.TimeoutSeconds)
	}
	// Unset fields keep defaults.
	if s.Installer.PreferredManager != "pip" {
		t.Errorf("PreferredManager = %q, want default pip", s.Installer.PreferredManager)
	}
	if s.Dependencies.RequirementsFile != "requirements.txt" {
		t.Errorf("RequirementsFile = %q, want default", s.Dependencies.RequirementsFile)
	}
}

func TestLoad_MalformedFileFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err == nil {
		t.Error("expected decode error for malformed settings")
	}
	if s == nil || s.Installer.Retries != 3 {
		t.Errorf("malformed file must still yield defaults, got %+v", s)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	s := Default()
	s.Environment.UseVenv = false
	s.Dependencies.TrustedHosts = []string{"pypi.internal.example.com"}
	s.Installer.TimeoutSeconds = 90
	if err := Save(s, path); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.Environment.UseVenv {
		t.Error("UseVenv survived round trip as true")
	}
	if len(loaded.Dependencies.TrustedHosts) != 1 || loaded.Dependencies.TrustedHosts[0] != "pypi.internal.example.com" {
		t.Errorf("TrustedHosts = %v", loaded.Dependencies.TrustedHosts)
	}
	if loaded.Installer.Timeout().Seconds() != 90 {
		t.Errorf("Timeout = %v, want 90s", loaded.Installer.Timeout())
	}
}
