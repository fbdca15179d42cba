// Package config loads and persists preflight settings.
//
// Settings live in a JSON file (settings.json by default) with four
// blocks: environment, dependencies, installer, and logging. A missing
// file is created with defaults on first load; environment variables
// prefixed PREFLIGHT_ override file values (PREFLIGHT_ENVIRONMENT_USE_VENV
// and so on).
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultPath is the settings file consulted when no path is given.
const DefaultPath = "settings.json"

// Environment selects which Python interpreter preflight works against.
type Environment struct {
	UseVenv    bool   `mapstructure:"use_venv" json:"use_venv"`
	VenvPath   string `mapstructure:"venv_path" json:"venv_path"`
	PythonPath string `mapstructure:"python_path" json:"python_path"`
}

// Dependencies controls requirement checking and installation behavior.
type Dependencies struct {
	CheckOnStartup   bool     `mapstructure:"check_on_startup" json:"check_on_startup"`
	AutoInstall      bool     `mapstructure:"auto_install" json:"auto_install"`
	RequirementsFile string   `mapstructure:"requirements_file" json:"requirements_file"`
	AllowPrerelease  bool     `mapstructure:"allow_prerelease" json:"allow_prerelease"`
	TrustedHosts     []string `mapstructure:"trusted_hosts" json:"trusted_hosts"`
	ExtraIndexURLs   []string `mapstructure:"extra_index_urls" json:"extra_index_urls"`
}

// Installer tunes how the package manager is invoked.
type Installer struct {
	PreferredManager    string `mapstructure:"preferred_manager" json:"preferred_manager"`
	AllowUserInstall    bool   `mapstructure:"allow_user_install" json:"allow_user_install"`
	UpgradeDependencies bool   `mapstructure:"upgrade_dependencies" json:"upgrade_dependencies"`
	TimeoutSeconds      int    `mapstructure:"timeout" json:"timeout"`
	Retries             int    `mapstructure:"retries" json:"retries"`
}

// Timeout returns the per-invocation installer timeout.
func (i Installer) Timeout() time.Duration {
	return time.Duration(i.TimeoutSeconds) * time.Second
}

// Logging configures log level and destination file.
type Logging struct {
	Level string `mapstructure:"level" json:"level"`
	File  string `mapstructure:"file" json:"file"`
}

// Settings is the full preflight configuration.
type Settings struct {
	Environment  Environment  `mapstructure:"environment" json:"environment"`
	Dependencies Dependencies `mapstructure:"dependencies" json:"dependencies"`
	Installer    Installer    `mapstructure:"installer" json:"installer"`
	Logging      Logging      `mapstructure:"logging" json:"logging"`
}

// Default returns the settings used when no file exists yet.
func Default() *Settings {
	return &Settings{
		Environment: Environment{
			UseVenv:  true,
			VenvPath: "venv",
		},
		Dependencies: Dependencies{
			CheckOnStartup:   true,
			AutoInstall:      true,
			RequirementsFile: "requirements.txt",
			AllowPrerelease:  false,
			TrustedHosts:     []string{},
			ExtraIndexURLs:   []string{},
		},
		Installer: Installer{
			PreferredManager:    "pip",
			AllowUserInstall:    true,
			UpgradeDependencies: false,
			TimeoutSeconds:      60,
			Retries:             3,
		},
		Logging: Logging{
			Level: "INFO",
			File:  "preflight.log",
		},
	}
}

// Load reads settings from path. A missing file is created with defaults
// and those defaults returned. A file that exists but cannot be decoded
// yields the defaults together with the decode error, so the caller can
// log it and keep going.
func Load(path string) (*Settings, error) {
	if path == "" {
		path = DefaultPath
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		defaults := Default()
		if err := Save(defaults, path); err != nil {
			return defaults, fmt.Errorf("writing default settings: %w", err)
		}
		return defaults, nil
	}

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		return Default(), fmt.Errorf("reading settings %s: %w", path, err)
	}

	settings := Default()
	if err := v.Unmarshal(settings); err != nil {
		return Default(), fmt.Errorf("decoding settings %s: %w", path, err)
	}
	return settings, nil
}

// Save writes settings to path as indented JSON.
func Save(s *Settings, path string) error {
	if path == "" {
		path = DefaultPath
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "    ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing settings %s: %w", path, err)
	}
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("PREFLIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := Default()
	v.SetDefault("environment.use_venv", defaults.Environment.UseVenv)
	v.SetDefault("environment.venv_path", defaults.Environment.VenvPath)
	v.SetDefault("environment.python_path", defaults.Environment.PythonPath)
	v.SetDefault("dependencies.check_on_startup", defaults.Dependencies.CheckOnStartup)
	v.SetDefault("dependencies.auto_install", defaults.Dependencies.AutoInstall)
	v.SetDefault("dependencies.requirements_file", defaults.Dependencies.RequirementsFile)
	v.SetDefault("dependencies.allow_prerelease", defaults.Dependencies.AllowPrerelease)
	v.SetDefault("installer.preferred_manager", defaults.Installer.PreferredManager)
	v.SetDefault("installer.allow_user_install", defaults.Installer.AllowUserInstall)
	v.SetDefault("installer.upgrade_dependencies", defaults.Installer.UpgradeDependencies)
	v.SetDefault("installer.timeout", defaults.Installer.TimeoutSeconds)
	v.SetDefault("installer.retries", defaults.Installer.Retries)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.file", defaults.Logging.File)
	return v
}
