package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Package packageConfig `toml:"package"`
	Pool    poolConfig    `toml:"pool"`
}

type packageConfig struct {
	Name string `toml:"name"`
}

type poolConfig struct {
	Output string `toml:"output"`
}

// findTernToml walks from startDir toward the filesystem root looking
// for a tern.toml manifest.
func findTernToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "tern.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findTernToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return projectConfig{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [package].name", path)
	}
	return cfg, nil
}

// resolvePoolOutput picks the pool output path: the -o flag when given,
// otherwise [pool].output from the manifest resolved against its root.
func resolvePoolOutput(flagValue string, manifest *projectManifest) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if manifest == nil || strings.TrimSpace(manifest.Config.Pool.Output) == "" {
		return "", errors.New("no output path: pass -o or set [pool].output in tern.toml")
	}
	out := filepath.FromSlash(strings.TrimSpace(manifest.Config.Pool.Output))
	if filepath.IsAbs(out) {
		return out, nil
	}
	return filepath.Join(manifest.Root, out), nil
}
