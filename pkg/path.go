package pkg

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Environment variables that replace the per-user directories. Their values
// are used as given, without appending [Prefix].
const (
	ConfigDirEnv = EnvPrefix + "CONFIG_DIR"
	CacheDirEnv  = EnvPrefix + "CACHE_DIR"
)

// Prefix returns the directory name dragon keeps its files under. It is the
// executable's base name, so a renamed build keeps separate levels, config
// and play history. Test binaries and debugger builds use [Name].
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(func() string {
	exe, err := os.Executable()
	if err != nil {
		exe = os.Args[0]
	}

	return prefixOf(exe)
})

func prefixOf(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)

	if ext == ".test" || strings.HasPrefix(base, "__debug_bin") {
		return Name
	}

	base = strings.TrimLeft(strings.TrimSuffix(base, ext), ".")
	if base == "" {
		return Name
	}

	return base
}

// ConfigDir returns the directory holding config.yaml and levels.yaml.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(func() string {
	return userDir(ConfigDirEnv, os.UserConfigDir, ".config")
})

// CacheDir returns the directory holding the play history database, REPL
// line history and profiles.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(func() string {
	return userDir(CacheDirEnv, os.UserCacheDir, ".cache")
})

// userDir resolves a per-user directory: the override in env, else the
// platform directory from base, else hidden under the home directory, else
// under the working directory.
func userDir(env string, base func() (string, error), hidden string) string {
	if dir := os.Getenv(env); dir != "" {
		return filepath.Clean(dir)
	}

	dir, err := base()
	if err != nil {
		dir = "."

		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, hidden)
		}
	}

	return filepath.Join(dir, Prefix())
}
