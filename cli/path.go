package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ardnew/mung"

	"github.com/ardnew/dragon/pkg"
	"github.com/ardnew/dragon/store"
)

const (
	// baseConfig is the base name of the configuration file.
	baseConfig = "config.yaml"

	// baseCatalog is the base name of the user level catalog, loaded after
	// the built-in levels when it exists.
	baseCatalog = "levels.yaml"
)

// catalogEnv names the path list of extra catalog files.
const catalogEnv = pkg.EnvPrefix + "CATALOG"

// DefaultDirMode is the default permission mode for created directories.
//
//nolint:gochecknoglobals
var defaultDirMode os.FileMode = 0o700

// configPath returns the absolute path to a file or directory formed by joining
// the global configuration directory path with the given path elements.
//
// If no elements are given, it is equivalent to calling [pkg.ConfigDir].
func configPath(elem ...string) string {
	return filepath.Join(append([]string{pkg.ConfigDir()}, elem...)...)
}

// cachePath is [configPath] for the cache directory.
func cachePath(elem ...string) string {
	return filepath.Join(append([]string{pkg.CacheDir()}, elem...)...)
}

// historyPath returns the default play history database path.
func historyPath() string { return cachePath(store.DefaultFile) }

// catalogPaths returns the catalog files to load after the built-in levels:
// the user catalog in the configuration directory followed by every entry of
// the catalog path list, keeping only regular files.
func catalogPaths() []string {
	delim := string(os.PathListSeparator)

	list := mung.Make(
		mung.WithSubjectItems(os.Getenv(catalogEnv)),
		mung.WithDelim(delim),
		mung.WithPrefixItems(configPath(baseCatalog)),
	).String()

	var paths []string

	for _, p := range strings.Split(list, delim) {
		if p != "" && isFile(p) {
			paths = append(paths, p)
		}
	}

	return paths
}

func isFile(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.Mode().IsRegular()
}

// mkdirAllRequired creates all required runtime directories.
func mkdirAllRequired() error {
	for _, dir := range []string{pkg.ConfigDir(), pkg.CacheDir()} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}
