// Package locate finds input files inside application directories.
//
// Every lookup lists a single directory (never recursive) and sorts names
// lexicographically, so the first match for a suffix is stable across
// platforms.
package locate

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Required returns the first regular file in dir whose name ends with suffix.
// A missing directory or zero matches yields a *MissingFileError.
func Required(dir, suffix string) (string, error) {
	matches, err := list(dir, suffix)
	if err != nil {
		return "", &MissingFileError{Dir: dir, Suffix: suffix, Cause: err}
	}
	if len(matches) == 0 {
		return "", &MissingFileError{Dir: dir, Suffix: suffix}
	}
	return matches[0], nil
}

// First is the optional form of Required: ok is false when nothing matches
// or dir does not exist.
func First(dir, suffix string) (path string, ok bool, err error) {
	matches, err := All(dir, suffix)
	if err != nil || len(matches) == 0 {
		return "", false, err
	}
	return matches[0], true, nil
}

// Optional looks up a file by exact name. ok is false when it is absent.
func Optional(dir, name string) (path string, ok bool, err error) {
	path = filepath.Join(dir, name)
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if !info.Mode().IsRegular() {
		return "", false, nil
	}
	return path, true, nil
}

// All returns every regular file in dir ending with suffix, sorted by name.
// A missing directory yields an empty result.
func All(dir, suffix string) ([]string, error) {
	matches, err := list(dir, suffix)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return matches, err
}

// Subdirectories returns the immediate child directories of root, sorted.
// Unlike a plain directory listing, names starting with "." are skipped so
// that .git or editor state under the root is never processed as an entity.
func Subdirectories(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var dirs []string
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		dirs = append(dirs, filepath.Join(root, entry.Name()))
	}
	sort.Strings(dirs)
	return dirs, nil
}

// ReadText returns the full contents of path.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &FileReadError{Path: path, Cause: err}
	}
	return string(data), nil
}

// list follows symlinks so linked inputs are treated like regular files.
func list(dir, suffix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var matches []string
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		matches = append(matches, path)
	}
	sort.Strings(matches)
	return matches, nil
}
