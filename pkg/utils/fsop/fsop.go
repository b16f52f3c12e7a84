// Package fsop provides file system operations.
package fsop

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Candidates lists the paths FindFile tries for name, in order: the name
// itself, then for every dir the name joined to it and its base name joined
// to it. Duplicates and empty dirs are dropped.
func Candidates(name string, dirs ...string) []string {
	seen := map[string]bool{}
	var out []string
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	add(name)
	base := filepath.Base(name)
	for _, d := range dirs {
		if d == "" {
			continue
		}
		if !filepath.IsAbs(name) {
			add(filepath.Join(d, name))
		}
		add(filepath.Join(d, base))
	}
	return out
}

// FindFile returns the first candidate that is a regular file.
func FindFile(name string, dirs ...string) (string, error) {
	if name == "" {
		return "", fs.ErrNotExist
	}
	for _, p := range Candidates(name, dirs...) {
		if IsFile(p) {
			return p, nil
		}
	}
	return "", &fs.PathError{Op: "find", Path: name, Err: fs.ErrNotExist}
}

// IsFile reports whether p exists and is not a directory.
func IsFile(p string) bool {
	st, err := os.Stat(p)
	if err != nil {
		return false
	}
	return st.Mode().IsRegular()
}

// IsNotExist reports whether err means the file was not found.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
