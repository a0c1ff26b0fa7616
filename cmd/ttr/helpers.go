package main

import (
	"os"
	"path/filepath"
	"strings"
)

// walkDirs visits dir and every non-hidden subdirectory, calling fn on
// each. Used to register fsnotify watches recursively since fsnotify
// itself only watches a single directory level.
func walkDirs(dir string, fn func(path string) error) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	if err := fn(dir); err != nil {
		return err
	}
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if err := walkDirs(filepath.Join(dir, e.Name()), fn); err != nil {
			return err
		}
	}
	return nil
}
