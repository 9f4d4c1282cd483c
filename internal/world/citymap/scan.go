package citymap

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LayoutEntry is a layout file found in a maps directory.
type LayoutEntry struct {
	Name string // file name without extension
	Path string
}

// ScanLayouts lists the layout files (.yaml, .yml, .json) in dir, sorted
// by name. Subdirectories and hidden files are skipped.
func ScanLayouts(dir string) ([]LayoutEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read maps directory: %w", err)
	}

	var layouts []LayoutEntry
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".yaml" && ext != ".yml" && ext != ".json" {
			continue
		}
		layouts = append(layouts, LayoutEntry{
			Name: strings.TrimSuffix(name, filepath.Ext(name)),
			Path: filepath.Join(dir, name),
		})
	}

	sort.Slice(layouts, func(i, j int) bool { return layouts[i].Name < layouts[j].Name })
	return layouts, nil
}

// Open resolves name to a map. The empty name and "city" give the built-in
// city; anything else must match a layout in dir.
func Open(dir, name string) (*Map, error) {
	if name == "" || name == "city" {
		return NewCity(), nil
	}
	layouts, err := ScanLayouts(dir)
	if err != nil {
		return nil, err
	}
	for _, l := range layouts {
		if l.Name == name {
			return LoadLayout(l.Path)
		}
	}
	return nil, fmt.Errorf("no layout named %q in %s", name, dir)
}
