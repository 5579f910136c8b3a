package level

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// LoadFS loads every *.json and *.tmx level in dir. Files that fail to load
// are skipped and reported in the joined error; the levels that did load are
// returned either way, ordered by Order and then Name.
func LoadFS(fsys fs.FS, dir string) ([]Level, error) {
	var levels []Level
	var errs []error
	for _, ext := range []string{"*.json", "*.tmx"} {
		matches, err := fs.Glob(fsys, path.Join(dir, ext))
		if err != nil {
			return nil, fmt.Errorf("level: glob %s: %w", dir, err)
		}
		for _, p := range matches {
			l, err := loadFile(fsys, p)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			levels = append(levels, l)
		}
	}
	Sort(levels)
	return levels, errors.Join(errs...)
}

// LoadFile loads one .json or .tmx level from disk.
func LoadFile(p string) (Level, error) {
	return loadFile(os.DirFS(filepath.Dir(p)), filepath.Base(p))
}

func loadFile(fsys fs.FS, p string) (Level, error) {
	stem := strings.TrimSuffix(path.Base(p), path.Ext(p))
	if strings.HasSuffix(p, ".tmx") {
		return LoadTMX(fsys, p)
	}
	b, err := fs.ReadFile(fsys, p)
	if err != nil {
		return Level{}, fmt.Errorf("level: read %s: %w", p, err)
	}
	l, err := Decode(b)
	if err != nil {
		return Level{}, fmt.Errorf("level: load %s: %w", p, err)
	}
	if l.ID == "" {
		l.ID = stem
	}
	if l.Name == "" {
		l.Name = stem
	}
	return l, nil
}

// Sort orders levels by Order, then Name.
func Sort(levels []Level) {
	sort.SliceStable(levels, func(i, j int) bool {
		if levels[i].Order != levels[j].Order {
			return levels[i].Order < levels[j].Order
		}
		return levels[i].Name < levels[j].Name
	})
}
