package fsops

import (
	"io/fs"
	"path/filepath"
	"strings"

	"fexp/internal/errors"
	"fexp/internal/log"
	"fexp/pkg/types"
)

// Search walks every descendant of root in lexical order and calls fn for
// each entry whose base name contains term. Matching is a case-sensitive
// substring test. Symlinked directories are reported but not entered. The
// first traversal error stops the walk and is returned along with the number
// of matches already reported.
func (e *Engine) Search(root, term string, fn func(types.Entry)) (int, error) {
	logger := log.LogWithFields(log.F("root", root), log.F("term", term))
	logger.Debug("searching")

	found := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return errors.FromOS("search", path, walkErr)
		}
		if path == root {
			return nil
		}
		if !strings.Contains(d.Name(), term) {
			return nil
		}

		isDir := d.IsDir()
		if d.Type()&fs.ModeSymlink != 0 {
			isDir = IsDir(path)
		}
		found++
		fn(types.Entry{Path: path, IsDir: isDir})
		return nil
	})

	logger.With(log.F("found", found)).Debug("search finished")
	return found, err
}
