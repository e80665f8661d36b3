package fsops

import (
	"os"
	"path/filepath"

	"fexp/internal/errors"
	"fexp/internal/log"
	"fexp/pkg/types"
)

// ListDir returns the immediate children of dir, directories first and then
// by name. Hidden names are skipped. Symlinks to directories count as
// directories; only name, path and type are filled in, see Details.
func (e *Engine) ListDir(dir string) ([]types.Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.FromOS("read directory", dir, err)
	}

	entries := make([]types.Entry, 0, len(dirEntries))
	for _, d := range dirEntries {
		if e.hidden(d.Name()) {
			continue
		}
		path := filepath.Join(dir, d.Name())
		isDir := d.IsDir()
		if d.Type()&os.ModeSymlink != 0 {
			isDir = IsDir(path)
		}
		entries = append(entries, types.Entry{Path: path, IsDir: isDir})
	}

	types.SortEntries(entries)
	log.LogWithFields(log.F("dir", dir), log.F("count", len(entries))).Debug("listed directory")
	return entries, nil
}

// Details stats entry (following symlinks) and fills in size, time,
// permissions and ownership.
func (e *Engine) Details(entry types.Entry) (types.Entry, error) {
	info, err := os.Stat(entry.Path)
	if err != nil {
		return entry, errors.FromOS("stat", entry.Path, err)
	}

	detailed := types.NewEntry(entry.Path, info)
	own := e.resolver.Lookup(info)
	detailed.Links = own.Links
	detailed.UID = own.UID
	detailed.GID = own.GID
	detailed.Owner = own.Owner
	detailed.Group = own.Group
	return detailed, nil
}

// Subdirectories returns the names of the directories directly inside dir.
func (e *Engine) Subdirectories(dir string) ([]string, error) {
	entries, err := e.ListDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}
