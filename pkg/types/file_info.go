package types

import (
	"io/fs"
	"path/filepath"
	"time"
)

// Entry represents one filesystem object seen while listing or searching.
// It is rebuilt on every listing and never cached.
type Entry struct {
	Path    string    `json:"path"`
	IsDir   bool      `json:"is_dir"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
	Perm    Perm      `json:"perm"`
	Links   uint64    `json:"links"`
	UID     uint32    `json:"uid"`
	GID     uint32    `json:"gid"`
	Owner   string    `json:"owner"`
	Group   string    `json:"group"`
}

// NewEntry builds an Entry from the path and the (symlink-followed) file info.
func NewEntry(path string, info fs.FileInfo) Entry {
	return Entry{
		Path:    path,
		IsDir:   info.IsDir(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
		Perm:    PermFromMode(info.Mode()),
		Links:   1,
	}
}

// Name returns the base name of the entry
func (e *Entry) Name() string {
	return filepath.Base(e.Path)
}

// Marker returns the fixed-width listing marker for the entry.
func (e *Entry) Marker() string {
	if e.IsDir {
		return "[DIR] "
	}
	return "[FILE]"
}

// SizeString returns the formatted size, or <DIR> for directories.
func (e *Entry) SizeString() string {
	if e.IsDir {
		return "<DIR>"
	}
	return FormatSize(e.Size)
}
