// Package fsops performs the explorer's filesystem work: listing, copying,
// moving, removing, creating, searching and changing permissions. Every
// operation is synchronous and returns typed errors from internal/errors;
// printing and confirmation belong to the caller.
package fsops

import (
	"io"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"

	"fexp/internal/config"
	"fexp/internal/errors"
	"fexp/internal/log"
	"fexp/internal/platform"
)

// ProgressWriter receives copied bytes and is finished once the copy ends.
type ProgressWriter interface {
	io.Writer
	Finish() error
}

// ProgressFunc creates a ProgressWriter for a copy of total bytes.
type ProgressFunc func(total int64, description string) ProgressWriter

// Engine handles filesystem operations
type Engine struct {
	hide              []glob.Glob
	resolver          platform.Resolver
	progress          ProgressFunc
	progressThreshold int64
}

// New creates an Engine with no hide rules and no progress reporting.
func New() *Engine {
	return &Engine{
		resolver:          platform.NewResolver(),
		progressThreshold: config.DefaultProgressThreshold,
	}
}

// NewWithConfig creates an Engine using the listing and copy settings of cfg.
func NewWithConfig(cfg *config.Config) (*Engine, error) {
	e := New()
	if err := e.SetHidePatterns(cfg.Listing.Hide); err != nil {
		return nil, err
	}
	e.progressThreshold = cfg.Copy.ProgressThreshold
	return e, nil
}

// SetHidePatterns replaces the glob patterns whose matches are left out of listings.
func (e *Engine) SetHidePatterns(patterns []string) error {
	compiled := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return errors.NewConfigError("invalid hide pattern", p, errors.InvalidConfig, err)
		}
		compiled = append(compiled, g)
	}
	e.hide = compiled
	return nil
}

// SetProgress installs fn for copies of at least threshold bytes.
func (e *Engine) SetProgress(fn ProgressFunc, threshold int64) {
	e.progress = fn
	e.progressThreshold = threshold
}

// Resolver returns the ownership resolver used for detailed listings.
func (e *Engine) Resolver() platform.Resolver {
	return e.resolver
}

func (e *Engine) hidden(name string) bool {
	for _, g := range e.hide {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// Exists reports whether anything, including a dangling symlink, is at path.
func Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.FromOS("stat", path, err)
}

// IsDir reports whether path resolves, through symlinks, to a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// ResolveDir returns the absolute, cleaned form of path after checking that
// it is an existing directory.
func ResolveDir(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.FromOS("resolve", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", errors.FromOS("stat", abs, err)
	}
	if !info.IsDir() {
		return "", errors.NewFileError("not a directory", abs, errors.NotADirectory, nil)
	}
	return abs, nil
}

// Canonical resolves path to an absolute directory with every symlink, "."
// and ".." removed.
func Canonical(path string) (string, error) {
	abs, err := ResolveDir(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", errors.FromOS("resolve", abs, err)
	}
	return resolved, nil
}

// Move renames src to dest. Renames across filesystems fail; there is no
// copy-and-delete fallback.
func (e *Engine) Move(src, dest string) error {
	log.LogWithFields(log.F("src", src), log.F("dest", dest)).Debug("moving")
	if err := os.Rename(src, dest); err != nil {
		return errors.FromOS("move", src, err)
	}
	log.LogWithFields(log.F("src", src), log.F("dest", dest)).Info("moved")
	return nil
}

// Remove deletes path. With recursive set, directories are removed with
// their contents.
func (e *Engine) Remove(path string, recursive bool) error {
	logger := log.LogWithFields(log.F("path", path), log.F("recursive", recursive))
	logger.Debug("removing")

	var err error
	if recursive {
		err = os.RemoveAll(path)
	} else {
		err = os.Remove(path)
	}
	if err != nil {
		return errors.FromOS("delete", path, err)
	}
	logger.Info("removed")
	return nil
}

// CreateFile creates an empty file. It never truncates an existing one.
func (e *Engine) CreateFile(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o666)
	if err != nil {
		return errors.FromOS("create file", path, err)
	}
	if err := f.Close(); err != nil {
		return errors.FromOS("create file", path, err)
	}
	log.LogWithFields(log.F("path", path)).Info("created file")
	return nil
}

// CreateDir creates a single empty directory.
func (e *Engine) CreateDir(path string) error {
	if err := os.Mkdir(path, 0o777); err != nil {
		return errors.FromOS("create directory", path, err)
	}
	log.LogWithFields(log.F("path", path)).Info("created directory")
	return nil
}
