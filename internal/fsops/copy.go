package fsops

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"fexp/internal/errors"
	"fexp/internal/log"
)

// CopyTarget returns the path Copy writes when copying src to dest. A file
// copied onto an existing directory lands inside it under its own name.
func CopyTarget(src, dest string) string {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return dest
	}
	return copyTarget(srcInfo, src, dest)
}

func copyTarget(srcInfo fs.FileInfo, src, dest string) string {
	if srcInfo.IsDir() {
		return dest
	}
	if info, err := os.Stat(dest); err == nil && info.IsDir() {
		return filepath.Join(dest, filepath.Base(src))
	}
	return dest
}

// Copy copies src to dest, overwriting dest if it exists. A file copied onto
// a directory is placed inside it. Directories are copied recursively.
// Permission bits of every copied entry are preserved.
func (e *Engine) Copy(src, dest string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return errors.FromOS("copy", src, err)
	}
	dest = copyTarget(srcInfo, src, dest)

	if destInfo, err := os.Stat(dest); err == nil && os.SameFile(srcInfo, destInfo) {
		return errors.NewFileError("source and destination are the same file", dest, errors.InvalidOperation, nil)
	}

	logger := log.LogWithFields(log.F("src", src), log.F("dest", dest))
	logger.Debug("copying")

	if srcInfo.IsDir() {
		err = e.copyTree(src, dest)
	} else {
		err = e.copyFile(src, dest, srcInfo)
	}
	if err != nil {
		return err
	}
	logger.Info("copied")
	return nil
}

func (e *Engine) copyFile(src, dest string, srcInfo fs.FileInfo) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return errors.FromOS("copy", src, err)
	}
	defer in.Close()

	mode := srcInfo.Mode().Perm()
	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return errors.FromOS("copy", dest, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = errors.FromOS("copy", dest, cerr)
		}
	}()

	var w io.Writer = out
	var bar ProgressWriter
	if e.progress != nil && srcInfo.Size() >= e.progressThreshold {
		bar = e.progress(srcInfo.Size(), "Copying "+filepath.Base(src))
		w = io.MultiWriter(out, bar)
	}

	if _, err := io.Copy(w, in); err != nil {
		return errors.FromOS("copy", dest, err)
	}
	if bar != nil {
		if err := bar.Finish(); err != nil {
			log.LogWithError(err).Debug("progress bar finish failed")
		}
	}

	// OpenFile only applies mode to new files
	if err := out.Chmod(mode); err != nil {
		return errors.FromOS("copy", dest, err)
	}
	return nil
}

func (e *Engine) copyTree(src, dest string) error {
	if within(src, dest) {
		return errors.NewFileError("cannot copy a directory into itself", dest, errors.InvalidOperation, nil)
	}

	type dirMode struct {
		path string
		mode fs.FileMode
	}
	var dirs []dirMode

	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return errors.FromOS("copy", path, walkErr)
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return errors.FromOS("copy", path, err)
		}
		target := filepath.Join(dest, rel)

		info, err := d.Info()
		if err != nil {
			return errors.FromOS("copy", path, err)
		}

		switch {
		case d.IsDir():
			// owner rwx keeps the directory fillable; the real mode is set afterwards
			if err := os.MkdirAll(target, info.Mode().Perm()|0o700); err != nil {
				return errors.FromOS("copy", target, err)
			}
			dirs = append(dirs, dirMode{target, info.Mode().Perm()})
			return nil
		case d.Type()&fs.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return errors.FromOS("copy", path, err)
			}
			_ = os.Remove(target)
			if err := os.Symlink(link, target); err != nil {
				return errors.FromOS("copy", target, err)
			}
			return nil
		case d.Type().IsRegular():
			return e.copyFile(path, target, info)
		default:
			log.LogWithFields(log.F("path", path)).Warn("skipping special file")
			return nil
		}
	})
	if err != nil {
		return err
	}

	for i := len(dirs) - 1; i >= 0; i-- {
		if err := os.Chmod(dirs[i].path, dirs[i].mode); err != nil {
			return errors.FromOS("copy", dirs[i].path, err)
		}
	}
	return nil
}

// within reports whether dest is src or lies beneath it.
func within(src, dest string) bool {
	absSrc, err1 := filepath.Abs(src)
	absDest, err2 := filepath.Abs(dest)
	if err1 != nil || err2 != nil {
		return false
	}
	rel, err := filepath.Rel(absSrc, absDest)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
