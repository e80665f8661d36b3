package fsops

import (
	"os"

	"fexp/internal/errors"
	"fexp/internal/log"
	"fexp/pkg/types"
)

// PermChange is one of the permission edits offered to the user.
type PermChange int

const (
	AddRead PermChange = iota + 1
	AddWrite
	AddExec
	RemoveRead
	RemoveWrite
	RemoveExec
	ReadOnly
	SetOctal
)

// Apply returns current modified by c. For SetOctal the result is octal.
// ReadOnly discards every other bit, including execute on directories and
// the special bits.
func (c PermChange) Apply(current, octal types.Perm) (types.Perm, bool) {
	switch c {
	case AddRead:
		return current | types.AllRead, true
	case AddWrite:
		return current | types.AllWrite, true
	case AddExec:
		return current | types.AllExec, true
	case RemoveRead:
		return current &^ types.AllRead, true
	case RemoveWrite:
		return current &^ types.AllWrite, true
	case RemoveExec:
		return current &^ types.AllExec, true
	case ReadOnly:
		return types.AllRead, true
	case SetOctal:
		return octal, true
	default:
		return current, false
	}
}

// Permissions returns the permission bits of path, following symlinks.
func (e *Engine) Permissions(path string) (types.Perm, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, errors.FromOS("stat", path, err)
	}
	return types.PermFromMode(info.Mode()), nil
}

// Chmod replaces the permission bits of path with perm.
func (e *Engine) Chmod(path string, perm types.Perm) error {
	if err := os.Chmod(path, perm.FileMode()); err != nil {
		return errors.FromOS("chmod", path, err)
	}
	log.LogWithFields(log.F("path", path), log.F("perm", perm.Octal())).Info("changed permissions")
	return nil
}
