package types

import (
	"fmt"
	"io/fs"
	"strconv"
	"strings"
)

// Perm is a POSIX permission set: the nine rwx bits for owner, group and
// others plus the setuid, setgid and sticky bits.
type Perm uint16

const (
	OtherExec Perm = 1 << iota
	OtherWrite
	OtherRead
	GroupExec
	GroupWrite
	GroupRead
	OwnerExec
	OwnerWrite
	OwnerRead
	Sticky
	SetGID
	SetUID
)

// Permission groups spanning all three classes.
const (
	PermNone Perm = 0
	AllRead       = OwnerRead | GroupRead | OtherRead
	AllWrite      = OwnerWrite | GroupWrite | OtherWrite
	AllExec       = OwnerExec | GroupExec | OtherExec
	PermMask      = AllRead | AllWrite | AllExec
	SpecialMask   = SetUID | SetGID | Sticky

	// MaxOctal is the largest value ParseOctal accepts.
	MaxOctal = 0o7777
)

var permLetters = [9]struct {
	bit    Perm
	letter byte
}{
	{OwnerRead, 'r'}, {OwnerWrite, 'w'}, {OwnerExec, 'x'},
	{GroupRead, 'r'}, {GroupWrite, 'w'}, {GroupExec, 'x'},
	{OtherRead, 'r'}, {OtherWrite, 'w'}, {OtherExec, 'x'},
}

// Has reports whether every bit in q is set.
func (p Perm) Has(q Perm) bool { return p&q == q }

// String returns the nine character rwx form, e.g. "rwxr-xr--".
func (p Perm) String() string {
	var s [9]byte
	for i, pl := range permLetters {
		s[i] = '-'
		if p&pl.bit != 0 {
			s[i] = pl.letter
		}
	}
	return string(s[:])
}

// ModeString prefixes String with the d/- type marker.
func (p Perm) ModeString(isDir bool) string {
	if isDir {
		return "d" + p.String()
	}
	return "-" + p.String()
}

// Octal returns the permission as a four digit octal string.
func (p Perm) Octal() string {
	return fmt.Sprintf("%04o", uint16(p))
}

// FileMode converts p to an fs.FileMode suitable for os.Chmod.
func (p Perm) FileMode() fs.FileMode {
	m := fs.FileMode(p & PermMask)
	if p&SetUID != 0 {
		m |= fs.ModeSetuid
	}
	if p&SetGID != 0 {
		m |= fs.ModeSetgid
	}
	if p&Sticky != 0 {
		m |= fs.ModeSticky
	}
	return m
}

// PermFromMode extracts the permission and special bits from a file mode.
func PermFromMode(m fs.FileMode) Perm {
	p := Perm(m.Perm())
	if m&fs.ModeSetuid != 0 {
		p |= SetUID
	}
	if m&fs.ModeSetgid != 0 {
		p |= SetGID
	}
	if m&fs.ModeSticky != 0 {
		p |= Sticky
	}
	return p
}

// ParseOctal parses a base-8 permission value such as "755" or "0644".
// The whole string must be octal digits and the value must not exceed 7777.
func ParseOctal(s string) (Perm, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty permission value")
	}
	v, err := strconv.ParseUint(s, 8, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid octal permission %q: %w", s, err)
	}
	if v > MaxOctal {
		return 0, fmt.Errorf("octal permission %q out of range", s)
	}
	return Perm(v), nil
}
