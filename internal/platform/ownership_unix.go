//go:build unix

package platform

import (
	"io/fs"
	"syscall"
)

type unixResolver struct{}

func newResolver() Resolver {
	return unixResolver{}
}

func (unixResolver) Supported() bool { return true }

func (unixResolver) Lookup(info fs.FileInfo) Ownership {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return Ownership{Links: 1, Owner: Unknown, Group: Unknown}
	}
	return Ownership{
		Links: uint64(st.Nlink),
		UID:   st.Uid,
		GID:   st.Gid,
		Owner: userName(st.Uid),
		Group: groupName(st.Gid),
	}
}
