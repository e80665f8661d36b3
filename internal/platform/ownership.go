// Package platform resolves the POSIX-only details of a directory entry:
// hard-link count and owner/group identities. Targets without that model
// report Supported() == false and callers fall back to placeholder values.
package platform

import (
	"io/fs"
	"os/user"
	"strconv"
)

// Unknown is shown when an id has no entry in the identity database.
const Unknown = "unknown"

// Ownership describes who owns an entry and how many names link to it.
type Ownership struct {
	Links uint64
	UID   uint32
	GID   uint32
	Owner string
	Group string
}

// Resolver looks up ownership information for a stat result.
type Resolver interface {
	Supported() bool
	Lookup(info fs.FileInfo) Ownership
}

// NewResolver returns the resolver for the running platform. Names are looked
// up on every call so a renamed user or group shows on the next listing.
func NewResolver() Resolver {
	return newResolver()
}

var (
	lookupUser  = user.LookupId
	lookupGroup = user.LookupGroupId
)

func userName(uid uint32) string {
	if u, err := lookupUser(strconv.FormatUint(uint64(uid), 10)); err == nil {
		return u.Username
	}
	return Unknown
}

func groupName(gid uint32) string {
	if g, err := lookupGroup(strconv.FormatUint(uint64(gid), 10)); err == nil {
		return g.Name
	}
	return Unknown
}
