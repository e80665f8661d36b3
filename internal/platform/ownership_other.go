//go:build !unix

package platform

import "io/fs"

type unsupportedResolver struct{}

func newResolver() Resolver {
	return unsupportedResolver{}
}

func (unsupportedResolver) Supported() bool { return false }

func (unsupportedResolver) Lookup(fs.FileInfo) Ownership {
	return Ownership{Links: 1, Owner: Unknown, Group: Unknown}
}
