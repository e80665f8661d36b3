package shell

import (
	"fmt"

	"fexp/pkg/types"
)

const timeLayout = "2006-01-02 15:04"

func (s *Shell) list(detailed bool) {
	s.out.Println("\nContents of " + s.cwd + ":")
	s.out.Rule()

	entries, err := s.fs.ListDir(s.cwd)
	if err != nil {
		s.out.Fail("Error accessing directory", err)
		return
	}

	if detailed && !s.fs.Resolver().Supported() && !s.ownershipWarned {
		s.out.Warning("Ownership details unsupported on this platform")
		s.ownershipWarned = true
	}

	for _, entry := range entries {
		if !detailed {
			s.out.Println(entry.Marker() + " " + entry.Name())
			continue
		}
		d, err := s.fs.Details(entry)
		if err != nil {
			s.out.Error(fmt.Sprintf("Error getting info for: %s - %v", entry.Path, err))
			continue
		}
		s.out.Println(detailLine(d))
	}

	s.out.Rule()
	s.out.Printf("Total: %d items\n", len(entries))
}

func detailLine(e types.Entry) string {
	return fmt.Sprintf("%s %3d %8s %8s %8s %s %s",
		e.Perm.ModeString(e.IsDir),
		e.Links,
		e.Owner,
		e.Group,
		e.SizeString(),
		e.ModTime.Local().Format(timeLayout),
		e.Name(),
	)
}
