package shell

import (
	"fexp/pkg/types"
)

func (s *Shell) search() {
	s.out.Header("Search Files")
	term := s.readLine("Enter search term (filename or pattern): ")

	s.out.Info("Searching for: " + term)
	s.out.Info("In directory: " + s.cwd)

	found, err := s.fs.Search(s.cwd, term, func(e types.Entry) {
		s.out.Println(e.Marker() + " " + e.Path)
	})
	if err != nil {
		s.out.Fail("Search error", err)
		return
	}
	if found == 0 {
		s.out.Warning("No files or directories found matching: " + term)
	}
}
