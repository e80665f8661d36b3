package shell

import (
	"path/filepath"

	"fexp/internal/errors"
	"fexp/internal/fsops"
	"fexp/internal/log"
)

const (
	navParent = iota + 1
	navSubdir
	navHome
	navPath
)

func (s *Shell) navigate() {
	s.out.Header("Navigation")
	s.out.Println("Current directory: " + s.cwd)
	s.out.Println("1. Go to parent directory")
	s.out.Println("2. Go to subdirectory")
	s.out.Println("3. Go to home directory")
	s.out.Println("4. Go to specific path")
	option, _ := s.readInt("Choose option: ")

	switch option {
	case navParent:
		s.toParent()
	case navSubdir:
		s.toSubdirectory()
	case navHome:
		s.toHome()
	case navPath:
		s.toPath()
	default:
		s.out.Println("Invalid option!")
	}
}

func (s *Shell) setDir(dir string) {
	log.LogWithFields(log.F("from", s.cwd), log.F("to", dir)).Debug("changing directory")
	s.cwd = dir
}

func (s *Shell) toParent() {
	parent := filepath.Dir(s.cwd)
	if parent == s.cwd {
		s.out.Warning("Already at root directory!")
		return
	}
	parent, err := fsops.ResolveDir(parent)
	if err != nil {
		s.out.Fail("Navigation error", err)
		return
	}
	s.setDir(parent)
	s.out.Success("Moved to parent directory: " + s.cwd)
}

func (s *Shell) toSubdirectory() {
	subdirs, err := s.fs.Subdirectories(s.cwd)
	if err != nil {
		s.out.Fail("Navigation error", err)
		return
	}

	s.out.Println("Available directories:")
	for _, name := range subdirs {
		s.out.Println("- " + name)
	}
	if len(subdirs) == 0 {
		s.out.Warning("No subdirectories available.")
		return
	}

	name := s.readLine("Enter directory name: ")
	if name == "" {
		s.out.Warning("Directory not found!")
		return
	}
	target := filepath.Join(s.cwd, name)
	if !fsops.IsDir(target) {
		s.out.Warning("Directory not found!")
		return
	}
	dir, err := fsops.ResolveDir(target)
	if err != nil {
		s.out.Fail("Navigation error", err)
		return
	}
	s.setDir(dir)
	s.out.Success("Moved to: " + s.cwd)
}

func (s *Shell) toHome() {
	home, ok := s.lookupEnv("HOME")
	if !ok || home == "" {
		s.out.Warning("Could not find home directory!")
		return
	}
	dir, err := fsops.ResolveDir(home)
	if err != nil {
		log.LogWithError(err).Debug("home is not usable")
		s.out.Warning("Could not find home directory!")
		return
	}
	s.setDir(dir)
	s.out.Success("Moved to home directory: " + s.cwd)
}

func (s *Shell) toPath() {
	input := s.readLine("Enter full path: ")
	if input == "" {
		s.out.Warning("Path does not exist or is not a directory!")
		return
	}
	path := input
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.cwd, path)
	}

	dir, err := fsops.Canonical(path)
	switch {
	case errors.IsFileNotFound(err), errors.IsNotADirectory(err):
		s.out.Warning("Path does not exist or is not a directory!")
	case err != nil:
		s.out.Fail("Navigation error", err)
	default:
		s.setDir(dir)
		s.out.Success("Moved to: " + s.cwd)
	}
}
