package shell

import (
	"fexp/internal/errors"
	"fexp/internal/fsops"
)

// transfer describes one of the two source/destination operations.
type transfer struct {
	title    string
	errLabel string
	canceled string
	done     string
	run      func(src, dest string) error
	target   func(src, dest string) string // path actually written, if not dest
}

func (s *Shell) copyFile() {
	s.transfer(transfer{
		title:    "Copy File",
		errLabel: "Copy error",
		canceled: "Copy cancelled.",
		done:     "File copied successfully!",
		run:      s.fs.Copy,
		target:   fsops.CopyTarget,
	})
}

func (s *Shell) moveFile() {
	s.transfer(transfer{
		title:    "Move File",
		errLabel: "Move error",
		canceled: "Move cancelled.",
		done:     "File moved successfully!",
		run:      s.fs.Move,
	})
}

func (s *Shell) transfer(t transfer) {
	s.out.Header(t.title)
	srcName := s.readLine("Enter source filename: ")
	destName := s.readLine("Enter destination filename: ")

	src, err := s.resolve(srcName)
	if err != nil {
		s.out.Fail(t.errLabel, err)
		return
	}
	dest, err := s.resolve(destName)
	if err != nil {
		s.out.Fail(t.errLabel, err)
		return
	}

	exists, err := fsops.Exists(src)
	if err != nil {
		s.out.Fail(t.errLabel, err)
		return
	}
	if !exists {
		s.out.Warning("Source file does not exist!")
		return
	}

	final := dest
	if t.target != nil {
		final = t.target(src, dest)
	}
	exists, err = fsops.Exists(final)
	if err != nil {
		s.out.Fail(t.errLabel, err)
		return
	}
	if exists && !s.confirm("Destination file already exists. Overwrite? (y/n): ") {
		s.out.Println(t.canceled)
		return
	}

	if err := t.run(src, dest); err != nil {
		s.out.Fail(t.errLabel, err)
		return
	}
	s.out.Success(t.done)
}

func (s *Shell) deleteFile() {
	s.out.Header("Delete File")
	name := s.readLine("Enter filename to delete: ")

	path, err := s.resolve(name)
	if err != nil {
		s.out.Fail("Delete error", err)
		return
	}
	exists, err := fsops.Exists(path)
	if err != nil {
		s.out.Fail("Delete error", err)
		return
	}
	if !exists {
		s.out.Warning("File does not exist!")
		return
	}

	if fsops.IsDir(path) {
		if !s.confirm("Warning: This is a directory. Delete recursively? (y/n): ") {
			s.out.Println("Delete cancelled.")
			return
		}
		if err := s.fs.Remove(path, true); err != nil {
			s.out.Fail("Delete error", err)
			return
		}
		s.out.Success("Directory deleted successfully!")
		return
	}

	if !s.confirm("Are you sure you want to delete '" + name + "'? (y/n): ") {
		s.out.Println("Delete cancelled.")
		return
	}
	if err := s.fs.Remove(path, false); err != nil {
		s.out.Fail("Delete error", err)
		return
	}
	s.out.Success("File deleted successfully!")
}

func (s *Shell) createFile() {
	s.out.Header("Create File")
	s.create("Enter new filename: ", "File already exists!", "File created successfully!",
		"Create file error", s.fs.CreateFile)
}

func (s *Shell) createDir() {
	s.out.Header("Create Directory")
	s.create("Enter new directory name: ", "Directory already exists!", "Directory created successfully!",
		"Create directory error", s.fs.CreateDir)
}

func (s *Shell) create(prompt, conflict, done, errLabel string, run func(string) error) {
	path, err := s.resolve(s.readLine(prompt))
	if err != nil {
		s.out.Fail(errLabel, err)
		return
	}
	exists, err := fsops.Exists(path)
	if err != nil {
		s.out.Fail(errLabel, err)
		return
	}
	if exists {
		s.out.Warning(conflict)
		return
	}

	err = run(path)
	switch {
	case errors.IsAlreadyExists(err):
		s.out.Warning(conflict)
	case err != nil:
		s.out.Fail(errLabel, err)
	default:
		s.out.Success(done)
	}
}
