// Package shell implements the interactive explorer session: a numbered menu
// read from the input stream, a handler per menu entry, and the current
// directory those handlers operate on.
package shell

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"fexp/internal/errors"
	"fexp/internal/fsops"
	"fexp/internal/log"
	"fexp/internal/ui"
)

// Command is a top-level menu entry.
type Command int

const (
	CmdExit Command = iota
	CmdListBasic
	CmdListDetailed
	CmdNavigate
	CmdCopy
	CmdMove
	CmdDelete
	CmdCreateFile
	CmdCreateDir
	CmdSearch
	CmdPermissions
)

var menuLabels = map[Command]string{
	CmdListBasic:    "List files (basic)",
	CmdListDetailed: "List files (detailed)",
	CmdNavigate:     "Navigate to directory",
	CmdCopy:         "Copy file",
	CmdMove:         "Move file",
	CmdDelete:       "Delete file",
	CmdCreateFile:   "Create file",
	CmdCreateDir:    "Create directory",
	CmdSearch:       "Search files",
	CmdPermissions:  "Manage permissions",
	CmdExit:         "Exit",
}

// String returns the menu label.
func (c Command) String() string {
	if label, ok := menuLabels[c]; ok {
		return label
	}
	return "command(" + strconv.Itoa(int(c)) + ")"
}

// Shell is one interactive session.
type Shell struct {
	cwd       string
	in        *bufio.Reader
	out       *ui.Printer
	fs        *fsops.Engine
	lookupEnv func(string) (string, bool)
	handlers  map[Command]func()

	eof             bool
	ownershipWarned bool
}

// Option configures a Shell
type Option func(*Shell)

// WithLookupEnv replaces os.LookupEnv for reading HOME.
func WithLookupEnv(fn func(string) (string, bool)) Option {
	return func(s *Shell) {
		s.lookupEnv = fn
	}
}

// New creates a session starting in cwd, which must be an existing directory.
func New(cwd string, in io.Reader, out *ui.Printer, engine *fsops.Engine, opts ...Option) (*Shell, error) {
	dir, err := fsops.ResolveDir(cwd)
	if err != nil {
		return nil, errors.Wrap(err, "invalid starting directory")
	}

	s := &Shell{
		cwd:       dir,
		in:        bufio.NewReader(in),
		out:       out,
		fs:        engine,
		lookupEnv: os.LookupEnv,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.handlers = map[Command]func(){
		CmdListBasic:    func() { s.list(false) },
		CmdListDetailed: func() { s.list(true) },
		CmdNavigate:     s.navigate,
		CmdCopy:         s.copyFile,
		CmdMove:         s.moveFile,
		CmdDelete:       s.deleteFile,
		CmdCreateFile:   s.createFile,
		CmdCreateDir:    s.createDir,
		CmdSearch:       s.search,
		CmdPermissions:  s.managePermissions,
	}
	return s, nil
}

// Dir returns the current directory.
func (s *Shell) Dir() string {
	return s.cwd
}

// Run prints the banner and serves menu choices until the user exits or
// the input ends.
func (s *Shell) Run() error {
	s.out.Println("=== File Explorer Application ===")
	s.out.Println("Current directory: " + s.cwd)

	for {
		s.printMenu()
		choice, ok := s.readInt("Enter your choice: ")
		if s.eof && !ok {
			log.Debug("input closed, leaving")
			s.out.Println("Goodbye!")
			return nil
		}
		if ok && Command(choice) == CmdExit {
			s.out.Println("Goodbye!")
			return nil
		}
		s.Dispatch(Command(choice), ok)
		if s.eof {
			s.out.Println("Goodbye!")
			return nil
		}
	}
}

// Dispatch runs the handler for cmd. Unknown commands, and input that was
// not a number, print "Invalid choice!".
func (s *Shell) Dispatch(cmd Command, valid bool) {
	handler, found := s.handlers[cmd]
	if !valid || !found {
		s.out.Println("Invalid choice!")
		return
	}
	log.LogWithFields(log.F("command", cmd.String()), log.F("dir", s.cwd)).Debug("dispatch")
	handler()
}

func (s *Shell) printMenu() {
	s.out.Header("File Explorer Menu")
	s.out.Println("Current directory: " + s.cwd)
	for cmd := CmdListBasic; cmd <= CmdPermissions; cmd++ {
		s.out.Printf("%d. %s\n", cmd, cmd)
	}
	s.out.Printf("%d. %s\n", CmdExit, CmdExit)
}

// resolve joins name onto the current directory. Absolute names are used
// as given.
func (s *Shell) resolve(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", errors.NewInvalidInputError("name is empty", nil)
	}
	if filepath.IsAbs(name) {
		return filepath.Clean(name), nil
	}
	return filepath.Join(s.cwd, name), nil
}
