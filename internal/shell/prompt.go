package shell

import (
	"io"
	"strconv"
	"strings"

	"fexp/internal/log"
)

// readLine prints prompt and returns the next input line without its line
// ending. Surrounding spaces are kept, file names may contain them.
func (s *Shell) readLine(prompt string) string {
	s.out.Prompt(prompt)
	line, err := s.in.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			log.LogWithError(err).Warn("reading input failed")
		}
		s.eof = true
		if line != "" {
			// prompt and answer never got their line break
			s.out.Println()
		}
	}
	return strings.TrimRight(line, "\r\n")
}

// readInt reads a line and parses it as a decimal integer.
func (s *Shell) readInt(prompt string) (int, bool) {
	text := strings.TrimSpace(s.readLine(prompt))
	n, err := strconv.Atoi(text)
	if err != nil {
		if text != "" {
			log.LogWithFields(log.F("input", text)).Debug("not a number")
		}
		return 0, false
	}
	return n, true
}

// confirm asks a y/n question. Only a reply starting with y or Y counts as yes.
func (s *Shell) confirm(prompt string) bool {
	reply := strings.TrimSpace(s.readLine(prompt))
	return reply != "" && (reply[0] == 'y' || reply[0] == 'Y')
}
