// Package logfile reads the pacman log line by line.
package logfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultPath is where pacman writes its log.
const DefaultPath = "/var/log/pacman.log"

// Source is an open log file.
type Source struct {
	path string
	f    *os.File
}

// Open opens the log at path for reading.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat log %s: %w", path, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("failed to open log %s: is a directory", path)
	}

	return &Source{path: path, f: f}, nil
}

// Path returns the file path the source was opened from.
func (s *Source) Path() string { return s.path }

// Reader exposes the underlying file.
func (s *Source) Reader() io.Reader { return s.f }

// Close closes the log file.
func (s *Source) Close() error { return s.f.Close() }

// EachLine calls fn for every line of r, without the line terminator, in
// order. Lines have no length limit and the input is never held in memory as
// a whole. Iteration stops at the first error returned by fn.
func EachLine(r io.Reader, fn func(line string) error) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			if ferr := fn(line); ferr != nil {
				return ferr
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read log: %w", err)
		}
	}
}
