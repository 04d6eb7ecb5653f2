// Package iojson reads and writes JSON documents for command line
// commands.
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// FileReader decodes a T from the --file flag or, when the flag is unset,
// from piped stdin.
type FileReader[T any] struct {
	path  string
	stdin io.Reader
	isTTY func() bool
}

func NewFileReader[T any]() *FileReader[T] {
	return &FileReader[T]{
		stdin: os.Stdin,
		isTTY: func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
	}
}

// Flag returns the --file flag bound to the reader.
func (fr *FileReader[T]) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "path to JSON file (reads from stdin if not provided)",
		Destination: &fr.path,
	}
}

func (fr *FileReader[T]) Read() (T, error) {
	var input T

	var r io.Reader
	if fr.path != "" {
		f, err := os.Open(fr.path)
		if err != nil {
			return input, fmt.Errorf("open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	} else {
		if fr.isTTY != nil && fr.isTTY() {
			return input, fmt.Errorf("no input provided (stdin is a terminal); use -f flag or pipe JSON input")
		}
		r = fr.stdin
	}

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		return input, fmt.Errorf("decode JSON: %w", err)
	}
	return input, nil
}

// Write encodes v as indented JSON.
func Write(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
