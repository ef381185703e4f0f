// Package prompt supplies the action selector string when none was given
// on the command line. The source is injectable so the CLI can be driven
// non-interactively in tests.
package prompt

import (
	"bufio"
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Source supplies an action selector string for the given target tree
type Source interface {
	Actions(target string) (string, error)
}

// StdinSource prompts on Out and reads a single line from In
type StdinSource struct {
	In  io.Reader
	Out io.Writer
}

// NewStdinSource creates a prompt source reading from in and writing to out
func NewStdinSource(in io.Reader, out io.Writer) *StdinSource {
	return &StdinSource{In: in, Out: out}
}

// Actions prints the action menu and reads one line of input.
// The returned string is parsed by models.ParseActions; an empty line
// selects no action.
func (s *StdinSource) Actions(target string) (string, error) {
	yellow := color.New(color.FgYellow)
	yellow.Fprintf(s.Out, "Comparison complete. Choose actions for %s:\n", target)
	yellow.Fprintln(s.Out, "  [y] delete duplicate files from the target tree")
	yellow.Fprintln(s.Out, "  [o] write the duplicate file list")
	yellow.Fprintln(s.Out, "  [u] write the unique file list")
	fmt.Fprint(s.Out, "> ")

	line, err := bufio.NewReader(s.In).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read action selection: %w", err)
	}

	return line, nil
}
