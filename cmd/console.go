package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/finance"
)

// stdConsole prompts on a terminal.
type stdConsole struct {
	r *bufio.Reader
	w io.Writer
}

func newStdConsole(r io.Reader, w io.Writer) *stdConsole {
	return &stdConsole{r: bufio.NewReader(r), w: w}
}

// Prompt returns the next line typed in. The end of the input (Ctrl+D) is
// an exit request.
func (c *stdConsole) Prompt(message string) (string, error) {
	fmt.Fprint(c.w, message)
	line, err := c.r.ReadString('\n')
	if err == io.EOF && line == "" {
		fmt.Fprintln(c.w)
		return "", finance.ErrExit
	}
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *stdConsole) Display(text string) { fmt.Fprintln(c.w, text) }
