package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/moby/term"
)

// prompter reads answers line by line from one input stream.
type prompter struct {
	in     io.Reader
	reader *bufio.Reader
	out    io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: in, reader: bufio.NewReader(in), out: out}
}

// readLine prints prompt and reads one line. With silent set and a terminal on the
// input, echo is disabled while typing.
func (p *prompter) readLine(prompt string, silent bool) (string, error) {
	fmt.Fprint(p.out, prompt)
	if silent {
		if fd, isTerminal := term.GetFdInfo(p.in); isTerminal {
			state, err := term.SaveState(fd)
			if err != nil {
				return "", err
			}
			if err := term.DisableEcho(fd, state); err != nil {
				return "", err
			}
			defer func() {
				_ = term.RestoreTerminal(fd, state)
				fmt.Fprintln(p.out)
			}()
		}
	}

	line, err := p.reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
