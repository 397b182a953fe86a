// Package console holds the interactive bits of the command line tool.
package console

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// DefaultPrompt is shown before waiting for the user
const DefaultPrompt = "Premi [INVIO] per terminare il programma..."

// Pauser waits for the user to acknowledge before the process exits
type Pauser struct {
	in     io.Reader
	out    io.Writer
	prompt string
}

// NewPauser creates a Pauser reading from in and prompting on out
func NewPauser(in io.Reader, out io.Writer) *Pauser {
	return &Pauser{in: in, out: out, prompt: DefaultPrompt}
}

// WithPrompt overrides the prompt text
func (p *Pauser) WithPrompt(prompt string) *Pauser {
	p.prompt = prompt
	return p
}

// Wait prints the prompt and blocks until a key is pressed. On a terminal a
// single key is enough; otherwise it reads up to the end of a line. End of
// input counts as acknowledgement.
func (p *Pauser) Wait() error {
	fmt.Fprint(p.out, p.prompt)
	defer fmt.Fprintln(p.out)

	if f, ok := p.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return waitKey(f)
	}

	_, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && err != io.EOF {
		return err
	}
	return nil
}

func waitKey(f *os.File) error {
	fd := int(f.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to set raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	buf := make([]byte, 1)
	if _, err := f.Read(buf); err != nil && err != io.EOF {
		return err
	}
	return nil
}
