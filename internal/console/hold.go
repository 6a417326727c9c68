package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Holder keeps the session open until the operator acknowledges it.
type Holder interface {
	Hold() error
}

// NoHold returns immediately, for unattended runs.
type NoHold struct{}

func (NoHold) Hold() error { return nil }

// KeypressHold waits for a single key when In is a terminal, and for a line
// (or end of input) otherwise.
type KeypressHold struct {
	In  io.Reader
	Out io.Writer
}

func NewKeypressHold(in io.Reader, out io.Writer) *KeypressHold {
	return &KeypressHold{In: in, Out: out}
}

func (hold *KeypressHold) Hold() error {
	fmt.Fprint(hold.Out, "Press any key to continue . . . ")
	defer fmt.Fprintln(hold.Out)

	if file, ok := hold.In.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		return readKey(file)
	}
	_, err := bufio.NewReader(hold.In).ReadString('\n')
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func readKey(file *os.File) error {
	fd := int(file.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return err
	}
	defer term.Restore(fd, state)

	key := make([]byte, 1)
	_, err = file.Read(key)
	return err
}
