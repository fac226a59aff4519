package input

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// LineReader reads whole command lines from a stream
type LineReader struct {
	r *bufio.Reader
}

// NewLineReader wraps r in a buffered line reader
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: bufio.NewReader(r)}
}

// ReadLine returns the next line without its terminator.
// A final line without a newline is returned with a nil error; io.EOF is
// returned only once nothing is left.
func (l *LineReader) ReadLine() (string, error) {
	line, err := l.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// IsInteractive reports whether stdin is attached to a terminal
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
