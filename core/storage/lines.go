package storage

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// ReadLines calls fn with every line of r, without the line terminator.
// Lines have no length limit. Reading stops early when fn returns false.
func ReadLines(r io.Reader, fn func(line string) bool) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 && !fn(strings.TrimRight(line, "\r\n")) {
			return nil
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
