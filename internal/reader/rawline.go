package reader

import (
	"errors"
	"io"

	"github.com/kk-code-lab/rtxt/internal/storage"
)

// readRawLine reads the next raw line into buf, returning the line and the
// offset it started at. Carriage returns are dropped and the line feed is
// consumed. A line longer than capacity is cut there; the rest of it becomes
// the next raw line. io.EOF is returned only when no byte was left to read.
func readRawLine(f storage.File, buf []byte, capacity int) ([]byte, int64, error) {
	start := f.Position()
	line := buf[:0]
	sawByte := false

	for len(line) < capacity {
		b, err := f.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				if !sawByte {
					return nil, start, io.EOF
				}
				return line, start, nil
			}
			return line, start, err
		}
		sawByte = true
		switch b {
		case '\n':
			return line, start, nil
		case '\r':
			continue
		}
		line = append(line, b)
	}

	// A full buffer directly followed by its line ending must not leave an
	// empty raw line behind.
	for {
		b, err := f.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return line, start, nil
			}
			return line, start, err
		}
		switch b {
		case '\n':
			return line, start, nil
		case '\r':
			continue
		}
		return line, start, f.Seek(f.Position() - 1)
	}
}
