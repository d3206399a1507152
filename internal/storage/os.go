package storage

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const readBufferSize = 4096

// OS serves files from the local filesystem. Relative paths are resolved
// against Root when it is set.
type OS struct {
	Root string
}

func (s OS) resolve(path string) string {
	if s.Root == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.Root, path)
}

// Open opens path read-only.
func (s OS) Open(path string) (File, error) {
	f, err := os.Open(s.resolve(path))
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("%s: is a directory", path)
	}
	return &osFile{
		file: f,
		buf:  bufio.NewReaderSize(f, readBufferSize),
		size: info.Size(),
	}, nil
}

type osFile struct {
	file *os.File
	buf  *bufio.Reader
	pos  int64
	size int64
}

func (f *osFile) ReadByte() (byte, error) {
	b, err := f.buf.ReadByte()
	if err != nil {
		return 0, err
	}
	f.pos++
	return b, nil
}

func (f *osFile) Seek(offset int64) error {
	offset = clampOffset(offset, f.size)
	if offset == f.pos {
		return nil
	}
	// Stay inside the buffered window when moving forward a little.
	if ahead := offset - f.pos; ahead > 0 && ahead <= int64(f.buf.Buffered()) {
		n, err := f.buf.Discard(int(ahead))
		f.pos += int64(n)
		return err
	}
	if _, err := f.file.Seek(offset, io.SeekStart); err != nil {
		return err
	}
	f.buf.Reset(f.file)
	f.pos = offset
	return nil
}

func (f *osFile) Position() int64 {
	return f.pos
}

func (f *osFile) Size() int64 {
	return f.size
}

func (f *osFile) Close() error {
	if f.file == nil {
		return nil
	}
	err := f.file.Close()
	f.file = nil
	return err
}
