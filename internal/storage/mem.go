package storage

import (
	"io"
	"io/fs"
	"sync"
)

// Mem is an in-memory Storage. It backs tests and piped input.
type Mem struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMem returns an empty in-memory store.
func NewMem() *Mem {
	return &Mem{files: make(map[string][]byte)}
}

// Put stores a copy of data under path, replacing any previous content.
func (m *Mem) Put(path string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = append([]byte(nil), data...)
}

// Open returns a handle over a snapshot of the file.
func (m *Mem) Open(path string) (File, error) {
	m.mu.RLock()
	data, ok := m.files[path]
	m.mu.RUnlock()
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return &memFile{data: data}, nil
}

type memFile struct {
	data   []byte
	pos    int64
	closed bool
}

func (f *memFile) ReadByte() (byte, error) {
	if f.closed {
		return 0, fs.ErrClosed
	}
	if f.pos >= int64(len(f.data)) {
		return 0, io.EOF
	}
	b := f.data[f.pos]
	f.pos++
	return b, nil
}

func (f *memFile) Seek(offset int64) error {
	if f.closed {
		return fs.ErrClosed
	}
	f.pos = clampOffset(offset, int64(len(f.data)))
	return nil
}

func (f *memFile) Position() int64 {
	return f.pos
}

func (f *memFile) Size() int64 {
	return int64(len(f.data))
}

func (f *memFile) Close() error {
	f.closed = true
	return nil
}
