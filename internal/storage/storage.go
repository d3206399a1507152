// Package storage is the block-device side of the pager: it opens files and
// hands out byte-at-a-time handles with explicit seek and position.
package storage

import "io"

// Storage opens files by path. A missing path yields an error that matches
// fs.ErrNotExist under errors.Is.
type Storage interface {
	Open(path string) (File, error)
}

// File is an open handle. Handles are not safe for concurrent use.
type File interface {
	io.ByteReader
	io.Closer

	// Seek moves to an absolute offset, clamped to [0, Size()].
	Seek(offset int64) error
	// Position is the offset of the next byte ReadByte returns.
	Position() int64
	Size() int64
}

func clampOffset(offset, size int64) int64 {
	if offset < 0 {
		return 0
	}
	if offset > size {
		return size
	}
	return offset
}
