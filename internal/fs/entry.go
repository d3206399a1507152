package fs

import (
	"time"
)

// Entry is a readable text file offered by the file menu.
type Entry struct {
	Name     string
	FullPath string
	Size     int64
	Modified time.Time
	Encoding Encoding
	// Binary is set when the head of the file does not look like text.
	Binary bool
}

// IsHidden reports whether the entry should be treated as hidden.
func (e Entry) IsHidden() bool {
	return IsHidden(e.FullPath, e.Name)
}

// Readable reports whether the pager can show the file. Files starting with a
// UTF-16 byte order mark, and binary files that happen to end in .txt, are
// listed but cannot be paged byte by byte.
func (e Entry) Readable() bool {
	return !e.Binary && !e.Encoding.Wide()
}

// Kind names what the file holds: "binary" or its encoding.
func (e Entry) Kind() string {
	if e.Binary {
		return "binary"
	}
	return e.Encoding.String()
}
