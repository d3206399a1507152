package reader

import "errors"

var (
	// ErrNotFound is returned by Open for a path that does not exist.
	ErrNotFound = errors.New("file not found")
	// ErrNotOpen is returned by session operations when no file is open.
	ErrNotOpen = errors.New("no file open")
	// ErrIO matches every *IOError under errors.Is.
	ErrIO = errors.New("storage i/o error")
)

// IOError records a storage failure and the operation that hit it.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func (e *IOError) Is(target error) bool {
	return target == ErrIO
}
