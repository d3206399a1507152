package reader

import (
	"errors"
	"io"

	"github.com/kk-code-lab/rtxt/internal/storage"
	"github.com/kk-code-lab/rtxt/internal/textutil"
)

// Index maps display-line numbers to the byte offset of the raw line that
// produced them. Consecutive entries repeat an offset when one raw line wraps
// into several display lines, so offsets never decrease.
type Index struct {
	offsets  []int64
	capacity int
	// full is set when capacity ran out before the end of the file.
	full bool
	// clipped counts raw lines that needed more than MaxWrapsPerLine lines.
	clipped int
	scanned int64
}

// Len is the number of addressable display lines.
func (ix *Index) Len() int {
	return len(ix.offsets)
}

// Offset returns the raw-line offset of display line n.
func (ix *Index) Offset(n int) int64 {
	return ix.offsets[n]
}

// Truncated reports whether any part of the file is not addressable through
// the index, either because capacity ran out or because a raw line wrapped
// into more lines than allowed.
func (ix *Index) Truncated() bool {
	return ix.full || ix.clipped > 0
}

// Full reports whether the index capacity was exhausted before end of file.
func (ix *Index) Full() bool {
	return ix.full
}

// ClippedLines is the number of raw lines cut short by the wrap limit.
func (ix *Index) ClippedLines() int {
	return ix.clipped
}

// firstSibling walks back to the first display line that shares n's raw line.
func (ix *Index) firstSibling(n int) int {
	off := ix.offsets[n]
	for n > 0 && ix.offsets[n-1] == off {
		n--
	}
	return n
}

// BuildIndex scans f from the start and records one offset per display line
// until end of file or until the index is full. The handle's position is
// restored afterwards. Storage errors are returned as-is and no index is
// produced.
func BuildIndex(f storage.File, opts Options) (*Index, error) {
	opts = opts.withDefaults()

	saved := f.Position()
	if err := f.Seek(0); err != nil {
		return nil, err
	}

	ix := &Index{
		offsets:  make([]int64, 0, min(opts.IndexCapacity, 256)),
		capacity: opts.IndexCapacity,
	}
	buf := make([]byte, 0, opts.RawLineCapacity)

	for len(ix.offsets) < ix.capacity {
		line, start, err := readRawLine(f, buf, opts.RawLineCapacity)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			_ = f.Seek(saved)
			return nil, err
		}

		n, clipped := textutil.WrapCount(line, opts.Width, opts.MaxWrapsPerLine)
		if clipped {
			ix.clipped++
		}
		for i := 0; i < n; i++ {
			if len(ix.offsets) == ix.capacity {
				ix.full = true
				break
			}
			ix.offsets = append(ix.offsets, start)
		}
	}

	// Every remaining byte would have produced at least one more line.
	if len(ix.offsets) == ix.capacity && f.Position() < f.Size() {
		ix.full = true
	}
	ix.scanned = f.Position()

	if err := f.Seek(saved); err != nil {
		return nil, err
	}
	return ix, nil
}
