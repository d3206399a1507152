package reader

// Defaults match the original pocket reader hardware: a 128x32 display with a
// 4x6 font and a few kilobytes of index memory.
const (
	DefaultWidth           = 32
	DefaultRawLineCapacity = 127
	DefaultIndexCapacity   = 4096
	DefaultMaxWrapsPerLine = 8
)

// Options fixes the geometry of a Reader. Zero fields take the defaults.
type Options struct {
	// Width is the number of bytes per display line.
	Width int
	// RawLineCapacity bounds a raw line; longer lines continue as the next
	// raw line. The default leaves room for the terminator in the device's
	// 128-byte line buffer.
	RawLineCapacity int
	// IndexCapacity bounds the number of addressable display lines.
	IndexCapacity int
	// MaxWrapsPerLine bounds the display lines produced by one raw line.
	MaxWrapsPerLine int
}

// DefaultOptions returns the built-in geometry.
func DefaultOptions() Options {
	return Options{
		Width:           DefaultWidth,
		RawLineCapacity: DefaultRawLineCapacity,
		IndexCapacity:   DefaultIndexCapacity,
		MaxWrapsPerLine: DefaultMaxWrapsPerLine,
	}
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.RawLineCapacity <= 0 {
		o.RawLineCapacity = DefaultRawLineCapacity
	}
	if o.IndexCapacity <= 0 {
		o.IndexCapacity = DefaultIndexCapacity
	}
	if o.MaxWrapsPerLine <= 0 {
		o.MaxWrapsPerLine = DefaultMaxWrapsPerLine
	}
	return o
}
