package textutil

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// DefaultCharset is used when no charset is configured.
const DefaultCharset = "latin1"

var charsets = map[string]*charmap.Charmap{
	"latin1":       charmap.ISO8859_1,
	"iso-8859-1":   charmap.ISO8859_1,
	"iso-8859-15":  charmap.ISO8859_15,
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
	"cp437":        charmap.CodePage437,
	"koi8-r":       charmap.KOI8R,
}

// Decoder maps single-byte display lines to runes that are safe to draw.
type Decoder struct {
	cm *charmap.Charmap
}

// NewDecoder returns a decoder for the named single-byte charset.
func NewDecoder(name string) (*Decoder, error) {
	if name == "" {
		name = DefaultCharset
	}
	cm, ok := charsets[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unsupported charset %q", name)
	}
	return &Decoder{cm: cm}, nil
}

// Runes decodes line one byte per rune, so the result has exactly len(line)
// cells. Tabs become spaces and control bytes become '?'.
func (d *Decoder) Runes(line string) []rune {
	out := make([]rune, len(line))
	for i := 0; i < len(line); i++ {
		b := line[i]
		switch {
		case b == '\t':
			out[i] = ' '
		case b < 0x20 || b == 0x7f:
			out[i] = '?'
		default:
			r := d.cm.DecodeByte(b)
			if r < 0x20 || (r >= 0x80 && r < 0xa0) {
				r = '?'
			}
			out[i] = r
		}
	}
	return out
}

// String is Runes joined back into a UTF-8 string.
func (d *Decoder) String(line string) string {
	return string(d.Runes(line))
}
