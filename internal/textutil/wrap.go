package textutil

// Wrap splits one raw line into display lines of at most width bytes.
//
// A line is broken at the last space at or before column width; the space is
// dropped. Without such a space the line is cut hard at width. After every
// break a single leading space is skipped, so runs of spaces survive as
// indentation on the next line. An empty raw line yields one empty display
// line. At most maxOutputs lines are produced (maxOutputs <= 0 means no
// limit); truncated reports whether input was left over.
func Wrap(raw []byte, width, maxOutputs int) (lines []string, truncated bool) {
	_, truncated = wrapChunks(raw, width, maxOutputs, func(chunk []byte) {
		lines = append(lines, string(chunk))
	})
	return lines, truncated
}

// WrapCount reports how many display lines Wrap would produce, without
// allocating them.
func WrapCount(raw []byte, width, maxOutputs int) (count int, truncated bool) {
	return wrapChunks(raw, width, maxOutputs, nil)
}

// wrapChunks walks the break points of raw, handing each display line to
// emit when it is non-nil.
func wrapChunks(raw []byte, width, maxOutputs int, emit func([]byte)) (count int, truncated bool) {
	if width < 1 {
		width = 1
	}
	if len(raw) == 0 {
		if emit != nil {
			emit(raw)
		}
		return 1, false
	}

	pos := 0
	for pos < len(raw) {
		if maxOutputs > 0 && count == maxOutputs {
			return count, true
		}

		rest := raw[pos:]
		count++
		if len(rest) <= width {
			if emit != nil {
				emit(rest)
			}
			break
		}

		brk := width
		for brk > 0 && rest[brk] != ' ' {
			brk--
		}
		if brk == 0 {
			brk = width
		}

		if emit != nil {
			emit(rest[:brk])
		}
		pos += brk
		if pos < len(raw) && raw[pos] == ' ' {
			pos++
		}
	}
	return count, false
}
