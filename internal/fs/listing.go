package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// TextExt is the extension, compared case-insensitively, of files the menu lists.
const TextExt = ".txt"

// ListTextFiles returns the text files directly inside dir, ordered by name
// without regard to case and capped at max entries. truncated reports that
// more files were present than returned.
func ListTextFiles(dir string, max int) (entries []Entry, truncated bool, err error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, false, fmt.Errorf("list %s: %w", dir, err)
	}

	for _, de := range dirEntries {
		if de.IsDir() || !strings.EqualFold(filepath.Ext(de.Name()), TextExt) {
			continue
		}
		fullPath := filepath.Join(dir, de.Name())
		if IsHidden(fullPath, de.Name()) || ShouldHideFromListing(fullPath, de.Name()) {
			continue
		}
		info, err := de.Info()
		if err != nil {
			// removed between ReadDir and Info
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}

		entry := Entry{
			Name:     de.Name(),
			FullPath: fullPath,
			Size:     info.Size(),
			Modified: info.ModTime(),
		}
		// unreadable files stay listed; opening them shows the read error
		if enc, binary, err := SniffFile(fullPath); err == nil {
			entry.Encoding = enc
			entry.Binary = binary
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := strings.ToLower(entries[i].Name), strings.ToLower(entries[j].Name)
		if a == b {
			return entries[i].Name < entries[j].Name
		}
		return a < b
	})

	if max > 0 && len(entries) > max {
		entries = entries[:max]
		truncated = true
	}
	return entries, truncated, nil
}
