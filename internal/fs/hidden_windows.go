//go:build windows

package fs

// IsHidden checks if a file is hidden on this platform (Windows). Dot files
// count as hidden too, so a book copied from a Unix card looks the same.
func IsHidden(fullPath string, name string) bool {
	if len(name) > 0 && name[0] == '.' {
		return true
	}
	attrs, err := getFileAttributes(fullPath, name)
	if err != nil {
		return false
	}
	return attrs&fileAttributeHidden != 0
}
