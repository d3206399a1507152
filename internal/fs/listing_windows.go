//go:build windows

package fs

// ShouldHideFromListing reports system reparse points, which never belong in
// the file menu.
func ShouldHideFromListing(fullPath, name string) bool {
	attrs, err := getFileAttributes(fullPath, name)
	if err != nil {
		return false
	}

	const protectedMask = fileAttributeSystem | fileAttributeReparsePoint
	return attrs&protectedMask == protectedMask
}
