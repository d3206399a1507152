//go:build !windows

package fs

// IsHidden reports dot files as hidden (Unix-like).
func IsHidden(_ string, name string) bool {
	return len(name) > 0 && name[0] == '.'
}
