//go:build !windows

package fs

// ShouldHideFromListing never hides text files outside Windows.
func ShouldHideFromListing(_, _ string) bool {
	return false
}
