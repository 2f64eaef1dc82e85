//go:build !windows

package cache

// setHiddenAttr is a no-op on Unix-like systems; the dot-prefixed name
// is the hiding convention.
func setHiddenAttr(string) error { return nil }
