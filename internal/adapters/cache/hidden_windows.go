//go:build windows

package cache

import "golang.org/x/sys/windows"

// setHiddenAttr sets the hidden file attribute so Explorer does not show
// the cache directory.
func setHiddenAttr(path string) error {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return err
	}
	attrs, err := windows.GetFileAttributes(p)
	if err != nil {
		return err
	}
	return windows.SetFileAttributes(p, attrs|windows.FILE_ATTRIBUTE_HIDDEN)
}
