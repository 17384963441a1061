//go:build windows

package diskio

import (
	"os"
	"syscall"

	"golang.org/x/sys/windows"
)

// fileAttributes extracts the read-only/hidden/system bits and the raw
// attribute word from an os.FileInfo backed by a Windows
// *syscall.Win32FileAttributeData (the concrete type os.Stat/os.ReadDir
// populate on this platform).
func fileAttributes(info os.FileInfo) (readOnly, hidden, system bool, attrs uint32) {
	sys, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return false, false, false, 0
	}
	attrs = sys.FileAttributes
	readOnly = attrs&windows.FILE_ATTRIBUTE_READONLY != 0
	hidden = attrs&windows.FILE_ATTRIBUTE_HIDDEN != 0
	system = attrs&windows.FILE_ATTRIBUTE_SYSTEM != 0
	return readOnly, hidden, system, attrs
}

func setFileAttributes(native string, readOnly, hidden, system bool) error {
	namePtr, err := windows.UTF16PtrFromString(native)
	if err != nil {
		return err
	}
	var attrs uint32
	if readOnly {
		attrs |= windows.FILE_ATTRIBUTE_READONLY
	}
	if hidden {
		attrs |= windows.FILE_ATTRIBUTE_HIDDEN
	}
	if system {
		attrs |= windows.FILE_ATTRIBUTE_SYSTEM
	}
	if attrs == 0 {
		attrs = windows.FILE_ATTRIBUTE_NORMAL
	}
	return windows.SetFileAttributes(namePtr, attrs)
}

// shortName returns the 8.3 short path name alternative for native, if the
// filesystem exposes one (exposed on NTFS unless short-name generation has
// been disabled).
func shortName(native string) (string, bool) {
	namePtr, err := windows.UTF16PtrFromString(native)
	if err != nil {
		return "", false
	}
	var buf [windows.MAX_PATH]uint16
	n, err := windows.GetShortPathName(namePtr, &buf[0], uint32(len(buf)))
	if err != nil || n == 0 {
		return "", false
	}
	return windows.UTF16ToString(buf[:n]), true
}
