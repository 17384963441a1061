//go:build windows

package volume

import (
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/altap-salamander/core/pkg/path"
)

// winSyscalls is the real Syscalls implementation, backed by
// golang.org/x/sys/windows.
type winSyscalls struct{}

// NewSyscalls returns the live Windows-backed Syscalls implementation.
func NewSyscalls() Syscalls {
	return winSyscalls{}
}

func (winSyscalls) SubstTarget(drive byte) (path.Path, bool) {
	deviceName := string(drive) + ":"
	namePtr, err := windows.UTF16PtrFromString(deviceName)
	if err != nil {
		return path.Path{}, false
	}

	var buf [windows.MAX_PATH]uint16
	n, err := windows.QueryDosDevice(namePtr, &buf[0], uint32(len(buf)))
	if err != nil || n == 0 {
		return path.Path{}, false
	}
	target := windows.UTF16ToString(buf[:n])

	// Genuine local drives resolve to "\Device\HarddiskVolumeN"; substs
	// resolve to a DOS path form instead.
	if strings.HasPrefix(target, `\??\`) {
		target = target[4:]
	}
	if !isDriveLetterPath(target) {
		return path.Path{}, false
	}

	p, err := path.Parse(target, nil)
	if err != nil {
		return path.Path{}, false
	}
	return p, true
}

func isDriveLetterPath(s string) bool {
	return len(s) >= 2 && s[1] == ':' && isASCIILetter(s[0])
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func (winSyscalls) Reparse(p path.Path) (ReparseInfo, bool, error) {
	namePtr, err := windows.UTF16PtrFromString(p.Format())
	if err != nil {
		return ReparseInfo{}, false, err
	}

	handle, err := windows.CreateFile(
		namePtr,
		0,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_FLAG_BACKUP_SEMANTICS|windows.FILE_FLAG_OPEN_REPARSE_POINT,
		0,
	)
	if err != nil {
		return ReparseInfo{}, false, err
	}
	defer windows.CloseHandle(handle)

	var attrs windows.Win32FileAttributeData
	if err := windows.GetFileAttributesEx(namePtr, windows.GetFileExInfoStandard, (*byte)(unsafe.Pointer(&attrs))); err != nil {
		return ReparseInfo{}, false, err
	}
	if attrs.FileAttributes&windows.FILE_ATTRIBUTE_REPARSE_POINT == 0 {
		return ReparseInfo{}, false, nil
	}

	buf := make([]byte, windows.MAXIMUM_REPARSE_DATA_BUFFER_SIZE)
	var bytesReturned uint32
	err = windows.DeviceIoControl(handle, windows.FSCTL_GET_REPARSE_POINT, nil, 0, &buf[0], uint32(len(buf)), &bytesReturned, nil)
	if err != nil {
		return ReparseInfo{}, false, err
	}

	tag := *(*uint32)(unsafe.Pointer(&buf[0]))
	switch tag {
	case windows.IO_REPARSE_TAG_MOUNT_POINT:
		return ReparseInfo{Kind: LinkMountPoint, Opaque: true}, true, nil
	case windows.IO_REPARSE_TAG_SYMLINK:
		target, isNetwork, ok := decodeSymlinkTarget(buf, bytesReturned)
		if !ok {
			return ReparseInfo{Kind: LinkSymlink, Opaque: true}, true, nil
		}
		return ReparseInfo{Kind: LinkSymlink, Target: target, TargetIsNetwork: isNetwork}, true, nil
	default:
		return ReparseInfo{Kind: LinkUnknown, Opaque: true}, true, nil
	}
}

// reparseDataBuffer mirrors enough of Windows' REPARSE_DATA_BUFFER to pull
// the substitute name out of a symlink reparse point.
type reparseDataBuffer struct {
	ReparseTag           uint32
	ReparseDataLength    uint16
	Reserved             uint16
	SubstituteNameOffset uint16
	SubstituteNameLength uint16
	PrintNameOffset      uint16
	PrintNameLength      uint16
	Flags                uint32
}

func decodeSymlinkTarget(buf []byte, length uint32) (path.Path, bool, bool) {
	const headerSize = 20 // fields above up through Flags
	if int(length) < headerSize {
		return path.Path{}, false, false
	}
	hdr := (*reparseDataBuffer)(unsafe.Pointer(&buf[0]))
	pathBufferOffset := headerSize
	start := pathBufferOffset + int(hdr.SubstituteNameOffset)
	end := start + int(hdr.SubstituteNameLength)
	if end > len(buf) {
		return path.Path{}, false, false
	}
	raw := buf[start:end]
	u16 := make([]uint16, len(raw)/2)
	for i := range u16 {
		u16[i] = uint16(raw[2*i]) | uint16(raw[2*i+1])<<8
	}
	target := windows.UTF16ToString(u16)
	target = strings.TrimPrefix(target, `\??\`)

	isNetwork := strings.HasPrefix(target, `\\`) || strings.HasPrefix(target, `UNC\`)
	if strings.HasPrefix(target, `UNC\`) {
		target = `\\` + target[4:]
	}

	p, err := path.Parse(target, nil)
	if err != nil {
		return path.Path{}, false, false
	}
	return p, isNetwork, true
}

func (winSyscalls) VolumeGUID(p path.Path) (string, path.Path, bool) {
	rootPtr, err := windows.UTF16PtrFromString(volumeRootOf(p))
	if err != nil {
		return "", path.Path{}, false
	}

	var mountBuf [windows.MAX_PATH + 1]uint16
	if err := windows.GetVolumePathName(rootPtr, &mountBuf[0], uint32(len(mountBuf))); err != nil {
		return "", path.Path{}, false
	}
	mountPointStr := windows.UTF16ToString(mountBuf[:])

	var guidBuf [50]uint16
	mountPtr, err := windows.UTF16PtrFromString(mountPointStr)
	if err != nil {
		return "", path.Path{}, false
	}
	if err := windows.GetVolumeNameForVolumeMountPoint(mountPtr, &guidBuf[0], uint32(len(guidBuf))); err != nil {
		return "", path.Path{}, false
	}

	mountPoint, err := path.Parse(mountPointStr, nil)
	if err != nil {
		return "", path.Path{}, false
	}
	return windows.UTF16ToString(guidBuf[:]), mountPoint, true
}

func volumeRootOf(p path.Path) string {
	switch p.Kind() {
	case path.Disk:
		root, _ := p.DiskParts()
		return root + `\`
	case path.UNC:
		server, share, _ := p.UNCParts()
		return `\\` + server + `\` + share + `\`
	default:
		return p.Format()
	}
}
