//go:build linux

package scanner

import "golang.org/x/sys/unix"

// fileCreatedAt returns the file's birth time in Unix seconds, or 0 when
// the filesystem does not record one. Linux exposes it through statx only.
func fileCreatedAt(path string) int64 {
	var stx unix.Statx_t
	if err := unix.Statx(unix.AT_FDCWD, path, 0, unix.STATX_BTIME, &stx); err != nil {
		return 0
	}
	if stx.Mask&unix.STATX_BTIME == 0 {
		return 0
	}
	return stx.Btime.Sec
}
