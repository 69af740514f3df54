//go:build darwin

package scanner

import "golang.org/x/sys/unix"

// fileCreatedAt returns the file's birth time in Unix seconds, or 0 when
// stat fails.
func fileCreatedAt(path string) int64 {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return 0
	}
	return st.Birthtimespec.Sec
}
