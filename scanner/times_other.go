//go:build !linux && !darwin

package scanner

// fileCreatedAt has no portable implementation outside linux and darwin.
func fileCreatedAt(path string) int64 {
	return 0
}
