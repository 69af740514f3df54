package paths

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAliases(t *testing.T) {
	r := NewResolver("/home/alice")

	resolved, err := r.Resolve("workspace")
	require.NoError(t, err)
	assert.Equal(t, "/home/alice/workspace", resolved)

	resolved, err = r.Resolve("Downloads")
	require.NoError(t, err)
	assert.Equal(t, "/home/alice/Downloads", resolved)

	resolved, err = r.Resolve("dropbox")
	require.NoError(t, err)
	assert.Equal(t, "/home/alice/Dropbox", resolved)
}

func TestResolveHomeMarker(t *testing.T) {
	r := NewResolver("/home/alice")

	resolved, err := r.Resolve("~")
	require.NoError(t, err)
	assert.Equal(t, "/home/alice", resolved)

	resolved, err = r.Resolve("~/projects/demo")
	require.NoError(t, err)
	assert.Equal(t, "/home/alice/projects/demo", resolved)
}

func TestResolveEmptyDefaultsToWorkspace(t *testing.T) {
	r := NewResolver("/home/alice")

	resolved, err := r.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, r.DefaultRoot(), resolved)

	resolved, err = r.Resolve("   ")
	require.NoError(t, err)
	assert.Equal(t, r.DefaultRoot(), resolved)
}

func TestResolveNormalizes(t *testing.T) {
	r := NewResolver("/home/alice")

	resolved, err := r.Resolve("/home/alice/a/../b//c/.")
	require.NoError(t, err)
	assert.Equal(t, "/home/alice/b/c", resolved)
}

func TestResolveRelativeJoinsDefaultRoot(t *testing.T) {
	r := NewResolver("/home/alice")

	resolved, err := r.Resolve("projects/demo")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(r.DefaultRoot(), "projects/demo"), resolved)
}

func TestResolveIdempotent(t *testing.T) {
	r := NewResolver("/home/alice")

	inputs := []string{"workspace", "~", "~/x/y", "/tmp/data", "a/b", "", "/home/alice/a/../b"}
	for _, input := range inputs {
		first, err := r.Resolve(input)
		require.NoError(t, err, "input %q", input)

		second, err := r.Resolve(first)
		require.NoError(t, err, "re-resolving %q", first)
		assert.Equal(t, first, second, "resolve(resolve(%q))", input)
	}
}

func TestResolveRestricted(t *testing.T) {
	r := NewResolver("/home/alice")

	for _, input := range []string{"/etc", "/etc/passwd", "/proc/1", "/sys", "/dev/null", "/run/lock", "/boot"} {
		_, err := r.Resolve(input)
		require.Error(t, err, "input %q", input)

		var restricted *RestrictedPathError
		require.True(t, errors.As(err, &restricted), "input %q", input)
		assert.Equal(t, r.DefaultRoot(), restricted.SuggestedPath)
	}
}

func TestResolveRestrictedPrefixIsPathAware(t *testing.T) {
	r := NewResolver("/home/alice")

	// Only true prefixes are restricted, not lookalike names.
	resolved, err := r.Resolve("/etcetera/files")
	require.NoError(t, err)
	assert.Equal(t, "/etcetera/files", resolved)
}

func TestIsRestricted(t *testing.T) {
	r := NewResolver("/home/alice")

	restricted, prefix := r.IsRestricted("/proc/self/fd")
	assert.True(t, restricted)
	assert.Equal(t, "/proc", prefix)

	restricted, _ = r.IsRestricted("/home/alice/workspace")
	assert.False(t, restricted)
}
