package testdata

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/subcommands"
)

type Command struct {
	dir string
}

func (*Command) Name() string     { return "testdata" }
func (*Command) Synopsis() string { return "Create a sample directory tree for trying out scans" }
func (*Command) Usage() string {
	return `testdata -dir <directory>:
  Create a sample tree with code, document, and media files, a hidden file,
  an excluded directory, and a symlink cycle.
`
}

func (c *Command) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dir, "dir", "", "directory to create the sample tree in (required)")
}

func (c *Command) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.dir == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	files := map[string]string{
		"src/main.go":        "package main\n\n// Entry point.\nfunc main() {\n\tprintln(\"hello\")\n}\n",
		"src/util.py":        "def add(a, b):\n    # sum two values\n    return a + b\n",
		"docs/readme.md":     "# Sample\n\nA short document. It has two sentences.\n",
		"docs/notes.txt":     "Plain notes without much structure but enough words to count.\n",
		"media/photo.jpg":    "\xff\xd8\xff\xe0 not a real jpeg",
		"media/clip.mp4":     "\x00\x00\x00\x18ftypmp42 not a real video",
		"misc/archive.dat":   "opaque bytes",
		".hidden/secret.txt": "hidden content",
	}

	for relPath, content := range files {
		fullPath := filepath.Join(c.dir, relPath)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			log.Printf("Failed to create directory for %s: %v", relPath, err)
			return subcommands.ExitFailure
		}
		if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
			log.Printf("Failed to write %s: %v", relPath, err)
			return subcommands.ExitFailure
		}
	}

	// Excluded directory name
	if err := os.MkdirAll(filepath.Join(c.dir, "node_modules", "pkg"), 0755); err != nil {
		log.Printf("Failed to create excluded directory: %v", err)
		return subcommands.ExitFailure
	}

	// Symlink cycle: loop/back points at loop's parent
	loopDir := filepath.Join(c.dir, "loop")
	if err := os.MkdirAll(loopDir, 0755); err != nil {
		log.Printf("Failed to create loop directory: %v", err)
		return subcommands.ExitFailure
	}
	linkPath := filepath.Join(loopDir, "back")
	if err := os.Symlink(c.dir, linkPath); err != nil && !os.IsExist(err) {
		log.Printf("Warning: failed to create symlink cycle: %v", err)
	}

	fmt.Printf("Sample tree created at %s\n", c.dir)
	return subcommands.ExitSuccess
}
