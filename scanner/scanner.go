// Package scanner walks directory trees into DirectoryEntry results while
// enforcing depth limits, symlink cycle detection, and restricted-subtree
// exclusion. Traversal failures degrade the affected node only; they never
// abort sibling traversal.
package scanner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Rumi1013/filewizard/models"
	"github.com/Rumi1013/filewizard/paths"
)

// DefaultMaxDepth bounds recursion when the caller does not ask for more.
const DefaultMaxDepth = 5

// DefaultBatchWorkers bounds concurrent root scans in ScanMultiple.
const DefaultBatchWorkers = 4

// Directory names never descended into.
var excludedNames = map[string]struct{}{
	".git":         {},
	"node_modules": {},
	"__pycache__":  {},
}

// FS is the raw filesystem surface the scanner composes. The default
// implementation wraps the os package; tests substitute fakes.
type FS interface {
	Stat(path string) (os.FileInfo, error)
	ListChildren(path string) ([]os.DirEntry, error)
	ResolveSymlink(path string) (string, error)
}

type osFS struct{}

func (osFS) Stat(path string) (os.FileInfo, error)          { return os.Stat(path) }
func (osFS) ListChildren(path string) ([]os.DirEntry, error) { return os.ReadDir(path) }
func (osFS) ResolveSymlink(path string) (string, error)      { return filepath.EvalSymlinks(path) }

// Scanner walks resolved paths into DirectoryEntry trees.
type Scanner struct {
	fsys     FS
	resolver *paths.Resolver
	maxDepth int
	workers  int
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithFS substitutes the filesystem primitives.
func WithFS(fsys FS) Option { return func(s *Scanner) { s.fsys = fsys } }

// WithMaxDepth overrides the default recursion bound.
func WithMaxDepth(depth int) Option {
	return func(s *Scanner) {
		if depth > 0 {
			s.maxDepth = depth
		}
	}
}

// WithBatchWorkers overrides the concurrent root limit for ScanMultiple.
func WithBatchWorkers(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.workers = n
		}
	}
}

// New returns a Scanner resolving inputs through the given resolver.
func New(resolver *paths.Resolver, opts ...Option) *Scanner {
	s := &Scanner{
		fsys:     osFS{},
		resolver: resolver,
		maxDepth: DefaultMaxDepth,
		workers:  DefaultBatchWorkers,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan resolves the input path and walks it into a tree. Restricted input
// yields a single restricted root entry with a suggested alternative rather
// than an error; a missing root yields an error leaf.
func (s *Scanner) Scan(input string) *models.DirectoryEntry {
	resolved, err := s.resolver.Resolve(input)
	if err != nil {
		var restricted *paths.RestrictedPathError
		if errors.As(err, &restricted) {
			return &models.DirectoryEntry{
				Name:          filepath.Base(restricted.Path),
				Path:          restricted.Path,
				Type:          models.EntryDirectory,
				Children:      []*models.DirectoryEntry{},
				Restricted:    true,
				Suggestion:    "path is a restricted system directory",
				SuggestedPath: restricted.SuggestedPath,
			}
		}
		return errorEntry(input, err.Error())
	}

	visited := make(map[string]struct{})
	return s.walk(resolved, 0, visited)
}

// ScanWithDepth behaves like Scan with a per-call depth bound; depth <= 0
// falls back to the configured default.
func (s *Scanner) ScanWithDepth(input string, depth int) *models.DirectoryEntry {
	if depth <= 0 || depth == s.maxDepth {
		return s.Scan(input)
	}
	bounded := *s
	bounded.maxDepth = depth
	return bounded.Scan(input)
}

// walk expands one node depth-first. The visited set holds canonical paths
// of the current path stack only: entries are added before descending and
// removed after returning, so diamond patterns reachable twice through
// distinct stacks are not misreported as cycles.
func (s *Scanner) walk(path string, depth int, visited map[string]struct{}) *models.DirectoryEntry {
	entry := &models.DirectoryEntry{
		Name: filepath.Base(path),
		Path: path,
	}

	if restricted, _ := s.resolver.IsRestricted(path); restricted {
		entry.Type = models.EntryDirectory
		entry.Children = []*models.DirectoryEntry{}
		entry.Restricted = true
		entry.Suggestion = "path is a restricted system directory"
		entry.SuggestedPath = s.resolver.DefaultRoot()
		return entry
	}

	info, err := s.fsys.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			entry.Type = models.EntryError
			entry.Error = "directory not found"
			entry.Suggestion = "check that the path exists"
			entry.SuggestedPath = s.resolver.DefaultRoot()
			return entry
		}
		if os.IsPermission(err) {
			entry.Type = models.EntryDirectory
			entry.Children = []*models.DirectoryEntry{}
			entry.PermissionError = true
			return entry
		}
		entry.Type = models.EntryError
		entry.Error = err.Error()
		return entry
	}

	entry.Hidden = strings.HasPrefix(entry.Name, ".")
	entry.LastModified = info.ModTime().Unix()

	if !info.IsDir() {
		entry.Type = models.EntryFile
		entry.Size = info.Size()
		entry.Created = fileCreatedAt(path)
		return entry
	}
	entry.Type = models.EntryDirectory
	entry.Children = []*models.DirectoryEntry{}

	if _, ok := excludedNames[entry.Name]; ok {
		entry.Excluded = true
		return entry
	}

	canonical, err := s.fsys.ResolveSymlink(path)
	if err != nil {
		canonical = path
	}
	if _, seen := visited[canonical]; seen {
		entry.Type = models.EntrySymlink
		entry.Children = nil
		entry.CycleDetected = true
		return entry
	}

	if depth >= s.maxDepth {
		entry.MaxDepthReached = true
		entry.Suggestion = "scan this directory directly to see deeper entries"
		entry.SuggestedPath = path
		return entry
	}

	children, err := s.fsys.ListChildren(path)
	if err != nil {
		if os.IsPermission(err) {
			entry.PermissionError = true
			return entry
		}
		entry.Error = err.Error()
		return entry
	}

	visited[canonical] = struct{}{}
	for _, child := range children {
		if strings.HasPrefix(child.Name(), ".") {
			continue
		}
		childEntry := s.walk(filepath.Join(path, child.Name()), depth+1, visited)
		if childEntry != nil {
			entry.Children = append(entry.Children, childEntry)
		}
	}
	delete(visited, canonical)

	return entry
}

// SkippedPath records a batch input excluded before scanning.
type SkippedPath struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// BatchResult maps each valid input path to its scan tree. Order preserves
// the valid inputs' insertion order regardless of scan completion order.
type BatchResult struct {
	Order   []string                          `json:"-"`
	Results map[string]*models.DirectoryEntry `json:"results"`
	Skipped []SkippedPath                     `json:"skipped"`
}

// ScanMultiple scans several requested roots as an independent batch.
// Restricted or invalid entries are reported as skipped instead of failing
// the batch; valid roots share no state and scan concurrently up to the
// worker limit.
func (s *Scanner) ScanMultiple(ctx context.Context, inputs []string) *BatchResult {
	result := &BatchResult{
		Results: make(map[string]*models.DirectoryEntry),
		Skipped: []SkippedPath{},
	}

	type job struct {
		input    string
		resolved string
	}
	var jobs []job
	for _, input := range inputs {
		resolved, err := s.resolver.Resolve(input)
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedPath{Path: input, Reason: err.Error()})
			continue
		}
		if _, err := s.fsys.Stat(resolved); err != nil {
			reason := "directory not found"
			if !os.IsNotExist(err) {
				reason = err.Error()
			}
			result.Skipped = append(result.Skipped, SkippedPath{Path: input, Reason: reason})
			continue
		}
		jobs = append(jobs, job{input: input, resolved: resolved})
		result.Order = append(result.Order, input)
	}

	trees := make([]*models.DirectoryEntry, len(jobs))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			visited := make(map[string]struct{})
			trees[i] = s.walk(j.resolved, 0, visited)
			return nil
		})
	}
	g.Wait()

	for i, j := range jobs {
		result.Results[j.input] = trees[i]
	}
	return result
}

func errorEntry(path, msg string) *models.DirectoryEntry {
	return &models.DirectoryEntry{
		Name:  filepath.Base(path),
		Path:  path,
		Type:  models.EntryError,
		Error: msg,
	}
}
