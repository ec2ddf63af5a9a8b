// Package loader discovers cxql source files on disk and parses them concurrently.
package loader

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/leapstack-labs/cxql/pkg/ast"
	"github.com/leapstack-labs/cxql/pkg/parser"
	"golang.org/x/sync/errgroup"
)

// DefaultDebounce is how long Watch waits for file events to settle.
const DefaultDebounce = 100 * time.Millisecond

// File is the outcome of loading one source file.
type File struct {
	Path    string
	Source  string
	Program *ast.Program
	Errors  parser.ErrorList
	// Err is set when the file could not be read.
	Err error
}

// OK reports whether the file was read and parsed without errors.
func (f *File) OK() bool {
	return f.Err == nil && len(f.Errors) == 0
}

// Options configures a Loader.
type Options struct {
	Extensions  []string
	Concurrency int
	Debounce    time.Duration
	Logger      *slog.Logger
}

// Loader finds and parses source files.
type Loader struct {
	extensions  []string
	concurrency int
	debounce    time.Duration
	logger      *slog.Logger
}

// New creates a Loader. Zero options fall back to .cxql files, GOMAXPROCS
// workers and DefaultDebounce.
func New(opts Options) *Loader {
	l := &Loader{
		extensions:  opts.Extensions,
		concurrency: opts.Concurrency,
		debounce:    opts.Debounce,
		logger:      opts.Logger,
	}
	if len(l.extensions) == 0 {
		l.extensions = []string{".cxql"}
	}
	if l.debounce <= 0 {
		l.debounce = DefaultDebounce
	}
	if l.logger == nil {
		l.logger = slog.New(slog.DiscardHandler)
	}
	return l
}

func (l *Loader) matches(path string) bool {
	return slices.Contains(l.extensions, filepath.Ext(path))
}

// Discover expands paths into a sorted, de-duplicated list of source files.
// Directories are walked recursively, skipping hidden directories. Files
// named explicitly are kept whatever their extension.
func (l *Loader) Discover(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		path = filepath.Clean(path)
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", root, err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if l.matches(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}

	slices.Sort(files)
	return files, nil
}

// ParseFiles reads and parses files in parallel. Results keep the order of
// files. Read failures are reported per file; only cancellation of ctx
// fails the whole call.
func (l *Loader) ParseFiles(ctx context.Context, files []string) ([]*File, error) {
	results := make([]*File, len(files))

	g, gctx := errgroup.WithContext(ctx)
	if l.concurrency > 0 {
		g.SetLimit(l.concurrency)
	}

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = l.parseFile(path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (l *Loader) parseFile(path string) *File {
	f := &File{Path: path}

	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		f.Err = fmt.Errorf("failed to read %s: %w", path, err)
		l.logger.Warn("read failed", "file", path, "error", err)
		return f
	}

	f.Source = string(data)
	f.Program, f.Errors = parser.ParseProgram(f.Source)
	l.logger.Debug("parsed file",
		"file", path,
		"statements", len(f.Program.Statements),
		"errors", len(f.Errors))
	return f
}

// Load discovers and parses everything under paths.
func (l *Loader) Load(ctx context.Context, paths []string) ([]*File, error) {
	files, err := l.Discover(paths)
	if err != nil {
		return nil, err
	}
	return l.ParseFiles(ctx, files)
}
