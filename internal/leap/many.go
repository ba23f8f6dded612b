package leap

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/eykd/leap-go/internal/source"
)

// ParseOption configures ParseMany.
type ParseOption func(*parseConfig)

type parseConfig struct {
	readFile     func(string) ([]byte, error)
	canonicalize func(string) (string, error)
	concurrency  int
}

// WithReadFile replaces os.ReadFile.
func WithReadFile(fn func(string) ([]byte, error)) ParseOption {
	return func(c *parseConfig) { c.readFile = fn }
}

// WithCanonicalize sets how paths are resolved before reading. Paths that
// resolve to the same file are parsed once. The default uses paths as
// given.
func WithCanonicalize(fn func(string) (string, error)) ParseOption {
	return func(c *parseConfig) { c.canonicalize = fn }
}

// WithConcurrency bounds how many files are read and parsed at once.
func WithConcurrency(n int) ParseOption {
	return func(c *parseConfig) { c.concurrency = n }
}

type fileResult struct {
	path  string
	spec  *Spec
	diags []Diagnostic
}

// ParseMany canonicalizes, reads and parses every path, then checks the
// files together. It returns nil when all files are valid and an
// *ErrorReport otherwise. Diagnostics are ordered by input file, then
// position. Only context cancellation produces a non-report error.
func ParseMany(ctx context.Context, paths []string, opts ...ParseOption) error {
	cfg := parseConfig{
		readFile:     os.ReadFile,
		canonicalize: func(p string) (string, error) { return p, nil },
		concurrency:  runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	var results []fileResult
	var todo []int
	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		canonical, err := cfg.canonicalize(p)
		if err != nil {
			results = append(results, fileResult{path: p, diags: []Diagnostic{{Path: p, Message: fmt.Sprintf("cannot resolve path: %v", err)}}})
			continue
		}
		if seen[canonical] {
			continue
		}
		seen[canonical] = true
		todo = append(todo, len(results))
		results = append(results, fileResult{path: canonical})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.concurrency, 1))
	for _, i := range todo {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = parseFile(results[i].path, cfg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var diags []Diagnostic
	var clean, broken []*Spec
	for _, r := range results {
		diags = append(diags, r.diags...)
		switch {
		case r.spec == nil:
		case len(r.diags) == 0:
			clean = append(clean, r.spec)
		default:
			broken = append(broken, r.spec)
		}
	}
	diags = append(diags, check(clean, broken)...)

	order := make(map[string]int, len(results))
	for i, r := range results {
		order[r.path] = i
	}
	sort.SliceStable(diags, func(a, b int) bool {
		da, db := diags[a], diags[b]
		oa, ob := order[da.Path], order[db.Path]
		if oa != ob {
			return oa < ob
		}
		if da.Line != db.Line {
			return da.Line < db.Line
		}
		return da.Col < db.Col
	})

	if len(diags) == 0 {
		return nil
	}
	return &ErrorReport{diags: diags, files: countFiles(diags)}
}

// parseFile reads and parses one canonical path.
func parseFile(canonical string, cfg parseConfig) fileResult {
	data, err := cfg.readFile(canonical)
	if err != nil {
		return fileResult{path: canonical, diags: []Diagnostic{{Path: canonical, Message: fmt.Sprintf("cannot read file: %v", err)}}}
	}
	text, err := source.Decode(data)
	if err != nil {
		return fileResult{path: canonical, diags: []Diagnostic{{Path: canonical, Message: fmt.Sprintf("cannot read file: %v", err)}}}
	}
	spec, diags := Parse(canonical, text)
	return fileResult{path: canonical, spec: spec, diags: diags}
}

func countFiles(diags []Diagnostic) int {
	seen := make(map[string]struct{})
	for _, d := range diags {
		seen[d.Path] = struct{}{}
	}
	return len(seen)
}
