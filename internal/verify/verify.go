// Package verify turns the parser's multi-file result into a single
// pass/fail report.
package verify

import (
	"context"
	"errors"

	"github.com/eykd/leap-go/internal/domain"
)

// Parser checks a set of spec files as one unit. It returns nil when every
// file is valid.
type Parser interface {
	ParseMany(ctx context.Context, paths []string) error
}

// ParserFunc adapts a function to Parser.
type ParserFunc func(ctx context.Context, paths []string) error

// ParseMany calls f.
func (f ParserFunc) ParseMany(ctx context.Context, paths []string) error {
	return f(ctx, paths)
}

// Aggregator delegates verification of a file set to a Parser.
type Aggregator struct {
	parser Parser
}

// New returns an Aggregator using p.
func New(p Parser) *Aggregator {
	return &Aggregator{parser: p}
}

// Verify parses paths in one call. A parser failure is returned as a
// *domain.FileError of kind KindAggregatedParse whose message is the
// parser's rendered report. Context errors are returned unchanged.
func (a *Aggregator) Verify(ctx context.Context, paths []string) error {
	err := a.parser.ParseMany(ctx, paths)
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &domain.FileError{Kind: domain.KindAggregatedParse, Err: err}
}
