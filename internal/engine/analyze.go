package engine

import (
	"context"
	"fmt"

	"github.com/thgossler/menv/internal/pathlist"
)

// Algorithm steps:
// 1. Validate the name and require a PATH-like variable
// 2. Resolve the effective list value
// 3. Analyze composition and directory existence
// 4. Derive cleanup suggestions from the statistics
func (e *Engine) Analyze(ctx context.Context, req *AnalyzeRequest) (*AnalyzeResult, error) {
	name, err := e.validateName(req.Name)
	if err != nil {
		return nil, err
	}
	if !e.PathLike(name) {
		return nil, fmt.Errorf("%w: %s", ErrNotPathLike, name)
	}

	record, err := e.resolver.Resolve(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", name, err)
	}
	if !record.Found {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	analysis := pathlist.Analyze(pathlist.Parse(record.Value), e.dirCheck)

	return &AnalyzeResult{
		Name:        name,
		Value:       record.Value,
		Analysis:    analysis,
		Suggestions: suggestions(analysis),
	}, nil
}

// suggestions turns analysis statistics into cleanup advice. An empty slice
// means the list is clean.
func suggestions(a pathlist.Analysis) []string {
	var out []string
	if a.DuplicateCount > 0 {
		out = append(out, fmt.Sprintf("remove %d duplicate %s to shorten the list",
			a.DuplicateCount, plural(a.DuplicateCount, "entry", "entries")))
	}
	if a.EmptyCount > 0 {
		out = append(out, fmt.Sprintf("remove %d empty %s; an empty entry makes lookups search the current directory",
			a.EmptyCount, plural(a.EmptyCount, "entry", "entries")))
	}
	if missing := a.TotalEntries - a.EmptyCount - a.ExistingDirCount; missing > 0 {
		out = append(out, fmt.Sprintf("%d %s not name an existing directory",
			missing, plural(missing, "entry does", "entries do")))
	}
	return out
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
